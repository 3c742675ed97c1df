package engine

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/goprior/internal/sgf"
)

// ExportSettings configures ExportGames.
type ExportSettings struct {
	Threads  int
	Comments bool
}

// ExportGames exports the SGF files on Threads workers. save is called from a
// single goroutine for every file in completion order; a game that cannot be
// read or replayed is passed with Err set and does not stop the export. An
// error returned by save cancels the remaining work.
func (e *Engine) ExportGames(ctx context.Context, files []string, settings ExportSettings, save func(*GameExport) error) error {
	threads := max(settings.Threads, 1)

	g, ctx := errgroup.WithContext(ctx)

	var jobs = make(chan string, 128)
	var results = make(chan *GameExport, 128)

	g.Go(func() error {
		defer close(jobs)
		for _, file := range files {
			select {
			case jobs <- file:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for exp := range results {
			if err := save(exp); err != nil {
				return err
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < threads; i++ {
		w := e.NewWorker(i)
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return w.exportFiles(ctx, jobs, results, settings.Comments)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	return g.Wait()
}

func (w *Worker) exportFiles(ctx context.Context, jobs <-chan string, results chan<- *GameExport, comments bool) error {
	for file := range jobs {
		exp := w.exportFile(file, comments)
		select {
		case results <- exp:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (w *Worker) exportFile(file string, comments bool) *GameExport {
	tag := sgf.Tag(file)
	game, err := sgf.ReadFile(file)
	if err != nil {
		log.Printf("[Worker %d] skipping %s: %v", w.id, file, err)
		return &GameExport{File: file, Tag: tag, Err: err}
	}
	exp, err := w.ExportGame(game, tag, comments)
	exp.File = file
	if err != nil {
		log.Printf("[Worker %d] skipping %s: %v", w.id, file, err)
		exp.Err = err
		exp.Positions = nil
	}
	return exp
}
