package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hailam/goprior/internal/engine"
	"github.com/hailam/goprior/internal/knowledge"
	"github.com/hailam/goprior/internal/storage"
)

func runExport(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	out := fs.String("out", "-", "output file, - for stdout")
	dbDir := fs.String("db", "", "also store positions in this database")
	threads := fs.Int("threads", runtime.NumCPU(), "number of workers")
	comments := fs.Bool("comments", true, "append game tag and pattern size to every line")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files, err := sgfFiles(fs.Args())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("at least one SGF file is expected")
	}

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	var db *storage.Storage
	if *dbDir != "" {
		db, err = storage.Open(*dbDir)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	log.Printf("export started: %d games, %d workers", len(files), *threads)
	var games, failed, positions, lines int

	eng := engine.NewEngine(knowledge.DefaultOptions())
	err = eng.ExportGames(ctx, files, engine.ExportSettings{Threads: *threads, Comments: *comments}, func(exp *engine.GameExport) error {
		games++
		if exp.Err != nil {
			failed++
		}
		for _, pos := range exp.Positions {
			for _, line := range pos.Lines {
				bw.WriteString(line)
				bw.WriteByte('\n')
			}
			if !*comments {
				// positions are separated by a blank line when untagged
				bw.WriteByte('\n')
			}
		}
		positions += len(exp.Positions)
		lines += exp.Lines()
		if db != nil {
			return saveExport(db, exp)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write move lists: %w", err)
	}
	log.Printf("export finished: %d games (%d failed), %d positions, %d lines", games, failed, positions, lines)
	return nil
}

func saveExport(db *storage.Storage, exp *engine.GameExport) error {
	recs := make([]storage.ExportRecord, len(exp.Positions))
	for i, pos := range exp.Positions {
		recs[i] = storage.ExportRecord{
			Tag:        exp.Tag,
			MoveNumber: pos.MoveNumber,
			BoardSize:  exp.Size,
			Chosen:     pos.Chosen,
			Lines:      pos.Lines,
		}
	}
	if len(recs) > 0 {
		if err := db.SaveExports(recs); err != nil {
			return err
		}
	}
	return db.RecordExport(storage.ExportResult{
		Positions: len(exp.Positions),
		Lines:     exp.Lines(),
		Err:       exp.Err,
	})
}

// sgfFiles expands directories into the SGF files they contain.
func sgfFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, de := range entries {
			if !de.IsDir() && strings.EqualFold(filepath.Ext(de.Name()), ".sgf") {
				files = append(files, filepath.Join(arg, de.Name()))
			}
		}
	}
	return files, nil
}
