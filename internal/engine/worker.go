package engine

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/features"
	"github.com/hailam/goprior/internal/knowledge"
	"github.com/hailam/goprior/internal/model"
	"github.com/hailam/goprior/internal/policy"
	"github.com/hailam/goprior/internal/sgf"
	"github.com/hailam/goprior/internal/uct"
	"github.com/hailam/goprior/internal/wistuba"
)

// Worker evaluates positions on its own board. A worker must not be used by
// more than one goroutine at a time.
type Worker struct {
	id int

	// Per-worker state
	board     *board.Board
	knowledge knowledge.Knowledge
	cache     *policy.Cache
	positions int

	// Export buffers
	buf bytes.Buffer
	out *wistuba.Writer

	// Shared read-only resources
	model *model.Model
	opts  knowledge.Options
}

func newWorker(id int, m *model.Model, opts knowledge.Options) *Worker {
	return &Worker{
		id:    id,
		cache: policy.NewCache(),
		model: m,
		opts:  opts,
	}
}

// ID returns the worker's ID.
func (w *Worker) ID() int { return w.id }

// Positions returns the number of positions evaluated or exported.
func (w *Worker) Positions() int { return w.positions }

// CacheHitRate returns the hit rate of the worker's policy cache.
func (w *Worker) CacheHitRate() float64 { return w.cache.HitRate() }

// SetPosition copies b into the worker and binds a fresh knowledge adapter
// to the copy.
func (w *Worker) SetPosition(b *board.Board) error {
	w.board = b.Clone()
	k, err := knowledge.New(w.opts, w.board, w.model)
	if err != nil {
		return fmt.Errorf("failed to create knowledge: %w", err)
	}
	w.knowledge = k
	return nil
}

// Board returns the worker's copy of the position.
func (w *Worker) Board() *board.Board { return w.board }

// Priors returns the statistics records of every legal move of the current
// position with the knowledge applied.
func (w *Worker) Priors() []uct.MoveInfo {
	if w.board == nil {
		panic("engine: Priors called before SetPosition")
	}
	if !w.knowledge.IsUpToDate() {
		w.knowledge.Update()
	}
	moves := uct.Moves(w.board)
	w.knowledge.ProcessPosition(moves)
	w.positions++
	return moves
}

// PredictorType returns the mode of the worker's knowledge.
func (w *Worker) PredictorType() knowledge.Mode {
	return w.knowledge.PredictorType()
}

// Explain returns the feature set of p in the current position and the
// contribution of each feature to its score.
func (w *Worker) Explain(p board.Point) (features.Set, []model.Contribution) {
	if w.board == nil {
		panic("engine: Explain called before SetPosition")
	}
	if !w.board.IsLegal(p) {
		return features.Set{}, nil
	}
	set := *features.ComputeAll(w.board, w.cache).At(p)
	return set, model.EvaluateDetail(w.model, &set)
}

// ExportedPosition is the move list of one position of a game.
type ExportedPosition struct {
	MoveNumber int
	Chosen     string
	Lines      []string
}

// GameExport is the outcome of exporting one game.
type GameExport struct {
	File      string
	Tag       string
	Size      int
	Positions []ExportedPosition
	Err       error
}

// Lines returns the number of move-list lines of the game.
func (g *GameExport) Lines() int {
	n := 0
	for i := range g.Positions {
		n += len(g.Positions[i].Lines)
	}
	return n
}

// ExportGame replays g and produces the Wistuba move list of every position
// before each move is played.
func (w *Worker) ExportGame(g *sgf.Game, tag string, comments bool) (*GameExport, error) {
	exp := &GameExport{Tag: tag, Size: g.Size}
	w.buf.Reset()
	w.out = wistuba.NewWriter(&w.buf, comments)

	_, err := g.Replay(func(b *board.Board, m sgf.Move) error {
		chosen := m.Point(b)
		pos := &wistuba.Position{
			Tag:        tag,
			MoveNumber: b.MoveNumber() + 1,
			Chosen:     chosen,
			Candidates: b.LegalMoves(),
			Sets:       features.ComputeAll(b, w.cache),
		}
		if err := w.out.WritePosition(pos); err != nil {
			return err
		}
		if err := w.out.Flush(); err != nil {
			return err
		}
		exp.Positions = append(exp.Positions, ExportedPosition{
			MoveNumber: pos.MoveNumber,
			Chosen:     b.PointString(chosen),
			Lines:      splitLines(w.buf.Bytes()),
		})
		w.buf.Reset()
		w.positions++
		return nil
	})
	if err != nil {
		return exp, fmt.Errorf("failed to export %s: %w", tag, err)
	}
	return exp, nil
}

func splitLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}
