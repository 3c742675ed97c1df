// Package knowledge turns move evaluations into search priors. Each search
// worker owns one adapter bound to its own board; the adapter reads the board,
// scores every legal move and rewrites the move statistics handed to it.
package knowledge

import (
	"fmt"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/model"
	"github.com/hailam/goprior/internal/uct"
)

// Knowledge is an additive knowledge strategy.
type Knowledge interface {
	// Update evaluates the current position of the bound board.
	Update()
	// IsUpToDate reports whether Update ran for the current position.
	IsUpToDate() bool
	// ProcessPosition applies the knowledge to the statistics of the
	// current position. Update must have been called for it.
	ProcessPosition(moves []uct.MoveInfo)
	// PredictorType tells whether ProcessPosition adds virtual games or
	// writes predictors.
	PredictorType() Mode
	// MinValue is the smallest predictor value written.
	MinValue() float64
}

// New creates the strategy selected by opts, bound to b. m may be nil for
// strategies that do not use a model.
func New(opts Options, b *board.Board, m *model.Model) (Knowledge, error) {
	if opts.Policy < Simple || opts.Policy > TopN {
		return nil, fmt.Errorf("invalid prior policy %d", opts.Policy)
	}
	if opts.Mode != PriorMode && opts.Mode != PredictorMode {
		return nil, fmt.Errorf("invalid knowledge mode %d", opts.Mode)
	}
	if m == nil {
		m = model.Empty()
	}
	switch opts.Kind {
	case FeatureKind:
		return NewFeatureKnowledge(b, m, opts), nil
	case RuleKind:
		return NewRuleKnowledge(b), nil
	case PatternKind:
		return NewPatternKnowledge(b, m, opts), nil
	}
	return nil, fmt.Errorf("invalid knowledge kind %d", opts.Kind)
}

// guard remembers which position the cached evaluation belongs to.
type guard struct {
	board *board.Board
	hash  uint64
	valid bool
}

func (g *guard) stamp() {
	g.hash = g.board.Hash()
	g.valid = true
}

// IsUpToDate reports whether the cached evaluation matches the board.
func (g *guard) IsUpToDate() bool {
	return g.valid && g.hash == g.board.Hash()
}

func (g *guard) mustBeUpToDate() {
	if !g.IsUpToDate() {
		panic("knowledge: evaluation is stale, Update was not called for this position")
	}
}

// scoredMoves gathers the cached score of every record.
func scoredMoves(moves []uct.MoveInfo, scores []float64) []float64 {
	out := make([]float64, len(moves))
	for i := range moves {
		out[i] = scores[moves[i].Move]
	}
	return out
}

// process applies cached scores in the configured mode.
func process(moves []uct.MoveInfo, scores []float64, opts *Options) {
	s := scoredMoves(moves, scores)
	if opts.Mode == PredictorMode {
		applyPredictor(moves, s, opts)
		return
	}
	applyPriors(moves, s, opts)
}
