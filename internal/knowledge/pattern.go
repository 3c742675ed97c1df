package knowledge

import (
	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/features"
	"github.com/hailam/goprior/internal/model"
	"github.com/hailam/goprior/internal/uct"
)

// PatternKnowledge scores a move by the weight of its local pattern alone.
type PatternKnowledge struct {
	guard
	opts   Options
	model  *model.Model
	scores []float64
}

// NewPatternKnowledge binds a pattern-table adapter to b.
func NewPatternKnowledge(b *board.Board, m *model.Model, opts Options) *PatternKnowledge {
	return &PatternKnowledge{guard: guard{board: b}, opts: opts, model: m}
}

func (k *PatternKnowledge) Update() {
	b := k.board
	k.scores = make([]float64, b.CellCount())
	for _, p := range b.LegalMoves() {
		if index, ok := features.PatternIndex(b, p); ok {
			k.scores[p] = k.model.Weight(index)
		}
	}
	k.stamp()
}

func (k *PatternKnowledge) ProcessPosition(moves []uct.MoveInfo) {
	k.mustBeUpToDate()
	process(moves, k.scores, &k.opts)
}

func (k *PatternKnowledge) PredictorType() Mode { return k.opts.Mode }

func (k *PatternKnowledge) MinValue() float64 { return k.opts.MinPredictor }
