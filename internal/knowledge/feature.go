package knowledge

import (
	"cmp"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/features"
	"github.com/hailam/goprior/internal/model"
	"github.com/hailam/goprior/internal/policy"
	"github.com/hailam/goprior/internal/uct"
)

// OwnershipSource estimates the probability that p ends up owned by the side
// to move, typically from Monte-Carlo playouts.
type OwnershipSource interface {
	Ownership(b *board.Board, p board.Point) float64
}

// OwnershipFunc adapts a function to OwnershipSource.
type OwnershipFunc func(b *board.Board, p board.Point) float64

func (f OwnershipFunc) Ownership(b *board.Board, p board.Point) float64 { return f(b, p) }

func clamp[T cmp.Ordered](x, lo, hi T) T {
	return max(lo, min(x, hi))
}

// FeatureKnowledge scores moves with the factorized feature model.
type FeatureKnowledge struct {
	guard
	opts      Options
	model     *model.Model
	cache     *policy.Cache
	ownership OwnershipSource

	sets   features.BoardSets
	scores []float64
}

// NewFeatureKnowledge binds a feature-model adapter to b. The model is only
// read.
func NewFeatureKnowledge(b *board.Board, m *model.Model, opts Options) *FeatureKnowledge {
	return &FeatureKnowledge{
		guard: guard{board: b},
		opts:  opts,
		model: m,
		cache: policy.NewCache(),
	}
}

// SetOwnershipSource enables the Monte-Carlo ownership features.
func (k *FeatureKnowledge) SetOwnershipSource(src OwnershipSource) {
	k.ownership = src
	k.valid = false
}

// Update computes the features and scores of every legal move.
func (k *FeatureKnowledge) Update() {
	b := k.board
	k.sets = features.ComputeAll(b, k.cache)
	if len(k.scores) != b.CellCount() {
		k.scores = make([]float64, b.CellCount())
	} else {
		clear(k.scores)
	}
	for _, p := range b.LegalMoves() {
		if k.ownership != nil && p != board.Pass {
			features.SetOwnership(k.sets.At(p), clamp(k.ownership.Ownership(b, p), 0, 1))
		}
		k.scores[p] = model.Evaluate(k.model, k.sets.At(p))
	}
	k.stamp()
}

// ProcessPosition applies the scores in the configured mode.
func (k *FeatureKnowledge) ProcessPosition(moves []uct.MoveInfo) {
	k.mustBeUpToDate()
	process(moves, k.scores, &k.opts)
}

func (k *FeatureKnowledge) PredictorType() Mode { return k.opts.Mode }

func (k *FeatureKnowledge) MinValue() float64 { return k.opts.MinPredictor }

// Set returns the features of move p.
func (k *FeatureKnowledge) Set(p board.Point) *features.Set {
	k.mustBeUpToDate()
	return k.sets.At(p)
}

// Score returns the model score of move p.
func (k *FeatureKnowledge) Score(p board.Point) float64 {
	k.mustBeUpToDate()
	return k.scores[p]
}

// Predictor returns the predictor value of move p.
func (k *FeatureKnowledge) Predictor(p board.Point) float64 {
	return predictor(k.Score(p), &k.opts)
}

// Explain breaks the score of move p down per feature.
func (k *FeatureKnowledge) Explain(p board.Point) []model.Contribution {
	return model.EvaluateDetail(k.model, k.Set(p))
}

// CacheHitRate returns the hit rate of the policy move cache.
func (k *FeatureKnowledge) CacheHitRate() float64 {
	return k.cache.HitRate()
}
