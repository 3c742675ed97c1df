package knowledge

import (
	"cmp"
	"math"

	"golang.org/x/exp/slices"

	"github.com/hailam/goprior/internal/uct"
)

// minScoreRange is the smallest score spread ScaleLinear rescales; below it
// rounding noise would dominate.
const minScoreRange = 0.001

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// applyPriors adds virtual games to moves according to the policy. scores[i]
// is the score of moves[i].
func applyPriors(moves []uct.MoveInfo, scores []float64, opts *Options) {
	if len(moves) == 0 {
		return
	}
	switch opts.Policy {
	case Simple:
		for i := range moves {
			moves[i].Add(sigmoid(scores[i]), opts.PriorWeight)
		}
	case ScaleByGames:
		scaleByGames(moves, scores, opts.PriorWeight)
	case ScaleLinear:
		scaleLinear(moves, scores, opts.PriorWeight)
	case TopN:
		topN(moves, scores, opts.TopN, opts.PriorWeight)
	default:
		panic("knowledge: unknown prior policy " + opts.Policy.String())
	}
}

func scoreRange(scores []float64) (lo, hi float64) {
	lo, hi = scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return lo, hi
}

// scaleByGames maps positive scores into [0.5, 1] and negative scores into
// [0, 0.5], weighting each move by |score| so the mean weight over all moves
// equals weight.
func scaleByGames(moves []uct.MoveInfo, scores []float64, weight float64) {
	lo, hi := scoreRange(scores)
	sumAbs := 0.0
	for _, s := range scores {
		sumAbs += math.Abs(s)
	}
	if sumAbs < minScoreRange {
		return
	}
	factor := weight * float64(len(moves)) / sumAbs
	for i, s := range scores {
		switch {
		case s > 0:
			moves[i].Add(0.5+0.5*s/hi, s*factor)
		case s < 0:
			moves[i].Add(0.5-0.5*s/lo, -s*factor)
		}
	}
}

func scaleLinear(moves []uct.MoveInfo, scores []float64, weight float64) {
	lo, hi := scoreRange(scores)
	if hi-lo < minScoreRange {
		return
	}
	for i, s := range scores {
		moves[i].Add((s-lo)/(hi-lo), weight)
	}
}

// topN gives a full-weight win to the n best moves; equal scores keep the
// order of moves.
func topN(moves []uct.MoveInfo, scores []float64, n int, weight float64) {
	if n <= 0 {
		return
	}
	order := make([]int, len(moves))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})
	for _, i := range order[:min(n, len(order))] {
		moves[i].Add(1, weight)
	}
}

// predictor converts a score into a predictor value.
func predictor(score float64, opts *Options) float64 {
	p := opts.PredictorMultiplier * sigmoid(-opts.SigmoidSteepness*score)
	return max(p, opts.MinPredictor)
}

func applyPredictor(moves []uct.MoveInfo, scores []float64, opts *Options) {
	for i := range moves {
		moves[i].Predictor = predictor(scores[i], opts)
	}
}
