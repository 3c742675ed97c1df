package features

import (
	"math"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/policy"
)

// Move returns the basic features and pattern index of the legal move p.
func Move(b *board.Board, p board.Point) Set {
	s := Basic(b, p)
	if index, ok := PatternIndex(b, p); ok {
		s.SetPattern(index)
	}
	return s
}

// ComputeAll returns the feature sets of every legal move of the side to
// move, pass included. Sets of illegal points stay empty. When cache is not
// nil the policy-derived features are added as well.
func ComputeAll(b *board.Board, cache *policy.Cache) BoardSets {
	sets := NewBoardSets(b)
	for _, p := range b.LegalMoves() {
		sets[p] = Move(b, p)
	}
	if cache != nil {
		FindPolicyFeatures(b, cache, sets)
	}
	return sets
}

// SetOwnership adds the Monte-Carlo ownership bucket of a move whose point
// ends up owned by the side to move with probability prob. NaN counts as 0.
func SetOwnership(s *Set, prob float64) {
	if math.IsNaN(prob) {
		prob = 0
	}
	prob = max(0, min(prob, 1))
	i := min(int(prob*OwnerBuckets), OwnerBuckets-1)
	s.Add(bucket(McOwner1, i, 0, McOwner8))
}
