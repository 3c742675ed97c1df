package model

import "github.com/hailam/goprior/internal/features"

// Contribution is the share of one active feature in a move score.
type Contribution struct {
	Index       int
	Weight      float64
	Interaction float64 // half of the feature's pairwise interactions
}

// Total returns Weight + Interaction.
func (c Contribution) Total() float64 { return c.Weight + c.Interaction }

// Evaluate scores a feature set: the sum of the active weights plus every
// pairwise interaction between distinct active features.
func Evaluate(m *Model, s *features.Set) float64 {
	var buf [64]int
	return EvaluateIndices(m, s.Indices(buf[:0]))
}

// EvaluateIndices scores a list of distinct feature indices. It panics if an
// index is outside the model.
func EvaluateIndices(m *Model, ids []int) float64 {
	score := 0.0
	for a, i := range ids {
		score += m.Weight(i)
		for _, j := range ids[a+1:] {
			score += m.Combine(i, j)
		}
	}
	return score
}

// EvaluateDetail breaks the score of s down per active feature, in ascending
// index order. The totals of the contributions add up to Evaluate(m, s).
func EvaluateDetail(m *Model, s *features.Set) []Contribution {
	ids := s.Indices(nil)
	detail := make([]Contribution, len(ids))
	for a, i := range ids {
		inter := 0.0
		for b, j := range ids {
			if a != b {
				inter += m.Combine(i, j)
			}
		}
		detail[a] = Contribution{Index: i, Weight: m.Weight(i), Interaction: inter / 2}
	}
	return detail
}
