package features

import (
	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/policy"
)

var generatorFeature = [...]struct {
	kind policy.Kind
	id   ID
}{
	{policy.AtariCapture, PolicyAtariCapture},
	{policy.AtariDefend, PolicyAtariDefend},
	{policy.LowLib, PolicyLowLib},
	{policy.Pattern, PolicyPattern},
	{policy.Capture, PolicyCapture},
	{policy.Nakade, PolicyNakade},
}

var correctionFeature = [...]struct {
	correction policy.Correction
	from, to   ID
}{
	{policy.FalseEyeToCapture, ReplaceCaptureFrom, ReplaceCaptureTo},
	{policy.SelfAtariCorrection, SelfAtariCorrectionFrom, SelfAtariCorrectionTo},
	{policy.ClumpCorrection, ClumpCorrectionFrom, ClumpCorrectionTo},
}

// FindPolicyFeatures ORs the policy-derived features of every point into
// sets: one feature per generator suggestion, from/to markers for every
// corrected move, and PolicyRandomPruned for legal points the random
// generator skips. Existing bits are never cleared.
func FindPolicyFeatures(b *board.Board, cache *policy.Cache, sets BoardSets) {
	for _, g := range generatorFeature {
		for _, p := range cache.Moves(b, g.kind) {
			sets[p].Add(g.id)
		}
	}

	random := make(map[board.Point]bool)
	for _, p := range cache.Moves(b, policy.Random) {
		random[p] = true
	}

	for _, p := range b.Points() {
		if b.At(p) != board.Empty || !b.IsLegal(p) {
			continue
		}
		if !random[p] {
			sets[p].Add(PolicyRandomPruned)
		}
		for _, c := range correctionFeature {
			if q := policy.Correct(b, c.correction, p); q != p {
				sets[p].Add(c.from)
				sets[q].Add(c.to)
			}
		}
	}
}
