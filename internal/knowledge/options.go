package knowledge

import (
	"fmt"
	"strings"
)

// Kind selects a knowledge strategy.
type Kind int

const (
	FeatureKind Kind = iota // factorized feature model
	RuleKind                // fixed hand-tuned priors
	PatternKind             // pattern weights only
)

// Mode selects how knowledge is applied to the move statistics.
type Mode int

const (
	PriorMode     Mode = iota // virtual wins and losses
	PredictorMode             // overwrite the predictor slot
)

// PriorPolicy selects how feature scores become virtual games.
type PriorPolicy int

const (
	Simple PriorPolicy = iota
	ScaleByGames
	ScaleLinear
	TopN
)

var (
	kindNames   = []string{"features", "rules", "patterns"}
	modeNames   = []string{"prior", "predictor"}
	policyNames = []string{"simple", "scale-by-games", "scale-linear", "top-n"}
)

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func parse(names []string, what, s string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (expected one of %s)", what, s, strings.Join(names, ", "))
}

func (k Kind) String() string        { return name(kindNames, int(k)) }
func (m Mode) String() string        { return name(modeNames, int(m)) }
func (p PriorPolicy) String() string { return name(policyNames, int(p)) }

// ParseKind parses a Kind name as printed by String.
func ParseKind(s string) (Kind, error) {
	i, err := parse(kindNames, "knowledge kind", s)
	return Kind(i), err
}

// ParseMode parses a Mode name.
func ParseMode(s string) (Mode, error) {
	i, err := parse(modeNames, "knowledge mode", s)
	return Mode(i), err
}

// ParsePriorPolicy parses a PriorPolicy name.
func ParsePriorPolicy(s string) (PriorPolicy, error) {
	i, err := parse(policyNames, "prior policy", s)
	return PriorPolicy(i), err
}

// Options configures a knowledge adapter.
type Options struct {
	Kind   Kind
	Mode   Mode
	Policy PriorPolicy

	// PriorWeight is the virtual game count given per move.
	PriorWeight float64
	// TopN is the number of moves rewarded by the TopN policy.
	TopN int

	SigmoidSteepness    float64
	PredictorMultiplier float64
	// MinPredictor is the smallest predictor value written.
	MinPredictor float64
}

// DefaultOptions returns the options used by the engine.
func DefaultOptions() Options {
	return Options{
		Kind:                FeatureKind,
		Mode:                PriorMode,
		Policy:              ScaleByGames,
		PriorWeight:         30,
		TopN:                5,
		SigmoidSteepness:    1,
		PredictorMultiplier: 1,
		MinPredictor:        0.0001,
	}
}
