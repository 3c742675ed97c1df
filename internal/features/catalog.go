// Package features computes the move features used by the learned prior
// model: tactical basic features, a local 3x3 pattern index and markers for
// the moves suggested by the playout policy.
package features

import "fmt"

// ID identifies a basic feature. Weight files are indexed by these values,
// so new features are only ever appended before NumBasic.
type ID int

const (
	PassNew ID = iota
	PassConsecutive

	CaptureAdjAtari
	CaptureRecapture
	CapturePreventConnection
	CaptureNotLadder
	CaptureLadder

	ExtensionNotLadder
	ExtensionLadder

	SelfAtari

	AtariLadder
	AtariKo
	AtariOther

	Line1
	Line2
	Line3
	Line4
	Line5Plus

	Pos1
	Pos2
	Pos3
	Pos4
	Pos5
	Pos6
	Pos7
	Pos8
	Pos9
	Pos10

	GamePhase1
	GamePhase2
	GamePhase3
	GamePhase4
	GamePhase5
	GamePhase6
	GamePhase7
	GamePhase8
	GamePhase9
	GamePhase10
	GamePhase11
	GamePhase12

	DistPrev2
	DistPrev3
	DistPrev4
	DistPrev5
	DistPrev6
	DistPrev7
	DistPrev8
	DistPrev9
	DistPrev10
	DistPrev11
	DistPrev12
	DistPrev13
	DistPrev14
	DistPrev15
	DistPrev16
	DistPrev17

	DistPrevOwn0
	DistPrevOwn2
	DistPrevOwn3
	DistPrevOwn4
	DistPrevOwn5
	DistPrevOwn6
	DistPrevOwn7
	DistPrevOwn8
	DistPrevOwn9
	DistPrevOwn10
	DistPrevOwn11
	DistPrevOwn12
	DistPrevOwn13
	DistPrevOwn14
	DistPrevOwn15
	DistPrevOwn16
	DistPrevOwn17

	PolicyAtariCapture
	PolicyAtariDefend
	PolicyLowLib
	PolicyPattern
	PolicyCapture
	PolicyNakade
	PolicyRandomPruned

	ReplaceCaptureFrom
	ReplaceCaptureTo
	SelfAtariCorrectionFrom
	SelfAtariCorrectionTo
	ClumpCorrectionFrom
	ClumpCorrectionTo

	McOwner1
	McOwner2
	McOwner3
	McOwner4
	McOwner5
	McOwner6
	McOwner7
	McOwner8

	NumBasic
)

// Bucket limits of the range features.
const (
	MaxLine      = 5
	MaxPos       = 10
	MaxPhase     = 12
	PhaseLength  = 30
	MinDistance  = 2
	MaxDistance  = 17
	OwnerBuckets = 8
)

// Pattern index space. Pattern indices follow the basic features in the same
// weight table: edge patterns code the five cells around a first-line point,
// center patterns the eight neighbors of any other point.
const (
	NumEdgePatterns   = 243  // 3^5
	NumCenterPatterns = 6561 // 3^8

	EdgePatternBase   = 1000
	CenterPatternBase = EdgePatternBase + NumEdgePatterns

	// MaxFeatures is the size of every weight table.
	MaxFeatures = CenterPatternBase + NumCenterPatterns
)

// basic features must stay below the pattern range
var _ [EdgePatternBase - int(NumBasic)]struct{}

var names = [NumBasic]string{
	PassNew:                  "PASS_NEW",
	PassConsecutive:          "PASS_CONSECUTIVE",
	CaptureAdjAtari:          "CAPTURE_ADJ_ATARI",
	CaptureRecapture:         "CAPTURE_RECAPTURE",
	CapturePreventConnection: "CAPTURE_PREVENT_CONNECTION",
	CaptureNotLadder:         "CAPTURE_NOT_LADDER",
	CaptureLadder:            "CAPTURE_LADDER",
	ExtensionNotLadder:       "EXTENSION_NOT_LADDER",
	ExtensionLadder:          "EXTENSION_LADDER",
	SelfAtari:                "SELFATARI",
	AtariLadder:              "ATARI_LADDER",
	AtariKo:                  "ATARI_KO",
	AtariOther:               "ATARI_OTHER",
	PolicyAtariCapture:       "POLICY_ATARI_CAPTURE",
	PolicyAtariDefend:        "POLICY_ATARI_DEFEND",
	PolicyLowLib:             "POLICY_LOWLIB",
	PolicyPattern:            "POLICY_PATTERN",
	PolicyCapture:            "POLICY_CAPTURE",
	PolicyNakade:             "POLICY_NAKADE",
	PolicyRandomPruned:       "POLICY_RANDOM_PRUNED",
	ReplaceCaptureFrom:       "REPLACE_CAPTURE_FROM",
	ReplaceCaptureTo:         "REPLACE_CAPTURE_TO",
	SelfAtariCorrectionFrom:  "SELFATARI_CORRECTION_FROM",
	SelfAtariCorrectionTo:    "SELFATARI_CORRECTION_TO",
	ClumpCorrectionFrom:      "CLUMP_CORRECTION_FROM",
	ClumpCorrectionTo:        "CLUMP_CORRECTION_TO",
}

func init() {
	fill := func(base ID, n, first int, format string) {
		for i := 0; i < n; i++ {
			names[base+ID(i)] = fmt.Sprintf(format, first+i)
		}
	}
	fill(Line1, MaxLine-1, 1, "LINE_%d")
	names[Line5Plus] = "LINE_5_OR_MORE"
	fill(Pos1, MaxPos, 1, "POS_%d")
	fill(GamePhase1, MaxPhase, 1, "GAME_PHASE_%d")
	fill(DistPrev2, MaxDistance-MinDistance+1, MinDistance, "DIST_PREV_%d")
	names[DistPrevOwn0] = "DIST_PREV_OWN_0"
	fill(DistPrevOwn2, MaxDistance-MinDistance+1, MinDistance, "DIST_PREV_OWN_%d")
	fill(McOwner1, OwnerBuckets, 1, "MC_OWNER_%d")
}

// Name returns the printable name of a feature index, basic or pattern.
func Name(index int) string {
	switch {
	case index >= 0 && index < int(NumBasic):
		return names[index]
	case IsPatternIndex(index):
		return fmt.Sprintf("PATTERN_%d", index)
	}
	return fmt.Sprintf("UNKNOWN_%d", index)
}

func (id ID) String() string { return Name(int(id)) }

// IsPatternIndex reports whether index lies in the edge or center pattern range.
func IsPatternIndex(index int) bool {
	return index >= EdgePatternBase && index < MaxFeatures
}

// bucket maps value onto base + (value - baseValue), checking the result
// stays inside [base, last].
func bucket(base ID, value, baseValue int, last ID) ID {
	id := base + ID(value-baseValue)
	if id < base || id > last {
		panic(fmt.Sprintf("features: value %d out of range for %v..%v", value, base, last))
	}
	return id
}
