package knowledge

import (
	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/features"
	"github.com/hailam/goprior/internal/policy"
	"github.com/hailam/goprior/internal/uct"
)

// Hand-tuned prior games. Wins equal games unless noted.
const (
	priorEven         = 10 // half wins
	priorSelfAtari    = 10 // no wins
	priorCaptureOne   = 15
	priorCaptureMany  = 30
	priorPattern      = 10
	priorEmptyArea    = 10 // no wins below the third line
	emptyAreaDistance = 3
)

// priorDistance is indexed by the distance to the last move as computed by
// features.Distance: 2 adjacent, 3 diagonal, 4 one point jump.
var priorDistance = map[int]float64{2: 24, 3: 22, 4: 8}

// RuleKnowledge adds fixed priors from simple tactical rules. It always
// works in prior mode.
type RuleKnowledge struct {
	guard
	cache       *policy.Cache
	games, wins []float64
}

// NewRuleKnowledge binds a rule-based adapter to b.
func NewRuleKnowledge(b *board.Board) *RuleKnowledge {
	return &RuleKnowledge{guard: guard{board: b}, cache: policy.NewCache()}
}

func (k *RuleKnowledge) add(p board.Point, games, wins float64) {
	k.games[p] += games
	k.wins[p] += wins
}

func (k *RuleKnowledge) Update() {
	b := k.board
	k.games = make([]float64, b.CellCount())
	k.wins = make([]float64, b.CellCount())

	for _, p := range k.cache.Moves(b, policy.Capture) {
		stones := 0
		for _, a := range b.CapturedBy(p) {
			stones += len(b.Stones(a))
		}
		if stones > 1 {
			k.add(p, priorCaptureMany, priorCaptureMany)
		} else {
			k.add(p, priorCaptureOne, priorCaptureOne)
		}
	}
	for _, p := range k.cache.Moves(b, policy.Pattern) {
		k.add(p, priorPattern, priorPattern)
	}

	last := b.LastMove()
	for _, p := range b.Points() {
		if !b.IsLegal(p) {
			continue
		}
		k.add(p, priorEven, priorEven/2)
		if b.OnBoard(last) {
			if g, ok := priorDistance[features.Distance(b, p, last)]; ok {
				k.add(p, g, g)
			}
		}
		if line := b.Line(p); line <= 3 && isEmptyArea(b, p, emptyAreaDistance) {
			if line < 3 {
				k.add(p, priorEmptyArea, 0)
			} else {
				k.add(p, priorEmptyArea, priorEmptyArea)
			}
		}
		if b.IsSelfAtari(p) {
			k.add(p, priorSelfAtari, 0)
		}
	}
	k.stamp()
}

// isEmptyArea reports whether no stone lies within Manhattan distance d of p.
func isEmptyArea(b *board.Board, p board.Point, d int) bool {
	x, y := b.XY(p)
	for dy := -d; dy <= d; dy++ {
		for dx := -d + abs(dy); dx <= d-abs(dy); dx++ {
			if x+dx < 1 || x+dx > b.Size() || y+dy < 1 || y+dy > b.Size() {
				continue
			}
			if c := b.At(b.Pt(x+dx, y+dy)); c == board.Black || c == board.White {
				return false
			}
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (k *RuleKnowledge) ProcessPosition(moves []uct.MoveInfo) {
	k.mustBeUpToDate()
	for i := range moves {
		p := moves[i].Move
		if g := k.games[p]; g > 0 {
			moves[i].Add(k.wins[p]/g, g)
		}
	}
}

func (k *RuleKnowledge) PredictorType() Mode { return PriorMode }

func (k *RuleKnowledge) MinValue() float64 { return 0 }
