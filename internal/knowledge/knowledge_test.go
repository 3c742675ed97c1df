package knowledge

import (
	"math"
	"testing"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/features"
	"github.com/hailam/goprior/internal/model"
	"github.com/hailam/goprior/internal/uct"
)

func freshMoves(n int) []uct.MoveInfo {
	moves := make([]uct.MoveInfo, n)
	for i := range moves {
		moves[i] = uct.NewMoveInfo(board.Point(i + 1))
	}
	return moves
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScaleByGames(t *testing.T) {
	for _, scores := range [][]float64{
		{3, -1, 0.5, -2, 0, 4},
		{0.01, 0.02, -0.5},
		{-7, -3, -1},
		{10},
	} {
		moves := freshMoves(len(scores))
		scaleByGames(moves, scores, 30)

		sum := 0.0
		for i, mi := range moves {
			sum += mi.Count
			switch s := scores[i]; {
			case s > 0 && (mi.Value < 0.5 || mi.Value > 1):
				t.Errorf("Expected value in [0.5, 1] for score %v, got %v", s, mi.Value)
			case s < 0 && (mi.Value < 0 || mi.Value > 0.5):
				t.Errorf("Expected value in [0, 0.5] for score %v, got %v", s, mi.Value)
			case s == 0 && mi.Count != 0:
				t.Errorf("Expected no games for a zero score, got %v", mi.Count)
			}
		}
		if avg := sum / float64(len(moves)); math.Abs(avg-30) > 1e-6 {
			t.Errorf("Expected an average weight of 30 for %v, got %v", scores, avg)
		}
	}

	moves := freshMoves(3)
	scaleByGames(moves, []float64{0, 0, 0}, 30)
	for _, mi := range moves {
		if mi.Count != 0 {
			t.Errorf("Expected all-zero scores to add nothing")
		}
	}
}

func TestScaleLinear(t *testing.T) {
	moves := freshMoves(3)
	scaleLinear(moves, []float64{1, 1.0005, 1.0002}, 20)
	for _, mi := range moves {
		if mi.Count != 0 {
			t.Errorf("Expected a tiny score range to be skipped, got %v", mi)
		}
	}

	moves = freshMoves(3)
	scaleLinear(moves, []float64{-2, 2, 0}, 20)
	want := []float64{0, 1, 0.5}
	for i, mi := range moves {
		if mi.Count != 20 || !near(mi.Value, want[i]) {
			t.Errorf("Expected %v at weight 20, got %v", want[i], mi)
		}
	}
}

func TestTopN(t *testing.T) {
	scores := []float64{1, 5, 5, 2, 5}
	for _, tc := range []struct {
		n    int
		want []bool
	}{
		{2, []bool{false, true, true, false, false}},
		{3, []bool{false, true, true, false, true}},
		{4, []bool{false, true, true, true, true}},
		{10, []bool{true, true, true, true, true}},
		{0, []bool{false, false, false, false, false}},
	} {
		moves := freshMoves(len(scores))
		topN(moves, scores, tc.n, 7)
		chosen := 0
		for i, mi := range moves {
			if (mi.Count > 0) != tc.want[i] {
				t.Errorf("N=%d: Expected move %d chosen=%v, got %v", tc.n, i, tc.want[i], mi)
			}
			if mi.Count > 0 {
				chosen++
				if mi.Value != 1 || mi.Count != 7 {
					t.Errorf("Expected a full-weight win, got %v", mi)
				}
			}
		}
		if want := min(tc.n, len(scores)); chosen != want {
			t.Errorf("Expected %d chosen moves, got %d", want, chosen)
		}
	}
}

func TestSimplePolicy(t *testing.T) {
	moves := freshMoves(2)
	opts := DefaultOptions()
	opts.Policy = Simple
	applyPriors(moves, []float64{0, 2}, &opts)
	if moves[0].Value != 0.5 || moves[0].Count != opts.PriorWeight {
		t.Errorf("Expected 0.5 at the prior weight, got %v", moves[0])
	}
	if !near(moves[1].Value, 1/(1+math.Exp(-2))) {
		t.Errorf("Expected the logistic of the score, got %v", moves[1].Value)
	}
}

func TestEmptyBoardZeroModel(t *testing.T) {
	b := board.New(9)
	opts := DefaultOptions()
	opts.Policy = TopN
	opts.TopN = 3
	k := NewFeatureKnowledge(b, model.New(0, 4), opts)
	k.Update()

	for _, p := range b.LegalMoves() {
		if s := k.Score(p); s != 0 {
			t.Fatalf("Expected score 0 at %s, got %v", b.PointString(p), s)
		}
	}

	moves := uct.Moves(b)
	k.ProcessPosition(moves)
	for i, mi := range moves {
		chosen := mi.Count > 0
		if chosen != (i < 3) {
			t.Errorf("Expected only the first three moves to be chosen, move %d %s: %v", i, b.PointString(mi.Move), mi)
		}
	}
	if moves[0].Move != b.Pt(1, 1) || moves[2].Move != b.Pt(3, 1) {
		t.Errorf("Expected board iteration order")
	}
}

func TestStaleKnowledgePanics(t *testing.T) {
	b := board.New(9)
	k := NewFeatureKnowledge(b, model.Empty(), DefaultOptions())

	expectPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("Expected %s to panic", name)
			}
		}()
		f()
	}

	expectPanic("ProcessPosition before Update", func() { k.ProcessPosition(uct.Moves(b)) })

	k.Update()
	if !k.IsUpToDate() {
		t.Fatalf("Expected knowledge to be up to date after Update")
	}
	moves := uct.Moves(b)
	k.ProcessPosition(moves)

	if err := b.Play(b.Pt(3, 3)); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if k.IsUpToDate() {
		t.Errorf("Expected knowledge to be stale after a move")
	}
	expectPanic("ProcessPosition after a move", func() { k.ProcessPosition(uct.Moves(b)) })
	expectPanic("Score after a move", func() { k.Score(b.Pt(4, 4)) })
}

func TestPredictorMode(t *testing.T) {
	b := board.New(9)
	m := model.New(0, 0)
	m.SetWeight(int(features.Line1), 2)

	opts := DefaultOptions()
	opts.Mode = PredictorMode
	opts.SigmoidSteepness = 0.5
	opts.PredictorMultiplier = 2
	k := NewFeatureKnowledge(b, m, opts)
	k.Update()

	moves := uct.Moves(b)
	k.ProcessPosition(moves)
	for _, mi := range moves {
		if mi.Count != 0 {
			t.Fatalf("Expected no virtual games in predictor mode")
		}
		want := 2 * (1 / (1 + math.Exp(0.5*k.Score(mi.Move))))
		if !near(mi.Predictor, want) {
			t.Errorf("Expected predictor %v at %s, got %v", want, b.PointString(mi.Move), mi.Predictor)
		}
		if !near(k.Predictor(mi.Move), mi.Predictor) {
			t.Errorf("Expected Predictor to match ProcessPosition")
		}
	}
	edge := k.Predictor(b.Pt(1, 5))
	center := k.Predictor(b.Pt(5, 5))
	if edge >= center {
		t.Errorf("Expected the positive edge weight to lower the predictor, got %v >= %v", edge, center)
	}
	if k.PredictorType() != PredictorMode || k.MinValue() != opts.MinPredictor {
		t.Errorf("Expected predictor type and minimum from the options")
	}
}

func TestExplain(t *testing.T) {
	b := board.New(9)
	m := model.New(0, 2)
	m.SetWeight(int(features.Line3), 0.7)
	m.SetFactor(int(features.Line3), []float64{1, 2})
	m.SetFactor(int(features.Pos3), []float64{-0.5, 0.25})
	m.SetWeight(int(features.GamePhase1), -0.2)

	k := NewFeatureKnowledge(b, m, DefaultOptions())
	k.Update()

	p := b.Pt(3, 3)
	sum := 0.0
	for _, c := range k.Explain(p) {
		sum += c.Total()
	}
	if !near(sum, k.Score(p)) {
		t.Errorf("Expected the explanation to add up to %v, got %v", k.Score(p), sum)
	}
	if k.Score(p) == 0 {
		t.Errorf("Expected a nonzero score at C3")
	}
}

func TestOwnershipFeatures(t *testing.T) {
	b := board.New(9)
	k := NewFeatureKnowledge(b, model.Empty(), DefaultOptions())
	k.SetOwnershipSource(OwnershipFunc(func(b *board.Board, p board.Point) float64 {
		switch x, _ := b.XY(p); x {
		case 1:
			return 1.7
		case 9:
			return math.NaN()
		}
		return 0.3
	}))
	k.Update()

	if !k.Set(b.Pt(1, 4)).Has(features.McOwner8) {
		t.Errorf("Expected ownership above 1 to clamp to the last bucket")
	}
	if !k.Set(b.Pt(4, 4)).Has(features.McOwner3) {
		t.Errorf("Expected ownership 0.3 in the third bucket")
	}
	if !k.Set(b.Pt(9, 4)).Has(features.McOwner1) {
		t.Errorf("Expected an unknown ownership in the first bucket")
	}
	if k.Set(board.Pass).Has(features.McOwner1) {
		t.Errorf("Expected no ownership feature for pass")
	}
}

func TestRuleKnowledge(t *testing.T) {
	b, err := board.ParseDiagram([]string{
		".........",
		".........",
		".........",
		"....X....",
		"...X.X...",
		".........",
		".........",
		".........",
		"O.O......",
	}, board.White)
	if err != nil {
		t.Fatalf("ParseDiagram: %v", err)
	}
	if err := b.Play(b.Pt(5, 5)); err != nil {
		t.Fatalf("Play: %v", err)
	}

	k := NewRuleKnowledge(b)
	k.Update()
	moves := uct.Moves(b)
	k.ProcessPosition(moves)

	byPoint := make(map[board.Point]uct.MoveInfo)
	for _, mi := range moves {
		byPoint[mi.Move] = mi
	}
	capture := byPoint[b.Pt(5, 4)]
	if capture.Count < priorEven+priorCaptureOne || capture.Value <= 0.5 {
		t.Errorf("Expected a strong capture prior at E4, got %v", capture)
	}
	if self := byPoint[b.Pt(2, 1)]; self.Value >= 0.5 {
		t.Errorf("Expected a negative prior for the self-atari at B1, got %v", self)
	}
	if pass := byPoint[board.Pass]; pass.Count != 0 {
		t.Errorf("Expected no prior for pass, got %v", pass)
	}
	if k.PredictorType() != PriorMode {
		t.Errorf("Expected rule knowledge to work in prior mode")
	}
}

func TestPatternKnowledge(t *testing.T) {
	b := board.New(9)
	p := b.Pt(5, 5)
	index, ok := features.PatternIndex(b, p)
	if !ok {
		t.Fatalf("Expected a pattern at E5")
	}
	m := model.New(0, 0)
	m.SetWeight(index, 3)

	opts := DefaultOptions()
	opts.Policy = TopN
	opts.TopN = 1
	k := NewPatternKnowledge(b, m, opts)
	k.Update()

	moves := uct.Moves(b)
	k.ProcessPosition(moves)
	// every empty center point shares the empty pattern
	for _, mi := range moves {
		if mi.Count > 0 && b.Line(mi.Move) == 1 {
			t.Errorf("Expected the reward on a center point, got %s", b.PointString(mi.Move))
		}
	}
}

func TestNew(t *testing.T) {
	b := board.New(9)
	for _, tc := range []struct {
		kind Kind
		want string
	}{
		{FeatureKind, "*knowledge.FeatureKnowledge"},
		{RuleKind, "*knowledge.RuleKnowledge"},
		{PatternKind, "*knowledge.PatternKnowledge"},
	} {
		opts := DefaultOptions()
		opts.Kind = tc.kind
		k, err := New(opts, b, nil)
		if err != nil {
			t.Fatalf("New(%v): %v", tc.kind, err)
		}
		if got := typeName(k); got != tc.want {
			t.Errorf("Expected %s, got %s", tc.want, got)
		}
	}

	opts := DefaultOptions()
	opts.Kind = Kind(9)
	if _, err := New(opts, b, nil); err == nil {
		t.Errorf("Expected an error for an invalid kind")
	}
}

func typeName(k Knowledge) string {
	switch k.(type) {
	case *FeatureKnowledge:
		return "*knowledge.FeatureKnowledge"
	case *RuleKnowledge:
		return "*knowledge.RuleKnowledge"
	case *PatternKnowledge:
		return "*knowledge.PatternKnowledge"
	}
	return "unknown"
}

func TestParseOptions(t *testing.T) {
	if k, err := ParseKind("Rules"); err != nil || k != RuleKind {
		t.Errorf("Expected RuleKind, got %v %v", k, err)
	}
	if m, err := ParseMode("predictor"); err != nil || m != PredictorMode {
		t.Errorf("Expected PredictorMode, got %v %v", m, err)
	}
	for p := Simple; p <= TopN; p++ {
		got, err := ParsePriorPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("Expected %v to round trip, got %v %v", p, got, err)
		}
	}
	if _, err := ParsePriorPolicy("best"); err == nil {
		t.Errorf("Expected an error for an unknown policy")
	}
}
