package board

import (
	"errors"
	"testing"
)

func mustDiagram(t *testing.T, rows []string, toPlay Color) *Board {
	t.Helper()
	b, err := ParseDiagram(rows, toPlay)
	if err != nil {
		t.Fatalf("ParseDiagram: %v", err)
	}
	return b
}

// Black (4,3) sits in a ko shape; white captures it from (3,3).
var koRows = []string{
	".........",
	".........",
	".........",
	".........",
	".........",
	"..XO.....",
	".X.XO....",
	"..XO.....",
	".........",
}

func TestCaptureAndKo(t *testing.T) {
	b := mustDiagram(t, koRows, White)
	before := b.Hash()

	if err := b.Play(b.Pt(3, 3)); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if b.At(b.Pt(4, 3)) != Empty {
		t.Errorf("Expected black stone at D3 to be captured")
	}
	if got := b.KoPoint(); got != b.Pt(4, 3) {
		t.Errorf("Expected ko at D3, got %s", b.PointString(got))
	}
	if b.IsLegal(b.Pt(4, 3)) {
		t.Errorf("Expected immediate retake to be illegal")
	}
	if err := b.Play(b.Pt(4, 3)); !errors.Is(err, ErrKo) {
		t.Errorf("Expected ErrKo, got %v", err)
	}
	if got := b.CapturedLast(); len(got) != 1 || got[0] != b.Pt(4, 3) {
		t.Errorf("Expected CapturedLast to be [D3], got %v", got)
	}

	if err := b.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if b.Hash() != before {
		t.Errorf("Expected hash to be restored by Undo")
	}
	if b.At(b.Pt(4, 3)) != Black || b.At(b.Pt(3, 3)) != Empty {
		t.Errorf("Expected stones to be restored by Undo")
	}
	if b.ToPlay() != White {
		t.Errorf("Expected white to play after Undo, got %v", b.ToPlay())
	}
}

func TestSuicideRejected(t *testing.T) {
	b := mustDiagram(t, []string{
		".X.......",
		"X........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	}, White)
	corner := b.Pt(1, 9)
	if b.IsLegal(corner) {
		t.Errorf("Expected suicide at A9 to be illegal")
	}
	if err := b.Play(corner); !errors.Is(err, ErrSuicide) {
		t.Errorf("Expected ErrSuicide, got %v", err)
	}
	if b.At(corner) != Empty {
		t.Errorf("Expected suicide stone to be removed")
	}
}

func TestHashIncludesSideToMove(t *testing.T) {
	b := New(9)
	h := b.Hash()
	b.SetToPlay(White)
	if b.Hash() == h {
		t.Errorf("Expected hash to change with the side to move")
	}
}

func TestHistory(t *testing.T) {
	b := New(9)
	if b.LastMove() != NoPoint || b.SecondLastMove() != NoPoint {
		t.Errorf("Expected no history on a new board")
	}
	moves := []Point{b.Pt(3, 3), b.Pt(7, 7), Pass}
	for _, m := range moves {
		if err := b.Play(m); err != nil {
			t.Fatalf("Play %s: %v", b.PointString(m), err)
		}
	}
	if b.LastMove() != Pass {
		t.Errorf("Expected last move pass, got %s", b.PointString(b.LastMove()))
	}
	if b.SecondLastMove() != b.Pt(7, 7) {
		t.Errorf("Expected second last move G7, got %s", b.PointString(b.SecondLastMove()))
	}
	if b.MoveNumber() != 3 {
		t.Errorf("Expected move number 3, got %d", b.MoveNumber())
	}
}

func TestLineAndPos(t *testing.T) {
	b := New(9)
	tests := []struct {
		x, y      int
		line, pos int
		corner    bool
	}{
		{1, 1, 1, 1, true},
		{9, 9, 1, 1, true},
		{3, 1, 1, 3, false},
		{5, 5, 5, 5, false},
		{3, 4, 3, 4, false},
		{8, 2, 2, 2, false},
	}
	for _, tt := range tests {
		p := b.Pt(tt.x, tt.y)
		if got := b.Line(p); got != tt.line {
			t.Errorf("Line(%s) = %d, expected %d", b.PointString(p), got, tt.line)
		}
		if got := b.Pos(p); got != tt.pos {
			t.Errorf("Pos(%s) = %d, expected %d", b.PointString(p), got, tt.pos)
		}
		if got := b.IsCorner(p); got != tt.corner {
			t.Errorf("IsCorner(%s) = %v, expected %v", b.PointString(p), got, tt.corner)
		}
	}
}

func TestParsePoint(t *testing.T) {
	b := New(19)
	p, err := b.ParsePoint("Q16")
	if err != nil {
		t.Fatalf("ParsePoint: %v", err)
	}
	if x, y := b.XY(p); x != 16 || y != 16 {
		t.Errorf("Expected Q16 at (16,16), got (%d,%d)", x, y)
	}
	if s := b.PointString(p); s != "Q16" {
		t.Errorf("Expected round trip Q16, got %s", s)
	}
	if _, err := b.ParsePoint("Z1"); err == nil {
		t.Errorf("Expected error for column Z")
	}
}

var ladderRows = []string{
	".........",
	".........",
	".........",
	".........",
	"...X.....",
	"..XOX....",
	"....X....",
	".........",
	".........",
}

func TestLadder(t *testing.T) {
	t.Run("Captured", func(t *testing.T) {
		b := mustDiagram(t, ladderRows, White)
		stone := b.Pt(4, 4)
		if !b.InAtari(stone) {
			t.Fatalf("Expected D4 to be in atari")
		}
		h := b.Hash()
		if !b.LadderCaptured(stone) {
			t.Errorf("Expected D4 to be captured in a ladder")
		}
		if b.Hash() != h {
			t.Errorf("Expected ladder reading to leave the board untouched")
		}
	})

	t.Run("Breaker", func(t *testing.T) {
		rows := append([]string(nil), ladderRows...)
		rows[7] = ".O......."
		b := mustDiagram(t, rows, White)
		if b.LadderCaptured(b.Pt(4, 4)) {
			t.Errorf("Expected the ladder breaker at B2 to save D4")
		}
	})

	t.Run("Attack", func(t *testing.T) {
		b := mustDiagram(t, ladderRows, Black)
		if err := b.PlayAs(White, b.Pt(4, 3)); err != nil {
			t.Fatalf("PlayAs: %v", err)
		}
		if got := b.LadderAttack(b.Pt(4, 4)); got == NoPoint {
			t.Errorf("Expected a ladder attack on the extended D4 block")
		}
	})
}

func TestEyes(t *testing.T) {
	b := mustDiagram(t, []string{
		".X.......",
		"XX.......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	}, White)
	if got := b.IsEye(b.Pt(1, 9)); got != Black {
		t.Errorf("Expected A9 to be a black eye, got %v", got)
	}
	if got := b.IsEyeish(b.Pt(5, 5)); got != Empty {
		t.Errorf("Expected E5 not to be eyeish, got %v", got)
	}
}

func TestLegalMovesEndsWithPass(t *testing.T) {
	b := New(9)
	moves := b.LegalMoves()
	if len(moves) != 82 {
		t.Fatalf("Expected 82 moves on an empty 9x9 board, got %d", len(moves))
	}
	if moves[0] != b.Pt(1, 1) || moves[len(moves)-1] != Pass {
		t.Errorf("Expected A1 first and pass last")
	}
}
