package uct

import (
	"math"
	"testing"

	"github.com/hailam/goprior/internal/board"
)

func TestAdd(t *testing.T) {
	mi := NewMoveInfo(board.Pass)
	mi.Add(1, 10)
	mi.Add(0, 30)
	if mi.Count != 40 {
		t.Errorf("Expected count 40, got %v", mi.Count)
	}
	if math.Abs(mi.Value-0.25) > 1e-12 {
		t.Errorf("Expected value 0.25, got %v", mi.Value)
	}

	mi.Add(1, 0)
	mi.Add(1, -5)
	if mi.Count != 40 {
		t.Errorf("Expected non-positive counts to be ignored, got %v", mi.Count)
	}
}

func TestMoves(t *testing.T) {
	b := board.New(9)
	moves := Moves(b)
	if len(moves) != 82 {
		t.Fatalf("Expected 82 moves, got %d", len(moves))
	}
	if moves[0].Move != b.Pt(1, 1) || moves[81].Move != board.Pass {
		t.Errorf("Expected board order ending with pass")
	}
	for _, mi := range moves {
		if mi.Count != 0 || mi.Value != 0 || mi.Predictor != 0 {
			t.Errorf("Expected fresh records, got %v", mi)
		}
	}
}
