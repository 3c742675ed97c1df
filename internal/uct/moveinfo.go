// Package uct defines the per-move statistics the tree search keeps for the
// children of a node. Knowledge adapters add virtual wins and losses to them
// or overwrite their predictor before the search expands the node.
package uct

import (
	"fmt"

	"github.com/hailam/goprior/internal/board"
)

// MoveInfo is the statistics record of one candidate move.
type MoveInfo struct {
	Move  board.Point
	Value float64 // mean value in [0, 1] for the side to move
	Count float64 // visits, real and virtual
	// Predictor is the move probability used by predictor-based selection.
	Predictor float64
}

// NewMoveInfo creates an unvisited record for p.
func NewMoveInfo(p board.Point) MoveInfo {
	return MoveInfo{Move: p}
}

// Add mixes count visits of the given value into the record.
func (mi *MoveInfo) Add(value, count float64) {
	if count <= 0 {
		return
	}
	total := mi.Count + count
	mi.Value += (value - mi.Value) * count / total
	mi.Count = total
}

// Moves returns fresh records for every legal move of the side to move, in
// board order with the pass last.
func Moves(b *board.Board) []MoveInfo {
	legal := b.LegalMoves()
	moves := make([]MoveInfo, len(legal))
	for i, p := range legal {
		moves[i] = NewMoveInfo(p)
	}
	return moves
}

func (mi MoveInfo) String() string {
	return fmt.Sprintf("%d: %.3f/%.1f p=%.4f", mi.Move, mi.Value, mi.Count, mi.Predictor)
}
