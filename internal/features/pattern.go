package features

import (
	"fmt"
	"strings"

	"github.com/hailam/goprior/internal/board"
)

// Cell is a pattern cell relative to the side to move.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellOwn
	CellOpponent
)

func (c Cell) char() byte {
	switch c {
	case CellOwn:
		return 'X'
	case CellOpponent:
		return 'O'
	}
	return '.'
}

// Pattern is a decoded pattern index.
type Pattern struct {
	Edge bool
	// Edge: along-left, along-right, inward, inward-left, inward-right.
	// Center: the eight neighbors row by row, (-1,-1) first.
	Cells []Cell
}

type offset struct{ dx, dy int }

var centerOffsets = [8]offset{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

const (
	numEdgeCells   = 5
	numCenterCells = 8
)

// PatternIndex returns the pattern index of p for the side to move. There is
// no pattern for the pass move or a corner point.
func PatternIndex(b *board.Board, p board.Point) (int, bool) {
	if !b.OnBoard(p) || b.IsCorner(p) {
		return 0, false
	}
	cells := patternCells(b, p)
	if len(cells) == numEdgeCells {
		return EdgePatternBase + encode(cells), true
	}
	return CenterPatternBase + encode(cells), true
}

// ReadPattern returns the decoded pattern around p, the same neighborhood
// PatternIndex encodes.
func ReadPattern(b *board.Board, p board.Point) (Pattern, bool) {
	if !b.OnBoard(p) || b.IsCorner(p) {
		return Pattern{}, false
	}
	cells := patternCells(b, p)
	return Pattern{Edge: len(cells) == numEdgeCells, Cells: cells}, true
}

func patternCells(b *board.Board, p board.Point) []Cell {
	x, y := b.XY(p)
	me := b.ToPlay()
	at := func(dx, dy int) Cell {
		switch b.At(b.Pt(x+dx, y+dy)) {
		case me:
			return CellOwn
		case me.Opponent():
			return CellOpponent
		}
		return CellEmpty
	}

	if b.Line(p) > 1 {
		cells := make([]Cell, numCenterCells)
		for i, o := range centerOffsets {
			cells[i] = at(o.dx, o.dy)
		}
		return cells
	}

	// first line: orient the frame so "in" points away from the edge and
	// "along" is "in" rotated a quarter turn
	in := inward(b, x, y)
	al := offset{-in.dy, in.dx}
	return []Cell{
		at(-al.dx, -al.dy),
		at(al.dx, al.dy),
		at(in.dx, in.dy),
		at(in.dx-al.dx, in.dy-al.dy),
		at(in.dx+al.dx, in.dy+al.dy),
	}
}

func inward(b *board.Board, x, y int) offset {
	switch n := b.Size(); {
	case x == 1:
		return offset{1, 0}
	case x == n:
		return offset{-1, 0}
	case y == 1:
		return offset{0, 1}
	default:
		return offset{0, -1}
	}
}

func encode(cells []Cell) int {
	code := 0
	for i := len(cells) - 1; i >= 0; i-- {
		code = code*3 + int(cells[i])
	}
	return code
}

// EncodePattern is the inverse of DecodePattern.
func EncodePattern(pat Pattern) int {
	if pat.Edge {
		return EdgePatternBase + encode(pat.Cells)
	}
	return CenterPatternBase + encode(pat.Cells)
}

// DecodePattern converts a pattern index back into its cells.
func DecodePattern(index int) (Pattern, error) {
	var pat Pattern
	var code, n int
	switch {
	case index >= EdgePatternBase && index < CenterPatternBase:
		pat.Edge = true
		code, n = index-EdgePatternBase, numEdgeCells
	case index >= CenterPatternBase && index < MaxFeatures:
		code, n = index-CenterPatternBase, numCenterCells
	default:
		return pat, fmt.Errorf("features: %d is not a pattern index", index)
	}
	pat.Cells = make([]Cell, n)
	for i := range pat.Cells {
		pat.Cells[i] = Cell(code % 3)
		code /= 3
	}
	return pat, nil
}

// String draws the pattern with X for the side to move, O for the opponent
// and * for the move. Edge patterns put the edge on the bottom row.
func (pat Pattern) String() string {
	c := pat.Cells
	var rows [][]byte
	if pat.Edge {
		rows = [][]byte{
			{c[3].char(), c[2].char(), c[4].char()},
			{c[0].char(), '*', c[1].char()},
			{'-', '-', '-'},
		}
	} else {
		rows = [][]byte{
			{c[5].char(), c[6].char(), c[7].char()},
			{c[3].char(), '*', c[4].char()},
			{c[0].char(), c[1].char(), c[2].char()},
		}
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}
