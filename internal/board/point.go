// Package board implements a Go board with simple ko, move history and the
// tactical queries the move-feature extractor depends on.
package board

import (
	"fmt"
	"strings"
)

// MaxSize is the largest supported board size.
const MaxSize = 19

// maxCells is the padded cell count of the largest board.
const maxCells = (MaxSize+2)*(MaxSize+1) + 1

// Point is an index into the padded cell array: y*stride + x with 1-based
// x and y. Cell 0 lies on the border and doubles as the pass move.
type Point int

const (
	Pass    Point = 0
	NoPoint Point = -1
)

// columns skips I, as GTP does.
const columns = "ABCDEFGHJKLMNOPQRST"

// Color is the content of a cell, or the color of a player.
type Color uint8

const (
	Empty Color = iota
	Black
	White
	Border
)

// Opponent returns the other player. Empty and Border map to themselves.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return c
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Border:
		return "Border"
	default:
		return "Empty"
	}
}

// Pt returns the point with 1-based coordinates x, y.
func (b *Board) Pt(x, y int) Point {
	return Point(y*b.stride + x)
}

// XY returns the 1-based coordinates of p.
func (b *Board) XY(p Point) (x, y int) {
	return int(p) % b.stride, int(p) / b.stride
}

// OnBoard reports whether p is a playable point.
func (b *Board) OnBoard(p Point) bool {
	return p > 0 && int(p) < len(b.cells) && b.cells[p] != Border
}

// PointString formats p in GTP notation, e.g. "D4" or "pass".
func (b *Board) PointString(p Point) string {
	switch {
	case p == Pass:
		return "pass"
	case !b.OnBoard(p):
		return "none"
	}
	x, y := b.XY(p)
	return fmt.Sprintf("%c%d", columns[x-1], y)
}

// ParsePoint parses GTP notation.
func (b *Board) ParsePoint(s string) (Point, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) < 2 {
		return NoPoint, fmt.Errorf("invalid point %q", s)
	}
	x := strings.IndexByte(columns, s[0]) + 1
	var y int
	if _, err := fmt.Sscanf(s[1:], "%d", &y); err != nil {
		return NoPoint, fmt.Errorf("invalid point %q: %w", s, err)
	}
	if x < 1 || x > b.size || y < 1 || y > b.size {
		return NoPoint, fmt.Errorf("point %q outside %dx%d board", s, b.size, b.size)
	}
	return b.Pt(x, y), nil
}
