package board

import (
	"fmt"
	"strings"
)

// ParseDiagram builds a board from rows of 'X' (black), 'O' (white) and '.'
// (empty), top row first. Spaces are ignored. Stones are placed as setup
// stones, so the board has no move history.
func ParseDiagram(rows []string, toPlay Color) (*Board, error) {
	size := len(rows)
	if size < 2 || size > MaxSize {
		return nil, fmt.Errorf("diagram has %d rows", size)
	}
	b := New(size)
	for i, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != size {
			return nil, fmt.Errorf("diagram row %d has %d cells, expected %d", i+1, len(row), size)
		}
		y := size - i
		for x := 1; x <= size; x++ {
			var c Color
			switch row[x-1] {
			case 'X', 'x', 'B':
				c = Black
			case 'O', 'o', 'W':
				c = White
			case '.', '+':
				continue
			default:
				return nil, fmt.Errorf("diagram row %d: unexpected %q", i+1, row[x-1])
			}
			if err := b.Setup(c, b.Pt(x, y)); err != nil {
				return nil, err
			}
		}
	}
	b.toPlay = toPlay
	return b, nil
}
