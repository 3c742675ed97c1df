package policy

import "github.com/hailam/goprior/internal/board"

// 3x3 playout patterns centered on the candidate move. X is the side to
// move, O the opponent, x/o their inverses, ? anything, space off-board.
// Every pattern is matched in all rotations, reflections and with colors
// swapped.
var pat3src = [...][3]string{
	{"XOX", "...", "???"}, // hane: enclosing hane
	{"XO.", "...", "?.?"}, // hane: non-cutting hane
	{"XO?", "X..", "x.?"}, // hane: magari
	{".O.", "X..", "..."}, // katatsuke or diagonal attachment
	{"XO?", "O.o", "?o?"}, // cut1: unprotected cut
	{"XO?", "O.X", "???"}, // cut1: peeped cut
	{"?X?", "O.O", "ooo"}, // cut2
	{"OX?", "o.O", "???"}, // cut keima
	{"X.?", "O.?", "   "}, // side: chase
	{"OX?", "X.O", "   "}, // side: block side cut
	{"?X?", "x.O", "   "}, // side: block side connection
	{"?XO", "x.x", "   "}, // side: sagari
	{"?OX", "X.O", "   "}, // side: cut
}

// symmetries maps pattern coordinates (dx, dy) onto the board.
var symmetries = [8][4]int{
	{1, 0, 0, 1}, {0, -1, 1, 0}, {-1, 0, 0, -1}, {0, 1, -1, 0},
	{-1, 0, 0, 1}, {0, 1, 1, 0}, {1, 0, 0, -1}, {0, -1, -1, 0},
}

// MatchesPat3 reports whether the 3x3 neighborhood of the empty point p
// matches one of the playout patterns for the side to move.
func MatchesPat3(b *board.Board, p board.Point) bool {
	if !b.OnBoard(p) || b.At(p) != board.Empty {
		return false
	}
	me := b.ToPlay()
	for i := range pat3src {
		for _, sym := range symmetries {
			if matchPat3(b, p, &pat3src[i], sym, me) ||
				matchPat3(b, p, &pat3src[i], sym, me.Opponent()) {
				return true
			}
		}
	}
	return false
}

func matchPat3(b *board.Board, p board.Point, pat *[3]string, sym [4]int, x board.Color) bool {
	px, py := b.XY(p)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			dx, dy := col-1, 1-row
			bx := px + sym[0]*dx + sym[1]*dy
			by := py + sym[2]*dx + sym[3]*dy
			var cell board.Color
			if bx < 1 || by < 1 || bx > b.Size() || by > b.Size() {
				cell = board.Border
			} else {
				cell = b.At(b.Pt(bx, by))
			}
			if !matchCell(pat[row][col], cell, x) {
				return false
			}
		}
	}
	return true
}

func matchCell(pc byte, cell, x board.Color) bool {
	o := x.Opponent()
	switch pc {
	case '?':
		return true
	case '.':
		return cell == board.Empty
	case 'X':
		return cell == x
	case 'O':
		return cell == o
	case 'x':
		return cell != x
	case 'o':
		return cell != o
	case ' ':
		return cell == board.Border
	}
	return false
}
