package board

import (
	"errors"
	"fmt"
	"strings"
)

// Play errors.
var (
	ErrOffBoard = errors.New("point is not on the board")
	ErrOccupied = errors.New("point is occupied")
	ErrKo       = errors.New("move retakes a ko")
	ErrSuicide  = errors.New("move is suicide")
	ErrNoMoves  = errors.New("no move to undo")
)

// moveRecord holds everything needed to undo one move.
type moveRecord struct {
	color    Color
	point    Point
	captured []Point
	ko       Point  // ko point before the move
	hash     uint64 // stone hash before the move
}

// Board is a Go position plus its move history. A Board is not safe for
// concurrent use; each search worker owns its own copy.
type Board struct {
	size   int
	stride int
	cells  []Color
	points []Point // all on-board points, row-major from (1,1)

	toPlay Color
	ko     Point
	hash   uint64 // stones only; Hash adds the side to move

	history []moveRecord

	// scratch for flood fills
	mark  []uint32
	epoch uint32
}

// New creates an empty board of the given size with black to play.
func New(size int) *Board {
	if size < 2 || size > MaxSize {
		panic(fmt.Sprintf("board: unsupported size %d", size))
	}
	b := &Board{
		size:   size,
		stride: size + 1,
		toPlay: Black,
		ko:     NoPoint,
	}
	b.cells = make([]Color, (size+2)*b.stride+1)
	for i := range b.cells {
		b.cells[i] = Border
	}
	b.points = make([]Point, 0, size*size)
	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			p := b.Pt(x, y)
			b.cells[p] = Empty
			b.points = append(b.points, p)
		}
	}
	b.mark = make([]uint32, len(b.cells))
	return b
}

// Clone returns an independent copy of the board, history included.
func (b *Board) Clone() *Board {
	c := *b
	c.cells = append([]Color(nil), b.cells...)
	c.history = append([]moveRecord(nil), b.history...)
	c.mark = make([]uint32, len(b.cells))
	c.epoch = 0
	return &c
}

// Size returns the board size.
func (b *Board) Size() int { return b.size }

// CellCount returns the length of arrays indexed by Point.
func (b *Board) CellCount() int { return len(b.cells) }

// Points returns all on-board points in iteration order. The slice must not be modified.
func (b *Board) Points() []Point { return b.points }

// At returns the content of p.
func (b *Board) At(p Point) Color { return b.cells[p] }

// ToPlay returns the side to move.
func (b *Board) ToPlay() Color { return b.toPlay }

// SetToPlay changes the side to move without recording a move.
func (b *Board) SetToPlay(c Color) { b.toPlay = c }

// KoPoint returns the point the side to move may not play because of
// simple ko, or NoPoint.
func (b *Board) KoPoint() Point { return b.ko }

// Hash returns the Zobrist hash of the stones and the side to move.
func (b *Board) Hash() uint64 {
	if b.toPlay == White {
		return b.hash ^ zobristToPlay
	}
	return b.hash
}

// MoveNumber returns the number of moves played, passes included.
func (b *Board) MoveNumber() int { return len(b.history) }

// LastMove returns the last move, Pass, or NoPoint at the start of the game.
func (b *Board) LastMove() Point {
	if len(b.history) == 0 {
		return NoPoint
	}
	return b.history[len(b.history)-1].point
}

// SecondLastMove returns the move before the last one, i.e. the previous
// move of the side to play, or NoPoint.
func (b *Board) SecondLastMove() Point {
	if len(b.history) < 2 {
		return NoPoint
	}
	return b.history[len(b.history)-2].point
}

// CapturedLast returns the stones captured by the last move.
func (b *Board) CapturedLast() []Point {
	if len(b.history) == 0 {
		return nil
	}
	return b.history[len(b.history)-1].captured
}

// Neighbors returns the four orthogonal neighbors of p, border cells included.
func (b *Board) Neighbors(p Point) [4]Point {
	s := Point(b.stride)
	return [4]Point{p - s, p - 1, p + 1, p + s}
}

// Diagonals returns the four diagonal neighbors of p, border cells included.
func (b *Board) Diagonals(p Point) [4]Point {
	s := Point(b.stride)
	return [4]Point{p - s - 1, p - s + 1, p + s - 1, p + s + 1}
}

// Line returns the distance of p from the nearest edge, 1 on the edge.
func (b *Board) Line(p Point) int {
	x, y := b.XY(p)
	return min(x, y, b.size+1-x, b.size+1-y)
}

// Pos returns the distance of p from the nearest corner measured along its
// line; Pos is never smaller than Line.
func (b *Board) Pos(p Point) int {
	x, y := b.XY(p)
	return max(min(x, b.size+1-x), min(y, b.size+1-y))
}

// IsCorner reports whether p is one of the four corner points.
func (b *Board) IsCorner(p Point) bool {
	return b.OnBoard(p) && b.Line(p) == 1 && b.Pos(p) == 1
}

// Setup places a stone without recording a move, as SGF AB/AW does.
func (b *Board) Setup(c Color, p Point) error {
	if !b.OnBoard(p) {
		return ErrOffBoard
	}
	if b.cells[p] != Empty {
		return ErrOccupied
	}
	b.cells[p] = c
	b.hash ^= ZobristStone(c, p)
	return nil
}

// Play plays p for the side to move.
func (b *Board) Play(p Point) error {
	return b.PlayAs(b.toPlay, p)
}

// PlayAs plays p for color c; afterwards the opponent of c is to move.
func (b *Board) PlayAs(c Color, p Point) error {
	if p == Pass {
		b.history = append(b.history, moveRecord{color: c, point: Pass, ko: b.ko, hash: b.hash})
		b.ko = NoPoint
		b.toPlay = c.Opponent()
		return nil
	}
	if !b.OnBoard(p) {
		return ErrOffBoard
	}
	if b.cells[p] != Empty {
		return ErrOccupied
	}
	if p == b.ko {
		return ErrKo
	}

	rec := moveRecord{color: c, point: p, ko: b.ko, hash: b.hash}
	opp := c.Opponent()
	b.cells[p] = c
	b.hash ^= ZobristStone(c, p)

	for _, n := range b.Neighbors(p) {
		if b.cells[n] == opp && !b.hasLiberty(n) {
			rec.captured = b.removeBlock(n, rec.captured)
		}
	}

	if len(rec.captured) == 0 && !b.hasLiberty(p) {
		b.cells[p] = Empty
		b.hash = rec.hash
		return ErrSuicide
	}

	b.ko = NoPoint
	if len(rec.captured) == 1 && b.isSingleStone(p) && b.NumLiberties(p) == 1 {
		b.ko = rec.captured[0]
	}
	b.history = append(b.history, rec)
	b.toPlay = opp
	return nil
}

// Undo takes back the last move.
func (b *Board) Undo() error {
	if len(b.history) == 0 {
		return ErrNoMoves
	}
	rec := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	if rec.point != Pass {
		b.cells[rec.point] = Empty
		opp := rec.color.Opponent()
		for _, q := range rec.captured {
			b.cells[q] = opp
		}
	}
	b.ko = rec.ko
	b.hash = rec.hash
	b.toPlay = rec.color
	return nil
}

// IsLegal reports whether the side to move may play p.
func (b *Board) IsLegal(p Point) bool {
	return b.IsLegalAs(b.toPlay, p)
}

// IsLegalAs reports whether c may play p.
func (b *Board) IsLegalAs(c Color, p Point) bool {
	if p == Pass {
		return true
	}
	if !b.OnBoard(p) || b.cells[p] != Empty || p == b.ko {
		return false
	}
	opp := c.Opponent()
	for _, n := range b.Neighbors(p) {
		switch b.cells[n] {
		case Empty:
			return true
		case c:
			if b.NumLiberties(n) > 1 {
				return true
			}
		case opp:
			if b.NumLiberties(n) == 1 {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns the legal moves of the side to move in board order,
// followed by Pass.
func (b *Board) LegalMoves() []Point {
	moves := make([]Point, 0, len(b.points)+1)
	for _, p := range b.points {
		if b.IsLegal(p) {
			moves = append(moves, p)
		}
	}
	return append(moves, Pass)
}

func (b *Board) isSingleStone(p Point) bool {
	c := b.cells[p]
	for _, n := range b.Neighbors(p) {
		if b.cells[n] == c {
			return false
		}
	}
	return true
}

func (b *Board) removeBlock(p Point, into []Point) []Point {
	stones := b.Stones(p)
	c := b.cells[p]
	for _, q := range stones {
		b.cells[q] = Empty
		b.hash ^= ZobristStone(c, q)
	}
	return append(into, stones...)
}

// String renders the board with X for black and O for white, top row first.
func (b *Board) String() string {
	var sb strings.Builder
	for y := b.size; y >= 1; y-- {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 1; x <= b.size; x++ {
			switch b.cells[b.Pt(x, y)] {
			case Black:
				sb.WriteString("X ")
			case White:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for x := 1; x <= b.size; x++ {
		sb.WriteByte(columns[x-1])
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}
