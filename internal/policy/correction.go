package policy

import "github.com/hailam/goprior/internal/board"

// Correction names a move-relocation rule.
type Correction int

const (
	FalseEyeToCapture Correction = iota
	SelfAtariCorrection
	ClumpCorrection

	NumCorrections
)

var correctionNames = [NumCorrections]string{"false-eye-to-capture", "self-atari", "clump"}

func (c Correction) String() string {
	if c < 0 || c >= NumCorrections {
		return "unknown"
	}
	return correctionNames[c]
}

// Correct applies a correction to the legal move p and returns the point the
// move is relocated to, or p itself when the rule does not apply.
func Correct(b *board.Board, c Correction, p board.Point) board.Point {
	if !b.OnBoard(p) {
		return p
	}
	var q board.Point
	switch c {
	case FalseEyeToCapture:
		q = falseEyeToCapture(b, p)
	case SelfAtariCorrection:
		q = selfAtariCorrection(b, p)
	case ClumpCorrection:
		q = clumpCorrection(b, p)
	default:
		return p
	}
	if q == board.NoPoint {
		return p
	}
	return q
}

// falseEyeToCapture replaces filling an own false eye with capturing the
// opponent stone that makes the eye false.
func falseEyeToCapture(b *board.Board, p board.Point) board.Point {
	me := b.ToPlay()
	if b.IsEyeish(p) != me || b.IsEye(p) == me {
		return board.NoPoint
	}
	for _, d := range b.Diagonals(p) {
		if b.At(d) != me.Opponent() {
			continue
		}
		if lib := b.TheLiberty(d); lib != board.NoPoint && lib != p && b.IsLegal(lib) {
			return lib
		}
	}
	return board.NoPoint
}

// selfAtariCorrection plays the remaining liberty of a self-atari block
// instead, provided that move is not a self-atari itself.
func selfAtariCorrection(b *board.Board, p board.Point) board.Point {
	if b.CapturesAny(p) {
		return board.NoPoint
	}
	lib := b.SelfAtariLiberty(p)
	if lib == board.NoPoint || !b.IsLegal(lib) || b.IsSelfAtari(lib) {
		return board.NoPoint
	}
	return lib
}

// clumpCorrection moves a stone that fills in its own shape, touching at
// least two own stones with a single empty neighbor, to that neighbor when
// it yields more liberties.
func clumpCorrection(b *board.Board, p board.Point) board.Point {
	me := b.ToPlay()
	own := 0
	free := board.NoPoint
	for _, n := range b.Neighbors(p) {
		switch b.At(n) {
		case me:
			own++
		case board.Empty:
			if free != board.NoPoint {
				return board.NoPoint
			}
			free = n
		}
	}
	if own < 2 || free == board.NoPoint || !b.IsLegal(free) || b.IsSelfAtari(free) {
		return board.NoPoint
	}
	if b.LibertiesAfter(free) <= b.LibertiesAfter(p) {
		return board.NoPoint
	}
	return free
}
