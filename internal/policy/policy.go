// Package policy implements the rule-based playout heuristics: move
// generators that propose candidate moves for the side to move, and
// corrections that relocate a poor candidate to a better point.
package policy

import (
	"golang.org/x/exp/slices"

	"github.com/hailam/goprior/internal/board"
)

// Kind names a move generator.
type Kind int

const (
	AtariCapture Kind = iota // capture a block next to the last move
	AtariDefend              // save an own block the last move put in atari
	LowLib                   // attack or defend two-liberty blocks
	Pattern                  // 3x3 pattern next to the last move
	Capture                  // capture anywhere on the board
	Nakade                   // vital point of a three-point eye space
	Random                   // every legal move that does not fill an own eye

	NumKinds
)

var kindNames = [NumKinds]string{"atari-capture", "atari-defend", "low-lib", "pattern", "capture", "nakade", "random"}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Generate runs one generator on the board for the side to move. The board
// is restored before returning.
func Generate(b *board.Board, kind Kind) []board.Point {
	var moves []board.Point
	switch kind {
	case AtariCapture:
		moves = atariCaptureMoves(b)
	case AtariDefend:
		moves = atariDefendMoves(b)
	case LowLib:
		moves = lowLibMoves(b)
	case Pattern:
		moves = patternMoves(b)
	case Capture:
		moves = captureMoves(b)
	case Nakade:
		moves = nakadeMoves(b)
	case Random:
		moves = randomMoves(b)
	}
	return unique(moves)
}

// lastMoveBlocks returns the blocks of color c touching the last move.
func lastMoveBlocks(b *board.Board, c board.Color) []board.Point {
	last := b.LastMove()
	if !b.OnBoard(last) || b.At(last) == board.Empty {
		return nil
	}
	if b.At(last) == c {
		return []board.Point{b.Anchor(last)}
	}
	return b.AdjacentBlocks(last, c)
}

func atariCaptureMoves(b *board.Board) []board.Point {
	var moves []board.Point
	opp := b.ToPlay().Opponent()
	for _, a := range lastMoveBlocks(b, opp) {
		if lib := b.TheLiberty(a); lib != board.NoPoint && b.IsLegal(lib) {
			moves = append(moves, lib)
		}
	}
	return moves
}

// atariDefendMoves escapes own blocks put in atari by the last move, either
// by extending to two or more liberties or by capturing an attacker.
func atariDefendMoves(b *board.Board) []board.Point {
	var moves []board.Point
	me := b.ToPlay()
	for _, a := range lastMoveBlocks(b, me) {
		lib := b.TheLiberty(a)
		if lib == board.NoPoint {
			continue
		}
		for _, e := range b.AdjacentBlocks(a, me.Opponent()) {
			if c := b.TheLiberty(e); c != board.NoPoint && b.IsLegal(c) {
				moves = append(moves, c)
			}
		}
		if b.IsLegal(lib) && b.LibertiesAfter(lib) >= 2 {
			moves = append(moves, lib)
		}
	}
	return moves
}

// lowLibMoves plays on the liberties of two-liberty blocks touching the last
// move: atari for opponent blocks, gaining liberties for own blocks.
func lowLibMoves(b *board.Board) []board.Point {
	var moves []board.Point
	me := b.ToPlay()
	var blocks []board.Point
	blocks = append(blocks, lastMoveBlocks(b, me)...)
	blocks = append(blocks, lastMoveBlocks(b, me.Opponent())...)
	for _, a := range blocks {
		libs := b.Liberties(a)
		if len(libs) != 2 {
			continue
		}
		own := b.At(a) == me
		for _, l := range libs {
			if !b.IsLegal(l) || b.IsSelfAtari(l) {
				continue
			}
			if own && b.LibertiesAfter(l) < 3 {
				continue
			}
			moves = append(moves, l)
		}
	}
	return moves
}

func patternMoves(b *board.Board) []board.Point {
	last := b.LastMove()
	if !b.OnBoard(last) {
		return nil
	}
	var moves []board.Point
	for _, group := range [2][4]board.Point{b.Neighbors(last), b.Diagonals(last)} {
		for _, p := range group {
			if b.OnBoard(p) && b.At(p) == board.Empty && b.IsLegal(p) && MatchesPat3(b, p) {
				moves = append(moves, p)
			}
		}
	}
	return moves
}

func captureMoves(b *board.Board) []board.Point {
	var moves []board.Point
	opp := b.ToPlay().Opponent()
	for _, p := range b.Points() {
		if b.At(p) != opp || b.Anchor(p) != p {
			continue
		}
		if lib := b.TheLiberty(p); lib != board.NoPoint && b.IsLegal(lib) {
			moves = append(moves, lib)
		}
	}
	return moves
}

// nakadeMoves finds three-point eye spaces next to the last move and
// returns their middle point.
func nakadeMoves(b *board.Board) []board.Point {
	last := b.LastMove()
	if !b.OnBoard(last) {
		return nil
	}
	var moves []board.Point
	for _, n := range b.Neighbors(last) {
		if !b.OnBoard(n) || b.At(n) != board.Empty {
			continue
		}
		region := b.EmptyRegion(n, 3)
		if len(region) != 3 {
			continue
		}
		if mid := middleOf(b, region); mid != board.NoPoint && b.IsLegal(mid) {
			moves = append(moves, mid)
		}
	}
	return moves
}

// middleOf returns the point of a three-point region adjacent to both others.
func middleOf(b *board.Board, region []board.Point) board.Point {
	for _, p := range region {
		adjacent := 0
		for _, n := range b.Neighbors(p) {
			for _, q := range region {
				if n == q {
					adjacent++
				}
			}
		}
		if adjacent == 2 {
			return p
		}
	}
	return board.NoPoint
}

func randomMoves(b *board.Board) []board.Point {
	var moves []board.Point
	me := b.ToPlay()
	for _, p := range b.Points() {
		if b.At(p) == board.Empty && b.IsEye(p) != me && b.IsLegal(p) {
			moves = append(moves, p)
		}
	}
	return moves
}

func unique(moves []board.Point) []board.Point {
	if len(moves) < 2 {
		return moves
	}
	slices.Sort(moves)
	out := moves[:1]
	for _, p := range moves[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
