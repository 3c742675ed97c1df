package policy

import "github.com/hailam/goprior/internal/board"

// Cache memoizes generator results for the last board seen. It belongs to a
// single worker and is invalidated whenever the board identity changes: a
// different Board value, position hash, move number or last two moves.
type Cache struct {
	board      *board.Board
	hash       uint64
	moveNumber int
	lastMoves  [2]board.Point
	done       [NumKinds]bool
	moves      [NumKinds][]board.Point

	hits, misses uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Moves returns the moves of a generator for b, computing them on a miss.
func (c *Cache) Moves(b *board.Board, kind Kind) []board.Point {
	if !c.matches(b) {
		c.reset(b)
	}
	if c.done[kind] {
		c.hits++
		return c.moves[kind]
	}
	c.misses++
	c.moves[kind] = Generate(b, kind)
	c.done[kind] = true
	return c.moves[kind]
}

func (c *Cache) matches(b *board.Board) bool {
	return c.board == b && c.hash == b.Hash() && c.moveNumber == b.MoveNumber() &&
		c.lastMoves == lastMoves(b)
}

func lastMoves(b *board.Board) [2]board.Point {
	return [2]board.Point{b.LastMove(), b.SecondLastMove()}
}

func (c *Cache) reset(b *board.Board) {
	c.board = b
	c.hash = b.Hash()
	c.moveNumber = b.MoveNumber()
	c.lastMoves = lastMoves(b)
	c.done = [NumKinds]bool{}
	for i := range c.moves {
		c.moves[i] = nil
	}
}

// Invalidate drops all cached results.
func (c *Cache) Invalidate() {
	c.board = nil
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total) * 100
}
