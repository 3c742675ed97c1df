package board

import "golang.org/x/exp/slices"

func (b *Board) nextEpoch() uint32 {
	b.epoch++
	if b.epoch == 0 {
		clear(b.mark)
		b.epoch = 1
	}
	return b.epoch
}

// Stones returns the stones of the block containing p.
func (b *Board) Stones(p Point) []Point {
	c := b.cells[p]
	if c != Black && c != White {
		return nil
	}
	e := b.nextEpoch()
	stones := []Point{p}
	b.mark[p] = e
	for i := 0; i < len(stones); i++ {
		for _, n := range b.Neighbors(stones[i]) {
			if b.cells[n] == c && b.mark[n] != e {
				b.mark[n] = e
				stones = append(stones, n)
			}
		}
	}
	return stones
}

// Liberties returns the liberties of the block containing p in ascending order.
func (b *Board) Liberties(p Point) []Point {
	stones := b.Stones(p)
	e := b.nextEpoch()
	var libs []Point
	for _, s := range stones {
		for _, n := range b.Neighbors(s) {
			if b.cells[n] == Empty && b.mark[n] != e {
				b.mark[n] = e
				libs = append(libs, n)
			}
		}
	}
	slices.Sort(libs)
	return libs
}

// NumLiberties returns the liberty count of the block containing p.
func (b *Board) NumLiberties(p Point) int {
	return len(b.Liberties(p))
}

func (b *Board) hasLiberty(p Point) bool {
	for _, s := range b.Stones(p) {
		for _, n := range b.Neighbors(s) {
			if b.cells[n] == Empty {
				return true
			}
		}
	}
	return false
}

// InAtari reports whether the block containing p has exactly one liberty.
func (b *Board) InAtari(p Point) bool {
	return b.NumLiberties(p) == 1
}

// TheLiberty returns the single liberty of a block in atari, or NoPoint.
func (b *Board) TheLiberty(p Point) Point {
	libs := b.Liberties(p)
	if len(libs) != 1 {
		return NoPoint
	}
	return libs[0]
}

// Anchor returns the smallest point of the block containing p; two points
// belong to the same block iff their anchors are equal.
func (b *Board) Anchor(p Point) Point {
	anchor := p
	for _, s := range b.Stones(p) {
		if s < anchor {
			anchor = s
		}
	}
	return anchor
}

// AdjacentBlocks returns the anchors of the distinct blocks of color c that
// touch the block containing p, or touch p itself when p is empty.
func (b *Board) AdjacentBlocks(p Point, c Color) []Point {
	stones := []Point{p}
	if b.cells[p] == Black || b.cells[p] == White {
		stones = b.Stones(p)
	}
	var anchors []Point
	for _, s := range stones {
		for _, n := range b.Neighbors(s) {
			if b.cells[n] != c {
				continue
			}
			a := b.Anchor(n)
			if !containsPoint(anchors, a) {
				anchors = append(anchors, a)
			}
		}
	}
	return anchors
}

func containsPoint(points []Point, p Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
