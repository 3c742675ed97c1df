package board

// CapturedBy returns the anchors of the opponent blocks that playing p for
// the side to move would capture.
func (b *Board) CapturedBy(p Point) []Point {
	opp := b.toPlay.Opponent()
	var anchors []Point
	for _, n := range b.Neighbors(p) {
		if b.cells[n] != opp {
			continue
		}
		if b.TheLiberty(n) != p {
			continue
		}
		a := b.Anchor(n)
		if !containsPoint(anchors, a) {
			anchors = append(anchors, a)
		}
	}
	return anchors
}

// CapturesAny reports whether playing p captures at least one opponent stone.
func (b *Board) CapturesAny(p Point) bool {
	opp := b.toPlay.Opponent()
	for _, n := range b.Neighbors(p) {
		if b.cells[n] == opp && b.TheLiberty(n) == p {
			return true
		}
	}
	return false
}

// LibertiesAfter returns the liberty count of the block formed by playing p
// for the side to move, or 0 if the move is illegal.
func (b *Board) LibertiesAfter(p Point) int {
	if err := b.Play(p); err != nil {
		return 0
	}
	n := b.NumLiberties(p)
	b.Undo()
	return n
}

// IsSelfAtari reports whether playing p leaves the mover's new block with a
// single liberty.
func (b *Board) IsSelfAtari(p Point) bool {
	return b.LibertiesAfter(p) == 1
}

// SelfAtariLiberty returns the remaining liberty after a self-atari move p,
// or NoPoint if p is not a self-atari.
func (b *Board) SelfAtariLiberty(p Point) Point {
	if err := b.Play(p); err != nil {
		return NoPoint
	}
	lib := b.TheLiberty(p)
	b.Undo()
	return lib
}

// IsEyeish returns the color of the single-color diamond around p, or Empty.
// The result may still be a false eye.
func (b *Board) IsEyeish(p Point) Color {
	eye := Empty
	for _, n := range b.Neighbors(p) {
		c := b.cells[n]
		switch c {
		case Border:
			continue
		case Empty:
			return Empty
		}
		if eye == Empty {
			eye = c
		} else if c != eye {
			return Empty
		}
	}
	return eye
}

// IsEye returns the owner of the eye at p, or Empty if p is not an eye or the
// eye is false.
func (b *Board) IsEye(p Point) Color {
	eye := b.IsEyeish(p)
	if eye == Empty {
		return Empty
	}
	falseCount := 0
	atEdge := false
	for _, d := range b.Diagonals(p) {
		switch b.cells[d] {
		case Border:
			atEdge = true
		case eye.Opponent():
			falseCount++
		}
	}
	if atEdge {
		falseCount++
	}
	if falseCount >= 2 {
		return Empty
	}
	return eye
}

// EmptyRegion returns the connected empty points containing p, stopping once
// more than limit points are found.
func (b *Board) EmptyRegion(p Point, limit int) []Point {
	if b.cells[p] != Empty {
		return nil
	}
	e := b.nextEpoch()
	region := []Point{p}
	b.mark[p] = e
	for i := 0; i < len(region) && len(region) <= limit; i++ {
		for _, n := range b.Neighbors(region[i]) {
			if b.cells[n] == Empty && b.mark[n] != e {
				b.mark[n] = e
				region = append(region, n)
			}
		}
	}
	return region
}
