package board

// maxLadderDepth bounds the number of escape/atari pairs read; a ladder that
// runs longer is treated as escaping.
const maxLadderDepth = 40

// LadderCaptured reports whether the block at p, which is in atari and whose
// owner is to move next, is lost: neither capturing an adjacent attacker
// block nor extending on the last liberty gets it out of a working ladder.
// The board is not modified.
func (b *Board) LadderCaptured(p Point) bool {
	if !b.InAtari(p) {
		return false
	}
	return b.Clone().escapeFails(p, maxLadderDepth)
}

// LadderAttack returns a liberty of the two-liberty block at p from which the
// opponent of its owner captures it in a ladder, or NoPoint.
// The board is not modified.
func (b *Board) LadderAttack(p Point) Point {
	if b.NumLiberties(p) != 2 {
		return NoPoint
	}
	return b.Clone().attack(p, maxLadderDepth)
}

func (b *Board) escapeFails(p Point, depth int) bool {
	if depth == 0 {
		return false
	}
	defender := b.cells[p]
	attacker := defender.Opponent()

	// counter-capture frees the block
	for _, a := range b.AdjacentBlocks(p, attacker) {
		if b.InAtari(a) {
			return false
		}
	}

	lib := b.TheLiberty(p)
	if err := b.PlayAs(defender, lib); err != nil {
		return true
	}
	defer b.Undo()

	switch n := b.NumLiberties(p); {
	case n >= 3:
		return false
	case n <= 1:
		return true
	}
	return b.attack(p, depth-1) != NoPoint
}

func (b *Board) attack(p Point, depth int) Point {
	attacker := b.cells[p].Opponent()
	for _, l := range b.Liberties(p) {
		if err := b.PlayAs(attacker, l); err != nil {
			continue
		}
		captured := b.cells[p] != Empty && b.InAtari(p) && b.escapeFails(p, depth)
		b.Undo()
		if captured {
			return l
		}
	}
	return NoPoint
}
