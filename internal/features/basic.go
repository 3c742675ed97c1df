package features

import "github.com/hailam/goprior/internal/board"

// Basic returns the tactical features of playing p for the side to move.
// p must be legal; no pattern index or policy features are set.
func Basic(b *board.Board, p board.Point) Set {
	var s Set
	if p == board.Pass {
		findPassFeatures(b, &s)
		return s
	}
	findCaptureFeatures(b, p, &s)
	findExtensionFeatures(b, p, &s)
	if b.IsSelfAtari(p) {
		s.Add(SelfAtari)
	}
	findAtariFeatures(b, p, &s)
	findLineFeatures(b, p, &s)
	findDistPrevFeatures(b, p, &s)
	return s
}

func findPassFeatures(b *board.Board, s *Set) {
	if b.LastMove() == board.Pass {
		s.Add(PassConsecutive)
	} else {
		s.Add(PassNew)
	}
}

// findCaptureFeatures sets at most one of the prioritized capture kinds, or
// else a ladder classification per captured block.
func findCaptureFeatures(b *board.Board, p board.Point, s *Set) {
	captured := b.CapturedBy(p)
	if len(captured) == 0 {
		return
	}
	me := b.ToPlay()
	opp := me.Opponent()

	for _, a := range captured {
		for _, own := range b.AdjacentBlocks(a, me) {
			if b.InAtari(own) {
				s.Add(CaptureAdjAtari)
				return
			}
		}
	}

	last := b.LastMove()
	if b.OnBoard(last) && b.At(last) == opp {
		if b.TheLiberty(last) == p {
			s.Add(CaptureRecapture)
			return
		}
		if isLiberty(b, last, p) && isCuttingPoint(b, p, opp) {
			s.Add(CapturePreventConnection)
			return
		}
	}

	for _, a := range captured {
		if b.LadderCaptured(a) {
			s.Add(CaptureLadder)
		} else {
			s.Add(CaptureNotLadder)
		}
	}
}

func isLiberty(b *board.Board, block, p board.Point) bool {
	for _, l := range b.Liberties(block) {
		if l == p {
			return true
		}
	}
	return false
}

// isCuttingPoint reports whether p separates two or more blocks of color c.
func isCuttingPoint(b *board.Board, p board.Point, c board.Color) bool {
	return len(b.AdjacentBlocks(p, c)) >= 2
}

// findExtensionFeatures classifies own blocks in atari that p rescues by
// whether the extended block, with two liberties after the move, can still
// be caught in a ladder.
func findExtensionFeatures(b *board.Board, p board.Point, s *Set) {
	me := b.ToPlay()
	var inAtari []board.Point
	for _, a := range b.AdjacentBlocks(p, me) {
		if b.TheLiberty(a) == p {
			inAtari = append(inAtari, a)
		}
	}
	if len(inAtari) == 0 || b.LibertiesAfter(p) < 2 {
		return
	}

	if err := b.Play(p); err != nil {
		return
	}
	defer b.Undo()
	for _, a := range inAtari {
		if b.NumLiberties(a) == 2 && b.LadderAttack(a) != board.NoPoint {
			s.Add(ExtensionLadder)
		} else {
			s.Add(ExtensionNotLadder)
		}
	}
}

// findAtariFeatures fires when p puts a two-liberty opponent block into
// atari. AtariOther is set only when neither a ladder nor a ko applies.
func findAtariFeatures(b *board.Board, p board.Point, s *Set) {
	opp := b.ToPlay().Opponent()
	var targets []board.Point
	for _, a := range b.AdjacentBlocks(p, opp) {
		if b.NumLiberties(a) == 2 {
			targets = append(targets, a)
		}
	}
	if len(targets) == 0 {
		return
	}
	ko := b.KoPoint() != board.NoPoint

	if err := b.Play(p); err != nil {
		return
	}
	atari, ladder := false, false
	for _, a := range targets {
		if b.At(a) != opp || !b.InAtari(a) {
			continue
		}
		atari = true
		if b.LadderCaptured(a) {
			ladder = true
		}
	}
	b.Undo()

	if !atari {
		return
	}
	if ladder {
		s.Add(AtariLadder)
	}
	if ko {
		s.Add(AtariKo)
	}
	if !ladder && !ko {
		s.Add(AtariOther)
	}
}

func findLineFeatures(b *board.Board, p board.Point, s *Set) {
	line := min(b.Line(p), MaxLine)
	s.Add(bucket(Line1, line, 1, Line5Plus))

	pos := min(b.Pos(p), MaxPos)
	s.Add(bucket(Pos1, pos, 1, Pos10))

	phase := min(1+b.MoveNumber()/PhaseLength, MaxPhase)
	s.Add(bucket(GamePhase1, phase, 1, GamePhase12))
}

func findDistPrevFeatures(b *board.Board, p board.Point, s *Set) {
	if last := b.LastMove(); b.OnBoard(last) {
		if d := Distance(b, p, last); d >= MinDistance && d <= MaxDistance {
			s.Add(bucket(DistPrev2, d, MinDistance, DistPrev17))
		}
	}
	if last2 := b.SecondLastMove(); b.OnBoard(last2) {
		d := Distance(b, p, last2)
		switch {
		case d == 0:
			s.Add(DistPrevOwn0)
		case d >= MinDistance && d <= MaxDistance:
			s.Add(bucket(DistPrevOwn2, d, MinDistance, DistPrevOwn17))
		}
	}
}

// Distance returns |dx| + |dy| + max(|dx|, |dy|).
func Distance(b *board.Board, p, q board.Point) int {
	px, py := b.XY(p)
	qx, qy := b.XY(q)
	dx, dy := abs(px-qx), abs(py-qy)
	return dx + dy + max(dx, dy)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
