package features

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/hailam/goprior/internal/board"
)

const setWords = (int(NumBasic) + 63) / 64

// Set is the feature set of one move: a bit per basic feature plus at most
// one pattern index. The zero value is empty.
type Set struct {
	bits    [setWords]uint64
	pattern int // 0 when absent; valid patterns are >= EdgePatternBase
}

// Add sets a basic feature.
func (s *Set) Add(id ID) {
	if id < 0 || id >= NumBasic {
		panic(fmt.Sprintf("features: basic feature %d out of range", id))
	}
	s.bits[id/64] |= 1 << (uint(id) % 64)
}

// Has reports whether a basic feature is set.
func (s *Set) Has(id ID) bool {
	if id < 0 || id >= NumBasic {
		return false
	}
	return s.bits[id/64]&(1<<(uint(id)%64)) != 0
}

// SetPattern attaches a pattern index.
func (s *Set) SetPattern(index int) {
	if !IsPatternIndex(index) {
		panic(fmt.Sprintf("features: pattern index %d out of range", index))
	}
	s.pattern = index
}

// Pattern returns the pattern index, if any.
func (s *Set) Pattern() (int, bool) {
	return s.pattern, s.pattern != 0
}

// Merge ORs the basic features of o into s. The pattern of s is kept; o's
// pattern is taken only when s has none.
func (s *Set) Merge(o *Set) {
	for i := range s.bits {
		s.bits[i] |= o.bits[i]
	}
	if s.pattern == 0 {
		s.pattern = o.pattern
	}
}

// Len returns the number of active features, pattern included.
func (s *Set) Len() int {
	n := 0
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	if s.pattern != 0 {
		n++
	}
	return n
}

// Indices appends the active feature indices to dst in ascending order.
func (s *Set) Indices(dst []int) []int {
	for i, w := range s.bits {
		for w != 0 {
			dst = append(dst, i*64+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	if s.pattern != 0 {
		dst = append(dst, s.pattern)
	}
	return dst
}

// String lists the active feature names.
func (s *Set) String() string {
	idx := s.Indices(nil)
	parts := make([]string, len(idx))
	for i, id := range idx {
		parts[i] = Name(id)
	}
	return strings.Join(parts, " ")
}

// BoardSets holds one Set per cell of a board, indexed by board.Point; the
// pass move lives at board.Pass.
type BoardSets []Set

// NewBoardSets allocates sets for every cell of b.
func NewBoardSets(b *board.Board) BoardSets {
	return make(BoardSets, b.CellCount())
}

// At returns the set of move p.
func (bs BoardSets) At(p board.Point) *Set {
	return &bs[p]
}
