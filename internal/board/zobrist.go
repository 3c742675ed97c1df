package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristStone  [2][maxCells]uint64 // [Black/White][Point]
	zobristToPlay uint64              // XOR when white to play
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := 0; c < 2; c++ {
		for p := 0; p < maxCells; p++ {
			zobristStone[c][p] = rng.next()
		}
	}

	zobristToPlay = rng.next()
}

// ZobristStone returns the Zobrist key for a stone of color c on p.
func ZobristStone(c Color, p Point) uint64 {
	return zobristStone[c-Black][p]
}
