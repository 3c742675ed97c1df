// Package model holds the factorized move-scoring model: a linear weight and
// a latent factor vector per feature index. Pairwise feature interactions are
// the dot products of the factor vectors.
//
// A Model is read-only once loaded and may be shared by any number of
// search workers.
package model

import (
	"fmt"

	"github.com/hailam/goprior/internal/features"
)

// Capacity is the number of feature indices every model allocates,
// regardless of how many its weight file declares.
const Capacity = features.MaxFeatures

// MaxLatent is the largest latent dimension a weight file may declare.
const MaxLatent = 1024

// Model is a factorized weight table.
type Model struct {
	size    int // declared feature count
	k       int
	weights []float64
	factors []float64 // Capacity rows of k values
}

// New creates an all-zero model with latent dimension k.
func New(size, k int) *Model {
	if k < 0 || k > MaxLatent {
		panic(fmt.Sprintf("model: latent dimension %d out of range [0, %d]", k, MaxLatent))
	}
	return &Model{
		size:    size,
		k:       k,
		weights: make([]float64, Capacity),
		factors: make([]float64, Capacity*k),
	}
}

// Empty returns the all-zero model used when no weights could be loaded.
func Empty() *Model {
	return New(0, 0)
}

// Size returns the feature count declared by the weight file.
func (m *Model) Size() int { return m.size }

// K returns the latent dimension.
func (m *Model) K() int { return m.k }

func (m *Model) check(i int) {
	if i < 0 || i >= Capacity {
		panic(fmt.Sprintf("model: feature index %d out of range [0, %d)", i, Capacity))
	}
}

// Weight returns the linear weight of feature i.
func (m *Model) Weight(i int) float64 {
	m.check(i)
	return m.weights[i]
}

// Factor returns the latent vector of feature i. The slice aliases the model
// and must not be modified.
func (m *Model) Factor(i int) []float64 {
	m.check(i)
	return m.factors[i*m.k : (i+1)*m.k]
}

// SetWeight sets the linear weight of feature i.
func (m *Model) SetWeight(i int, w float64) {
	m.check(i)
	m.weights[i] = w
}

// SetFactor copies v into the latent vector of feature i.
func (m *Model) SetFactor(i int, v []float64) {
	m.check(i)
	if len(v) != m.k {
		panic(fmt.Sprintf("model: factor of length %d, expected %d", len(v), m.k))
	}
	copy(m.factors[i*m.k:], v)
}

// Combine returns the interaction of features i and j.
func (m *Model) Combine(i, j int) float64 {
	m.check(i)
	m.check(j)
	vi := m.factors[i*m.k : (i+1)*m.k]
	vj := m.factors[j*m.k : (j+1)*m.k]
	sum := 0.0
	for d := range vi {
		sum += vi[d] * vj[d]
	}
	return sum
}

// isZero reports whether feature i has neither weight nor factor.
func (m *Model) isZero(i int) bool {
	if m.weights[i] != 0 {
		return false
	}
	for _, v := range m.factors[i*m.k : (i+1)*m.k] {
		if v != 0 {
			return false
		}
	}
	return true
}
