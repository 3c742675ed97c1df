package model

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hailam/goprior/internal/features"
)

const sample = `size:3,k:2
w:
0 0.5
12 -1.25
1500 2
v:
0 0.1 0.2
12 -0.3 0.4
1500 1 -1
`

func mustRead(t *testing.T, text string) *Model {
	t.Helper()
	m, err := Read(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return m
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRead(t *testing.T) {
	m := mustRead(t, sample)
	if m.Size() != 3 || m.K() != 2 {
		t.Errorf("Expected size 3 and k 2, got %d and %d", m.Size(), m.K())
	}
	if m.Weight(12) != -1.25 || m.Weight(1500) != 2 {
		t.Errorf("Expected weights to be loaded, got %v %v", m.Weight(12), m.Weight(1500))
	}
	if m.Weight(5) != 0 {
		t.Errorf("Expected missing indices to default to zero")
	}
	if f := m.Factor(12); f[0] != -0.3 || f[1] != 0.4 {
		t.Errorf("Expected factor [-0.3 0.4], got %v", f)
	}
	if got := m.Combine(0, 12); !near(got, 0.1*-0.3+0.2*0.4) {
		t.Errorf("Expected dot product, got %v", got)
	}
}

func TestCombineSymmetric(t *testing.T) {
	m := mustRead(t, sample)
	ids := []int{0, 1, 12, 1500, Capacity - 1}
	for _, i := range ids {
		for _, j := range ids {
			if m.Combine(i, j) != m.Combine(j, i) {
				t.Errorf("Expected Combine(%d,%d) == Combine(%d,%d)", i, j, j, i)
			}
		}
	}
}

func TestCombineOutOfRange(t *testing.T) {
	m := New(0, 2)
	for _, tc := range []struct{ i, j int }{{-1, 0}, {0, Capacity}, {Capacity + 5, 1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected Combine(%d,%d) to panic", tc.i, tc.j)
				}
			}()
			m.Combine(tc.i, tc.j)
		}()
	}
}

func TestEvaluate(t *testing.T) {
	m := mustRead(t, sample)

	var s features.Set
	s.Add(features.ID(0))
	s.Add(features.ID(12))
	s.SetPattern(1500)

	want := 0.5 - 1.25 + 2 + m.Combine(0, 12) + m.Combine(0, 1500) + m.Combine(12, 1500)
	got := Evaluate(m, &s)
	if !near(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	detail := EvaluateDetail(m, &s)
	if len(detail) != 3 {
		t.Fatalf("Expected 3 contributions, got %d", len(detail))
	}
	sum := 0.0
	for _, c := range detail {
		sum += c.Total()
	}
	if !near(sum, got) {
		t.Errorf("Expected detail to add up to %v, got %v", got, sum)
	}
	if detail[2].Index != 1500 || detail[2].Weight != 2 {
		t.Errorf("Expected the pattern last, got %+v", detail[2])
	}

	var empty features.Set
	if Evaluate(m, &empty) != 0 {
		t.Errorf("Expected an empty set to score 0")
	}
	if Evaluate(Empty(), &s) != 0 {
		t.Errorf("Expected the empty model to score 0")
	}
}

func TestEvaluateIndicesOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic for an index outside the model")
		}
	}()
	EvaluateIndices(New(0, 1), []int{1, Capacity})
}

func TestWriteRoundTrip(t *testing.T) {
	m := New(4, 3)
	m.SetWeight(1, 0.125)
	m.SetWeight(7, -3.5e-7)
	m.SetFactor(7, []float64{1.0 / 3, -2, 0})
	m.SetFactor(features.CenterPatternBase, []float64{0.1, 0.2, 0.3})

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := mustRead(t, buf.String())

	if got.K() != 3 || got.Size() != 3 {
		t.Errorf("Expected k 3 and size 3, got %d and %d", got.K(), got.Size())
	}
	for i := 0; i < Capacity; i++ {
		if got.Weight(i) != m.Weight(i) {
			t.Fatalf("Expected weight %v at %d, got %v", m.Weight(i), i, got.Weight(i))
		}
		want, have := m.Factor(i), got.Factor(i)
		for d := range want {
			if want[d] != have[d] {
				t.Fatalf("Expected factor %v at %d, got %v", want, i, have)
			}
		}
	}
}

func TestReadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		err  error
		line int
	}{
		{"Empty", "", ErrTruncated, 0},
		{"NoSize", "n:1,k:1\nw:\n0 1\nv:\n0 1\n", ErrMissingLabel, 1},
		{"BadK", "size:1,k:x\nw:\n0 1\nv:\n0 1\n", ErrBadNumber, 1},
		{"HugeK", "size:1,k:1000000000000000\nw:\n", ErrIndexRange, 1},
		{"LatentRange", "size:1,k:1025\nw:\n0 1\nv:\n0 1\n", ErrIndexRange, 1},
		{"OverflowK", "size:1,k:99999999999999999999\nw:\n", ErrBadNumber, 1},
		{"NoWeightLabel", "size:1,k:1\n0 1\nv:\n0 1\n", ErrMissingLabel, 2},
		{"NoFactorLabel", "size:1,k:1\nw:\n0 1\n0 1\n", ErrMissingLabel, 4},
		{"BadWeight", "size:1,k:1\nw:\n0 abc\nv:\n0 1\n", ErrBadNumber, 3},
		{"IndexRange", "size:1,k:1\nw:\n7804 1\nv:\n0 1\n", ErrIndexRange, 3},
		{"NegativeIndex", "size:1,k:1\nw:\n-1 1\nv:\n0 1\n", ErrIndexRange, 3},
		{"ShortFactor", "size:1,k:2\nw:\n0 1\nv:\n0 1\n", ErrFieldCount, 5},
		{"Truncated", "size:2,k:1\nw:\n0 1\n1 1\nv:\n0 1\n", ErrTruncated, 6},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.text))
			if !errors.Is(err, tc.err) {
				t.Fatalf("Expected %v, got %v", tc.err, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected a *ParseError, got %T", err)
			}
			if pe.Line != tc.line {
				t.Errorf("Expected line %d, got %d", tc.line, pe.Line)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.weights"); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}
