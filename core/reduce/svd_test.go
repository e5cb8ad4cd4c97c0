package reduce

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-8

// randomSymmetric builds an n x n symmetric non-negative count-like matrix,
// the shape the reducer sees in practice.
func randomSymmetric(rng *rand.Rand, n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := float64(rng.Intn(6))
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m
}

func TestReduceShape(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		n, k int
	}{
		{1, 1},
		{4, 2},
		{10, 2},
		{10, 10},
		{25, 5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n%d_k%d", tt.n, tt.k), func(t *testing.T) {
			out, err := NewTruncatedSVD().Reduce(randomSymmetric(rng, tt.n), tt.k)
			if err != nil {
				t.Fatalf("Reduce() error: %v", err)
			}
			r, c := out.Dims()
			if r != tt.n || c != tt.k {
				t.Errorf("output dims = %dx%d, want %dx%d", r, c, tt.n, tt.k)
			}
		})
	}
}

func TestReduceDeterministicUnderSeed(t *testing.T) {
	m := randomSymmetric(rand.New(rand.NewSource(42)), 12)

	first, err := NewTruncatedSVD().Reduce(m, 3)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	second, err := NewTruncatedSVD().Reduce(m, 3)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	if !mat.Equal(first, second) {
		t.Error("same seed produced different reductions")
	}
}

func TestReduceSeedIndependentConvergence(t *testing.T) {
	// The sketch is random but the subspace it converges to is not: after
	// the refinement passes, the dominant direction must agree across
	// seeds up to sign.
	m := randomSymmetric(rand.New(rand.NewSource(42)), 12)

	a := &TruncatedSVD{Iterations: DefaultIterations, Oversample: DefaultOversample, Seed: 1}
	b := &TruncatedSVD{Iterations: DefaultIterations, Oversample: DefaultOversample, Seed: 2}

	outA, err := a.Reduce(m, 1)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	outB, err := b.Reduce(m, 1)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	r, _ := outA.Dims()
	for i := range r {
		got, want := math.Abs(outA.At(i, 0)), math.Abs(outB.At(i, 0))
		if math.IsNaN(got) || math.IsNaN(want) {
			t.Fatal("reduction produced NaN")
		}
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("row %d: |%v| vs |%v| across seeds", i, outA.At(i, 0), outB.At(i, 0))
		}
	}
}

func TestReduceInvalidRank(t *testing.T) {
	m := randomSymmetric(rand.New(rand.NewSource(42)), 5)

	for _, k := range []int{0, -1, 6, 100} {
		if _, err := NewTruncatedSVD().Reduce(m, k); !errors.Is(err, ErrInvalidRank) {
			t.Errorf("Reduce(k=%d) err = %v, want ErrInvalidRank", k, err)
		}
	}
}

func TestReduceZeroMatrix(t *testing.T) {
	out, err := NewTruncatedSVD().Reduce(mat.NewDense(6, 6, nil), 2)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	r, c := out.Dims()
	if r != 6 || c != 2 {
		t.Fatalf("output dims = %dx%d, want 6x2", r, c)
	}
	for i := range r {
		for j := range c {
			if math.Abs(out.At(i, j)) > tolerance {
				t.Errorf("entry (%d, %d) = %v, want ~0", i, j, out.At(i, j))
			}
		}
	}
}

func TestReduceRankOneRecovery(t *testing.T) {
	// For A = x x^T the single left singular vector is x/|x| with singular
	// value |x|^2, so the rank-1 reduction U*S must equal x*|x| up to a
	// global sign.
	x := []float64{1, 2, 3, 4}
	norm := math.Sqrt(1 + 4 + 9 + 16)

	a := mat.NewDense(4, 4, nil)
	for i := range 4 {
		for j := range 4 {
			a.Set(i, j, x[i]*x[j])
		}
	}

	out, err := NewTruncatedSVD().Reduce(a, 1)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	sign := 1.0
	if out.At(0, 0) < 0 {
		sign = -1.0
	}
	for i := range 4 {
		want := x[i] * norm
		if got := sign * out.At(i, 0); math.Abs(got-want) > 1e-6 {
			t.Errorf("row %d = %v, want %v", i, got, want)
		}
	}
}

func TestReducePreservesRowIdentity(t *testing.T) {
	// One dominant row: row 3 of the input carries all the mass, so row 3
	// of the output must carry the largest magnitude. No permutation.
	a := mat.NewDense(5, 5, nil)
	a.Set(3, 3, 50)
	a.Set(3, 1, 5)
	a.Set(1, 3, 5)

	out, err := NewTruncatedSVD().Reduce(a, 2)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	largest, at := 0.0, -1
	for i := range 5 {
		rowNorm := math.Hypot(out.At(i, 0), out.At(i, 1))
		if rowNorm > largest {
			largest, at = rowNorm, i
		}
	}
	if at != 3 {
		t.Errorf("dominant output row = %d, want 3", at)
	}
}

func TestReduceApproximatesInput(t *testing.T) {
	// With k = n the truncated decomposition is effectively exact: the
	// projection Q spans the full space, so U_k S_k V_k^T reconstructs the
	// input and the row norms of U*S match the singular spectrum mass.
	m := randomSymmetric(rand.New(rand.NewSource(99)), 8)

	out, err := NewTruncatedSVD().Reduce(m, 8)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	// |A|_F^2 equals the sum of squared singular values, which equals the
	// squared Frobenius norm of U*S since U has orthonormal columns.
	var inputSq, outputSq float64
	for i := range 8 {
		for j := range 8 {
			inputSq += m.At(i, j) * m.At(i, j)
			outputSq += out.At(i, j) * out.At(i, j)
		}
	}
	if math.Abs(inputSq-outputSq) > 1e-6*inputSq {
		t.Errorf("Frobenius mass %v != %v", outputSq, inputSq)
	}
}
