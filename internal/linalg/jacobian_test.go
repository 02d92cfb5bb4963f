package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestDenseJacobian_ApplyAndAdjoint(t *testing.T) {
	// J = [1 2; 3 4; 5 6], maps R^2 -> R^3.
	j := NewDenseJacobian(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}))
	assert.Equal(t, 3, j.Rows())
	assert.Equal(t, 2, j.Cols())

	fwd := make([]float64, 3)
	j.Apply(fwd, []float64{1, 1})
	assert.Equal(t, []float64{3, 7, 11}, fwd)

	adj := make([]float64, 2)
	j.ApplyT(adj, []float64{1, 0, 1})
	assert.Equal(t, []float64{6, 8}, adj)
}

func TestFuncJacobian_MatchesDense(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 0, 2, -1, 1, 0})
	dense := NewDenseJacobian(m)
	fn := NewFuncJacobian(2, 3,
		func(dst, x []float64) { dense.Apply(dst, x) },
		func(dst, y []float64) { dense.ApplyT(dst, y) },
	)

	x := []float64{1, 2, 3}
	want := make([]float64, 2)
	got := make([]float64, 2)
	dense.Apply(want, x)
	fn.Apply(got, x)
	assert.Equal(t, want, got)

	y := []float64{0.5, -0.5}
	wantT := make([]float64, 3)
	gotT := make([]float64, 3)
	dense.ApplyT(wantT, y)
	fn.ApplyT(gotT, y)
	assert.Equal(t, wantT, gotT)
}

// Adjoint identity: ⟨J·x, y⟩ == ⟨x, Jᵀ·y⟩ for all x, y.
func TestDenseJacobian_AdjointIdentity(t *testing.T) {
	j := NewDenseJacobian(mat.NewDense(3, 2, []float64{2, -1, 0, 4, 1, 1}))
	x := []float64{0.3, -1.2}
	y := []float64{1, 2, -0.5}

	jx := make([]float64, 3)
	j.Apply(jx, x)
	jty := make([]float64, 2)
	j.ApplyT(jty, y)

	var lhs, rhs float64
	for i := range jx {
		lhs += jx[i] * y[i]
	}
	for i := range x {
		rhs += x[i] * jty[i]
	}
	assert.InDelta(t, lhs, rhs, 1e-12)
}

func TestGram_Apply(t *testing.T) {
	// J = [1 0; 1 1] (2×2), M = diag(2, 4).
	// JᵀMJ = [1 1; 0 1]·diag(2,4)·[1 0; 1 1] = [6 4; 4 4].
	j := NewDenseJacobian(mat.NewDense(2, 2, []float64{1, 0, 1, 1}))
	g := NewGram(NewDiagonal([]float64{2, 4}), j)
	assert.Equal(t, 2, g.Dim())

	dst := make([]float64, 2)
	g.Apply(dst, []float64{1, 0})
	assert.InDelta(t, 6.0, dst[0], 1e-14)
	assert.InDelta(t, 4.0, dst[1], 1e-14)

	g.Apply(dst, []float64{0, 1})
	assert.InDelta(t, 4.0, dst[0], 1e-14)
	assert.InDelta(t, 4.0, dst[1], 1e-14)
}

func TestGram_RectangularJacobian(t *testing.T) {
	// J maps R^1 -> R^3; JᵀMJ is 1×1: Σ m_i·J_i².
	j := NewDenseJacobian(mat.NewDense(3, 1, []float64{1, 2, 3}))
	g := NewGram(NewDiagonal([]float64{1, 1, 2}), j)

	dst := make([]float64, 1)
	g.Apply(dst, []float64{1})
	// 1·1 + 1·4 + 2·9 = 23.
	assert.InDelta(t, 23.0, dst[0], 1e-14)
}

func TestGram_MetricDimensionMismatchPanics(t *testing.T) {
	j := NewDenseJacobian(mat.NewDense(3, 2, make([]float64, 6)))
	assert.Panics(t, func() { NewGram(NewIdentity(2), j) })
}
