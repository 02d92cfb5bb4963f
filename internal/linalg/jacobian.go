package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Jacobian is a rectangular linear map from parameter space R^cols to data
// space R^rows, together with its adjoint. Forward models expose their local
// linearization through this interface; the engine composes it with a
// data-space metric to form parameter-space curvature.
type Jacobian interface {
	// Rows returns the data-space dimension.
	Rows() int

	// Cols returns the parameter-space dimension.
	Cols() int

	// Apply computes dst = J·x with len(dst) = Rows, len(x) = Cols.
	Apply(dst, x []float64)

	// ApplyT computes dst = Jᵀ·y with len(dst) = Cols, len(y) = Rows.
	ApplyT(dst, y []float64)
}

// DenseJacobian wraps an explicit matrix as a Jacobian.
type DenseJacobian struct {
	m *mat.Dense
}

// NewDenseJacobian wraps the given matrix. The matrix is referenced, not
// copied; callers must not mutate it afterwards.
func NewDenseJacobian(m *mat.Dense) *DenseJacobian {
	return &DenseJacobian{m: m}
}

// Rows returns the data-space dimension.
func (j *DenseJacobian) Rows() int { r, _ := j.m.Dims(); return r }

// Cols returns the parameter-space dimension.
func (j *DenseJacobian) Cols() int { _, c := j.m.Dims(); return c }

// Apply computes dst = J·x.
func (j *DenseJacobian) Apply(dst, x []float64) {
	r, c := j.m.Dims()
	if len(dst) != r || len(x) != c {
		panic(fmt.Sprintf("linalg: jacobian is %d×%d, got dst=%d x=%d", r, c, len(dst), len(x)))
	}
	out := mat.NewVecDense(r, dst)
	out.MulVec(j.m, mat.NewVecDense(c, x))
}

// ApplyT computes dst = Jᵀ·y.
func (j *DenseJacobian) ApplyT(dst, y []float64) {
	r, c := j.m.Dims()
	if len(dst) != c || len(y) != r {
		panic(fmt.Sprintf("linalg: jacobian adjoint is %d×%d, got dst=%d y=%d", c, r, len(dst), len(y)))
	}
	out := mat.NewVecDense(c, dst)
	out.MulVec(j.m.T(), mat.NewVecDense(r, y))
}

// Matrix returns the wrapped matrix.
func (j *DenseJacobian) Matrix() *mat.Dense { return j.m }

// FuncJacobian is a matrix-free Jacobian built from a forward and an adjoint
// closure. Both closures must implement exact adjoints of each other;
// nothing in this package verifies the pairing.
type FuncJacobian struct {
	rows, cols int
	fwd        func(dst, x []float64)
	adj        func(dst, y []float64)
}

// NewFuncJacobian builds a Jacobian from closures.
func NewFuncJacobian(rows, cols int, fwd, adj func(dst, x []float64)) *FuncJacobian {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("linalg: jacobian dimensions must be positive, got %d×%d", rows, cols))
	}
	return &FuncJacobian{rows: rows, cols: cols, fwd: fwd, adj: adj}
}

// Rows returns the data-space dimension.
func (j *FuncJacobian) Rows() int { return j.rows }

// Cols returns the parameter-space dimension.
func (j *FuncJacobian) Cols() int { return j.cols }

// Apply computes dst = J·x.
func (j *FuncJacobian) Apply(dst, x []float64) {
	if len(dst) != j.rows || len(x) != j.cols {
		panic(fmt.Sprintf("linalg: jacobian is %d×%d, got dst=%d x=%d", j.rows, j.cols, len(dst), len(x)))
	}
	j.fwd(dst, x)
}

// ApplyT computes dst = Jᵀ·y.
func (j *FuncJacobian) ApplyT(dst, y []float64) {
	if len(dst) != j.cols || len(y) != j.rows {
		panic(fmt.Sprintf("linalg: jacobian adjoint is %d×%d, got dst=%d y=%d", j.cols, j.rows, len(dst), len(y)))
	}
	j.adj(dst, y)
}

// Gram is the parameter-space curvature composition Jᵀ·M·J for a data-space
// metric M and a Jacobian J. It is symmetric whenever M is, and positive
// semi-definite whenever M is. Each Apply allocates two data-space scratch
// vectors; operators of this kind live for a single sampling or averaging
// pass, so the allocation cost stays off any hot path.
type Gram struct {
	metric Operator
	jac    Jacobian
}

// NewGram returns the operator Jᵀ·M·J. The metric dimension must match the
// Jacobian's data-space dimension.
func NewGram(metric Operator, jac Jacobian) *Gram {
	if metric.Dim() != jac.Rows() {
		panic(fmt.Sprintf("linalg: metric dimension %d does not match jacobian rows %d",
			metric.Dim(), jac.Rows()))
	}
	return &Gram{metric: metric, jac: jac}
}

// Dim returns the parameter-space dimension.
func (g *Gram) Dim() int { return g.jac.Cols() }

// Apply computes dst = Jᵀ·M·J·x.
func (g *Gram) Apply(dst, x []float64) {
	checkDim("gram", g.jac.Cols(), dst, x)
	mid := make([]float64, g.jac.Rows())
	out := make([]float64, g.jac.Rows())
	g.jac.Apply(mid, x)
	g.metric.Apply(out, mid)
	g.jac.ApplyT(dst, out)
}
