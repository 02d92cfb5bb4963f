// Package sampler draws residual samples from the local Gaussian
// approximation of the posterior.
//
// Around a linearization point the posterior is approximated by N(0, M⁻¹)
// with M = Jᵀ·F·J + I. Two strategies are provided: Cholesky materializes M
// and samples exactly through gonum/stat/distmv, which is the right choice
// up to a few thousand parameters; Implicit never forms M and instead
// combines a data-space draw with a conjugate-gradient solve, trading
// exactness for scalability.
package sampler

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/born-ml/infer/internal/linalg"
	"github.com/born-ml/infer/internal/solver"
)

// Distribution draws residual vectors. Draws consume the supplied rng
// sequentially: identical rng state yields identical output.
type Distribution interface {
	// Dim returns the parameter-space dimension of the residuals.
	Dim() int

	// Draw returns n residual vectors as the columns of a Dim×n matrix.
	Draw(rng *rand.Rand, n int) (*mat.Dense, error)
}

// Factory builds a residual distribution from curvature components, the
// data-space Fisher operator and the moment-map Jacobian at the current
// linearization point.
type Factory interface {
	New(curv linalg.Operator, jac linalg.Jacobian) (Distribution, error)
}

// Cholesky is the dense sampling strategy: it materializes the posterior
// precision M = Jᵀ·F·J + I and factorizes it once per construction.
type Cholesky struct{}

// New materializes and validates the precision.
func (Cholesky) New(curv linalg.Operator, jac linalg.Jacobian) (Distribution, error) {
	if curv.Dim() != jac.Rows() {
		return nil, fmt.Errorf("sampler: curvature dimension %d does not match jacobian rows %d", curv.Dim(), jac.Rows())
	}
	prec := linalg.DenseFrom(linalg.NewShifted(linalg.NewGram(curv, jac), 1))
	var chol mat.Cholesky
	if !chol.Factorize(prec) {
		return nil, fmt.Errorf("sampler: assembled precision is not positive-definite")
	}
	return &choleskyDist{prec: prec, dim: jac.Cols()}, nil
}

type choleskyDist struct {
	prec *mat.SymDense
	dim  int
}

func (d *choleskyDist) Dim() int { return d.dim }

func (d *choleskyDist) Draw(rng *rand.Rand, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sampler: draw count must be positive, got %d", n)
	}
	normal, ok := distmv.NewNormalPrecision(make([]float64, d.dim), d.prec, rng)
	if !ok {
		return nil, fmt.Errorf("sampler: precision is not positive-definite")
	}
	out := mat.NewDense(d.dim, n, nil)
	col := make([]float64, d.dim)
	for j := 0; j < n; j++ {
		normal.Rand(col)
		out.SetCol(j, col)
	}
	return out, nil
}

// Implicit is the matrix-free sampling strategy. Each draw combines a
// data-space draw pushed through the Jacobian adjoint with a parameter-space
// draw, u = Jᵀ·S·ξ₁ + ξ₂, and solves M·x = u by conjugate gradient, so that
// Cov(x) = M⁻¹ without ever forming M.
type Implicit struct {
	// CG configures the per-draw linear solves. Zero values select the
	// solver defaults.
	CG solver.CGConfig
}

// New validates that the curvature operator carries a square root and sets
// up the matrix-free distribution. A draw that exhausts the CG budget is
// kept as-is; residual samples are approximate by construction.
func (f Implicit) New(curv linalg.Operator, jac linalg.Jacobian) (Distribution, error) {
	if curv.Dim() != jac.Rows() {
		return nil, fmt.Errorf("sampler: curvature dimension %d does not match jacobian rows %d", curv.Dim(), jac.Rows())
	}
	sq, ok := curv.(linalg.Sqrter)
	if !ok {
		return nil, fmt.Errorf("sampler: curvature %T carries no square root; use the Cholesky sampler", curv)
	}
	return &implicitDist{
		m:    linalg.NewShifted(linalg.NewGram(curv, jac), 1),
		jac:  jac,
		sqrt: sq.Sqrt(),
		cg:   solver.NewCG(f.CG),
	}, nil
}

type implicitDist struct {
	m    linalg.Operator
	jac  linalg.Jacobian
	sqrt linalg.Operator
	cg   *solver.CG
}

func (d *implicitDist) Dim() int { return d.jac.Cols() }

func (d *implicitDist) Draw(rng *rand.Rand, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sampler: draw count must be positive, got %d", n)
	}
	dataDim, dim := d.jac.Rows(), d.jac.Cols()
	out := mat.NewDense(dim, n, nil)
	xi := make([]float64, dataDim)
	t := make([]float64, dataDim)
	u := make([]float64, dim)
	x := make([]float64, dim)
	for j := 0; j < n; j++ {
		for i := range xi {
			xi[i] = rng.NormFloat64()
		}
		d.sqrt.Apply(t, xi)
		d.jac.ApplyT(u, t)
		for i := range u {
			u[i] += rng.NormFloat64()
		}
		if _, err := d.cg.Solve(x, d.m, u); err != nil {
			return nil, fmt.Errorf("sampler: drawing residual %d: %w", j, err)
		}
		out.SetCol(j, x)
	}
	return out, nil
}
