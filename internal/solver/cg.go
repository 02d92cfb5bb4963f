// Package solver provides the two optimization backends of the engine: a
// linear conjugate-gradient solver for symmetric positive-definite operators
// and a minimizer adapter over gonum/optimize.
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/infer/internal/linalg"
)

var (
	// ErrNotPositiveDefinite reports an operator that produced a
	// nonpositive curvature p·A·p during conjugate gradient.
	ErrNotPositiveDefinite = errors.New("solver: operator is not positive-definite")

	// ErrNumericalBreakdown reports non-finite values inside an iterative
	// solve.
	ErrNumericalBreakdown = errors.New("solver: numerical breakdown")
)

// CGConfig configures the linear conjugate-gradient solver.
type CGConfig struct {
	// Tol is the relative residual target ‖r‖/‖b‖. Zero selects 1e-8.
	Tol float64

	// MaxIterations caps the number of CG updates. Zero selects 10·dim.
	MaxIterations int
}

// Stats reports how a linear solve went. Running out of iterations is not
// an error; callers that care inspect Converged.
type Stats struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// CG solves A·x = b for symmetric positive-definite A using conjugate
// gradients. Only operator applications are needed, so A can stay
// matrix-free.
type CG struct {
	tol     float64
	maxIter int
}

// NewCG creates a solver, replacing zero config values with defaults.
func NewCG(config CGConfig) *CG {
	tol := config.Tol
	if tol == 0 {
		tol = 1e-8
	}
	return &CG{tol: tol, maxIter: config.MaxIterations}
}

// Solve runs CG from the zero vector and stores the solution into dst.
// When the iteration budget runs out the best iterate so far is kept in dst
// and Stats.Converged is false. A nonpositive curvature direction or
// non-finite arithmetic aborts with an error; A is then not SPD and the
// iterate is meaningless.
func (c *CG) Solve(dst []float64, a linalg.Operator, b []float64) (Stats, error) {
	n := a.Dim()
	if len(b) != n || len(dst) != n {
		return Stats{}, fmt.Errorf("solver: operator dimension %d does not match dst=%d b=%d", n, len(dst), len(b))
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return Stats{Converged: true}, nil
	}

	maxIter := c.maxIter
	if maxIter == 0 {
		maxIter = 10 * n
	}

	for i := range dst {
		dst[i] = 0
	}
	r := make([]float64, n)
	copy(r, b)
	p := make([]float64, n)
	copy(p, b)
	ap := make([]float64, n)
	rr := floats.Dot(r, r)

	iters := 0
	for {
		res := math.Sqrt(rr) / bnorm
		if math.IsNaN(res) || math.IsInf(res, 0) {
			return Stats{Iterations: iters, Residual: res}, fmt.Errorf("%w: residual is %v after %d iterations", ErrNumericalBreakdown, res, iters)
		}
		if res <= c.tol {
			return Stats{Iterations: iters, Residual: res, Converged: true}, nil
		}
		if iters >= maxIter {
			return Stats{Iterations: iters, Residual: res}, nil
		}

		a.Apply(ap, p)
		pap := floats.Dot(p, ap)
		if math.IsNaN(pap) || math.IsInf(pap, 0) {
			return Stats{Iterations: iters}, fmt.Errorf("%w: p·A·p is %v", ErrNumericalBreakdown, pap)
		}
		if pap <= 0 {
			return Stats{Iterations: iters}, fmt.Errorf("%w: p·A·p = %v", ErrNotPositiveDefinite, pap)
		}

		alpha := rr / pap
		floats.AddScaled(dst, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		rrNext := floats.Dot(r, r)
		beta := rrNext / rr
		rr = rrNext
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		iters++
	}
}
