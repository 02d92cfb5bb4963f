package mgvi

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/infer/internal/grad"
	"github.com/born-ml/infer/internal/model"
	"github.com/born-ml/infer/internal/solver"
)

// Solver selects the optimization strategy for one step. The interface is
// sealed: Generic and NewtonCG are the only implementations, and the
// dispatcher rejects anything else before sampling starts.
type Solver interface {
	isSolver()
}

// Generic delegates the KL minimization to a black-box minimizer.
type Generic struct {
	// Minimizer performs the minimization. Nil selects the gonum LBFGS
	// adapter.
	Minimizer solver.Minimizer
}

func (Generic) isSolver() {}

// NewtonCG runs the dedicated Newton conjugate-gradient refinement against
// the step's averaged curvature.
type NewtonCG struct {
	// Speed scales every Newton shift. Must be positive.
	Speed float64

	// Options tunes iteration counts, stopping and tracing.
	Options NewtonOptions
}

func (NewtonCG) isSolver() {}

// StepResult is the outcome of one MGVI step. Ownership transfers to the
// caller entirely; the engine retains nothing.
type StepResult struct {
	// Result is the optimized latent position.
	Result []float64

	// Samples holds the residual batch shifted to Result, one approximate
	// posterior sample per column.
	Samples *mat.Dense

	// Optimized carries the full minimizer report on the generic path and
	// is nil on the Newton path.
	Optimized *solver.Result
}

// Step runs one MGVI step from center: draw an antithetic residual batch,
// minimize the stochastic KL over it, and return the improved position with
// the batch shifted there. A nil solver selects Generic with the default
// minimizer. Descriptor errors are reported before any sampling.
func (e *Engine) Step(rng *rand.Rand, fwd model.Forward, data, center []float64, solv Solver) (*StepResult, error) {
	if solv == nil {
		solv = Generic{}
	}

	var generic *Generic
	var newton *NewtonCG
	switch s := solv.(type) {
	case Generic:
		generic = &s
	case NewtonCG:
		if s.Speed <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrNonPositiveSpeed, s.Speed)
		}
		newton = &s
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownSolver, solv)
	}

	batch, err := e.Residuals(rng, fwd, center)
	if err != nil {
		return nil, err
	}

	if generic != nil {
		return e.stepGeneric(fwd, data, batch, center, *generic)
	}
	pos, err := e.newton(fwd, data, batch, center, newton.Speed, newton.Options)
	if err != nil {
		return nil, err
	}
	return &StepResult{Result: pos, Samples: batch.Shifted(pos)}, nil
}

// stepGeneric minimizes the KL as a black-box objective. Evaluation errors
// inside the objective surface as +Inf so the minimizer steers back into
// the model's domain.
func (e *Engine) stepGeneric(fwd model.Forward, data []float64, batch *Batch, center []float64, desc Generic) (*StepResult, error) {
	objective := func(x []float64) float64 {
		v, err := KL(fwd, data, batch, x)
		if err != nil {
			return math.Inf(1)
		}
		return v
	}

	min := desc.Minimizer
	if min == nil {
		min = solver.Gonum{}
	}
	res, err := min.Minimize(solver.Objective{
		Func: objective,
		Grad: grad.Filler(objective, e.gradient),
	}, center)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Result:    clone(res.X),
		Samples:   batch.Shifted(res.X),
		Optimized: res,
	}, nil
}

// Mean returns the per-coordinate mean over the columns of a sample matrix.
func Mean(samples *mat.Dense) []float64 {
	r, c := samples.Dims()
	out := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, samples)
		out[i] = stat.Mean(row, nil)
	}
	return out
}

// Stddev returns the per-coordinate sample standard deviation over the
// columns of a sample matrix.
func Stddev(samples *mat.Dense) []float64 {
	r, c := samples.Dims()
	out := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, samples)
		out[i] = stat.StdDev(row, nil)
	}
	return out
}

// clone copies a vector.
func clone(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}
