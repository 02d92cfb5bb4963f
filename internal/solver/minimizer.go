package solver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// Objective is a scalar function to minimize, with an optional in-place
// gradient of the same signature gonum/optimize expects.
type Objective struct {
	Func func(x []float64) float64
	Grad func(grad, x []float64)
}

// Result is the outcome of a minimization. Non-convergence shows up in
// Status, not as an error: the location is still the best one found.
type Result struct {
	X        []float64
	F        float64
	Gradient []float64
	Status   optimize.Status
	Stats    optimize.Stats
}

// Minimizer minimizes an objective from a starting point.
type Minimizer interface {
	Minimize(obj Objective, start []float64) (*Result, error)
}

// Gonum adapts gonum/optimize.Minimize to the Minimizer interface.
type Gonum struct {
	// Method selects the optimization method. Nil picks LBFGS when the
	// objective has a gradient and Nelder-Mead otherwise.
	Method optimize.Method

	// Settings passes through to optimize.Minimize unmodified. Nil uses
	// the gonum defaults.
	Settings *optimize.Settings
}

// Minimize runs the configured method from start. Method-internal failures
// that still produce a best-effort location are reported through
// Result.Status; an error means no usable location exists at all.
func (g Gonum) Minimize(obj Objective, start []float64) (*Result, error) {
	if obj.Func == nil {
		return nil, errors.New("solver: objective function is nil")
	}
	if len(start) == 0 {
		return nil, errors.New("solver: empty starting point")
	}

	problem := optimize.Problem{Func: obj.Func, Grad: obj.Grad}
	method := g.Method
	if method == nil {
		if obj.Grad != nil {
			method = &optimize.LBFGS{}
		} else {
			method = &optimize.NelderMead{}
		}
	}

	res, err := optimize.Minimize(problem, start, g.Settings, method)
	if res == nil {
		return nil, fmt.Errorf("solver: minimization produced no result: %w", err)
	}

	x := make([]float64, len(res.Location.X))
	copy(x, res.Location.X)
	var gradient []float64
	if res.Location.Gradient != nil {
		gradient = make([]float64, len(res.Location.Gradient))
		copy(gradient, res.Location.Gradient)
	}
	return &Result{
		X:        x,
		F:        res.Location.F,
		Gradient: gradient,
		Status:   res.Status,
		Stats:    res.Stats,
	}, nil
}
