// Package grad provides the gradient mechanism used by the generic
// optimization path.
//
// The engine never differentiates anything itself; it asks a Mechanism for
// the gradient of a scalar objective. The default mechanism is central
// finite differences on top of gonum/diff/fd, which works for any objective
// the engine can evaluate. Callers with analytic gradients can plug in
// their own Mechanism.
package grad

import (
	"gonum.org/v1/gonum/diff/fd"
)

// Mechanism computes the gradient of a scalar function at a point.
type Mechanism interface {
	// Gradient stores ∇f(x) into dst and returns it. A nil dst allocates.
	// Implementations panic if a non-nil dst has a length other than
	// len(x).
	Gradient(dst []float64, f func([]float64) float64, x []float64) []float64
}

// FiniteDifference estimates gradients with central differences.
type FiniteDifference struct {
	// Step is the finite-difference step size. Zero selects the central
	// formula's default.
	Step float64

	// Concurrent evaluates the objective at perturbed points from
	// multiple goroutines. Requires f to be safe for concurrent use.
	Concurrent bool
}

// Gradient stores the central-difference estimate of ∇f(x) into dst.
func (m FiniteDifference) Gradient(dst []float64, f func([]float64) float64, x []float64) []float64 {
	return fd.Gradient(dst, f, x, &fd.Settings{
		Formula:    fd.Central,
		Step:       m.Step,
		Concurrent: m.Concurrent,
	})
}

// Filler adapts an objective and a mechanism to the fill-in-place gradient
// signature used by minimizers. The returned function captures nothing
// beyond its two arguments.
func Filler(f func([]float64) float64, m Mechanism) func(grad, x []float64) {
	return func(grad, x []float64) {
		m.Gradient(grad, f, x)
	}
}
