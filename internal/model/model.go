// Package model defines the forward-model boundary of the inference engine.
//
// A forward model maps a parameter vector to a predictive distribution over
// the data space; the engine only ever talks to models through the small
// interfaces below. Concrete likelihood families (independent Gaussian,
// Poisson counts, full-covariance Gaussian) are provided on top of the
// gonum/stat distributions, together with linear and closure-based forward
// maps.
//
// Capability interfaces follow the same pattern as compute backends: the
// engine asks for exactly the capability it needs (Linearizable for exact
// Jacobians, Metric for curvature) and degrades to numerical fallbacks when
// a model does not provide it.
package model

import "github.com/born-ml/infer/internal/linalg"

// Forward maps a parameter vector to a predictive distribution.
//
// Eval must be a pure function of params: the engine calls it repeatedly at
// shifted points during a single step and relies on identical results for
// identical inputs.
type Forward interface {
	// ParamDim returns the parameter-space dimension D.
	ParamDim() int

	// Eval returns the predictive distribution at the given parameters.
	// Structural failures (non-finite parameters, moments outside the
	// family's support) are reported as errors and propagate unmodified
	// through the engine.
	Eval(params []float64) (Distribution, error)
}

// Distribution is a predictive distribution over the data space.
type Distribution interface {
	// DataDim returns the data-space dimension.
	DataDim() int

	// LogDensity returns the log of the probability density (or mass) of
	// the observed data under this distribution. Points outside the
	// support yield -Inf rather than an error. Panics if len(data)
	// differs from DataDim.
	LogDensity(data []float64) float64
}

// Metric is a Distribution that exposes its local curvature: the data-space
// Fisher information at the distribution's own moments, a square root of it,
// and the score of the log-density with respect to the moments.
//
// Families with independent coordinates have diagonal Fisher metrics, which
// keeps every composition in the engine matrix-free.
type Metric interface {
	Distribution

	// Fisher returns the data-space Fisher information, a symmetric
	// positive semi-definite operator of dimension DataDim.
	Fisher() linalg.Operator

	// FisherSqrt returns an operator S with S·Sᵀ equal to Fisher.
	// Used by the matrix-free residual sampler.
	FisherSqrt() linalg.Operator

	// Score returns the gradient of LogDensity with respect to the
	// distribution's moment vector, evaluated at the given data.
	Score(data []float64) []float64
}

// Family builds distributions of one likelihood family from a moment vector.
// The forward map produces moments; the family turns them into a
// Distribution and validates that they lie in the family's domain.
type Family interface {
	// DataDim returns the data-space dimension of the family.
	DataDim() int

	// At returns the family member with the given moments. Moments outside
	// the family's domain (for example non-positive Poisson rates) are a
	// construction error.
	At(moments []float64) (Distribution, error)
}

// Linearizable is a Forward model that can produce the exact Jacobian of its
// parameter-to-moment map at a point.
type Linearizable interface {
	Forward

	// Linearize returns the Jacobian of the moment map at params.
	Linearize(params []float64) (linalg.Jacobian, error)
}

// MomentMapper exposes the deterministic parameter-to-moment map underlying
// Eval. Models implementing it can have their Jacobian estimated by finite
// differences when no exact linearization is available.
type MomentMapper interface {
	// DataDim returns the moment-vector dimension.
	DataDim() int

	// Moments evaluates the moment map into dst (len DataDim).
	Moments(dst, params []float64) error
}
