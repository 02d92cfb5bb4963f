// Package mgvi implements Metric Gaussian Variational Inference steps.
//
// One step improves a latent position against observed data: residual
// samples are drawn from the local Gaussian approximation around the
// current center, a stochastic KL divergence is formed over the shifted
// samples, and the KL is reduced either by a black-box minimizer or by a
// dedicated Newton conjugate-gradient loop. Repeating steps from each
// result refines the position and the implied posterior samples together.
//
// All engine behavior is carried by an explicit Config; the package keeps
// no process-wide state.
package mgvi

import (
	"errors"
	"fmt"

	"github.com/born-ml/infer/internal/fisher"
	"github.com/born-ml/infer/internal/grad"
	"github.com/born-ml/infer/internal/parallel"
	"github.com/born-ml/infer/internal/sampler"
)

var (
	// ErrUnknownSolver reports a solver descriptor the dispatcher does not
	// recognize.
	ErrUnknownSolver = errors.New("mgvi: unknown solver type")

	// ErrNonPositiveSpeed reports a NewtonCG descriptor with Speed ≤ 0.
	ErrNonPositiveSpeed = errors.New("mgvi: newton speed must be positive")

	// ErrNonPositiveResiduals reports a configured residual count below one.
	ErrNonPositiveResiduals = errors.New("mgvi: residual count must be positive")
)

// Config carries every engine dependency and tunable. Zero values select
// the defaults documented per field.
type Config struct {
	// NumResiduals is the number n of antithetic residual pairs per batch;
	// a batch holds 2n samples. Zero selects 15. Negative is an error.
	NumResiduals int

	// Provider supplies curvature components (data-space Fisher and moment
	// Jacobian). Nil selects the exact model provider.
	Provider fisher.Provider

	// Sampler builds the residual distribution from the provider's
	// components. Nil selects the dense Cholesky sampler.
	Sampler sampler.Factory

	// Gradient differentiates the KL objective on the generic path.
	// Nil selects central finite differences.
	Gradient grad.Mechanism

	// Parallel controls worker use while drawing residuals. Disabled by
	// default; the sequential path consumes the step rng directly.
	Parallel parallel.Config
}

// DefaultConfig returns the fully populated default configuration.
func DefaultConfig() Config {
	return Config{
		NumResiduals: 15,
		Provider:     fisher.ModelProvider{},
		Sampler:      sampler.Cholesky{},
		Gradient:     grad.FiniteDifference{},
	}
}

// Engine runs MGVI steps with one fixed configuration.
type Engine struct {
	numResiduals int
	provider     fisher.Provider
	factory      sampler.Factory
	gradient     grad.Mechanism
	par          parallel.Config
}

// New creates an engine, replacing zero config values with defaults.
// Configuration errors are reported here, before any sampling can happen.
func New(config Config) (*Engine, error) {
	if config.NumResiduals < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonPositiveResiduals, config.NumResiduals)
	}
	e := &Engine{
		numResiduals: config.NumResiduals,
		provider:     config.Provider,
		factory:      config.Sampler,
		gradient:     config.Gradient,
		par:          config.Parallel,
	}
	if e.numResiduals == 0 {
		e.numResiduals = 15
	}
	if e.provider == nil {
		e.provider = fisher.ModelProvider{}
	}
	if e.factory == nil {
		e.factory = sampler.Cholesky{}
	}
	if e.gradient == nil {
		e.gradient = grad.FiniteDifference{}
	}
	return e, nil
}

// NumResiduals returns the configured antithetic pair count n.
func (e *Engine) NumResiduals() int { return e.numResiduals }
