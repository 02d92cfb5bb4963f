// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mgvi

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/fisher"
	"github.com/born-ml/infer/internal/grad"
	"github.com/born-ml/infer/internal/mgvi"
	"github.com/born-ml/infer/internal/model"
	"github.com/born-ml/infer/internal/parallel"
)

// Sentinel errors reported by engine construction and step dispatch.
var (
	ErrUnknownSolver        = mgvi.ErrUnknownSolver
	ErrNonPositiveSpeed     = mgvi.ErrNonPositiveSpeed
	ErrNonPositiveResiduals = mgvi.ErrNonPositiveResiduals
)

// Config carries every engine dependency and tunable.
type Config = mgvi.Config

// Engine runs MGVI steps with one fixed configuration.
type Engine = mgvi.Engine

// Batch is a set of antithetic residual samples.
type Batch = mgvi.Batch

// Solver selects how a step reduces the stochastic KL.
type Solver = mgvi.Solver

// Generic reduces the KL with a black-box minimizer.
type Generic = mgvi.Generic

// NewtonCG reduces the KL with damped Newton conjugate-gradient steps.
type NewtonCG = mgvi.NewtonCG

// NewtonOptions tunes the Newton conjugate-gradient loop.
type NewtonOptions = mgvi.NewtonOptions

// NewtonTrace reports one completed Newton iteration to a Trace callback.
type NewtonTrace = mgvi.NewtonTrace

// StepResult is the outcome of one MGVI step.
type StepResult = mgvi.StepResult

// Gradient differentiates the KL objective on the generic path.
type Gradient = grad.Mechanism

// FiniteDifference is the default central-difference Gradient.
type FiniteDifference = grad.FiniteDifference

// ParallelConfig controls worker use while drawing residuals.
type ParallelConfig = parallel.Config

// New creates an engine, replacing zero config values with defaults.
//
// Example:
//
//	engine, err := mgvi.New(mgvi.Config{NumResiduals: 8})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := engine.Step(rng, fwd, data, center, mgvi.NewtonCG{Speed: 1})
func New(config Config) (*Engine, error) {
	return mgvi.New(config)
}

// DefaultConfig returns the fully populated default configuration.
func DefaultConfig() Config {
	return mgvi.DefaultConfig()
}

// KL evaluates the stochastic KL divergence of a residual batch shifted to
// point: the batch mean of negative data log-likelihood plus the standard
// normal prior energy.
func KL(fwd model.Forward, data []float64, batch *Batch, point []float64) (float64, error) {
	return mgvi.KL(fwd, data, batch, point)
}

// KLGradient evaluates the gradient of the stochastic KL at point through
// the model adjoint.
func KLGradient(prov fisher.Provider, fwd model.Forward, data []float64, batch *Batch, point []float64) ([]float64, error) {
	return mgvi.KLGradient(prov, fwd, data, batch, point)
}

// Mean returns the per-coordinate mean over the columns of samples.
func Mean(samples *mat.Dense) []float64 {
	return mgvi.Mean(samples)
}

// Stddev returns the per-coordinate sample standard deviation over the
// columns of samples.
func Stddev(samples *mat.Dense) []float64 {
	return mgvi.Stddev(samples)
}
