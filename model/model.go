// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/linalg"
	"github.com/born-ml/infer/internal/model"
)

// Forward maps latent parameters to a data distribution.
type Forward = model.Forward

// Distribution is a probability distribution over data space.
type Distribution = model.Distribution

// Metric is a Distribution exposing Fisher information and score.
type Metric = model.Metric

// Family builds distributions from moment vectors.
type Family = model.Family

// Linearizable is a Forward with an analytic Jacobian.
type Linearizable = model.Linearizable

// MomentMapper is a Forward exposing its raw moment map.
type MomentMapper = model.MomentMapper

// NormalFamily builds independent normals with fixed per-coordinate sigma.
type NormalFamily = model.NormalFamily

// IndependentNormal is a diagonal-covariance normal over data space.
type IndependentNormal = model.IndependentNormal

// PoissonFamily builds independent Poisson counts from rate vectors.
type PoissonFamily = model.PoissonFamily

// PoissonCounts is a vector of independent Poisson distributions.
type PoissonCounts = model.PoissonCounts

// MultivariateNormalFamily builds correlated normals with fixed covariance.
type MultivariateNormalFamily = model.MultivariateNormalFamily

// MultivariateNormal is a full-covariance normal over data space.
type MultivariateNormal = model.MultivariateNormal

// LinearForward is the affine forward model y ~ family(A·p + offset).
type LinearForward = model.LinearForward

// FuncForward wraps an arbitrary moment map as a forward model.
type FuncForward = model.FuncForward

// NewNormalFamily creates a family of independent normals with the given
// standard deviations.
//
// Example:
//
//	family, err := model.NewNormalFamily([]float64{0.5, 0.5})
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewNormalFamily(sigma []float64) (*NormalFamily, error) {
	return model.NewNormalFamily(sigma)
}

// NewPoissonFamily creates a family of dim independent Poisson counts.
func NewPoissonFamily(dim int) (*PoissonFamily, error) {
	return model.NewPoissonFamily(dim)
}

// NewMultivariateNormalFamily creates a family of correlated normals with
// the given covariance. The covariance must be symmetric positive definite.
func NewMultivariateNormalFamily(cov *mat.SymDense) (*MultivariateNormalFamily, error) {
	return model.NewMultivariateNormalFamily(cov)
}

// NewLinearForward creates the affine forward model family(A·p + offset).
// Pass a nil offset for a purely linear map.
//
// Example:
//
//	a := mat.NewDense(2, 1, []float64{1, 2})
//	fwd, err := model.NewLinearForward(a, nil, family)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewLinearForward(a *mat.Dense, offset []float64, family Family) (*LinearForward, error) {
	return model.NewLinearForward(a, offset, family)
}

// NewFuncForward builds a forward model from a moment-map closure. Pass a
// nil jacobian when no analytic linearization is available; such models can
// still be used with finite-difference curvature providers.
func NewFuncForward(
	paramDim int,
	family Family,
	moments func(dst, params []float64) error,
	jacobian func(params []float64) (linalg.Jacobian, error),
) (*FuncForward, error) {
	return model.NewFuncForward(paramDim, family, moments, jacobian)
}
