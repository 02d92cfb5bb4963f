// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides forward models and likelihood families for inference.
//
// # Overview
//
// This package contains:
//   - Forward: maps latent parameters to a data distribution
//   - Family: builds distributions from moment vectors
//   - NormalFamily, PoissonFamily, MultivariateNormalFamily: built-in likelihoods
//   - LinearForward: affine moment map with an exact Jacobian
//   - FuncForward: arbitrary moment map, optionally with an analytic Jacobian
//
// A forward model factors into a moment map (parameters to distribution
// moments) and a family (moments to distribution). The built-in families
// implement Metric, exposing Fisher information and score, which the
// curvature providers and the Newton solver rely on.
//
// # Basic Usage
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/born-ml/infer/model"
//	)
//
//	func main() {
//	    // Two observations with unit noise.
//	    family, _ := model.NewNormalFamily([]float64{1, 1})
//
//	    // Mean response is linear in the single parameter.
//	    a := mat.NewDense(2, 1, []float64{1, 2})
//	    fwd, _ := model.NewLinearForward(a, nil, family)
//
//	    dist, _ := fwd.Eval([]float64{0.5})
//	    ll := dist.LogDensity([]float64{0.4, 1.1})
//	    _ = ll
//	}
//
// # Nonlinear Models
//
// FuncForward lifts any smooth moment map into a forward model. With an
// analytic Jacobian closure the model works with the exact curvature
// provider; without one, pass a finite-difference provider instead:
//
//	fwd, _ := model.NewFuncForward(1, family,
//	    func(dst, p []float64) error {
//	        dst[0] = math.Exp(p[0])
//	        return nil
//	    },
//	    nil, // no analytic jacobian
//	)
//
// # Custom Families
//
// Implementing Family and returning distributions that satisfy Metric is
// enough to plug a new likelihood into every inference path. Fisher and
// FisherSqrt return matrix-free operators from the linalg package.
package model
