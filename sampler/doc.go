// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sampler provides residual samplers for the approximate posterior.
//
// # Overview
//
// This package contains:
//   - Factory: builds a residual distribution from curvature components
//   - Cholesky: dense factorization of the full curvature
//   - Implicit: matrix-free sampling through conjugate-gradient solves
//
// Both samplers draw from a zero-mean normal whose precision is the
// curvature Jᵀ·F·J + I. Cholesky materializes that matrix once and
// factorizes it; Implicit never forms it, drawing standard normals in data
// and parameter space and solving one linear system per sample.
//
// # Basic Usage
//
//	import (
//	    "math/rand/v2"
//
//	    "github.com/born-ml/infer/sampler"
//	)
//
//	func main() {
//	    var factory sampler.Factory = sampler.Cholesky{}
//	    dist, err := factory.New(curv, jac)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    rng := rand.New(rand.NewPCG(1, 2))
//	    draws, err := dist.Draw(rng, 8) // one sample per column
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = draws
//	}
//
// # Choosing a Sampler
//
// Cholesky is exact and cheap for small parameter counts; its cost grows
// cubically with dimension. Implicit scales to large models but needs the
// data-space curvature to carry a square root, which the built-in
// likelihood families provide:
//
//	factory := sampler.Implicit{}
//
// Tune the inner solver through the CG field when the default tolerance is
// too tight or too loose for the problem.
package sampler
