// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package solver provides the linear and nonlinear solvers used by inference.
//
// # Overview
//
// This package contains:
//   - CG: conjugate gradients for symmetric positive-definite operators
//   - Minimizer: interface over nonlinear minimization
//   - Gonum: adapter over gonum.org/v1/gonum/optimize
//   - Adam: first-order minimization by Adaptive Moment Estimation
//
// CG works against matrix-free operators from the linalg package, so
// curvature systems solve without ever materializing a matrix. Gonum wraps
// gonum's optimizers behind a small interface the inference engine can
// swap out.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/infer/linalg"
//	    "github.com/born-ml/infer/solver"
//	)
//
//	func main() {
//	    a := linalg.NewDiagonal([]float64{2, 3})
//	    b := []float64{2, 6}
//	    x := make([]float64, 2)
//
//	    cg := solver.NewCG(solver.CGConfig{})
//	    stats, err := cg.Solve(x, a, b)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = stats // x is now [1, 2]
//	}
//
// # Minimization
//
// Gonum picks L-BFGS when the objective has a gradient and Nelder-Mead
// when it does not; set Method to override:
//
//	min := solver.Gonum{Method: &optimize.BFGS{}}
//	res, err := min.Minimize(solver.Objective{Func: f, Grad: g}, start)
//
// Adam bounds per-step travel by its learning rate, a steadier choice on
// noisy sampled objectives where a line search can overcommit:
//
//	adam := solver.NewAdam(solver.AdamConfig{LR: 0.01})
//	res, err := adam.Minimize(solver.Objective{Func: f, Grad: g}, start)
//
// A solve that exhausts its iteration budget is not an error; check
// Stats.Converged (CG) or Result.Status (minimizers) when convergence
// matters.
package solver
