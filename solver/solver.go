// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/born-ml/infer/internal/solver"
)

// Sentinel errors reported by the conjugate-gradient solver.
var (
	ErrNotPositiveDefinite = solver.ErrNotPositiveDefinite
	ErrNumericalBreakdown  = solver.ErrNumericalBreakdown
)

// CG solves symmetric positive-definite systems by conjugate gradients.
type CG = solver.CG

// CGConfig configures a conjugate-gradient solver.
type CGConfig = solver.CGConfig

// Stats reports how a conjugate-gradient solve went.
type Stats = solver.Stats

// Objective is a scalar function with an optional gradient.
type Objective = solver.Objective

// Result is the outcome of a minimization.
type Result = solver.Result

// Minimizer finds a local minimum of an objective.
type Minimizer = solver.Minimizer

// Gonum adapts gonum's optimize package as a Minimizer.
type Gonum = solver.Gonum

// Adam minimizes by Adaptive Moment Estimation.
type Adam = solver.Adam

// AdamConfig holds configuration for the Adam minimizer.
type AdamConfig = solver.AdamConfig

// NewCG creates a conjugate-gradient solver. Zero-valued config fields fall
// back to defaults.
//
// Example:
//
//	cg := solver.NewCG(solver.CGConfig{Tol: 1e-10})
//	stats, err := cg.Solve(x, a, b)
func NewCG(config CGConfig) *CG {
	return solver.NewCG(config)
}

// NewAdam creates an Adam minimizer with defaults for zero config fields.
//
// Example:
//
//	adam := solver.NewAdam(solver.AdamConfig{LR: 0.01})
//	res, err := adam.Minimize(obj, start)
func NewAdam(config AdamConfig) *Adam {
	return solver.NewAdam(config)
}
