// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides matrix-free linear operators for curvature algebra.
//
// # Overview
//
// This package contains:
//   - Operator: a square linear map exposed only through its action
//   - Jacobian: a rectangular map with forward and adjoint actions
//   - Identity, Diagonal, Dense: concrete operators
//   - Scaled, Shifted, Averaged, Gram: operator combinators
//   - WithSqrt: attaches a known square root to an operator
//
// Operators stay implicit: combinators compose actions instead of
// materializing matrices, so a curvature like Jᵀ·M·J + I costs one
// Jacobian pair per application regardless of parameter count. When a
// dense view is unavoidable, DenseFrom materializes any operator by
// applying it to basis vectors.
//
// # Basic Usage
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/born-ml/infer/linalg"
//	)
//
//	func main() {
//	    // Jacobian of a linear model y = A·p.
//	    a := mat.NewDense(2, 2, []float64{1, 0, 2, 1})
//	    jac := linalg.NewDenseJacobian(a)
//
//	    // Curvature Jᵀ·M·J + I with a diagonal metric M.
//	    metric := linalg.NewDiagonal([]float64{4, 1})
//	    curv := linalg.NewShifted(linalg.NewGram(metric, jac), 1)
//
//	    // Apply without ever forming the matrix.
//	    dst := make([]float64, 2)
//	    curv.Apply(dst, []float64{1, 0})
//	}
//
// # Matrix-Free Jacobians
//
// Models that can multiply by their Jacobian without storing it wrap
// the two actions in a FuncJacobian:
//
//	jac := linalg.NewFuncJacobian(rows, cols,
//	    func(dst, x []float64) { /* dst = J·x */ },
//	    func(dst, y []float64) { /* dst = Jᵀ·y */ },
//	)
//
// All operators panic on dimension mismatches; shapes are programmer
// errors, not runtime conditions.
package linalg
