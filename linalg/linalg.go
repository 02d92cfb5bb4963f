// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/linalg"
)

// Operator is a square linear map applied matrix-free.
type Operator = linalg.Operator

// Sqrter is an Operator that carries a known square root of itself.
type Sqrter = linalg.Sqrter

// Jacobian is a rectangular linear map with forward and adjoint actions.
type Jacobian = linalg.Jacobian

// Identity is the identity map.
type Identity = linalg.Identity

// Diagonal is a diagonal linear map.
type Diagonal = linalg.Diagonal

// Scaled is an operator multiplied by a scalar.
type Scaled = linalg.Scaled

// Shifted is an operator plus a multiple of the identity.
type Shifted = linalg.Shifted

// Averaged is the arithmetic mean of same-dimension operators.
type Averaged = linalg.Averaged

// Dense wraps an explicit symmetric matrix as an Operator.
type Dense = linalg.Dense

// DenseJacobian wraps an explicit matrix as a Jacobian.
type DenseJacobian = linalg.DenseJacobian

// FuncJacobian builds a Jacobian from forward and adjoint closures.
type FuncJacobian = linalg.FuncJacobian

// Gram is the pulled-back operator Jᵀ·M·J.
type Gram = linalg.Gram

// NewIdentity returns the identity operator of dimension d.
func NewIdentity(d int) *Identity { return linalg.NewIdentity(d) }

// NewDiagonal returns the diagonal operator with the given entries.
func NewDiagonal(diag []float64) *Diagonal { return linalg.NewDiagonal(diag) }

// NewScaled returns the operator c·A.
func NewScaled(c float64, op Operator) *Scaled { return linalg.NewScaled(c, op) }

// NewShifted returns the operator A + c·I.
func NewShifted(op Operator, c float64) *Shifted { return linalg.NewShifted(op, c) }

// NewAveraged returns the mean of the given operators.
func NewAveraged(ops []Operator) *Averaged { return linalg.NewAveraged(ops) }

// NewDense wraps a symmetric matrix as an operator.
func NewDense(m *mat.SymDense) *Dense { return linalg.NewDense(m) }

// NewDenseJacobian wraps a matrix as a Jacobian.
func NewDenseJacobian(m *mat.Dense) *DenseJacobian { return linalg.NewDenseJacobian(m) }

// NewFuncJacobian builds a matrix-free Jacobian from a forward action fwd
// (dst = J·x) and an adjoint action adj (dst = Jᵀ·y).
func NewFuncJacobian(rows, cols int, fwd, adj func(dst, x []float64)) *FuncJacobian {
	return linalg.NewFuncJacobian(rows, cols, fwd, adj)
}

// NewGram composes a metric and a Jacobian into Jᵀ·M·J.
func NewGram(metric Operator, jac Jacobian) *Gram { return linalg.NewGram(metric, jac) }

// WithSqrt attaches a known square root to an operator.
func WithSqrt(op, sqrt Operator) Sqrter { return linalg.WithSqrt(op, sqrt) }

// DenseFrom materializes an operator into an explicit symmetric matrix.
func DenseFrom(op Operator) *mat.SymDense { return linalg.DenseFrom(op) }
