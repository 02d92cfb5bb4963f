// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package fisher

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/fisher"
	"github.com/born-ml/infer/internal/linalg"
	"github.com/born-ml/infer/internal/model"
)

// Provider produces the curvature components of a forward model at a point.
type Provider = fisher.Provider

// ModelProvider linearizes through the model's own Jacobian and metric.
type ModelProvider = fisher.ModelProvider

// FDProvider approximates the Jacobian by central finite differences.
type FDProvider = fisher.FDProvider

// Assemble pulls a data-space curvature back to parameter space as Jᵀ·M·J.
func Assemble(curv linalg.Operator, jac linalg.Jacobian) linalg.Operator {
	return fisher.Assemble(curv, jac)
}

// AveragedFisher builds the batch-averaged Fisher metric around center,
// shifted by the identity prior. Each column of batch is one residual.
func AveragedFisher(prov Provider, fwd model.Forward, batch *mat.Dense, center []float64) (linalg.Operator, error) {
	return fisher.AveragedFisher(prov, fwd, batch, center)
}
