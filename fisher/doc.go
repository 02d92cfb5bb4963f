// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fisher provides curvature metrics for forward models.
//
// # Overview
//
// This package contains:
//   - Provider: produces curvature components at a linearization point
//   - ModelProvider: exact curvature from the model's analytic Jacobian
//   - FDProvider: Jacobian by central finite differences
//   - AveragedFisher: batch-averaged metric for Newton steps
//
// The curvature of a forward model at a point is the Fisher information of
// the data distribution pulled back through the Jacobian, Jᵀ·F·J. Providers
// return the pieces as matrix-free operators so large parameter spaces never
// materialize the metric.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/infer/fisher"
//	)
//
//	func main() {
//	    var prov fisher.Provider = fisher.ModelProvider{}
//	    curv, jac, err := prov.Components(fwd, params)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    metric := fisher.Assemble(curv, jac)
//	    _ = metric
//	}
//
// # Choosing a Provider
//
// ModelProvider requires the model to implement Linearizable and its
// distributions to implement Metric; it is exact and fast. FDProvider only
// needs the moment map and works for any smooth model:
//
//	prov := fisher.FDProvider{Step: 1e-6}
//
// The finite-difference Jacobian costs two model evaluations per parameter
// per linearization point.
package fisher
