// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mgvi provides Metric Gaussian Variational Inference.
//
// # Overview
//
// This package contains:
//   - Engine: runs MGVI steps with one fixed configuration
//   - Generic: KL reduction by a black-box minimizer
//   - NewtonCG: KL reduction by damped Newton conjugate-gradient steps
//   - Batch: antithetic residual samples around a linearization point
//   - Mean, Stddev: posterior summaries over the returned samples
//
// One MGVI step approximates the posterior around the current latent
// position with a Gaussian whose precision is the batch-averaged Fisher
// metric, draws antithetic residual samples from it, and moves the position
// to reduce the sampled KL divergence. Iterating steps from each result
// refines position and posterior samples together.
//
// # Basic Usage
//
//	import (
//	    "math/rand/v2"
//
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/born-ml/infer/mgvi"
//	    "github.com/born-ml/infer/model"
//	)
//
//	func main() {
//	    family, _ := model.NewNormalFamily([]float64{1})
//	    a := mat.NewDense(1, 1, []float64{2})
//	    fwd, _ := model.NewLinearForward(a, nil, family)
//
//	    engine, _ := mgvi.New(mgvi.Config{NumResiduals: 8})
//	    rng := rand.New(rand.NewPCG(1, 2))
//
//	    pos := []float64{0}
//	    data := []float64{6}
//	    for range 5 {
//	        res, err := engine.Step(rng, fwd, data, pos, mgvi.Generic{})
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        pos = res.Result
//	    }
//
//	    // Posterior summary from the last step's shifted samples.
//	    last, _ := engine.Step(rng, fwd, data, pos, mgvi.Generic{})
//	    mean := mgvi.Mean(last.Samples)
//	    sd := mgvi.Stddev(last.Samples)
//	    _, _ = mean, sd
//	}
//
// # Solvers
//
// Generic hands the KL objective to a minimizer; by default L-BFGS with
// central-difference gradients. Any Minimizer from the solver package can
// replace it:
//
//	res, err := engine.Step(rng, fwd, data, pos, mgvi.Generic{
//	    Minimizer: solver.Gonum{Method: &optimize.BFGS{}},
//	})
//
// NewtonCG walks the KL downhill along damped Newton directions, solving
// the averaged-Fisher system by conjugate gradients. Speed scales each
// step; Options bounds the loop and exposes a per-iteration Trace:
//
//	res, err := engine.Step(rng, fwd, data, pos, mgvi.NewtonCG{
//	    Speed: 1,
//	    Options: mgvi.NewtonOptions{
//	        MaxIterations: 20,
//	        GradAbsTol:    1e-8,
//	        Trace: func(tr mgvi.NewtonTrace) {
//	            fmt.Printf("it=%d |grad|=%g\n", tr.Iteration, tr.GradNorm)
//	        },
//	    },
//	})
//
// # Reproducibility
//
// Steps draw all randomness from the passed rng. The same seed, model,
// data, and configuration reproduce a step exactly; enabling Parallel
// changes only wall-clock time, never the draws.
package mgvi
