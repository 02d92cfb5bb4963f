// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sampler

import (
	"github.com/born-ml/infer/internal/sampler"
)

// Distribution draws residual samples from an approximate posterior.
type Distribution = sampler.Distribution

// Factory builds a residual distribution from curvature components.
type Factory = sampler.Factory

// Cholesky samples through a dense factorization of the full curvature.
type Cholesky = sampler.Cholesky

// Implicit samples matrix-free through conjugate-gradient solves.
type Implicit = sampler.Implicit
