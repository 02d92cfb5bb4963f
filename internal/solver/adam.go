package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// Adam minimizes by Adaptive Moment Estimation.
//
// Adam combines ideas from RMSprop and momentum: it keeps exponential
// moving averages of the gradient (first moment) and the squared gradient
// (second moment), with bias correction for their zero initialization.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	x = x - lr * m_hat / (sqrt(v_hat) + eps)           // Update
//
// Per-step travel is bounded by roughly the learning rate, which makes
// Adam robust on the noisy sampled objectives where a line-search method
// can overcommit to one batch.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr      float64
	beta1   float64
	beta2   float64
	eps     float64
	maxIter int
	gradTol float64
}

// AdamConfig holds configuration for the Adam minimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for the moment averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)

	// MaxIterations bounds the number of updates (default: 1000).
	MaxIterations int

	// GradTol stops early when the gradient norm falls below it
	// (default: 1e-8). Negative disables the check.
	GradTol float64
}

// NewAdam creates an Adam minimizer with defaults for zero config fields.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = 1000
	}
	if config.GradTol == 0 {
		config.GradTol = 1e-8
	}

	return &Adam{
		lr:      config.LR,
		beta1:   config.Betas[0],
		beta2:   config.Betas[1],
		eps:     config.Eps,
		maxIter: config.MaxIterations,
		gradTol: config.GradTol,
	}
}

// Minimize runs Adam updates from start until the gradient norm drops below
// GradTol or the iteration budget runs out. Exhausting the budget is
// reported through Result.Status, not as an error.
func (a *Adam) Minimize(obj Objective, start []float64) (*Result, error) {
	if obj.Func == nil {
		return nil, errors.New("solver: objective function is nil")
	}
	if obj.Grad == nil {
		return nil, errors.New("solver: adam requires a gradient")
	}
	if len(start) == 0 {
		return nil, errors.New("solver: empty starting point")
	}

	x := make([]float64, len(start))
	copy(x, start)
	g := make([]float64, len(start))
	m := make([]float64, len(start))
	v := make([]float64, len(start))

	status := optimize.IterationLimit
	iters, evals := 0, 0
	for t := 1; t <= a.maxIter; t++ {
		obj.Grad(g, x)
		evals++
		if a.gradTol > 0 && floats.Norm(g, 2) < a.gradTol {
			status = optimize.GradientThreshold
			break
		}
		iters = t

		biasCorrection1 := 1 - math.Pow(a.beta1, float64(t))
		biasCorrection2 := 1 - math.Pow(a.beta2, float64(t))
		for i := range x {
			m[i] = a.beta1*m[i] + (1-a.beta1)*g[i]
			v[i] = a.beta2*v[i] + (1-a.beta2)*g[i]*g[i]
			mHat := m[i] / biasCorrection1
			vHat := v[i] / biasCorrection2
			x[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}

	gradient := make([]float64, len(g))
	copy(gradient, g)
	return &Result{
		X:        x,
		F:        obj.Func(x),
		Gradient: gradient,
		Status:   status,
		Stats: optimize.Stats{
			MajorIterations: iters,
			FuncEvaluations: 1,
			GradEvaluations: evals,
		},
	}, nil
}
