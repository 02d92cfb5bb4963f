package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/infer/internal/linalg"
)

// NormalFamily is the independent Gaussian likelihood with fixed
// per-coordinate standard deviations. Its moment vector is the mean.
type NormalFamily struct {
	sigma []float64
}

// NewNormalFamily creates the family with the given standard deviations.
// Every sigma must be finite and strictly positive.
func NewNormalFamily(sigma []float64) (*NormalFamily, error) {
	if len(sigma) == 0 {
		return nil, fmt.Errorf("model: normal family needs at least one coordinate")
	}
	s := make([]float64, len(sigma))
	for i, v := range sigma {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("model: normal sigma[%d] must be positive and finite, got %v", i, v)
		}
		s[i] = v
	}
	return &NormalFamily{sigma: s}, nil
}

// DataDim returns the data-space dimension.
func (f *NormalFamily) DataDim() int { return len(f.sigma) }

// At returns the family member with the given mean vector.
func (f *NormalFamily) At(moments []float64) (Distribution, error) {
	if len(moments) != len(f.sigma) {
		return nil, fmt.Errorf("model: normal family has dimension %d, got %d moments", len(f.sigma), len(moments))
	}
	for i, v := range moments {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("model: normal mean[%d] is not finite: %v", i, v)
		}
	}
	mu := make([]float64, len(moments))
	copy(mu, moments)
	return &IndependentNormal{mu: mu, sigma: f.sigma}, nil
}

// IndependentNormal is a product of one-dimensional Gaussians with known
// standard deviations. It implements Metric: the Fisher information of a
// Gaussian with fixed sigma is diag(1/σ²), independent of the mean.
type IndependentNormal struct {
	mu    []float64
	sigma []float64
}

// DataDim returns the data-space dimension.
func (d *IndependentNormal) DataDim() int { return len(d.mu) }

// Mean returns a copy of the mean vector.
func (d *IndependentNormal) Mean() []float64 {
	mu := make([]float64, len(d.mu))
	copy(mu, d.mu)
	return mu
}

// LogDensity returns the joint log-density of the observed data.
func (d *IndependentNormal) LogDensity(data []float64) float64 {
	if len(data) != len(d.mu) {
		panic(fmt.Sprintf("model: normal log-density expects %d observations, got %d", len(d.mu), len(data)))
	}
	sum := 0.0
	for i, x := range data {
		n := distuv.Normal{Mu: d.mu[i], Sigma: d.sigma[i]}
		sum += n.LogProb(x)
	}
	return sum
}

// Fisher returns diag(1/σ²).
func (d *IndependentNormal) Fisher() linalg.Operator {
	diag := make([]float64, len(d.sigma))
	for i, s := range d.sigma {
		diag[i] = 1 / (s * s)
	}
	return linalg.NewDiagonal(diag)
}

// FisherSqrt returns diag(1/σ).
func (d *IndependentNormal) FisherSqrt() linalg.Operator {
	diag := make([]float64, len(d.sigma))
	for i, s := range d.sigma {
		diag[i] = 1 / s
	}
	return linalg.NewDiagonal(diag)
}

// Score returns ∂/∂μ of the log-density: (x−μ)/σ².
func (d *IndependentNormal) Score(data []float64) []float64 {
	if len(data) != len(d.mu) {
		panic(fmt.Sprintf("model: normal score expects %d observations, got %d", len(d.mu), len(data)))
	}
	score := make([]float64, len(d.mu))
	for i, x := range data {
		score[i] = (x - d.mu[i]) / (d.sigma[i] * d.sigma[i])
	}
	return score
}
