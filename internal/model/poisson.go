package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/infer/internal/linalg"
)

// PoissonFamily is the independent Poisson count likelihood. Its moment
// vector is the rate vector, which must stay strictly positive; forward maps
// feeding this family usually go through an exponential or softplus link.
type PoissonFamily struct {
	dim int
}

// NewPoissonFamily creates the family for count vectors of the given
// dimension.
func NewPoissonFamily(dim int) (*PoissonFamily, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("model: poisson family dimension must be positive, got %d", dim)
	}
	return &PoissonFamily{dim: dim}, nil
}

// DataDim returns the data-space dimension.
func (f *PoissonFamily) DataDim() int { return f.dim }

// At returns the family member with the given rates.
func (f *PoissonFamily) At(moments []float64) (Distribution, error) {
	if len(moments) != f.dim {
		return nil, fmt.Errorf("model: poisson family has dimension %d, got %d moments", f.dim, len(moments))
	}
	rates := make([]float64, f.dim)
	for i, v := range moments {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("model: poisson rate[%d] must be positive and finite, got %v", i, v)
		}
		rates[i] = v
	}
	return &PoissonCounts{rates: rates}, nil
}

// PoissonCounts is a product of one-dimensional Poisson distributions.
// It implements Metric: the Fisher information of a Poisson with rate λ is
// 1/λ per coordinate.
type PoissonCounts struct {
	rates []float64
}

// DataDim returns the data-space dimension.
func (d *PoissonCounts) DataDim() int { return len(d.rates) }

// Rates returns a copy of the rate vector.
func (d *PoissonCounts) Rates() []float64 {
	r := make([]float64, len(d.rates))
	copy(r, d.rates)
	return r
}

// LogDensity returns the joint log-mass of the observed counts. Negative or
// non-integer observations yield -Inf, matching the distribution's support.
func (d *PoissonCounts) LogDensity(data []float64) float64 {
	if len(data) != len(d.rates) {
		panic(fmt.Sprintf("model: poisson log-density expects %d observations, got %d", len(d.rates), len(data)))
	}
	sum := 0.0
	for i, x := range data {
		p := distuv.Poisson{Lambda: d.rates[i]}
		sum += p.LogProb(x)
	}
	return sum
}

// Fisher returns diag(1/λ).
func (d *PoissonCounts) Fisher() linalg.Operator {
	diag := make([]float64, len(d.rates))
	for i, r := range d.rates {
		diag[i] = 1 / r
	}
	return linalg.NewDiagonal(diag)
}

// FisherSqrt returns diag(1/√λ).
func (d *PoissonCounts) FisherSqrt() linalg.Operator {
	diag := make([]float64, len(d.rates))
	for i, r := range d.rates {
		diag[i] = 1 / math.Sqrt(r)
	}
	return linalg.NewDiagonal(diag)
}

// Score returns ∂/∂λ of the log-mass: x/λ − 1.
func (d *PoissonCounts) Score(data []float64) []float64 {
	if len(data) != len(d.rates) {
		panic(fmt.Sprintf("model: poisson score expects %d observations, got %d", len(d.rates), len(data)))
	}
	score := make([]float64, len(d.rates))
	for i, x := range data {
		score[i] = x/d.rates[i] - 1
	}
	return score
}
