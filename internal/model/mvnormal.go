package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/born-ml/infer/internal/linalg"
)

// MultivariateNormalFamily is the Gaussian likelihood with a fixed, full
// covariance matrix. Its moment vector is the mean. The covariance is
// factorized once at construction; every distribution produced by At shares
// the precomputed precision and its Cholesky factor.
type MultivariateNormalFamily struct {
	dim        int
	cov        *mat.SymDense
	precision  *mat.SymDense
	sqrtFisher *mat.TriDense
}

// NewMultivariateNormalFamily creates the family with the given covariance.
// The covariance must be symmetric positive-definite.
func NewMultivariateNormalFamily(cov *mat.SymDense) (*MultivariateNormalFamily, error) {
	n := cov.SymmetricDim()
	if n == 0 {
		return nil, fmt.Errorf("model: multivariate normal family needs at least one coordinate")
	}

	var cholCov mat.Cholesky
	if ok := cholCov.Factorize(cov); !ok {
		return nil, fmt.Errorf("model: covariance is not positive-definite")
	}

	precision := mat.NewSymDense(n, nil)
	if err := cholCov.InverseTo(precision); err != nil {
		return nil, fmt.Errorf("model: inverting covariance: %w", err)
	}

	// Factorize the precision P = L·Lᵀ; L is a square root of the Fisher
	// information of this family.
	var cholPrec mat.Cholesky
	if ok := cholPrec.Factorize(precision); !ok {
		return nil, fmt.Errorf("model: precision is not positive-definite")
	}
	sqrt := mat.NewTriDense(n, mat.Lower, nil)
	cholPrec.LTo(sqrt)

	covCopy := mat.NewSymDense(n, nil)
	covCopy.CopySym(cov)
	return &MultivariateNormalFamily{
		dim:        n,
		cov:        covCopy,
		precision:  precision,
		sqrtFisher: sqrt,
	}, nil
}

// DataDim returns the data-space dimension.
func (f *MultivariateNormalFamily) DataDim() int { return f.dim }

// At returns the family member with the given mean vector.
func (f *MultivariateNormalFamily) At(moments []float64) (Distribution, error) {
	if len(moments) != f.dim {
		return nil, fmt.Errorf("model: multivariate normal family has dimension %d, got %d moments", f.dim, len(moments))
	}
	for i, v := range moments {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("model: multivariate normal mean[%d] is not finite: %v", i, v)
		}
	}
	mu := make([]float64, f.dim)
	copy(mu, moments)
	dist, ok := distmv.NewNormal(mu, f.cov, nil)
	if !ok {
		return nil, fmt.Errorf("model: covariance rejected by distmv")
	}
	return &MultivariateNormal{mu: mu, family: f, dist: dist}, nil
}

// MultivariateNormal is a full-covariance Gaussian with fixed covariance.
// It implements Metric: the Fisher information with respect to the mean is
// the precision matrix.
type MultivariateNormal struct {
	mu     []float64
	family *MultivariateNormalFamily
	dist   *distmv.Normal
}

// DataDim returns the data-space dimension.
func (d *MultivariateNormal) DataDim() int { return len(d.mu) }

// LogDensity returns the log-density of the observed data.
func (d *MultivariateNormal) LogDensity(data []float64) float64 {
	if len(data) != len(d.mu) {
		panic(fmt.Sprintf("model: multivariate normal log-density expects %d observations, got %d", len(d.mu), len(data)))
	}
	return d.dist.LogProb(data)
}

// Fisher returns the precision matrix as an operator.
func (d *MultivariateNormal) Fisher() linalg.Operator {
	return linalg.NewDense(d.family.precision)
}

// FisherSqrt returns the lower Cholesky factor L of the precision, which
// satisfies L·Lᵀ = Fisher.
func (d *MultivariateNormal) FisherSqrt() linalg.Operator {
	return &triOperator{m: d.family.sqrtFisher}
}

// Score returns ∂/∂μ of the log-density: P·(x−μ).
func (d *MultivariateNormal) Score(data []float64) []float64 {
	if len(data) != len(d.mu) {
		panic(fmt.Sprintf("model: multivariate normal score expects %d observations, got %d", len(d.mu), len(data)))
	}
	n := len(d.mu)
	diff := make([]float64, n)
	for i := range diff {
		diff[i] = data[i] - d.mu[i]
	}
	score := make([]float64, n)
	out := mat.NewVecDense(n, score)
	out.MulVec(d.family.precision, mat.NewVecDense(n, diff))
	return score
}

// triOperator applies a dense triangular matrix as an Operator.
type triOperator struct {
	m *mat.TriDense
}

func (t *triOperator) Dim() int { r, _ := t.m.Dims(); return r }

func (t *triOperator) Apply(dst, x []float64) {
	n := t.Dim()
	if len(dst) != n || len(x) != n {
		panic(fmt.Sprintf("model: triangular operator expects vectors of length %d, got dst=%d x=%d", n, len(dst), len(x)))
	}
	out := mat.NewVecDense(n, dst)
	out.MulVec(t.m, mat.NewVecDense(n, x))
}
