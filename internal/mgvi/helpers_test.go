package mgvi_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/linalg"
	"github.com/born-ml/infer/internal/model"
	"github.com/born-ml/infer/internal/sampler"
)

// lineModel is the one-parameter Gaussian observation model y ~ N(a·x, sigma).
func lineModel(t *testing.T, a, sigma float64) *model.LinearForward {
	t.Helper()
	fam, err := model.NewNormalFamily([]float64{sigma})
	require.NoError(t, err)
	fwd, err := model.NewLinearForward(mat.NewDense(1, 1, []float64{a}), nil, fam)
	require.NoError(t, err)
	return fwd
}

// zeroFactory builds distributions that always draw zero residuals,
// collapsing the stochastic KL onto its exact value at the point.
type zeroFactory struct{}

func (zeroFactory) New(curv linalg.Operator, jac linalg.Jacobian) (sampler.Distribution, error) {
	return zeroDist{dim: jac.Cols()}, nil
}

type zeroDist struct{ dim int }

func (d zeroDist) Dim() int { return d.dim }

func (d zeroDist) Draw(rng *rand.Rand, n int) (*mat.Dense, error) {
	return mat.NewDense(d.dim, n, nil), nil
}

var errFactoryBoom = errors.New("factory exploded")

// failingFactory reports a construction failure on every call.
type failingFactory struct{}

func (failingFactory) New(curv linalg.Operator, jac linalg.Jacobian) (sampler.Distribution, error) {
	return nil, errFactoryBoom
}

// countingForward counts Eval calls on top of a linearizable model.
type countingForward struct {
	inner *model.LinearForward
	evals *int
}

func (c countingForward) ParamDim() int { return c.inner.ParamDim() }

func (c countingForward) Eval(params []float64) (model.Distribution, error) {
	*c.evals++
	return c.inner.Eval(params)
}

func (c countingForward) Linearize(params []float64) (linalg.Jacobian, error) {
	return c.inner.Linearize(params)
}
