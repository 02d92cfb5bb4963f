package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"

	"github.com/born-ml/infer/internal/solver"
)

func TestGonum_MinimizesWithGradient(t *testing.T) {
	obj := solver.Objective{
		Func: func(x []float64) float64 {
			d := x[0] - 3
			return d * d
		},
		Grad: func(grad, x []float64) {
			grad[0] = 2 * (x[0] - 3)
		},
	}

	res, err := solver.Gonum{}.Minimize(obj, []float64{0})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, res.X[0], 1e-6)
	assert.InDelta(t, 0.0, res.F, 1e-10)
	assert.NotEqual(t, optimize.NotTerminated, res.Status)
	assert.Greater(t, res.Stats.FuncEvaluations, 0)
}

func TestGonum_GradientFreeFallback(t *testing.T) {
	obj := solver.Objective{
		Func: func(x []float64) float64 {
			d := x[0] - 3
			return d * d
		},
	}

	res, err := solver.Gonum{}.Minimize(obj, []float64{0})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, res.X[0], 1e-4)
}

func TestGonum_ExplicitMethod(t *testing.T) {
	obj := solver.Objective{
		Func: func(x []float64) float64 {
			return x[0]*x[0] + x[1]*x[1]
		},
		Grad: func(grad, x []float64) {
			grad[0] = 2 * x[0]
			grad[1] = 2 * x[1]
		},
	}

	res, err := solver.Gonum{Method: &optimize.BFGS{}}.Minimize(obj, []float64{1, -1})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, res.X[0], 1e-6)
	assert.InDelta(t, 0.0, res.X[1], 1e-6)
}

func TestGonum_RejectsNilObjective(t *testing.T) {
	_, err := solver.Gonum{}.Minimize(solver.Objective{}, []float64{0})
	assert.Error(t, err)

	_, err = solver.Gonum{}.Minimize(solver.Objective{Func: func(x []float64) float64 { return 0 }}, nil)
	assert.Error(t, err)
}
