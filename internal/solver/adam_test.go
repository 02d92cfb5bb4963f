package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"

	"github.com/born-ml/infer/internal/solver"
)

func quadraticAt3() solver.Objective {
	return solver.Objective{
		Func: func(x []float64) float64 {
			d := x[0] - 3
			return d * d
		},
		Grad: func(grad, x []float64) {
			grad[0] = 2 * (x[0] - 3)
		},
	}
}

func TestAdam_FirstUpdateIsExact(t *testing.T) {
	// With zero moment state the bias corrections cancel and the first
	// update is lr * g/(|g| + eps): from 5 with gradient 4 and lr 0.1
	// the iterate lands at 4.9 up to the eps perturbation.
	adam := solver.NewAdam(solver.AdamConfig{LR: 0.1, MaxIterations: 1})

	res, err := adam.Minimize(quadraticAt3(), []float64{5})
	require.NoError(t, err)

	assert.InDelta(t, 4.9, res.X[0], 1e-8)
	assert.Equal(t, 1, res.Stats.MajorIterations)
	assert.Equal(t, optimize.IterationLimit, res.Status)
}

func TestAdam_ConvergesWithDefaults(t *testing.T) {
	adam := solver.NewAdam(solver.AdamConfig{})

	res, err := adam.Minimize(quadraticAt3(), []float64{2.5})
	require.NoError(t, err)

	// Default lr bounds per-step travel near 0.001, so the default budget
	// covers the 0.5 distance with room to settle.
	assert.InDelta(t, 3.0, res.X[0], 0.05)
	assert.Less(t, res.F, 1e-2)
}

func TestAdam_GradientThresholdStops(t *testing.T) {
	adam := solver.NewAdam(solver.AdamConfig{GradTol: 1e-3})

	res, err := adam.Minimize(quadraticAt3(), []float64{3 + 1e-4})
	require.NoError(t, err)

	// Start already inside the threshold: no update happens.
	assert.Equal(t, optimize.GradientThreshold, res.Status)
	assert.Equal(t, 0, res.Stats.MajorIterations)
	assert.Equal(t, 1, res.Stats.GradEvaluations)
	assert.InDelta(t, 3+1e-4, res.X[0], 1e-12)
}

func TestAdam_RequiresGradient(t *testing.T) {
	obj := quadraticAt3()
	obj.Grad = nil

	_, err := solver.NewAdam(solver.AdamConfig{}).Minimize(obj, []float64{0})
	assert.Error(t, err)
}

func TestAdam_ValidatesInput(t *testing.T) {
	_, err := solver.NewAdam(solver.AdamConfig{}).Minimize(solver.Objective{}, []float64{0})
	assert.Error(t, err)

	_, err = solver.NewAdam(solver.AdamConfig{}).Minimize(quadraticAt3(), nil)
	assert.Error(t, err)
}
