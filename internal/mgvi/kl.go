package mgvi

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/infer/internal/fisher"
	"github.com/born-ml/infer/internal/model"
)

// KL evaluates the stochastic Kullback-Leibler objective at point: the mean
// over the batch of −log p(data | point+r) plus the standardized prior term
// ‖point+r‖²/2. Data outside the likelihood's support contributes +Inf.
// Pure: identical arguments give identical values.
func KL(fwd model.Forward, data []float64, batch *Batch, point []float64) (float64, error) {
	if batch == nil || batch.Len() == 0 {
		return 0, fmt.Errorf("mgvi: empty residual batch")
	}
	if len(point) != batch.Dim() {
		return 0, fmt.Errorf("mgvi: point has length %d, batch dimension is %d", len(point), batch.Dim())
	}

	shifted := make([]float64, batch.Dim())
	total := 0.0
	for j := 0; j < batch.Len(); j++ {
		batch.colInto(shifted, j)
		floats.Add(shifted, point)
		dist, err := fwd.Eval(shifted)
		if err != nil {
			return 0, err
		}
		if dist.DataDim() != len(data) {
			return 0, fmt.Errorf("mgvi: data has length %d, model produces %d moments", len(data), dist.DataDim())
		}
		total += -dist.LogDensity(data) + 0.5*floats.Dot(shifted, shifted)
	}
	return total / float64(batch.Len()), nil
}

// KLGradient assembles the exact gradient of KL at point through the model
// adjoint: the batch mean of −Jᵀ·score(data) + (point+r), with the Jacobian
// and the score both taken at the shifted sample. Requires the provider to
// produce Jacobians and the model's distributions to carry a Metric.
func KLGradient(prov fisher.Provider, fwd model.Forward, data []float64, batch *Batch, point []float64) ([]float64, error) {
	if batch == nil || batch.Len() == 0 {
		return nil, fmt.Errorf("mgvi: empty residual batch")
	}
	dim := batch.Dim()
	if len(point) != dim {
		return nil, fmt.Errorf("mgvi: point has length %d, batch dimension is %d", len(point), dim)
	}

	out := make([]float64, dim)
	shifted := make([]float64, dim)
	pulled := make([]float64, dim)
	for j := 0; j < batch.Len(); j++ {
		batch.colInto(shifted, j)
		floats.Add(shifted, point)

		_, jac, err := prov.Components(fwd, shifted)
		if err != nil {
			return nil, err
		}
		dist, err := fwd.Eval(shifted)
		if err != nil {
			return nil, err
		}
		metric, ok := dist.(model.Metric)
		if !ok {
			return nil, fmt.Errorf("mgvi: distribution %T exposes no score", dist)
		}
		if dist.DataDim() != len(data) {
			return nil, fmt.Errorf("mgvi: data has length %d, model produces %d moments", len(data), dist.DataDim())
		}

		jac.ApplyT(pulled, metric.Score(data))
		for i := range out {
			out[i] += shifted[i] - pulled[i]
		}
	}
	floats.Scale(1/float64(batch.Len()), out)
	return out, nil
}
