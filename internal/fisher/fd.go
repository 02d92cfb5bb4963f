package fisher

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/linalg"
	"github.com/born-ml/infer/internal/model"
)

// FDProvider estimates the Jacobian of the moment map by central finite
// differences. The data-space Fisher still comes from the distribution's own
// metric, so only the linearization is approximate. Use it for models that
// expose a MomentMapper but no analytic Jacobian.
type FDProvider struct {
	// Step is the finite-difference step size. Zero selects the central
	// formula's default.
	Step float64
}

// Components returns the model's Fisher metric and a finite-difference
// Jacobian of its moment map.
func (p FDProvider) Components(fwd model.Forward, params []float64) (linalg.Operator, linalg.Jacobian, error) {
	mapper, ok := fwd.(model.MomentMapper)
	if !ok {
		return nil, nil, fmt.Errorf("fisher: model %T exposes no moment map to differentiate", fwd)
	}
	dist, err := fwd.Eval(params)
	if err != nil {
		return nil, nil, fmt.Errorf("fisher: evaluating model: %w", err)
	}
	metric, ok := dist.(model.Metric)
	if !ok {
		return nil, nil, fmt.Errorf("fisher: distribution %T exposes no Fisher metric", dist)
	}

	var evalErr error
	f := func(y, x []float64) {
		if err := mapper.Moments(y, x); err != nil {
			if evalErr == nil {
				evalErr = err
			}
			for i := range y {
				y[i] = math.NaN()
			}
		}
	}
	dense := mat.NewDense(mapper.DataDim(), fwd.ParamDim(), nil)
	fd.Jacobian(dense, f, params, &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    p.Step,
	})
	if evalErr != nil {
		return nil, nil, fmt.Errorf("fisher: differentiating moment map: %w", evalErr)
	}
	return linalg.WithSqrt(metric.Fisher(), metric.FisherSqrt()), linalg.NewDenseJacobian(dense), nil
}
