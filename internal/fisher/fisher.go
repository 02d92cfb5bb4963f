// Package fisher assembles parameter-space curvature from forward models.
//
// A Provider splits the curvature of a model at a point into its two data
// components, the data-space Fisher information and the Jacobian of the
// moment map. Assemble pulls the pair back to parameter space as Jᵀ·F·J,
// and AveragedFisher builds the batch-averaged curvature the Newton path
// solves against.
package fisher

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/linalg"
	"github.com/born-ml/infer/internal/model"
)

// Provider produces the curvature components of a forward model at a point:
// the data-space Fisher information of the predictive distribution and the
// Jacobian of the parameter-to-moment map.
type Provider interface {
	Components(fwd model.Forward, params []float64) (curv linalg.Operator, jac linalg.Jacobian, err error)
}

// Assemble pulls data-space curvature back to parameter space as the
// symmetric positive semi-definite operator Jᵀ·F·J.
func Assemble(curv linalg.Operator, jac linalg.Jacobian) linalg.Operator {
	return linalg.NewGram(curv, jac)
}

// ModelProvider reads exact curvature components off the model itself.
// It requires the model to implement Linearizable and its distributions to
// implement Metric.
type ModelProvider struct{}

// Components returns the model's own Fisher metric and exact Jacobian.
func (ModelProvider) Components(fwd model.Forward, params []float64) (linalg.Operator, linalg.Jacobian, error) {
	lin, ok := fwd.(model.Linearizable)
	if !ok {
		return nil, nil, fmt.Errorf("fisher: model %T cannot linearize; use a finite-difference provider", fwd)
	}
	jac, err := lin.Linearize(params)
	if err != nil {
		return nil, nil, fmt.Errorf("fisher: linearizing model: %w", err)
	}
	dist, err := fwd.Eval(params)
	if err != nil {
		return nil, nil, fmt.Errorf("fisher: evaluating model: %w", err)
	}
	metric, ok := dist.(model.Metric)
	if !ok {
		return nil, nil, fmt.Errorf("fisher: distribution %T exposes no Fisher metric", dist)
	}
	return linalg.WithSqrt(metric.Fisher(), metric.FisherSqrt()), jac, nil
}

// AveragedFisher builds the Newton curvature for one residual batch: the
// arithmetic mean of Jᵀ·F·J over the shifted points center+rᵢ, plus the
// identity contributed by the standardized prior. The result is symmetric
// positive-definite. Residuals are the columns of batch.
func AveragedFisher(prov Provider, fwd model.Forward, batch *mat.Dense, center []float64) (linalg.Operator, error) {
	if prov == nil {
		return nil, fmt.Errorf("fisher: nil provider")
	}
	rows, cols := batch.Dims()
	if rows != len(center) {
		return nil, fmt.Errorf("fisher: batch has %d rows but center has length %d", rows, len(center))
	}
	if cols == 0 {
		return nil, fmt.Errorf("fisher: empty residual batch")
	}

	point := make([]float64, rows)
	resid := make([]float64, rows)
	ops := make([]linalg.Operator, cols)
	for j := 0; j < cols; j++ {
		mat.Col(resid, j, batch)
		for i := range point {
			point[i] = center[i] + resid[i]
		}
		curv, jac, err := prov.Components(fwd, point)
		if err != nil {
			return nil, fmt.Errorf("fisher: curvature at sample %d: %w", j, err)
		}
		ops[j] = Assemble(curv, jac)
	}
	return linalg.NewShifted(linalg.NewAveraged(ops), 1), nil
}
