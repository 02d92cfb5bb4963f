package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/linalg"
)

// LinearForward maps parameters to likelihood moments affinely, m = A·p + b,
// and evaluates a fixed family at the result. Its linearization is exact and
// independent of the expansion point.
type LinearForward struct {
	a      *mat.Dense
	offset []float64
	family Family
}

// NewLinearForward builds a linear forward model. The matrix must have one
// row per family moment. A nil offset means zero.
func NewLinearForward(a *mat.Dense, offset []float64, family Family) (*LinearForward, error) {
	rows, _ := a.Dims()
	if rows != family.DataDim() {
		return nil, fmt.Errorf("model: matrix has %d rows but family expects %d moments", rows, family.DataDim())
	}
	if offset != nil && len(offset) != rows {
		return nil, fmt.Errorf("model: offset has length %d, want %d", len(offset), rows)
	}
	var b []float64
	if offset != nil {
		b = make([]float64, rows)
		copy(b, offset)
	}
	return &LinearForward{a: a, offset: b, family: family}, nil
}

// ParamDim returns the parameter-space dimension.
func (l *LinearForward) ParamDim() int {
	_, cols := l.a.Dims()
	return cols
}

// Eval computes the moments at params and returns the family member there.
func (l *LinearForward) Eval(params []float64) (Distribution, error) {
	rows, _ := l.a.Dims()
	moments := make([]float64, rows)
	if err := l.Moments(moments, params); err != nil {
		return nil, err
	}
	return l.family.At(moments)
}

// Moments computes A·params + offset into dst.
func (l *LinearForward) Moments(dst, params []float64) error {
	rows, cols := l.a.Dims()
	if len(params) != cols {
		return fmt.Errorf("model: linear forward expects %d parameters, got %d", cols, len(params))
	}
	if len(dst) != rows {
		return fmt.Errorf("model: linear forward produces %d moments, got dst of length %d", rows, len(dst))
	}
	out := mat.NewVecDense(rows, dst)
	out.MulVec(l.a, mat.NewVecDense(cols, params))
	if l.offset != nil {
		for i := range dst {
			dst[i] += l.offset[i]
		}
	}
	return nil
}

// DataDim returns the data-space dimension.
func (l *LinearForward) DataDim() int { return l.family.DataDim() }

// Linearize returns the model matrix as a Jacobian. The expansion point is
// irrelevant for a linear map but its length is still validated.
func (l *LinearForward) Linearize(params []float64) (linalg.Jacobian, error) {
	_, cols := l.a.Dims()
	if len(params) != cols {
		return nil, fmt.Errorf("model: linear forward expects %d parameters, got %d", cols, len(params))
	}
	return linalg.NewDenseJacobian(l.a), nil
}

// FuncForward wraps an arbitrary moment map as a forward model. The jacobian
// closure is optional; without it the model cannot be linearized and only
// the derivative-free paths can use it.
type FuncForward struct {
	paramDim int
	family   Family
	moments  func(dst, params []float64) error
	jacobian func(params []float64) (linalg.Jacobian, error)
}

// NewFuncForward builds a forward model from a moment-map closure. Pass a nil
// jacobian when no analytic linearization is available.
func NewFuncForward(
	paramDim int,
	family Family,
	moments func(dst, params []float64) error,
	jacobian func(params []float64) (linalg.Jacobian, error),
) (*FuncForward, error) {
	if paramDim <= 0 {
		return nil, fmt.Errorf("model: parameter dimension must be positive, got %d", paramDim)
	}
	if moments == nil {
		return nil, fmt.Errorf("model: moment map must not be nil")
	}
	return &FuncForward{
		paramDim: paramDim,
		family:   family,
		moments:  moments,
		jacobian: jacobian,
	}, nil
}

// ParamDim returns the parameter-space dimension.
func (f *FuncForward) ParamDim() int { return f.paramDim }

// DataDim returns the data-space dimension.
func (f *FuncForward) DataDim() int { return f.family.DataDim() }

// Eval computes the moments at params and returns the family member there.
func (f *FuncForward) Eval(params []float64) (Distribution, error) {
	moments := make([]float64, f.family.DataDim())
	if err := f.Moments(moments, params); err != nil {
		return nil, err
	}
	return f.family.At(moments)
}

// Moments invokes the moment-map closure after validating dimensions.
func (f *FuncForward) Moments(dst, params []float64) error {
	if len(params) != f.paramDim {
		return fmt.Errorf("model: forward expects %d parameters, got %d", f.paramDim, len(params))
	}
	if len(dst) != f.family.DataDim() {
		return fmt.Errorf("model: forward produces %d moments, got dst of length %d", f.family.DataDim(), len(dst))
	}
	return f.moments(dst, params)
}

// Linearize returns the jacobian of the moment map at params, or an error
// when the model was built without one.
func (f *FuncForward) Linearize(params []float64) (linalg.Jacobian, error) {
	if f.jacobian == nil {
		return nil, fmt.Errorf("model: forward has no jacobian; use a finite-difference curvature provider")
	}
	if len(params) != f.paramDim {
		return nil, fmt.Errorf("model: forward expects %d parameters, got %d", f.paramDim, len(params))
	}
	return f.jacobian(params)
}
