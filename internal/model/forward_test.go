package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/linalg"
)

func TestLinearForward_Eval(t *testing.T) {
	fam, err := NewNormalFamily([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewNormalFamily: %v", err)
	}
	a := mat.NewDense(2, 1, []float64{1, 2})
	fwd, err := NewLinearForward(a, []float64{0.5, -0.5}, fam)
	if err != nil {
		t.Fatalf("NewLinearForward: %v", err)
	}

	if fwd.ParamDim() != 1 {
		t.Fatalf("ParamDim = %d, want 1", fwd.ParamDim())
	}
	if fwd.DataDim() != 2 {
		t.Fatalf("DataDim = %d, want 2", fwd.DataDim())
	}

	dist, err := fwd.Eval([]float64{2})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	normal, ok := dist.(*IndependentNormal)
	if !ok {
		t.Fatalf("Eval returned %T, want *IndependentNormal", dist)
	}
	wantMean := []float64{2.5, 3.5}
	for i, m := range normal.Mean() {
		if math.Abs(m-wantMean[i]) > 1e-15 {
			t.Errorf("mean[%d] = %v, want %v", i, m, wantMean[i])
		}
	}
}

func TestLinearForward_Linearize(t *testing.T) {
	fam, err := NewNormalFamily([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewNormalFamily: %v", err)
	}
	a := mat.NewDense(2, 1, []float64{1, 2})
	fwd, err := NewLinearForward(a, nil, fam)
	if err != nil {
		t.Fatalf("NewLinearForward: %v", err)
	}

	jac, err := fwd.Linearize([]float64{7})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	out := make([]float64, 2)
	jac.Apply(out, []float64{3})
	want := []float64{3, 6}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-15 {
			t.Errorf("J·x[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	back := make([]float64, 1)
	jac.ApplyT(back, []float64{1, 1})
	if math.Abs(back[0]-3) > 1e-15 {
		t.Errorf("Jᵀ·y = %v, want 3", back[0])
	}
}

func TestLinearForward_Validation(t *testing.T) {
	fam, err := NewNormalFamily([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewNormalFamily: %v", err)
	}
	wrongRows := mat.NewDense(3, 1, nil)
	if _, err := NewLinearForward(wrongRows, nil, fam); err == nil {
		t.Error("expected error for row count mismatching family dimension")
	}
	a := mat.NewDense(2, 1, []float64{1, 2})
	if _, err := NewLinearForward(a, []float64{1}, fam); err == nil {
		t.Error("expected error for short offset")
	}

	fwd, err := NewLinearForward(a, nil, fam)
	if err != nil {
		t.Fatalf("NewLinearForward: %v", err)
	}
	if _, err := fwd.Eval([]float64{1, 2}); err == nil {
		t.Error("expected error for wrong parameter count")
	}
	if _, err := fwd.Linearize([]float64{1, 2}); err == nil {
		t.Error("expected error for wrong parameter count in Linearize")
	}
}

func TestFuncForward_EvalAndLinearize(t *testing.T) {
	fam, err := NewPoissonFamily(1)
	if err != nil {
		t.Fatalf("NewPoissonFamily: %v", err)
	}
	fwd, err := NewFuncForward(2, fam,
		func(dst, params []float64) error {
			dst[0] = params[0]*params[0] + params[1]
			return nil
		},
		func(params []float64) (linalg.Jacobian, error) {
			p0 := params[0]
			return linalg.NewFuncJacobian(1, 2,
				func(dst, x []float64) { dst[0] = 2*p0*x[0] + x[1] },
				func(dst, y []float64) { dst[0], dst[1] = 2*p0*y[0], y[0] },
			), nil
		},
	)
	if err != nil {
		t.Fatalf("NewFuncForward: %v", err)
	}

	dist, err := fwd.Eval([]float64{1, 2})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	counts, ok := dist.(*PoissonCounts)
	if !ok {
		t.Fatalf("Eval returned %T, want *PoissonCounts", dist)
	}
	if got := counts.Rates()[0]; math.Abs(got-3) > 1e-15 {
		t.Errorf("rate = %v, want 3", got)
	}

	jac, err := fwd.Linearize([]float64{1, 2})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	out := make([]float64, 1)
	jac.Apply(out, []float64{1, 1})
	if math.Abs(out[0]-3) > 1e-15 {
		t.Errorf("J·x = %v, want 3", out[0])
	}
}

func TestFuncForward_NoJacobian(t *testing.T) {
	fam, err := NewPoissonFamily(1)
	if err != nil {
		t.Fatalf("NewPoissonFamily: %v", err)
	}
	fwd, err := NewFuncForward(1, fam,
		func(dst, params []float64) error {
			dst[0] = math.Exp(params[0])
			return nil
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewFuncForward: %v", err)
	}
	if _, err := fwd.Linearize([]float64{0}); err == nil {
		t.Error("expected error when no jacobian closure was provided")
	}
}

func TestFuncForward_Validation(t *testing.T) {
	fam, err := NewPoissonFamily(1)
	if err != nil {
		t.Fatalf("NewPoissonFamily: %v", err)
	}
	if _, err := NewFuncForward(0, fam, func(dst, params []float64) error { return nil }, nil); err == nil {
		t.Error("expected error for non-positive parameter dimension")
	}
	if _, err := NewFuncForward(1, fam, nil, nil); err == nil {
		t.Error("expected error for nil moment map")
	}
}

func TestMultivariateNormal_Metric(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{2, 1, 1, 2})
	fam, err := NewMultivariateNormalFamily(cov)
	if err != nil {
		t.Fatalf("NewMultivariateNormalFamily: %v", err)
	}
	dist, err := fam.At([]float64{0, 0})
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	// det = 3, precision = [[2,-1],[-1,2]]/3, quad form at (1,1) is 2/3.
	got := dist.LogDensity([]float64{1, 1})
	want := -0.5 * (2*math.Log(2*math.Pi) + math.Log(3) + 2.0/3.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("LogDensity = %v, want %v", got, want)
	}

	metric, ok := dist.(Metric)
	if !ok {
		t.Fatal("MultivariateNormal should implement Metric")
	}

	out := make([]float64, 2)
	metric.Fisher().Apply(out, []float64{1, 0})
	wantCol := []float64{2.0 / 3.0, -1.0 / 3.0}
	for i := range wantCol {
		if math.Abs(out[i]-wantCol[i]) > 1e-12 {
			t.Errorf("Fisher column[%d] = %v, want %v", i, out[i], wantCol[i])
		}
	}

	score := metric.Score([]float64{1, 1})
	for i := range score {
		if math.Abs(score[i]-1.0/3.0) > 1e-12 {
			t.Errorf("Score[%d] = %v, want 1/3", i, score[i])
		}
	}

	// L·Lᵀ must reproduce the precision matrix.
	sqrt := metric.FisherSqrt()
	l := mat.NewDense(2, 2, nil)
	col := make([]float64, 2)
	basis := make([]float64, 2)
	for j := 0; j < 2; j++ {
		basis[0], basis[1] = 0, 0
		basis[j] = 1
		sqrt.Apply(col, basis)
		l.SetCol(j, col)
	}
	var prod mat.Dense
	prod.Mul(l, l.T())
	wantPrec := [][]float64{
		{2.0 / 3.0, -1.0 / 3.0},
		{-1.0 / 3.0, 2.0 / 3.0},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(prod.At(i, j)-wantPrec[i][j]) > 1e-12 {
				t.Errorf("L·Lᵀ[%d,%d] = %v, want %v", i, j, prod.At(i, j), wantPrec[i][j])
			}
		}
	}
}

func TestMultivariateNormalFamily_RejectsBadCovariance(t *testing.T) {
	notSPD := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	if _, err := NewMultivariateNormalFamily(notSPD); err == nil {
		t.Error("expected error for indefinite covariance")
	}

	cov := mat.NewSymDense(2, []float64{2, 1, 1, 2})
	fam, err := NewMultivariateNormalFamily(cov)
	if err != nil {
		t.Fatalf("NewMultivariateNormalFamily: %v", err)
	}
	if _, err := fam.At([]float64{1}); err == nil {
		t.Error("expected error for wrong moment count")
	}
	if _, err := fam.At([]float64{1, math.Inf(1)}); err == nil {
		t.Error("expected error for infinite mean")
	}
}
