package grad

import (
	"math"
	"testing"
)

func quadratic(x []float64) float64 {
	return x[0]*x[0] + 3*x[1]
}

func TestFiniteDifference_Gradient(t *testing.T) {
	var m FiniteDifference

	got := m.Gradient(nil, quadratic, []float64{2, 1})
	want := []float64{4, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-8 {
			t.Errorf("grad[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFiniteDifference_FillsDst(t *testing.T) {
	var m FiniteDifference

	dst := make([]float64, 2)
	got := m.Gradient(dst, quadratic, []float64{2, 1})
	if &got[0] != &dst[0] {
		t.Error("Gradient should fill the provided slice")
	}
	if math.Abs(dst[0]-4) > 1e-8 || math.Abs(dst[1]-3) > 1e-8 {
		t.Errorf("dst = %v, want [4 3]", dst)
	}
}

func TestFiller(t *testing.T) {
	fill := Filler(quadratic, FiniteDifference{})

	grad := make([]float64, 2)
	fill(grad, []float64{2, 1})
	if math.Abs(grad[0]-4) > 1e-8 || math.Abs(grad[1]-3) > 1e-8 {
		t.Errorf("grad = %v, want [4 3]", grad)
	}
}
