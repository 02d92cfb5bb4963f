package model

import (
	"math"
	"testing"
)

func TestNormalFamily_At(t *testing.T) {
	fam, err := NewNormalFamily([]float64{2, 2})
	if err != nil {
		t.Fatalf("NewNormalFamily: %v", err)
	}
	if fam.DataDim() != 2 {
		t.Fatalf("DataDim = %d, want 2", fam.DataDim())
	}

	dist, err := fam.At([]float64{1, 3})
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	got := dist.LogDensity([]float64{2, 2})
	want := -2*(math.Log(2)+0.5*math.Log(2*math.Pi)) - 0.25
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("LogDensity = %v, want %v", got, want)
	}
}

func TestNormalFamily_RejectsBadInput(t *testing.T) {
	if _, err := NewNormalFamily([]float64{2, 0}); err == nil {
		t.Error("expected error for zero standard deviation")
	}
	if _, err := NewNormalFamily([]float64{2, -1}); err == nil {
		t.Error("expected error for negative standard deviation")
	}
	if _, err := NewNormalFamily(nil); err == nil {
		t.Error("expected error for empty sigma")
	}

	fam, err := NewNormalFamily([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewNormalFamily: %v", err)
	}
	if _, err := fam.At([]float64{1}); err == nil {
		t.Error("expected error for wrong moment count")
	}
	if _, err := fam.At([]float64{1, math.NaN()}); err == nil {
		t.Error("expected error for NaN mean")
	}
}

func TestIndependentNormal_Metric(t *testing.T) {
	fam, err := NewNormalFamily([]float64{2, 2})
	if err != nil {
		t.Fatalf("NewNormalFamily: %v", err)
	}
	dist, err := fam.At([]float64{1, 3})
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	metric, ok := dist.(Metric)
	if !ok {
		t.Fatal("IndependentNormal should implement Metric")
	}

	// Fisher for a fixed-sigma normal is 1/sigma^2 per coordinate.
	fisher := metric.Fisher()
	out := make([]float64, 2)
	fisher.Apply(out, []float64{1, 1})
	for i, v := range out {
		if math.Abs(v-0.25) > 1e-15 {
			t.Errorf("Fisher[%d] = %v, want 0.25", i, v)
		}
	}

	sqrt := metric.FisherSqrt()
	sqrt.Apply(out, []float64{1, 1})
	for i, v := range out {
		if math.Abs(v-0.5) > 1e-15 {
			t.Errorf("FisherSqrt[%d] = %v, want 0.5", i, v)
		}
	}

	score := metric.Score([]float64{2, 2})
	wantScore := []float64{0.25, -0.25}
	for i := range wantScore {
		if math.Abs(score[i]-wantScore[i]) > 1e-15 {
			t.Errorf("Score[%d] = %v, want %v", i, score[i], wantScore[i])
		}
	}
}

func TestIndependentNormal_DimensionPanics(t *testing.T) {
	fam, err := NewNormalFamily([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewNormalFamily: %v", err)
	}
	dist, err := fam.At([]float64{0, 0})
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched data length")
		}
	}()
	dist.LogDensity([]float64{1})
}
