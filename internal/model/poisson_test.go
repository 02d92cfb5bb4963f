package model

import (
	"math"
	"testing"
)

func TestPoissonFamily_At(t *testing.T) {
	fam, err := NewPoissonFamily(2)
	if err != nil {
		t.Fatalf("NewPoissonFamily: %v", err)
	}

	dist, err := fam.At([]float64{2, 4})
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	got := dist.LogDensity([]float64{1, 3})
	want := (1*math.Log(2) - 2) + (3*math.Log(4) - 4 - math.Log(6))
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("LogDensity = %v, want %v", got, want)
	}
}

func TestPoissonCounts_OutsideSupport(t *testing.T) {
	fam, err := NewPoissonFamily(2)
	if err != nil {
		t.Fatalf("NewPoissonFamily: %v", err)
	}
	dist, err := fam.At([]float64{2, 4})
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	if got := dist.LogDensity([]float64{-1, 3}); !math.IsInf(got, -1) {
		t.Errorf("LogDensity of negative count = %v, want -Inf", got)
	}
	if got := dist.LogDensity([]float64{1.5, 3}); !math.IsInf(got, -1) {
		t.Errorf("LogDensity of fractional count = %v, want -Inf", got)
	}
}

func TestPoissonFamily_RejectsBadRates(t *testing.T) {
	if _, err := NewPoissonFamily(0); err == nil {
		t.Error("expected error for zero dimension")
	}

	fam, err := NewPoissonFamily(2)
	if err != nil {
		t.Fatalf("NewPoissonFamily: %v", err)
	}
	for _, rates := range [][]float64{
		{0, 1},
		{-2, 1},
		{math.NaN(), 1},
		{math.Inf(1), 1},
		{1, 2, 3},
	} {
		if _, err := fam.At(rates); err == nil {
			t.Errorf("expected error for rates %v", rates)
		}
	}
}

func TestPoissonCounts_Metric(t *testing.T) {
	fam, err := NewPoissonFamily(2)
	if err != nil {
		t.Fatalf("NewPoissonFamily: %v", err)
	}
	dist, err := fam.At([]float64{2, 4})
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	metric, ok := dist.(Metric)
	if !ok {
		t.Fatal("PoissonCounts should implement Metric")
	}

	out := make([]float64, 2)
	metric.Fisher().Apply(out, []float64{1, 1})
	wantFisher := []float64{0.5, 0.25}
	for i := range wantFisher {
		if math.Abs(out[i]-wantFisher[i]) > 1e-15 {
			t.Errorf("Fisher[%d] = %v, want %v", i, out[i], wantFisher[i])
		}
	}

	// The square root squares back to the Fisher diagonal.
	metric.FisherSqrt().Apply(out, []float64{1, 1})
	for i := range wantFisher {
		if math.Abs(out[i]*out[i]-wantFisher[i]) > 1e-15 {
			t.Errorf("FisherSqrt[%d]^2 = %v, want %v", i, out[i]*out[i], wantFisher[i])
		}
	}

	score := metric.Score([]float64{1, 3})
	wantScore := []float64{-0.5, -0.25}
	for i := range wantScore {
		if math.Abs(score[i]-wantScore[i]) > 1e-15 {
			t.Errorf("Score[%d] = %v, want %v", i, score[i], wantScore[i])
		}
	}
}
