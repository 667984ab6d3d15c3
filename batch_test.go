package xrfthick

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
)

func batchSamples(t *testing.T, n int) ([]Sample, []float64) {
	t.Helper()
	model := referenceModel(t)
	samples := make([]Sample, n)
	truths := make([]float64, n)
	for i := range samples {
		truths[i] = float64(i+1) * 0.1 * Micrometre
		samples[i] = Sample{
			Name:         fmt.Sprintf("S%02d", i),
			Coating:      zrtiv,
			Measurements: synthesize(t, model, referenceAngles, truths[i], 1),
		}
	}
	return samples, truths
}

func TestAnalyzeAll_PreservesOrder(t *testing.T) {
	a := referenceAnalyzer(t)
	samples, truths := batchSamples(t, 20)

	for _, workers := range []int{0, 1, 4, 64} {
		results := a.AnalyzeAll(context.Background(), samples, workers)
		if len(results) != len(samples) {
			t.Fatalf("workers=%d: %d results for %d samples", workers, len(results), len(samples))
		}
		for i, r := range results {
			if r.Name != samples[i].Name {
				t.Errorf("workers=%d: result %d is %s, expected %s", workers, i, r.Name, samples[i].Name)
			}
			if !r.OK() {
				t.Errorf("workers=%d: %s failed: %v", workers, r.Name, r.Err)
				continue
			}
			if math.Abs(r.Fit.Thickness-truths[i]) > 1e-6*truths[i] {
				t.Errorf("workers=%d: %s fitted %g, expected %g", workers, r.Name, r.Fit.Thickness, truths[i])
			}
		}
	}

	t.Logf("✓ %d samples analyzed in order across worker counts", len(samples))
}

func TestAnalyzeAll_IsolatesFailures(t *testing.T) {
	a := referenceAnalyzer(t)
	samples, _ := batchSamples(t, 5)
	samples[1].Measurements = samples[1].Measurements[:1]
	samples[3].Coating = Composition{}

	results := a.AnalyzeAll(context.Background(), samples, 3)

	for i, r := range results {
		switch i {
		case 1:
			if !errors.Is(r.Err, ErrInsufficientData) {
				t.Errorf("Sample 1: expected ErrInsufficientData, got %v", r.Err)
			}
		case 3:
			if !errors.Is(r.Err, ErrEmptyComposition) {
				t.Errorf("Sample 3: expected ErrEmptyComposition, got %v", r.Err)
			}
		default:
			if !r.OK() {
				t.Errorf("Sample %d failed: %v", i, r.Err)
			}
		}
	}

	s := Summarize(results)
	if s.Total != 5 || s.Succeeded != 3 || s.Failed != 2 {
		t.Errorf("Summary %+v, expected 5/3/2", s)
	}
	if s.ByKind[KindData] != 1 || s.ByKind[KindComposition] != 1 {
		t.Errorf("ByKind %v", s.ByKind)
	}
	if s.String() != "5 samples: 3 fitted, 2 failed" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestAnalyzeAll_Cancelled(t *testing.T) {
	a := referenceAnalyzer(t)
	samples, _ := batchSamples(t, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := a.AnalyzeAll(ctx, samples, 2)
	if len(results) != len(samples) {
		t.Fatalf("%d results for %d samples", len(results), len(samples))
	}
	for i, r := range results {
		if r.Name != samples[i].Name {
			t.Errorf("Result %d is %s, expected %s", i, r.Name, samples[i].Name)
		}
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", r.Name, r.Err)
		}
	}

	if s := Summarize(results); s.ByKind[KindCancellation] != len(samples) {
		t.Errorf("ByKind %v, expected %d cancellations", s.ByKind, len(samples))
	}
}

func TestAnalyzeAll_Empty(t *testing.T) {
	a := referenceAnalyzer(t)
	if results := a.AnalyzeAll(context.Background(), nil, 4); len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}
