package xrfthick

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// AnalyzeAll analyzes samples on a pool of workers and returns one result per
// sample, in input order. Samples are independent; a failure is recorded in
// that sample's Err and the batch continues. Samples not started before ctx
// is done carry ctx.Err().
//
// workers <= 0 uses GOMAXPROCS.
func (a *Analyzer) AnalyzeAll(ctx context.Context, samples []Sample, workers int) []SampleResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(samples) {
		workers = len(samples)
	}

	results := make([]SampleResult, len(samples))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Each worker writes only its own indices.
				results[i], _ = a.Analyze(samples[i])
			}
		}()
	}

	next := 0
feed:
	for ; next < len(samples); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(samples); i++ {
		results[i] = SampleResult{
			Name:         samples[i].Name,
			Measurements: append([]Point(nil), samples[i].Measurements...),
			Err:          fmt.Errorf("sample %s: %w", samples[i].Name, ctx.Err()),
		}
	}

	a.logger.Debug("batch finished", "samples", len(samples), "workers", workers, "dispatched", next)
	return results
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	ByKind    map[ErrorKind]int
}

// Summarize tallies results by outcome and error kind.
func Summarize(results []SampleResult) BatchSummary {
	s := BatchSummary{Total: len(results), ByKind: make(map[ErrorKind]int)}
	for _, r := range results {
		if r.OK() {
			s.Succeeded++
			continue
		}
		s.Failed++
		s.ByKind[Classify(r.Err)]++
	}
	return s
}

// String renders a one-line summary.
func (s BatchSummary) String() string {
	return fmt.Sprintf("%d samples: %d fitted, %d failed", s.Total, s.Succeeded, s.Failed)
}
