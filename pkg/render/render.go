// Package render estimates the Buddhabrot density of a square window.
//
// The image is split into row stripes, one per worker. Each worker samples
// every pixel cell of its stripe into a private histogram, and once all
// workers have joined the histograms are summed.
package render

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/willbeason/buddhabrot/pkg/histogram"
)

// Result is a finished render.
type Result struct {
	Config    Config
	Histogram *histogram.Histogram
	Workers   []Stats
	Duration  time.Duration
}

// Trials is the number of orbits run across all workers.
func (r *Result) Trials() int {
	n := 0
	for _, s := range r.Workers {
		n += s.Trials
	}
	return n
}

// newWorker is replaced in tests to inject failing workers.
var newWorker = NewWorker

// Render runs cfg to completion. If any worker fails or ctx is cancelled the
// whole render fails and no histogram is returned.
func Render(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	Logger().Info("render started",
		"size", cfg.Size,
		"iterations", cfg.Iterations,
		"workers", cfg.Workers,
		"max_samples", cfg.MaxSamples,
		"mirror", cfg.Mirror)

	start := time.Now()

	workers := make([]*Worker, cfg.Workers)
	for i := range workers {
		workers[i] = newWorker(i, cfg)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		g.Go(func() error {
			return w.Render(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	hs := make([]*histogram.Histogram, len(workers))
	stats := make([]Stats, len(workers))
	for i, w := range workers {
		hs[i] = w.Histogram
		stats[i] = w.Stats
	}

	merged, err := histogram.Sum(cfg.Mirror, hs...)
	if err != nil {
		return nil, fmt.Errorf("merging histograms: %w", err)
	}

	result := &Result{
		Config:    cfg,
		Histogram: merged,
		Workers:   stats,
		Duration:  time.Since(start),
	}

	lo, hi := merged.MinMax()
	Logger().Info("render finished",
		"trials", result.Trials(),
		"min", lo,
		"max", hi,
		"duration", result.Duration)

	return result, nil
}
