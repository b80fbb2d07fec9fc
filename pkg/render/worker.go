package render

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/willbeason/buddhabrot/pkg/histogram"
	"github.com/willbeason/buddhabrot/pkg/plane"
	"github.com/willbeason/buddhabrot/pkg/sampler"
	"github.com/willbeason/buddhabrot/pkg/trajectory"
)

// Stats summarizes the work done by one worker.
type Stats struct {
	Worker    int           `json:"worker"`
	Rows      int           `json:"rows"`
	Cells     int           `json:"cells"`
	Trials    int           `json:"trials"`
	Escaped   int           `json:"escaped"`
	Straddles int           `json:"straddles"`
	Duration  time.Duration `json:"duration"`
}

func (s *Stats) add(b sampler.Budget) {
	s.Cells++
	s.Trials += b.Required
	s.Escaped += b.Escaped
	if b.Straddles() {
		s.Straddles++
	}
}

// A Worker renders a stripe of rows into its own Histogram. Nothing a Worker
// touches is shared, so workers never synchronize during a render.
type Worker struct {
	ID        int
	Rows      []int
	Histogram *histogram.Histogram
	Stats     Stats

	window  plane.Window
	sampler *sampler.Sampler
	rng     *rand.Rand
}

// NewWorker builds worker id of cfg.Workers. cfg must be valid.
func NewWorker(id int, cfg Config) *Worker {
	cfg = cfg.withDefaults()

	it := trajectory.New(cfg.Iterations)
	it.EscapeRadius2 = cfg.EscapeRadius2

	return &Worker{
		ID:        id,
		Rows:      Rows(id, cfg.Workers, cfg.Size),
		Histogram: histogram.New(cfg.Size),
		Stats:     Stats{Worker: id},
		window:    cfg.Window,
		sampler:   sampler.New(it, cfg.MaxSamples, cfg.Window),
		rng:       rand.New(rand.NewSource(cfg.Seed(id))),
	}
}

// Render visits the worker's rows top to bottom and every column left to
// right. ctx is checked once per row; a cancelled render returns ctx.Err()
// and the histogram must be discarded.
func (w *Worker) Render(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		// A worker that dies mid-stripe must take the whole render down
		// rather than hand back a partial histogram.
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d: %v", w.ID, r)
		}
	}()

	for _, row := range w.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		for col := 0; col < w.window.Size; col++ {
			b := w.sampler.Sample(w.window.Cell(row, col), w.Histogram, w.rng)
			w.Stats.add(b)
		}
		w.Stats.Rows++
	}

	w.Stats.Duration = time.Since(start)
	Logger().Debug("worker finished",
		"worker", w.ID,
		"rows", w.Stats.Rows,
		"cells", w.Stats.Cells,
		"trials", w.Stats.Trials,
		"escaped", w.Stats.Escaped,
		"straddles", w.Stats.Straddles,
		"duration", w.Stats.Duration)

	return nil
}
