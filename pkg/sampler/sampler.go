// Package sampler renders single pixel cells with adaptive importance
// sampling.
//
// A cell starts with MinTrials random seeds. Every time a longer escaping
// orbit turns up, the trial budget grows with the square of its length, and
// a cell that produces both escaping and bounded seeds sits on the set's
// boundary and gets MaxTrials outright. All trials of a cell share the weight
// 1/Required, so a cell deposits at most one unit per escaping trial no
// matter how many trials it took.
package sampler

import (
	"math/rand"

	"github.com/willbeason/buddhabrot/pkg/histogram"
	"github.com/willbeason/buddhabrot/pkg/plane"
	"github.com/willbeason/buddhabrot/pkg/trajectory"
)

// MinTrials is the number of trials every cell receives.
const MinTrials = 5

// Budget is the trial bookkeeping for one cell.
type Budget struct {
	// Required is the number of trials the cell has earned so far.
	Required int
	// MaxPath is the longest escape time seen, or -1 before any escape.
	MaxPath int

	Escaped int
	Bounded int

	minTrials, maxTrials int
}

func newBudget(minTrials, maxTrials int) Budget {
	return Budget{
		Required:  min(minTrials, maxTrials),
		MaxPath:   -1,
		minTrials: minTrials,
		maxTrials: maxTrials,
	}
}

// Straddles reports whether the cell has produced both escaping and bounded
// seeds.
func (b Budget) Straddles() bool {
	return b.Escaped > 0 && b.Bounded > 0
}

// observe folds one trial into the budget. Required never shrinks and never
// exceeds maxTrials.
func (b *Budget) observe(r trajectory.Result) {
	if r.Escaped {
		b.Escaped++
		if r.Time > b.MaxPath {
			b.MaxPath = r.Time
			b.Required = max(b.Required, min(b.maxTrials, b.importance(r.Time)))
		}
	} else {
		b.Bounded++
	}

	if b.Straddles() {
		b.Required = b.maxTrials
	}
}

// importance is the trial count earned by an escape of the given length.
func (b *Budget) importance(path int) int {
	// Saturate before squaring so huge iteration caps cannot overflow.
	const limit = 1 << 20
	if path > limit {
		path = limit
	}
	return b.minTrials + 2*path*path
}

// A Sampler renders cells into a histogram.
type Sampler struct {
	Iterator  trajectory.Iterator
	MinTrials int
	MaxTrials int

	// Window maps orbit points to pixels of the histogram.
	Window plane.Window

	seeds    []complex128
	outcomes []trajectory.Result
	orbit    []complex128
}

func New(it trajectory.Iterator, maxTrials int, window plane.Window) *Sampler {
	return &Sampler{
		Iterator:  it,
		MinTrials: MinTrials,
		MaxTrials: maxTrials,
		Window:    window,
	}
}

// grow sizes the scratch space. Only the seed and outcome of each trial are
// kept; escaping orbits are run again once the cell's weight is known, so
// memory does not scale with MaxTrials * Iterations.
func (s *Sampler) grow() {
	if len(s.seeds) != s.MaxTrials {
		s.seeds = make([]complex128, s.MaxTrials)
		s.outcomes = make([]trajectory.Result, s.MaxTrials)
	}
	if len(s.orbit) != s.Iterator.Iterations {
		s.orbit = make([]complex128, s.Iterator.Iterations)
	}
}

// Sample renders the cell b into h and returns the cell's final budget.
func (s *Sampler) Sample(b plane.Bounds, h *histogram.Histogram, rng *rand.Rand) Budget {
	s.grow()

	budget := newBudget(s.MinTrials, s.MaxTrials)

	trial := 0
	for ; trial < budget.Required; trial++ {
		c := b.Point(rng.Float64(), rng.Float64())

		r := s.Iterator.Run(c, s.orbit)
		r.Path = nil
		s.seeds[trial] = c
		s.outcomes[trial] = r

		budget.observe(r)
	}

	if budget.Escaped == 0 {
		return budget
	}

	weight := 1.0 / float64(budget.Required)
	for i, r := range s.outcomes[:trial] {
		if !r.Escaped || r.Time == 0 {
			continue
		}

		// The recurrence is pure, so the replay visits the same points.
		replay := s.Iterator.Run(s.seeds[i], s.orbit)
		for _, z := range replay.Path {
			row, col, ok := s.Window.Pixel(z)
			if !ok {
				continue
			}
			h.Add(row, col, weight)
		}
	}

	return budget
}
