package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/solhav/moodlamp/internal/engine"
)

// Ensemble replays the same run across consecutive seeds, one goroutine per
// seed. Recordings come back indexed by seed offset, so recs[i] belongs to
// seedStart+i.
type Ensemble struct {
	build     func(seed int64) (*engine.Engine, error)
	runs      int
	seedStart int64
}

// NewEnsemble returns an ensemble over runs seeds starting at seedStart.
// build must return a fresh engine for the given seed; engines are not
// reusable across runs because their sources carry clocks.
func NewEnsemble(build func(seed int64) (*engine.Engine, error), runs int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, runs: runs, seedStart: seedStart}
}

// Run records every seed and returns all recordings, or the first error.
func (e *Ensemble) Run(ctx context.Context, frames int, dt float64) ([]*Recording, error) {
	if e.runs <= 0 {
		return nil, fmt.Errorf("session: ensemble needs at least one run, got %d", e.runs)
	}

	recs := make([]*Recording, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			eng, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			recs[idx], errs[idx] = NewRecorder(eng).Run(ctx, frames, dt)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return recs, nil
}

// MetricSpread summarizes one metric across an ensemble.
type MetricSpread struct {
	Mean float64
	Min  float64
	Max  float64
}

// Spread aggregates each metric over the recordings that carry it.
func Spread(recs []*Recording) map[string]MetricSpread {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	out := make(map[string]MetricSpread)

	for _, rec := range recs {
		for name, val := range rec.Metrics {
			s, ok := out[name]
			if !ok {
				s = MetricSpread{Min: val, Max: val}
			}
			if val < s.Min {
				s.Min = val
			}
			if val > s.Max {
				s.Max = val
			}
			out[name] = s
			sums[name] += val
			counts[name]++
		}
	}

	for name, s := range out {
		s.Mean = sums[name] / float64(counts[name])
		out[name] = s
	}

	return out
}
