// Package session records lamp runs and persists them to disk as per-run
// directories holding metadata and a frame table.
package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/solhav/moodlamp/internal/engine"
	"github.com/solhav/moodlamp/internal/metrics"
)

// Frame is one tick of telemetry flattened for storage.
type Frame struct {
	Time       float64 `json:"time"`
	Valence    float64 `json:"valence"`
	Arousal    float64 `json:"arousal"`
	Dominance  float64 `json:"dominance"`
	Energy     float64 `json:"energy"`
	Blobs      int     `json:"blobs"`
	Turbulence float64 `json:"turbulence"`
	GravityX   float64 `json:"gravity_x"`
	Merges     int     `json:"merges"`
	Splits     int     `json:"splits"`
}

// Recording holds the frames of a run plus its summary metrics.
type Recording struct {
	Frames  []Frame
	Metrics map[string]float64
}

var columnSelectors = map[string]func(Frame) float64{
	"time":       func(f Frame) float64 { return f.Time },
	"valence":    func(f Frame) float64 { return f.Valence },
	"arousal":    func(f Frame) float64 { return f.Arousal },
	"dominance":  func(f Frame) float64 { return f.Dominance },
	"energy":     func(f Frame) float64 { return f.Energy },
	"blobs":      func(f Frame) float64 { return float64(f.Blobs) },
	"turbulence": func(f Frame) float64 { return f.Turbulence },
	"gravity_x":  func(f Frame) float64 { return f.GravityX },
	"merges":     func(f Frame) float64 { return float64(f.Merges) },
	"splits":     func(f Frame) float64 { return float64(f.Splits) },
}

// Columns lists the series names a recording exposes, sorted.
func Columns() []string {
	names := make([]string, 0, len(columnSelectors))
	for name := range columnSelectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column extracts one named series from the frames.
func (r *Recording) Column(name string) ([]float64, error) {
	sel, ok := columnSelectors[name]
	if !ok {
		return nil, fmt.Errorf("session: unknown column %q", name)
	}
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = sel(f)
	}
	return out, nil
}

// Duration returns the simulated time covered by the recording.
func (r *Recording) Duration() float64 {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Time
}

// Recorder drives an engine for a fixed number of frames and collects
// telemetry plus summary metrics.
type Recorder struct {
	eng  *engine.Engine
	mset []metrics.Metric
}

// NewRecorder wraps eng with the stock metric set attached.
func NewRecorder(eng *engine.Engine) *Recorder {
	return &Recorder{eng: eng, mset: metrics.Defaults()}
}

// AddMetric registers an extra summary metric for subsequent runs.
func (r *Recorder) AddMetric(m metrics.Metric) {
	r.mset = append(r.mset, m)
}

// Run ticks the engine frames times at a fixed dt. Cancelling the context
// aborts a long recording early; whatever was captured comes back alongside
// the error.
func (r *Recorder) Run(ctx context.Context, frames int, dt float64) (*Recording, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("session: frames must be positive, got %d", frames)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("session: dt must be positive, got %f", dt)
	}

	rec := &Recording{
		Frames:  make([]Frame, 0, frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.mset {
		m.Reset()
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		default:
		}

		if _, err := r.eng.Tick(dt); err != nil {
			return rec, fmt.Errorf("session: frame %d: %w", i, err)
		}

		tel := r.eng.Telemetry()
		for _, m := range r.mset {
			m.Observe(tel)
		}
		rec.Frames = append(rec.Frames, frameOf(tel))
	}

	for _, m := range r.mset {
		rec.Metrics[m.Name()] = m.Value()
	}

	return rec, nil
}

func frameOf(tel engine.Telemetry) Frame {
	return Frame{
		Time:       tel.Elapsed,
		Valence:    tel.Smoothed.Valence,
		Arousal:    tel.Smoothed.Arousal,
		Dominance:  tel.Smoothed.Dominance,
		Energy:     tel.Energy,
		Blobs:      tel.BlobCount,
		Turbulence: tel.Turbulence,
		GravityX:   tel.GravityX,
		Merges:     tel.Merges,
		Splits:     tel.Splits,
	}
}
