// Package metrics folds a lamp's telemetry stream into single numbers for
// run summaries and stored sessions.
package metrics

import "github.com/solhav/moodlamp/internal/engine"

// Metric consumes one telemetry snapshot per tick and reports a scalar.
type Metric interface {
	Name() string
	Observe(tel engine.Telemetry)
	Value() float64
	Reset()
}

// MeanEnergy averages the energy level across the observed window.
type MeanEnergy struct {
	sum float64
	n   int
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{}
}

func (m *MeanEnergy) Name() string {
	return "mean_energy"
}

func (m *MeanEnergy) Observe(tel engine.Telemetry) {
	m.sum += tel.Energy
	m.n++
}

func (m *MeanEnergy) Value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

func (m *MeanEnergy) Reset() {
	m.sum = 0
	m.n = 0
}

// PeakTurbulence keeps the hottest turbulence seen.
type PeakTurbulence struct {
	max float64
}

func NewPeakTurbulence() *PeakTurbulence {
	return &PeakTurbulence{}
}

func (m *PeakTurbulence) Name() string {
	return "peak_turbulence"
}

func (m *PeakTurbulence) Observe(tel engine.Telemetry) {
	if tel.Turbulence > m.max {
		m.max = tel.Turbulence
	}
}

func (m *PeakTurbulence) Value() float64 {
	return m.max
}

func (m *PeakTurbulence) Reset() {
	m.max = 0
}

// TopologyChurn reports merge plus split events per observed frame. The
// engine's counters are cumulative, so attach this from the first tick.
type TopologyChurn struct {
	events int
	frames int
}

func NewTopologyChurn() *TopologyChurn {
	return &TopologyChurn{}
}

func (m *TopologyChurn) Name() string {
	return "topology_churn"
}

func (m *TopologyChurn) Observe(tel engine.Telemetry) {
	m.events = tel.Merges + tel.Splits
	m.frames++
}

func (m *TopologyChurn) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return float64(m.events) / float64(m.frames)
}

func (m *TopologyChurn) Reset() {
	m.events = 0
	m.frames = 0
}

// Defaults returns the stock metric set recorders attach.
func Defaults() []Metric {
	return []Metric{NewMeanEnergy(), NewPeakTurbulence(), NewTopologyChurn()}
}
