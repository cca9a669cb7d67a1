// Package audio gives the lamp a voice: an output-only ambient pad whose
// chord, breathing rate and brightness follow the emotional state.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// The pad crossfades between two stacked voicings: a minor-seventh cluster
// for low valence and a brighter add9 voicing for high valence.
var (
	darkChord   = []float64{98.00, 116.54, 146.83, 174.61, 220.00}
	brightChord = []float64{98.00, 123.47, 146.83, 196.00, 246.94}
)

// Synth renders the ambient pad into a portaudio output stream. Construct
// with NewSynth, feed it with SetMood from the frame loop.
type Synth struct {
	stream *portaudio.Stream

	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	mu      sync.Mutex
	valence float64 // normalized [0,1]
	arousal float64 // normalized [0,1]
	energy  float64

	energySmooth float64

	Active bool
}

func NewSynth() *Synth {
	// 0.6 seconds of cross-fed delay reads as a large, soft room.
	delayLen := int(float64(SampleRate) * 0.6)
	return &Synth{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Start opens the default output device. Output only: duplex streams are
// fragile across Linux audio setups.
func (s *Synth) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.render)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	s.stream = stream
	s.Active = true
	return nil
}

func (s *Synth) Stop() {
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
		s.stream = nil
	}
	portaudio.Terminate()
	s.Active = false
}

// SetMood hands the render callback fresh normalized valence and arousal
// plus the raw energy level. Safe to call while the stream runs.
func (s *Synth) SetMood(nv, na, energy float64) {
	s.mu.Lock()
	s.valence = nv
	s.arousal = na
	s.energy = energy
	s.mu.Unlock()
}

// Triangle wave: smooth, flute-like, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (s *Synth) render(out [][]float32) {
	s.mu.Lock()
	nv, na, energy := s.valence, s.arousal, s.energy
	s.mu.Unlock()

	// Slow morph so mood jumps never click.
	s.energySmooth = s.energySmooth*0.995 + energy*0.005

	// Energy opens the filter: 300 Hz at rest, 1200 Hz saturated.
	cutoff := 300.0 + math.Min(s.energySmooth*120.0, 900.0)
	lfoRate := 0.1 + na*0.5
	dt := 1.0 / float64(SampleRate)
	vol := 0.252

	for i := 0; i < len(out[0]); i++ {
		sampleL, sampleR := 0.0, 0.0

		for j := range darkChord {
			f := darkChord[j] + (brightChord[j]-darkChord[j])*nv

			// Slight detune widens the stereo image.
			oscL := triangle(s.time * (f * 0.999))
			oscR := triangle(s.time * (f * 1.001))

			g := 1.0 / float64(len(darkChord))
			lfo := math.Sin(s.time*lfoRate + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}

		var outL, outR float64
		outL, s.filterState[0] = lpf(sampleL, cutoff, dt, s.filterState[0])
		outR, s.filterState[1] = lpf(sampleR, cutoff, dt, s.filterState[1])

		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]

		// Each side hears a little of the other's tail.
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		s.delayLine[0][s.delayHead] = mixL * 0.7
		s.delayLine[1][s.delayHead] = mixR * 0.7
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		s.time += dt
	}
}
