// Package analysis provides frequency-domain tools for recorded lamp runs:
// how fast a mood arc oscillates, whether the energy level breathes on a
// period or just wanders.
package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the one-sided magnitude spectrum of a uniformly sampled
// series. Bin zero is DC; Freqs are in hertz.
type Spectrum struct {
	Power []float64
	Freqs []float64
}

// PowerSpectrum transforms a series sampled every dt seconds. The mean is
// removed first so slow offsets do not drown the oscillatory content.
func PowerSpectrum(series []float64, dt float64) (*Spectrum, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("analysis: series too short (%d samples)", len(series))
	}
	if dt <= 0 {
		return nil, fmt.Errorf("analysis: dt must be positive, got %f", dt)
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)

	n := len(series)
	bins := n / 2
	sp := &Spectrum{
		Power: make([]float64, bins),
		Freqs: make([]float64, bins),
	}
	sampleRate := 1.0 / dt
	for i := 0; i < bins; i++ {
		sp.Power[i] = cmplx.Abs(coeffs[i])
		sp.Freqs[i] = float64(i) * sampleRate / float64(n)
	}

	return sp, nil
}

// DominantFrequency returns the strongest non-DC bin and its magnitude.
// A flat series reports zero for both.
func (s *Spectrum) DominantFrequency() (freq, power float64) {
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > power {
			power = s.Power[i]
			freq = s.Freqs[i]
		}
	}
	return freq, power
}
