package engine_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/solhav/moodlamp/internal/emotion"
	"github.com/solhav/moodlamp/internal/engine"
	"github.com/solhav/moodlamp/internal/visual"
)

const dt = 0.016

// hold repeats the same sample forever.
func hold(t emotion.Target) engine.Source {
	return engine.SourceFunc(func() (emotion.Target, bool) {
		return t, true
	})
}

// quiet never delivers anything.
func quiet() engine.Source {
	return engine.SourceFunc(func() (emotion.Target, bool) {
		return emotion.Target{}, false
	})
}

// sweep walks a deterministic emotional arc; fresh instances replay it.
func sweep() engine.Source {
	tm := 0.0
	return engine.SourceFunc(func() (emotion.Target, bool) {
		tm += dt
		return emotion.Target{
			Valence:   math.Sin(0.5 * tm),
			Arousal:   math.Sin(1.4 * tm),
			Dominance: math.Sin(0.8*tm + 1.2),
		}, true
	})
}

var _ = Describe("Engine", func() {
	Describe("smoothing", func() {
		It("approaches a constant target monotonically without overshoot", func() {
			target := emotion.Target{Valence: 0.8, Arousal: 0.5, Dominance: 0.2}
			eng := engine.New(hold(target), 1)

			prev := eng.Telemetry().Smoothed
			for i := 0; i < 120; i++ {
				_, err := eng.Tick(dt)
				Expect(err).NotTo(HaveOccurred())

				s := eng.Telemetry().Smoothed
				Expect(s.Valence).To(BeNumerically(">=", prev.Valence-1e-12))
				Expect(s.Arousal).To(BeNumerically(">=", prev.Arousal-1e-12))
				Expect(s.Dominance).To(BeNumerically(">=", prev.Dominance-1e-12))
				Expect(s.Valence).To(BeNumerically("<=", target.Valence+1e-9))
				Expect(s.Arousal).To(BeNumerically("<=", target.Arousal+1e-9))
				Expect(s.Dominance).To(BeNumerically("<=", target.Dominance+1e-9))
				prev = s
			}

			Expect(prev.Arousal).To(BeNumerically(">", 0.4),
				"arousal should cover most of the step within ~2s")
		})

		It("idles neutrally when the source never speaks", func() {
			eng := engine.New(quiet(), 2)

			for i := 0; i < 60; i++ {
				p, err := eng.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				Expect(p.BlobCount).To(Equal(8), "neutral arousal asks for 8 blobs")
			}

			tel := eng.Telemetry()
			Expect(tel.Smoothed).To(Equal(emotion.Smoothed{}))
			Expect(tel.Energy).To(BeZero())
		})
	})

	Describe("sample holding", func() {
		It("matches a source that repeats the sample forever", func() {
			target := emotion.Target{Valence: 0.6, Arousal: 0.4, Dominance: -0.2}

			delivered := false
			once := engine.SourceFunc(func() (emotion.Target, bool) {
				if delivered {
					return emotion.Target{}, false
				}
				delivered = true
				return target, true
			})

			a := engine.New(once, 7)
			b := engine.New(hold(target), 7)

			for i := 0; i < 90; i++ {
				pa, err := a.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				pb, err := b.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				Expect(pa).To(Equal(pb), "tick %d", i)
			}
		})
	})

	Describe("arousal response", func() {
		It("runs hotter lamps for higher arousal", func() {
			calm := engine.New(hold(emotion.Target{Arousal: -0.8}), 3)
			tense := engine.New(hold(emotion.Target{Arousal: 0.8}), 3)

			var pCalm, pTense visual.Params
			for i := 0; i < 180; i++ {
				var err error
				pCalm, err = calm.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				pTense, err = tense.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(pTense.BlobCount).To(BeNumerically(">=", pCalm.BlobCount))
			Expect(pTense.Turbulence).To(BeNumerically(">", pCalm.Turbulence))
			Expect(pTense.BlobSizeMean).To(BeNumerically("<", pCalm.BlobSizeMean))
			Expect(len(tense.Blobs())).To(BeNumerically(">=", len(calm.Blobs())))
		})
	})

	Describe("bad input", func() {
		It("rejects a non-finite sample and leaves state untouched", func() {
			eng := engine.New(hold(emotion.Target{Valence: math.NaN()}), 4)

			before := eng.Telemetry()
			_, err := eng.Tick(dt)

			Expect(err).To(MatchError(engine.ErrBadSample))
			Expect(eng.Telemetry()).To(Equal(before))
			Expect(eng.Elapsed()).To(BeZero())
		})

		It("rejects degenerate steps", func() {
			eng := engine.New(quiet(), 5)

			for _, bad := range []float64{0, -0.016, math.NaN(), math.Inf(1)} {
				_, err := eng.Tick(bad)
				Expect(err).To(MatchError(engine.ErrBadStep), "dt=%v", bad)
			}
			Expect(eng.Elapsed()).To(BeZero())
		})

		It("clamps out-of-range axes instead of failing", func() {
			eng := engine.New(hold(emotion.Target{Valence: 7, Arousal: -9, Dominance: 2}), 6)

			_, err := eng.Tick(dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Target()).To(Equal(emotion.Target{Valence: 1, Arousal: -1, Dominance: 1}))
		})
	})

	Describe("energy", func() {
		It("stays within [0, 10] under an erratic source", func() {
			rng := rand.New(rand.NewSource(99))
			erratic := engine.SourceFunc(func() (emotion.Target, bool) {
				return emotion.Target{
					Valence:   rng.Float64()*2 - 1,
					Arousal:   rng.Float64()*2 - 1,
					Dominance: rng.Float64()*2 - 1,
				}, true
			})

			eng := engine.New(erratic, 8)
			for i := 0; i < 300; i++ {
				_, err := eng.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				e := eng.Telemetry().Energy
				Expect(e).To(BeNumerically(">=", 0))
				Expect(e).To(BeNumerically("<=", 10))
			}
		})
	})

	Describe("palette", func() {
		It("always yields displayable colors", func() {
			eng := engine.New(sweep(), 10)

			for i := 0; i < 400; i++ {
				p, err := eng.Tick(dt)
				Expect(err).NotTo(HaveOccurred())

				for _, ch := range []float64{p.RGBPrimary.R, p.RGBPrimary.G, p.RGBPrimary.B} {
					Expect(math.IsNaN(ch)).To(BeFalse())
					Expect(math.IsInf(ch, 0)).To(BeFalse())
				}
				Expect(p.RGBPrimary.Clamped().IsValid()).To(BeTrue())
			}
		})
	})

	Describe("determinism", func() {
		It("replays identically for the same seed and source", func() {
			a := engine.New(sweep(), 42)
			b := engine.New(sweep(), 42)

			for i := 0; i < 200; i++ {
				pa, err := a.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				pb, err := b.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				Expect(pa).To(Equal(pb), "tick %d", i)
			}
			Expect(a.Blobs()).To(Equal(b.Blobs()))
			Expect(a.Telemetry()).To(Equal(b.Telemetry()))
		})

		It("replays identically after a reset", func() {
			eng := engine.New(sweep(), 43)

			first := make([]visual.Params, 0, 150)
			for i := 0; i < 150; i++ {
				p, err := eng.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				first = append(first, p)
			}

			eng.Reset()
			eng.SetSource(sweep())
			Expect(eng.Telemetry()).To(Equal(engine.Telemetry{}))

			for i := 0; i < 150; i++ {
				p, err := eng.Tick(dt)
				Expect(err).NotTo(HaveOccurred())
				Expect(p).To(Equal(first[i]), "tick %d", i)
			}
		})
	})
})
