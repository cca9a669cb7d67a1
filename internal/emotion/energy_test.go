package emotion

import (
	"math"
	"testing"
)

func TestEnergySingleUpdate(t *testing.T) {
	m := NewEnergyModel()

	// Mean absolute divergence of (0.6, 0, 0) against rest is 0.2,
	// decayed once.
	got := m.Update(Target{Valence: 0.6}, Smoothed{})
	want := 0.2 * 0.995

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, got)
	}
	if m.Value() != got {
		t.Errorf("Value() disagrees with Update(): %f vs %f", m.Value(), got)
	}
}

func TestEnergyBounded(t *testing.T) {
	m := NewEnergyModel()
	target := Target{Valence: 1, Arousal: 1, Dominance: 1}
	smoothed := Smoothed{Valence: -1, Arousal: -1, Dominance: -1}

	for i := 0; i < 500; i++ {
		e := m.Update(target, smoothed)
		if e < 0 || e > 10 {
			t.Fatalf("step %d: energy %f escaped [0,10]", i, e)
		}
	}

	if m.Value() < 9.9 {
		t.Errorf("sustained maximal divergence should pin energy near the cap, got %f", m.Value())
	}
}

func TestEnergyDecaysUnderAgreement(t *testing.T) {
	m := NewEnergyModel()
	for i := 0; i < 500; i++ {
		m.Update(Target{Valence: 1, Arousal: 1, Dominance: 1}, Smoothed{Valence: -1, Arousal: -1, Dominance: -1})
	}

	still := Target{Valence: 0.3, Arousal: 0.3, Dominance: 0.3}
	agree := Smoothed{Valence: 0.3, Arousal: 0.3, Dominance: 0.3}

	prev := m.Value()
	for i := 0; i < 400; i++ {
		e := m.Update(still, agree)
		if e >= prev {
			t.Fatalf("step %d: energy failed to decay: %f -> %f", i, prev, e)
		}
		prev = e
	}

	// 400 ticks of pure decay from the cap: 10 * 0.995^400 ~ 1.35.
	if prev > 1.5 || prev <= 0 {
		t.Errorf("unexpected energy after decay window: %f", prev)
	}
}

func TestEnergyRestStaysAtZero(t *testing.T) {
	m := NewEnergyModel()
	for i := 0; i < 100; i++ {
		if e := m.Update(Target{}, Smoothed{}); e != 0 {
			t.Fatalf("step %d: energy left zero with no divergence: %f", i, e)
		}
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergyModel()
	m.Update(Target{Valence: 1}, Smoothed{Valence: -1})
	if m.Value() == 0 {
		t.Fatal("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero energy after reset, got %f", m.Value())
	}
}
