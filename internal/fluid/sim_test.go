package fluid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/solhav/moodlamp/internal/visual"
)

func newTestSim(seed int64) *Sim {
	return New(rand.New(rand.NewSource(seed)))
}

// stillParams describes a motionless tank: no turbulence, no sway, no lift,
// full viscosity.
func stillParams(count int, size float64) visual.Params {
	return visual.Params{
		BlobCount:    count,
		BlobSizeMean: size,
		Viscosity:    1.0,
	}
}

func totalArea(blobs []Blob) float64 {
	sum := 0.0
	for _, b := range blobs {
		sum += b.Area()
	}
	return sum
}

func TestSimSeedsOnFirstStep(t *testing.T) {
	s := newTestSim(1)
	s.Step(stillParams(5, 0.1), 0, 0, 0.016, 0)

	if len(s.Blobs()) != 5 {
		t.Fatalf("expected 5 blobs after first step, got %d", len(s.Blobs()))
	}
	for i, b := range s.Blobs() {
		if b.Radius < 0.01 {
			t.Errorf("blob %d: radius %f below floor", i, b.Radius)
		}
		if b.Pos.X < 0 || b.Pos.X >= s.Width || b.Pos.Y < 0 || b.Pos.Y > s.Height {
			t.Errorf("blob %d: seeded outside tank: %+v", i, b.Pos)
		}
	}
}

func TestSimSeedRadiusFloor(t *testing.T) {
	s := newTestSim(2)
	s.Step(stillParams(50, 0.005), 0, 0, 0.016, 0)

	for i, b := range s.Blobs() {
		if b.Radius < 0.01 {
			t.Errorf("blob %d: radius %f below the 0.01 floor", i, b.Radius)
		}
	}
}

func TestSimCountReconciliation(t *testing.T) {
	s := newTestSim(3)

	steps := []struct {
		count int
		want  int
	}{
		{5, 5},
		{9, 9},  // grow: newcomers at rest with the exact mean radius
		{4, 4},  // shrink: trimmed from the end
		{0, 0},  // degenerate, not an error
		{-3, 0}, // negative behaves like zero
		{3, 3},  // reseeds after the tank emptied
	}

	for i, st := range steps {
		s.Step(stillParams(st.count, 0.08), 0, 0, 0.016, float64(i)*0.016)
		if got := len(s.Blobs()); got != st.want {
			t.Fatalf("step %d (count %d): got %d blobs, want %d", i, st.count, got, st.want)
		}
	}
}

func TestSimGrownBlobsSpawnAtRest(t *testing.T) {
	s := newTestSim(4)
	s.Step(stillParams(2, 0.08), 0, 0, 0.016, 0)
	s.Step(stillParams(6, 0.08), 0, 0, 0.016, 0.016)

	// In a motionless tank the four newcomers keep zero velocity and the
	// exact mean radius through their first step.
	blobs := s.Blobs()
	if len(blobs) != 6 {
		t.Fatalf("expected 6 blobs, got %d", len(blobs))
	}
	for i := 2; i < 6; i++ {
		if blobs[i].Vel != (Vec2{}) {
			t.Errorf("blob %d: newcomer moving: %+v", i, blobs[i].Vel)
		}
		if blobs[i].Radius != 0.08 {
			t.Errorf("blob %d: newcomer radius %f, want exactly 0.08", i, blobs[i].Radius)
		}
	}
}

func TestSimDomainContainment(t *testing.T) {
	s := newTestSim(5)
	p := visual.Params{
		BlobCount:    10,
		BlobSizeMean: 0.06,
		Viscosity:    0.2,
		Buoyancy:     0.3,
		Turbulence:   3.0,
		GravityX:     0.05,
	}

	tm := 0.0
	for i := 0; i < 500; i++ {
		s.Step(p, 0.2, 0.9, 0.016, tm)
		tm += 0.016
		for j, b := range s.Blobs() {
			if b.Pos.X < 0 || b.Pos.X >= s.Width {
				t.Fatalf("step %d blob %d: x=%f escaped [0,%f)", i, j, b.Pos.X, s.Width)
			}
			if b.Pos.Y < 0 || b.Pos.Y > s.Height {
				t.Fatalf("step %d blob %d: y=%f escaped [0,%f]", i, j, b.Pos.Y, s.Height)
			}
		}
	}
}

func TestSimMergeConservesArea(t *testing.T) {
	s := newTestSim(6)
	s.blobs = []Blob{
		{Pos: Vec2{X: 0.5, Y: 0.5}, Vel: Vec2{X: 0.1, Y: -0.2}, Radius: 0.08},
		{Pos: Vec2{X: 0.5, Y: 0.5}, Vel: Vec2{X: 0.3, Y: 0.4}, Radius: 0.06},
	}
	before := totalArea(s.blobs)

	s.mergePass(1.0)

	if len(s.blobs) != 1 {
		t.Fatalf("expected a single blob after merge, got %d", len(s.blobs))
	}
	if s.Merges() != 1 {
		t.Errorf("expected 1 merge event, got %d", s.Merges())
	}

	b := s.blobs[0]
	if math.Abs(b.Area()-before) > 1e-12 {
		t.Errorf("merge lost area: %f -> %f", before, b.Area())
	}
	if math.Abs(b.Radius-0.1) > 1e-12 {
		t.Errorf("expected merged radius 0.1, got %f", b.Radius)
	}
	if math.Abs(b.Vel.X-0.2) > 1e-12 || math.Abs(b.Vel.Y-0.1) > 1e-12 {
		t.Errorf("expected averaged velocity (0.2, 0.1), got %+v", b.Vel)
	}
}

func TestSimMergeChain(t *testing.T) {
	s := newTestSim(7)
	s.blobs = []Blob{
		{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.05},
		{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.05},
		{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.05},
	}
	before := totalArea(s.blobs)

	// Full dominance makes every roll succeed, so one blob should absorb
	// both neighbors in a single pass.
	s.mergePass(1.0)

	if len(s.blobs) != 1 {
		t.Fatalf("expected chain merge down to 1 blob, got %d", len(s.blobs))
	}
	if s.Merges() != 2 {
		t.Errorf("expected 2 merge events, got %d", s.Merges())
	}
	if math.Abs(s.blobs[0].Area()-before) > 1e-12 {
		t.Errorf("chain merge lost area: %f -> %f", before, s.blobs[0].Area())
	}
}

func TestSimMergeNeedsDominance(t *testing.T) {
	s := newTestSim(8)
	s.blobs = []Blob{
		{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.05},
		{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.05},
	}

	s.mergePass(0.0)

	if len(s.blobs) != 2 || s.Merges() != 0 {
		t.Errorf("zero dominance must never merge: %d blobs, %d merges", len(s.blobs), s.Merges())
	}
}

func TestSimMergeRespectsReach(t *testing.T) {
	s := newTestSim(9)
	s.blobs = []Blob{
		{Pos: Vec2{X: 0.1, Y: 0.1}, Radius: 0.05},
		{Pos: Vec2{X: 0.9, Y: 0.9}, Radius: 0.05},
	}

	s.mergePass(1.0)

	if len(s.blobs) != 2 {
		t.Errorf("distant blobs must not merge, got %d", len(s.blobs))
	}
}

func TestSimSplitCascadeConservesArea(t *testing.T) {
	s := newTestSim(10)
	s.blobs = []Blob{
		{Pos: Vec2{X: 0.5, Y: 0.5}, Vel: Vec2{X: 0.04, Y: 0.01}, Radius: 0.4},
	}
	before := totalArea(s.blobs)

	// Full arousal forces every roll; a 4x-mean blob cascades down inside
	// one pass because appended children are revisited.
	s.splitPass(stillParams(1, 0.1), 1.0)

	blobs := s.Blobs()
	if len(blobs) != 4 {
		t.Fatalf("expected cascade to 4 blobs, got %d", len(blobs))
	}
	if s.Splits() != 3 {
		t.Errorf("expected 3 split events, got %d", s.Splits())
	}
	if math.Abs(totalArea(blobs)-before) > 1e-12 {
		t.Errorf("cascade lost area: %f -> %f", before, totalArea(blobs))
	}

	// Children mirror their parent's horizontal velocity at spawn time.
	wantVx := []float64{0.04, -0.04, 0.04, -0.04}
	for i, b := range blobs {
		if math.Abs(b.Vel.X-wantVx[i]) > 1e-12 {
			t.Errorf("blob %d: vx=%f, want %f", i, b.Vel.X, wantVx[i])
		}
		if b.Vel.Y != 0.01 {
			t.Errorf("blob %d: vy=%f, want 0.01", i, b.Vel.Y)
		}
	}

	// Each child sits at its parent's position plus the spawn offset.
	wantX := []float64{0.5, 0.53, 0.56, 0.59}
	for i, b := range blobs {
		if math.Abs(b.Pos.X-wantX[i]) > 1e-12 || math.Abs(b.Pos.Y-wantX[i]) > 1e-12 {
			t.Errorf("blob %d: pos %+v, want (%f, %f)", i, b.Pos, wantX[i], wantX[i])
		}
	}
}

func TestSimSplitNeedsArousal(t *testing.T) {
	s := newTestSim(11)
	s.blobs = []Blob{{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.4}}

	s.splitPass(stillParams(1, 0.1), 0.0)

	if len(s.blobs) != 1 || s.Splits() != 0 {
		t.Errorf("zero arousal must never split: %d blobs, %d splits", len(s.blobs), s.Splits())
	}
}

func TestSimSplitWrapsChildPosition(t *testing.T) {
	s := newTestSim(12)
	s.blobs = []Blob{{Pos: Vec2{X: 0.99, Y: 0.99}, Radius: 0.3}}

	s.splitPass(stillParams(1, 0.1), 1.0)

	if len(s.blobs) < 2 {
		t.Fatal("expected at least one split")
	}
	child := s.blobs[1]
	if math.Abs(child.Pos.X-0.02) > 1e-12 {
		t.Errorf("child x should wrap to 0.02, got %f", child.Pos.X)
	}
	if child.Pos.Y != 1.0 {
		t.Errorf("child y should clamp to the lid, got %f", child.Pos.Y)
	}
}

func TestSimStepSeededDeterminism(t *testing.T) {
	a := newTestSim(42)
	b := newTestSim(42)

	p := visual.Params{
		BlobCount:    7,
		BlobSizeMean: 0.09,
		Viscosity:    0.5,
		Buoyancy:     0.1,
		Turbulence:   1.2,
		GravityX:     0.01,
	}

	tm := 0.0
	for i := 0; i < 100; i++ {
		if i == 40 {
			p.BlobCount = 10
		}
		a.Step(p, 0.6, 0.7, 0.016, tm)
		b.Step(p, 0.6, 0.7, 0.016, tm)
		tm += 0.016

		ba, bb := a.Blobs(), b.Blobs()
		if len(ba) != len(bb) {
			t.Fatalf("step %d: populations diverged: %d vs %d", i, len(ba), len(bb))
		}
		for j := range ba {
			if ba[j] != bb[j] {
				t.Fatalf("step %d blob %d: same seed diverged:\n%+v\n%+v", i, j, ba[j], bb[j])
			}
		}
	}

	if a.Merges() != b.Merges() || a.Splits() != b.Splits() {
		t.Errorf("event counters diverged: %d/%d vs %d/%d", a.Merges(), a.Splits(), b.Merges(), b.Splits())
	}
}

func TestSimReset(t *testing.T) {
	s := newTestSim(13)
	s.blobs = []Blob{
		{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.05},
		{Pos: Vec2{X: 0.5, Y: 0.5}, Radius: 0.05},
	}
	s.mergePass(1.0)
	if s.Merges() == 0 {
		t.Fatal("setup: expected a merge")
	}

	s.Reset()

	if len(s.Blobs()) != 0 || s.Merges() != 0 || s.Splits() != 0 {
		t.Errorf("reset left state behind: %d blobs, %d merges, %d splits",
			len(s.Blobs()), s.Merges(), s.Splits())
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		x, w, want float64
	}{
		{0.0, 1.0, 0.0},
		{0.7, 1.0, 0.7},
		{1.0, 1.0, 0.0},
		{1.2, 1.0, 0.2},
		{-0.3, 1.0, 0.7},
		{-1.0, 1.0, 0.0},
		{2.5, 1.0, 0.5},
	}

	for _, c := range cases {
		got := wrap(c.x, c.w)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("wrap(%f, %f) = %f, want %f", c.x, c.w, got, c.want)
		}
		if got < 0 || got >= c.w {
			t.Errorf("wrap(%f, %f) = %f escaped [0, %f)", c.x, c.w, got, c.w)
		}
	}
}
