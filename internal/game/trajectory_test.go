package game

import (
	"math"
	"testing"
)

// wideBounds puts the inset right edge exactly 100 units from the origin
// and every other edge far enough away that it never comes into play.
func wideBounds() Bounds {
	return Bounds{Left: -600, Right: 100 + TrailInset, Top: -400, Bottom: 400}
}

func TestZeroLaunchVelocity(t *testing.T) {
	trail := PredictTrajectory(NewVec2(0, 0), Vec2{}, wideBounds(), DefaultTrajectoryConfig())

	if len(trail) > 1 {
		t.Errorf("Zero launch should produce at most one sample, got %d", len(trail))
	}
	for _, s := range trail {
		if s.Bounces != 0 {
			t.Errorf("Zero launch should never bounce, got %d", s.Bounces)
		}
		if s.Speed != 0 {
			t.Errorf("Zero launch sample should have zero speed, got %f", s.Speed)
		}
	}
}

func TestTrailBounded(t *testing.T) {
	cfg := DefaultTrajectoryConfig()
	cfg.SpeedFloor = 0 // never stop early
	trail := PredictTrajectory(NewVec2(0, 0), NewVec2(40, 17), wideBounds(), cfg)

	if len(trail) > cfg.MaxSteps {
		t.Errorf("Trail exceeded MaxSteps: %d > %d", len(trail), cfg.MaxSteps)
	}
	if last := trail[len(trail)-1]; last.Bounces > cfg.MaxBounces {
		t.Errorf("Final bounce tally %d exceeds MaxBounces %d", last.Bounces, cfg.MaxBounces)
	}
}

func TestBounceCountMonotonic(t *testing.T) {
	cfg := DefaultTrajectoryConfig()
	trail := PredictTrajectory(NewVec2(0, 0), NewVec2(35, -28), wideBounds(), cfg)

	prev := 0
	for i, s := range trail {
		if s.Bounces < prev {
			t.Errorf("Bounce count decreased at sample %d: %d -> %d", i, prev, s.Bounces)
		}
		prev = s.Bounces
	}
}

func TestSpeedNeverIncreases(t *testing.T) {
	trail := PredictTrajectory(NewVec2(-200, 50), NewVec2(30, 12), wideBounds(), DefaultTrajectoryConfig())

	for i := 1; i < len(trail); i++ {
		if trail[i].Speed > trail[i-1].Speed+1e-9 {
			t.Errorf("Speed increased at sample %d: %.4f -> %.4f", i, trail[i-1].Speed, trail[i].Speed)
		}
		if trail[i].Speed < 0 {
			t.Errorf("Negative speed at sample %d: %.4f", i, trail[i].Speed)
		}
	}
}

func TestReflectRoundTrip(t *testing.T) {
	v := NewVec2(3.7, -2.1)
	n := NewVec2(0, 1)

	// Reflecting about +n and then about -n must restore the original.
	back := reflect(reflect(v, n), n.Times(-1))
	if math.Abs(back.X-v.X) > 1e-3 || math.Abs(back.Y-v.Y) > 1e-3 {
		t.Errorf("Double reflection did not round-trip: got (%.4f, %.4f) want (%.4f, %.4f)",
			back.X, back.Y, v.X, v.Y)
	}
}

func TestStraightShotHitsInsetBoundary(t *testing.T) {
	b := wideBounds()
	cfg := DefaultTrajectoryConfig()
	trail := PredictTrajectory(NewVec2(0, 0), NewVec2(5, 0), b, cfg)

	bounceIdx := -1
	for i, s := range trail {
		if s.Bounces == 1 {
			bounceIdx = i
			break
		}
	}
	if bounceIdx < 0 {
		t.Fatal("Straight shot at the right cushion never bounced")
	}

	insetRight := b.Right - TrailInset
	bounce := trail[bounceIdx]
	if math.Abs(bounce.Position.X-insetRight) > 1e-6 {
		t.Errorf("Bounce x = %.4f, want inset boundary %.4f", bounce.Position.X, insetRight)
	}
	if bounce.Position.Y != 0 {
		t.Errorf("Horizontal shot drifted off axis: y = %.4f", bounce.Position.Y)
	}

	// The bounce sample's speed is the pre-bounce speed scaled by friction
	// (this step's decay) and restitution (the cushion's energy loss).
	want := trail[bounceIdx-1].Speed * cfg.Friction * cfg.Restitution
	if math.Abs(bounce.Speed-want) > 1e-2 {
		t.Errorf("Post-bounce speed %.4f, want %.4f", bounce.Speed, want)
	}

	// Velocity direction must have flipped: x coordinates decrease after.
	if bounceIdx+1 < len(trail) && trail[bounceIdx+1].Position.X >= bounce.Position.X {
		t.Errorf("Ball did not travel left after bounce: %.4f -> %.4f",
			bounce.Position.X, trail[bounceIdx+1].Position.X)
	}
}

func TestSingleBounceDecayScenario(t *testing.T) {
	// Launch at speed 6 straight at a cushion 100 units away with friction
	// 0.985 and restitution 0.75: exactly one bounce before the trail stalls
	// below the floor.
	b := wideBounds()
	cfg := TrajectoryConfig{
		MaxSteps:    400,
		StepSize:    1,
		MaxBounces:  5,
		SpeedFloor:  0.5,
		Friction:    0.985,
		Restitution: 0.75,
	}
	trail := PredictTrajectory(NewVec2(0, 0), NewVec2(6, 0), b, cfg)

	if len(trail) == 0 {
		t.Fatal("Empty trail")
	}
	last := trail[len(trail)-1]
	if last.Bounces != 1 {
		t.Fatalf("Expected exactly one bounce, got %d", last.Bounces)
	}
	if last.Speed >= cfg.SpeedFloor {
		t.Errorf("Trail ended above the speed floor: %.4f", last.Speed)
	}

	insetRight := b.Right - TrailInset
	for _, s := range trail {
		if s.Bounces == 1 {
			if math.Abs(s.Position.X-insetRight) > 1e-6 {
				t.Errorf("Bounce x = %.4f, want %.4f", s.Position.X, insetRight)
			}
			break
		}
	}
}

func TestMaxBouncesStopsTrail(t *testing.T) {
	// Nearly lossless ball in a narrow box racks up bounces fast; the trail
	// must cut off at the cap, sample included.
	b := Bounds{Left: -100, Right: 100, Top: -100, Bottom: 100}
	cfg := TrajectoryConfig{
		MaxSteps:    10000,
		StepSize:    1,
		MaxBounces:  3,
		SpeedFloor:  0.01,
		Friction:    0.9995,
		Restitution: 0.95,
	}
	trail := PredictTrajectory(NewVec2(0, 0), NewVec2(25, 0), b, cfg)

	last := trail[len(trail)-1]
	if last.Bounces != cfg.MaxBounces {
		t.Errorf("Expected trail to end at the bounce cap %d, got %d", cfg.MaxBounces, last.Bounces)
	}
	for i := 1; i < len(trail); i++ {
		if trail[i].Bounces-trail[i-1].Bounces > 1 {
			t.Errorf("More than one bounce resolved in a single step at sample %d", i)
		}
	}
}

func TestPredictionIsDeterministic(t *testing.T) {
	run := func() []TrajectorySample {
		return PredictTrajectory(NewVec2(-150, 75), NewVec2(22, -31), wideBounds(), DefaultTrajectoryConfig())
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("Non-deterministic length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Non-deterministic sample %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
