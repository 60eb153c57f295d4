package game

import (
	"math"
	"testing"
)

// quietSession blocks obstacle spawns so shots settle undisturbed.
func quietSession() *Session {
	return NewSession(fixedRand{0})
}

func TestShootRejectedWhileMoving(t *testing.T) {
	s := quietSession()
	if err := s.Shoot(0, 20); err != nil {
		t.Fatalf("First shot failed: %v", err)
	}
	s.Tick()
	if err := s.Shoot(0, 20); err == nil {
		t.Error("Second shot should be rejected while balls are moving")
	}
}

func TestShootClampsPower(t *testing.T) {
	s := quietSession()
	if err := s.Shoot(math.Pi/2, MaxShotPower*10); err != nil {
		t.Fatalf("Shot failed: %v", err)
	}
	cue := s.balls.CueBall()
	if cue.Velocity.Magnitude() > MaxShotPower+1e-6 {
		t.Errorf("Shot power not clamped: %.4f", cue.Velocity.Magnitude())
	}
}

func TestShotSettlesAndReports(t *testing.T) {
	s := quietSession()
	var rec *ShotRecord
	s.OnShotDone(func(r ShotRecord) { rec = &r })

	if err := s.Shoot(0.1, 25); err != nil {
		t.Fatalf("Shot failed: %v", err)
	}
	for i := 0; i < 5000 && rec == nil; i++ {
		s.Tick()
	}
	if rec == nil {
		t.Fatal("Shot never settled")
	}
	if rec.Power != 25 || rec.Angle != 0.1 {
		t.Errorf("Record mismatch: %+v", rec)
	}
	if rec.DurationTicks <= 0 {
		t.Errorf("Duration should be positive, got %d", rec.DurationTicks)
	}
	if s.Snapshot().BallsMoving {
		t.Error("Table should be settled after the shot reported")
	}
}

func TestAimDoesNotMutateState(t *testing.T) {
	s := quietSession()
	before := s.Snapshot()

	trail := s.Aim(0.3, 30)
	if len(trail) == 0 {
		t.Fatal("Aim returned an empty trail for a live cue ball")
	}

	after := s.Snapshot()
	if len(before.Balls) != len(after.Balls) {
		t.Fatal("Aim changed the ball set")
	}
	for i := range before.Balls {
		if before.Balls[i].Position != after.Balls[i].Position ||
			before.Balls[i].Velocity != after.Balls[i].Velocity {
			t.Errorf("Aim moved ball %d", before.Balls[i].ID)
		}
	}
}

func TestPlaceCueBallValidation(t *testing.T) {
	s := quietSession()

	if err := s.PlaceCueBall(500, 0); err == nil {
		t.Error("Placement outside the baulk zone should fail")
	}
	if err := s.PlaceCueBall(BaulkSpotX-50, 20); err != nil {
		t.Errorf("Placement inside the D failed: %v", err)
	}
	cue := s.balls.CueBall()
	if cue.Position.X != BaulkSpotX-50 || cue.Position.Y != 20 {
		t.Errorf("Cue ball not moved: %+v", cue.Position)
	}
}

func TestToggleObstaclesThroughSession(t *testing.T) {
	s := quietSession()
	if !s.ObstaclesEnabled() {
		t.Fatal("Obstacles should start enabled")
	}
	if s.ToggleObstacles() {
		t.Error("Toggle should report disabled")
	}
	if s.ObstacleCount() != 0 {
		t.Errorf("Disable should clear obstacles, count=%d", s.ObstacleCount())
	}
}
