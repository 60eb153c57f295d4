package game

import "testing"

func soloBall(pos, vel Vec2) (BallSet, *Mover) {
	b := &Ball{ID: 0, Position: pos, Velocity: vel, Active: true, Cue: true}
	return BallSet{b}, NewMover(NewStandardTable())
}

func TestFrictionStopsBall(t *testing.T) {
	balls, mover := soloBall(NewVec2(0, 0), NewVec2(8, 0))

	for i := 0; i < 200 && balls.AnyMoving(); i++ {
		mover.Step(balls)
	}
	if balls.AnyMoving() {
		t.Error("Ball still rolling after 200 ticks of friction")
	}
	if !balls[0].Velocity.IsZero() {
		t.Errorf("Parked ball should have exact zero velocity, got %+v", balls[0].Velocity)
	}
}

func TestCushionReflectsVelocity(t *testing.T) {
	// Start close to the right cushion moving right; the x component must
	// flip sign and shrink by the cushion restitution.
	balls, mover := soloBall(NewVec2(TableWidth/2-BallRadius-5, 100), NewVec2(10, 0))

	var before float64
	for i := 0; i < 10; i++ {
		before = balls[0].Velocity.X
		mover.Step(balls)
		if balls[0].Velocity.X < 0 {
			break
		}
	}
	if balls[0].Velocity.X >= 0 {
		t.Fatalf("Ball never bounced: vx=%.4f", balls[0].Velocity.X)
	}
	got := -balls[0].Velocity.X
	want := before * CushionRestitution
	// Friction also bled a little speed during the bounce tick.
	if got > want+1e-6 {
		t.Errorf("Rebound speed %.4f exceeds restitution-scaled %.4f", got, want)
	}
}

func TestPocketCapturesBall(t *testing.T) {
	table := NewStandardTable()
	pocket := table.Pockets[2] // top-right corner
	balls := BallSet{{
		ID:       1,
		Position: pocket.Plus(NewVec2(-40, 40)),
		Velocity: NewVec2(10, -10),
		Active:   true,
	}}
	mover := NewMover(table)

	var potted []int
	for i := 0; i < 20 && len(potted) == 0; i++ {
		potted = mover.Step(balls)
	}
	if len(potted) != 1 || potted[0] != 1 {
		t.Fatalf("Expected ball 1 potted, got %v", potted)
	}
	if balls[0].Active {
		t.Error("Potted ball should be inactive")
	}
	if !balls[0].Velocity.IsZero() {
		t.Errorf("Potted ball should stop, got %+v", balls[0].Velocity)
	}
}

func TestHeadOnContactTransfersMomentum(t *testing.T) {
	table := NewStandardTable()
	mover := NewMover(table)
	cue := &Ball{ID: 0, Position: NewVec2(-100, 0), Velocity: NewVec2(15, 0), Active: true, Cue: true}
	object := &Ball{ID: 1, Position: NewVec2(0, 0), Active: true}
	balls := BallSet{cue, object}

	for i := 0; i < 30 && object.Velocity.IsZero(); i++ {
		mover.Step(balls)
	}
	if object.Velocity.X <= 0 {
		t.Errorf("Object ball should move right after head-on hit, got %+v", object.Velocity)
	}
	if cue.Velocity.X < 0 {
		t.Errorf("Cue ball should not rebound backwards on a head-on hit, got %+v", cue.Velocity)
	}
}

func TestMoverIsDeterministic(t *testing.T) {
	run := func() Vec2 {
		balls, mover := soloBall(NewVec2(-300, -120), NewVec2(24, 11))
		for i := 0; i < 500 && balls.AnyMoving(); i++ {
			mover.Step(balls)
		}
		return balls[0].Position
	}
	if a, b := run(), run(); a != b {
		t.Errorf("Non-deterministic rest position: %+v vs %+v", a, b)
	}
}
