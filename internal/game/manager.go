package game

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// ShotRecord summarizes a finished shot for persistence and stats.
type ShotRecord struct {
	Angle            float64   `db:"angle" json:"angle"`
	Power            float64   `db:"power" json:"power"`
	PredictedBounces int       `db:"predicted_bounces" json:"predicted_bounces"`
	Potted           int       `db:"potted" json:"potted"`
	DurationTicks    int       `db:"duration_ticks" json:"duration_ticks"`
	TakenAt          time.Time `db:"taken_at" json:"taken_at"`
}

// Snapshot is the full state pushed to clients each frame.
type Snapshot struct {
	Tick             uint64     `json:"tick"`
	Balls            []Ball     `json:"balls"`
	Obstacles        []Obstacle `json:"obstacles"`
	ObstaclesEnabled bool       `json:"obstacles_enabled"`
	BallsMoving      bool       `json:"balls_moving"`
	TotalPotted      int        `json:"total_potted"`
}

// Session is one sandbox table: balls, mover, obstacle field and the
// trajectory predictor behind a single mutex. The tick loop, HTTP handlers
// and WebSocket clients all go through it.
type Session struct {
	mu sync.Mutex

	table    *Table
	balls    BallSet
	field    *ObstacleField
	mover    *Mover
	trailCfg TrajectoryConfig

	tick        uint64
	totalPotted int

	shotInFlight   bool
	currentShot    ShotRecord
	cueNeedsRespot bool

	// onShotDone fires outside the tick hot path with the finished record.
	onShotDone func(ShotRecord)
}

// NewSession builds a racked table with an enabled obstacle field. A nil
// rng gives non-deterministic spawns, which is what the server wants.
func NewSession(rng RandSource) *Session {
	table := NewStandardTable()
	return &Session{
		table:    table,
		balls:    RackBalls(),
		field:    NewObstacleField(rng),
		mover:    NewMover(table),
		trailCfg: DefaultTrajectoryConfig(),
	}
}

// OnShotDone registers a callback invoked whenever a shot settles.
func (s *Session) OnShotDone(fn func(ShotRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onShotDone = fn
}

// Tick advances the whole simulation one frame: accepted ball motion first,
// then the obstacle field's advisory pass over the result.
func (s *Session) Tick() {
	s.mu.Lock()
	s.tick++

	potted := s.mover.Step(s.balls)
	for _, id := range potted {
		s.totalPotted++
		if s.shotInFlight {
			s.currentShot.Potted++
		}
		if id == 0 {
			s.cueNeedsRespot = true
		}
		log.Printf("[GAME] ball %d potted (tick %d)", id, s.tick)
	}

	s.field.Update(s.table, s.balls)

	var done *ShotRecord
	if s.shotInFlight && !s.balls.AnyMoving() {
		s.shotInFlight = false
		s.currentShot.DurationTicks = int(s.tick) - s.currentShot.DurationTicks
		rec := s.currentShot
		done = &rec
	}
	if !s.balls.AnyMoving() && s.cueNeedsRespot {
		s.respotCue()
	}
	fn := s.onShotDone
	s.mu.Unlock()

	if done != nil && fn != nil {
		fn(*done)
	}
}

// respotCue returns a potted cue ball to the baulk spot, nudging right in
// ball-radius steps if the spot is occupied.
func (s *Session) respotCue() {
	cue := s.balls.CueBall()
	if cue == nil {
		return
	}
	spot := NewVec2(BaulkSpotX, 0)
	for i := 0; i < 20; i++ {
		clear := true
		for _, b := range s.balls {
			if b != cue && b.Active && b.Position.DistanceTo(spot) < 2*BallRadius {
				clear = false
				break
			}
		}
		if clear {
			break
		}
		spot = spot.Plus(NewVec2(2*BallRadius, 0))
	}
	cue.Position = spot
	cue.Velocity = Vec2{}
	cue.Active = true
	s.cueNeedsRespot = false
	log.Printf("[GAME] cue ball respotted at (%.0f, %.0f)", spot.X, spot.Y)
}

// Shoot launches the cue ball. Rejected while any ball is still rolling or
// while the cue ball is off the table; power is clamped to the table cap.
func (s *Session) Shoot(angle, power float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balls.AnyMoving() {
		return fmt.Errorf("balls are still moving")
	}
	cue := s.balls.CueBall()
	if cue == nil || !cue.Active {
		return fmt.Errorf("cue ball is not on the table")
	}
	if power <= 0 {
		return fmt.Errorf("power must be positive")
	}
	if power > MaxShotPower {
		power = MaxShotPower
	}

	trail := PredictTrajectory(cue.Position, VecFromAngle(angle, power), s.table.Bounds, s.trailCfg)
	bounces := 0
	if len(trail) > 0 {
		bounces = trail[len(trail)-1].Bounces
	}

	cue.Velocity = VecFromAngle(angle, power)
	s.shotInFlight = true
	s.currentShot = ShotRecord{
		Angle:            angle,
		Power:            power,
		PredictedBounces: bounces,
		DurationTicks:    int(s.tick), // rewritten to a delta when the shot settles
		TakenAt:          time.Now().UTC(),
	}
	return nil
}

// Aim returns the predicted trail for a prospective shot without touching
// any state.
func (s *Session) Aim(angle, power float64) []TrajectorySample {
	s.mu.Lock()
	defer s.mu.Unlock()

	cue := s.balls.CueBall()
	if cue == nil || !cue.Active {
		return nil
	}
	if power > MaxShotPower {
		power = MaxShotPower
	}
	return PredictTrajectory(cue.Position, VecFromAngle(angle, power), s.table.Bounds, s.trailCfg)
}

// PlaceCueBall moves a stationary cue ball inside the baulk D.
func (s *Session) PlaceCueBall(x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balls.AnyMoving() {
		return fmt.Errorf("balls are still moving")
	}
	p := NewVec2(x, y)
	if !s.table.InBaulkZone(p) {
		return fmt.Errorf("placement must be inside the baulk zone")
	}
	for _, b := range s.balls {
		if !b.Cue && b.Active && b.Position.DistanceTo(p) < 2*BallRadius {
			return fmt.Errorf("placement overlaps ball %d", b.ID)
		}
	}
	cue := s.balls.CueBall()
	if cue == nil {
		return fmt.Errorf("cue ball missing")
	}
	cue.Position = p
	cue.Velocity = Vec2{}
	cue.Active = true
	s.cueNeedsRespot = false
	return nil
}

// Snapshot copies the current state for broadcast.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	balls := make([]Ball, len(s.balls))
	for i, b := range s.balls {
		balls[i] = *b
	}
	return Snapshot{
		Tick:             s.tick,
		Balls:            balls,
		Obstacles:        s.field.Obstacles(),
		ObstaclesEnabled: s.field.Enabled(),
		BallsMoving:      s.balls.AnyMoving(),
		TotalPotted:      s.totalPotted,
	}
}

func (s *Session) ObstacleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Count()
}

func (s *Session) ObstaclesEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Enabled()
}

func (s *Session) ToggleObstacles() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Toggle()
}

func (s *Session) ObstaclesSpawned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.TotalSpawned()
}
