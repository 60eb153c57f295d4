package game

import (
	"log"
	"math"
	"math/rand"
	"time"
)

// ObstaclePhase is the lifecycle stage of an obstacle. Progression is
// strictly Warning -> Active -> Fading -> removed, driven only by age.
type ObstaclePhase int

const (
	PhaseWarning ObstaclePhase = iota
	PhaseActive
	PhaseFading
)

func (p ObstaclePhase) String() string {
	switch p {
	case PhaseWarning:
		return "warning"
	case PhaseActive:
		return "active"
	case PhaseFading:
		return "fading"
	}
	return "unknown"
}

// phaseForAge is the single source of truth for the lifecycle state machine.
// Callers diff the previous phase against the returned one to raise or tear
// down the force field on the edges.
func phaseForAge(age int) ObstaclePhase {
	switch {
	case age < ObstacleWarningTicks:
		return PhaseWarning
	case age < ObstacleWarningTicks+ObstacleActiveTicks:
		return PhaseActive
	default:
		return PhaseFading
	}
}

// Obstacle is a transient force-field emitter. The center never moves once
// spawned; it is purely emissive and never collides as a rigid body.
type Obstacle struct {
	ID            int           `json:"id"`
	Center        Vec2          `json:"center"`
	Age           int           `json:"age"`
	Phase         ObstaclePhase `json:"phase"`
	Rotation      float64       `json:"rotation"`
	HasForceField bool          `json:"has_force_field"`
}

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it;
// tests inject fixed sources to force spawn outcomes.
type RandSource interface {
	Float64() float64
}

// ObstacleField owns every live obstacle and is the single per-tick entry
// point for the whole subsystem. Not safe for concurrent use; the session
// drives it from one goroutine.
type ObstacleField struct {
	obstacles  []*Obstacle
	enabled    bool
	spawnTimer int
	nextID     int
	spawned    int
	rng        RandSource
}

// NewObstacleField creates an enabled, empty field. A nil rng falls back to
// a time-seeded source.
func NewObstacleField(rng RandSource) *ObstacleField {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ObstacleField{enabled: true, rng: rng}
}

func (f *ObstacleField) Enabled() bool { return f.enabled }
func (f *ObstacleField) Count() int    { return len(f.obstacles) }

// TotalSpawned counts every obstacle ever spawned, for stats reporting.
func (f *ObstacleField) TotalSpawned() int { return f.spawned }

// Obstacles returns a copy of the live obstacle list for snapshots.
func (f *ObstacleField) Obstacles() []Obstacle {
	out := make([]Obstacle, len(f.obstacles))
	for i, o := range f.obstacles {
		out[i] = *o
	}
	return out
}

func (f *ObstacleField) Enable() { f.enabled = true }

// Disable clears every obstacle and tears down force fields immediately.
func (f *ObstacleField) Disable() {
	for _, o := range f.obstacles {
		o.HasForceField = false
	}
	f.obstacles = nil
	f.spawnTimer = 0
	f.enabled = false
}

// Toggle flips the field on or off and returns the new state.
func (f *ObstacleField) Toggle() bool {
	if f.enabled {
		f.Disable()
	} else {
		f.Enable()
	}
	return f.enabled
}

// Update runs one tick: advance the spawn timer, attempt a spawn when due,
// age every obstacle through its lifecycle, apply active force fields and
// drop expired obstacles. Balls are only written through the explicit
// velocity/position pushes in applyForces.
func (f *ObstacleField) Update(table *Table, balls BallSet) {
	if !f.enabled {
		return
	}

	f.spawnTimer++
	// The gate is re-checked every tick once the timer is due, so a spawn
	// lands as soon as the table settles below the cap.
	if f.spawnTimer >= ObstacleSpawnTicks && len(f.obstacles) < MaxObstacles && !balls.AnyMoving() {
		f.spawnTimer = 0
		if o := f.spawn(table, balls); o != nil {
			f.obstacles = append(f.obstacles, o)
		}
	}

	// Walk from the end so removal never skips or revisits an element.
	for i := len(f.obstacles) - 1; i >= 0; i-- {
		o := f.obstacles[i]
		o.Age++
		o.Rotation += ObstacleRotationStep

		if prev := o.Phase; prev != phaseForAge(o.Age) {
			o.Phase = phaseForAge(o.Age)
			switch {
			case prev == PhaseWarning && o.Phase == PhaseActive:
				o.HasForceField = true
			case prev == PhaseActive && o.Phase == PhaseFading:
				o.HasForceField = false
			}
		}

		if o.Age > ObstacleLifetimeTicks {
			f.obstacles = append(f.obstacles[:i], f.obstacles[i+1:]...)
			continue
		}

		if o.HasForceField {
			f.applyForces(o, balls)
		}
	}
}

// spawn searches for a clear center within a fixed attempt budget. Failure
// is an expected outcome: log it and let the next interval retry.
func (f *ObstacleField) spawn(table *Table, balls BallSet) *Obstacle {
	b := table.Bounds
	for attempt := 0; attempt < ObstacleSpawnAttempts; attempt++ {
		c := NewVec2(
			b.Left+ObstacleSpawnMargin+f.rng.Float64()*(b.Width()-2*ObstacleSpawnMargin),
			b.Top+ObstacleSpawnMargin+f.rng.Float64()*(b.Height()-2*ObstacleSpawnMargin),
		)
		if !f.clearAt(c, table, balls) {
			continue
		}

		f.nextID++
		f.spawned++
		log.Printf("[FIELD] obstacle %d spawned at (%.0f, %.0f)", f.nextID, c.X, c.Y)
		return &Obstacle{ID: f.nextID, Center: c, Phase: PhaseWarning}
	}
	log.Printf("[FIELD] no clear spawn position after %d attempts", ObstacleSpawnAttempts)
	return nil
}

// clearAt checks every placement rule at spawn time: outside the baulk D,
// clear of pockets, clear of every tracked ball and of other obstacles.
// None of this is re-checked later; balls may roll into range freely.
func (f *ObstacleField) clearAt(c Vec2, table *Table, balls BallSet) bool {
	if table.InBaulkZone(c) {
		return false
	}
	if table.NearestPocketDistance(c) < ObstaclePocketClearance {
		return false
	}
	for _, ball := range balls {
		if ball.Active && ball.Position.DistanceTo(c) < ObstacleBodyClearance {
			return false
		}
	}
	for _, o := range f.obstacles {
		if o.Center.DistanceTo(c) < ObstacleSpacing {
			return false
		}
	}
	return true
}

// applyForces pushes every ball inside the interaction radius away from the
// obstacle. The push direction gets a sideways wobble from the obstacle's
// rotation, the magnitude falls off linearly with distance, and only a
// blend fraction is added so the ball's own motion still reads through.
func (f *ObstacleField) applyForces(o *Obstacle, balls BallSet) {
	for _, ball := range balls {
		if !ball.Active {
			continue
		}
		offset := ball.Position.Minus(o.Center)
		dist := offset.Magnitude()
		if dist > ObstacleFieldRadius {
			continue
		}

		dir := offset.Normalize()

		// Inside the emergency radius the gradual push cannot win: the
		// direction degenerates as distance approaches zero. Teleport the
		// ball to a safe distance and send it outward instead.
		if dist <= ObstacleEmergencyRadius {
			if dir.IsZero() {
				dir = NewVec2(1, 0)
			}
			ball.Position = o.Center.Plus(dir.Times(ObstacleEscapeDistance))
			ball.Velocity = dir.Times(ObstacleEscapeSpeed)
			continue
		}

		wobble := ObstacleWobbleGain * math.Sin(2*o.Rotation)
		dir = dir.Plus(dir.LeftNormal().Times(wobble)).Normalize()

		t := dist / ObstacleFieldRadius
		strength := ObstacleForceMax + (ObstacleForceMin-ObstacleForceMax)*t

		push := dir.Times(strength * ObstacleForceBlend)
		ball.Velocity = ball.Velocity.Plus(push).ClampMagnitude(MaxBallSpeed)
	}
}
