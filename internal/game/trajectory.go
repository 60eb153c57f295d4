package game

// TrajectorySample is one point on a predicted trail: where the ball would
// be, how many cushions it has taken so far, and how fast it is going.
// The renderer reads the sequence; it is rebuilt from scratch on every
// prediction and never mutated in place.
type TrajectorySample struct {
	Position Vec2    `json:"position"`
	Bounces  int     `json:"bounces"`
	Speed    float64 `json:"speed"`
}

// TrajectoryConfig tunes the forward simulation. All fields are overridable
// per call; DefaultTrajectoryConfig matches the live table feel.
type TrajectoryConfig struct {
	MaxSteps    int
	StepSize    float64
	MaxBounces  int
	SpeedFloor  float64
	Friction    float64 // per-step velocity retention, < 1
	Restitution float64 // velocity retained after a cushion bounce, < 1
}

func DefaultTrajectoryConfig() TrajectoryConfig {
	return TrajectoryConfig{
		MaxSteps:    TrailMaxSteps,
		StepSize:    TrailStepSize,
		MaxBounces:  TrailMaxBounces,
		SpeedFloor:  TrailSpeedFloor,
		Friction:    TrailFriction,
		Restitution: TrailRestitution,
	}
}

// reflect mirrors v about the plane with outward normal n: v - 2(v.n)n.
func reflect(v, n Vec2) Vec2 {
	return v.Minus(n.Times(2 * v.Dot(n)))
}

// PredictTrajectory traces the path a ball launched from start with the
// given velocity would take across the bounded surface, cushion bounces
// included. Pure function: no table or ball state is touched.
//
// The simulation is a fixed-step march rather than a closed-form solve;
// bounces make the path non-differentiable, so each step applies friction,
// advances, and tests the travelled segment against the four inset edges.
// Only one axis is resolved per step, in left, right, top, bottom order,
// first match wins. A ball crossing two edges in the same step (dead corner)
// resolves only the first; the next step picks up the second. That matches
// the live cushion behavior and is intentional.
//
// Always terminates within MaxSteps and always returns a (possibly empty)
// trail; a zero launch velocity yields at most one sample.
func PredictTrajectory(start, launch Vec2, b Bounds, cfg TrajectoryConfig) []TrajectorySample {
	left := b.Left + TrailInset
	right := b.Right - TrailInset
	top := b.Top + TrailInset
	bottom := b.Bottom - TrailInset

	pos := start
	vel := launch
	bounces := 0
	samples := make([]TrajectorySample, 0, cfg.MaxSteps)

	for step := 0; step < cfg.MaxSteps && bounces < cfg.MaxBounces; step++ {
		// Friction before the bounce test keeps decay continuous across a
		// bounce: total decay is Friction^step regardless of step size.
		vel = vel.Times(cfg.Friction)
		next := pos.Plus(vel.Times(cfg.StepSize))

		// A crossing needs the previous position strictly inside the inset
		// edge and the candidate at or beyond it. Clamp only the crossed
		// coordinate, reflect, then bleed energy through restitution.
		switch {
		case pos.X > left && next.X <= left:
			next.X = left
			vel = reflect(vel, NewVec2(1, 0)).Times(cfg.Restitution)
			bounces++
		case pos.X < right && next.X >= right:
			next.X = right
			vel = reflect(vel, NewVec2(-1, 0)).Times(cfg.Restitution)
			bounces++
		case pos.Y > top && next.Y <= top:
			next.Y = top
			vel = reflect(vel, NewVec2(0, 1)).Times(cfg.Restitution)
			bounces++
		case pos.Y < bottom && next.Y >= bottom:
			next.Y = bottom
			vel = reflect(vel, NewVec2(0, -1)).Times(cfg.Restitution)
			bounces++
		}

		samples = append(samples, TrajectorySample{
			Position: next,
			Bounces:  bounces,
			Speed:    vel.Magnitude(),
		})
		pos = next

		if vel.Magnitude() < cfg.SpeedFloor {
			break
		}
	}
	return samples
}
