package game

// Mover is the authoritative per-tick integrator for accepted ball motion:
// advance, bounce off cushions, resolve ball-ball contacts, capture pockets,
// bleed speed to friction. It is deliberately simple; the predictive
// subsystems never reach into it, they only read and write ball state.
type Mover struct {
	Table *Table
}

func NewMover(table *Table) *Mover {
	return &Mover{Table: table}
}

// Step advances every active ball one tick and returns the IDs of balls
// potted during the tick.
func (m *Mover) Step(balls BallSet) []int {
	var potted []int

	for _, b := range balls {
		if !b.Active || b.Velocity.IsZero() {
			continue
		}
		b.Position = b.Position.Plus(b.Velocity)
		m.bounceCushions(b)

		if m.capturePocket(b) {
			potted = append(potted, b.ID)
		}
	}

	m.resolveBallContacts(balls)
	m.applyFriction(balls)
	return potted
}

func (m *Mover) bounceCushions(b *Ball) {
	bounds := m.Table.Bounds
	left := bounds.Left + BallRadius
	right := bounds.Right - BallRadius
	top := bounds.Top + BallRadius
	bottom := bounds.Bottom - BallRadius

	if b.Position.X < left {
		b.Position.X = left
		b.Velocity.X = fix(-b.Velocity.X * CushionRestitution)
	} else if b.Position.X > right {
		b.Position.X = right
		b.Velocity.X = fix(-b.Velocity.X * CushionRestitution)
	}
	if b.Position.Y < top {
		b.Position.Y = top
		b.Velocity.Y = fix(-b.Velocity.Y * CushionRestitution)
	} else if b.Position.Y > bottom {
		b.Position.Y = bottom
		b.Velocity.Y = fix(-b.Velocity.Y * CushionRestitution)
	}
}

func (m *Mover) capturePocket(b *Ball) bool {
	for _, p := range m.Table.Pockets {
		if b.Position.DistanceTo(p) < PocketRadius {
			b.Active = false
			b.Velocity = Vec2{}
			b.Position = p
			return true
		}
	}
	return false
}

// resolveBallContacts handles equal-mass pairwise collisions: separate the
// overlap, then exchange the normal velocity components with restitution.
func (m *Mover) resolveBallContacts(balls BallSet) {
	for i := 0; i < len(balls); i++ {
		a := balls[i]
		if !a.Active {
			continue
		}
		for j := i + 1; j < len(balls); j++ {
			c := balls[j]
			if !c.Active {
				continue
			}
			offset := c.Position.Minus(a.Position)
			dist := offset.Magnitude()
			if dist >= 2*BallRadius || dist == 0 {
				continue
			}

			n := offset.Normalize()
			overlap := 2*BallRadius - dist
			a.Position = a.Position.Minus(n.Times(overlap / 2))
			c.Position = c.Position.Plus(n.Times(overlap / 2))

			aNormal := n.Times(a.Velocity.Dot(n))
			cNormal := n.Times(c.Velocity.Dot(n))
			aTangent := a.Velocity.Minus(aNormal)
			cTangent := c.Velocity.Minus(cNormal)

			a.Velocity = aTangent.Plus(cNormal.Times(BallRestitution))
			c.Velocity = cTangent.Plus(aNormal.Times(BallRestitution))
		}
	}
}

// applyFriction bleeds a constant amount of speed per tick and parks balls
// that drop below the minimum, so Moving() stays a plain zero check.
func (m *Mover) applyFriction(balls BallSet) {
	for _, b := range balls {
		if !b.Active || b.Velocity.IsZero() {
			continue
		}
		speed := b.Velocity.Magnitude() - RollFriction
		if speed < MinVelocity {
			b.Velocity = Vec2{}
			continue
		}
		b.Velocity = b.Velocity.Normalize().Times(speed)
	}
}
