package game

// Ball is the authoritative physics state of a single ball. Potted balls
// stay in the set with Active=false so IDs remain stable for the client.
type Ball struct {
	ID       int  `json:"id"`
	Position Vec2 `json:"position"`
	Velocity Vec2 `json:"velocity"`
	Active   bool `json:"active"`
	Cue      bool `json:"cue"`
}

// Moving reports whether the ball is in motion. Parked balls have their
// velocity zeroed by the mover, so a plain zero check is enough.
func (b *Ball) Moving() bool {
	return b.Active && !b.Velocity.IsZero()
}

// BallSet is the collection of tracked balls handed to the obstacle field
// and the mover each tick.
type BallSet []*Ball

// AnyMoving reports whether any tracked ball is currently in motion. It
// gates obstacle spawning: obstacles only appear on a settled table.
func (s BallSet) AnyMoving() bool {
	for _, b := range s {
		if b.Moving() {
			return true
		}
	}
	return false
}

// CueBall returns the cue ball, or nil if it has been potted off the set.
func (s BallSet) CueBall() *Ball {
	for _, b := range s {
		if b.Cue {
			return b
		}
	}
	return nil
}

// RackBalls lays out the cue ball on the baulk spot and nine object balls
// in a triangle on the opposite half of the table.
func RackBalls() BallSet {
	balls := make(BallSet, 0, NumBalls)
	balls = append(balls, &Ball{
		ID:       0,
		Position: NewVec2(BaulkSpotX, 0),
		Active:   true,
		Cue:      true,
	})

	apex := NewVec2(TableWidth/4, 0)
	gap := BallRadius * 2.05
	id := 1
	for row := 0; row < 3 && id < NumBalls; row++ {
		for k := 0; k <= row && id < NumBalls; k++ {
			x := apex.X + float64(row)*gap*0.87
			y := (float64(k) - float64(row)/2) * gap
			balls = append(balls, &Ball{
				ID:       id,
				Position: NewVec2(x, y),
				Active:   true,
			})
			id++
		}
	}
	// Fourth row holds the remaining balls.
	for k := 0; id < NumBalls; k++ {
		x := apex.X + 3*gap*0.87
		y := (float64(k) - 1.5) * gap
		balls = append(balls, &Ball{
			ID:       id,
			Position: NewVec2(x, y),
			Active:   true,
		})
		id++
	}
	return balls
}
