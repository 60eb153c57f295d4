package game

// Bounds is the rectangular playing surface in table units. Top is the
// smaller Y value (screen coordinates).
type Bounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (b Bounds) Width() float64  { return b.Right - b.Left }
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// Table holds the full table geometry: outer bounds, pocket centers and the
// cue ball placement zone.
type Table struct {
	Bounds  Bounds `json:"bounds"`
	Pockets []Vec2 `json:"pockets"`
}

// NewStandardTable builds the standard six-pocket table centered on the
// origin: four corner pockets plus two middle pockets on the long rails.
func NewStandardTable() *Table {
	b := Bounds{
		Left:   -TableWidth / 2,
		Right:  TableWidth / 2,
		Top:    -TableHeight / 2,
		Bottom: TableHeight / 2,
	}
	return &Table{
		Bounds: b,
		Pockets: []Vec2{
			NewVec2(b.Left, b.Top),
			NewVec2(0, b.Top),
			NewVec2(b.Right, b.Top),
			NewVec2(b.Left, b.Bottom),
			NewVec2(0, b.Bottom),
			NewVec2(b.Right, b.Bottom),
		},
	}
}

// InBaulkZone reports whether p lies inside the "D" where the cue ball may
// be placed: the half-disc of BaulkRadius behind the baulk spot.
func (t *Table) InBaulkZone(p Vec2) bool {
	spot := NewVec2(BaulkSpotX, 0)
	return p.X <= BaulkSpotX && p.DistanceTo(spot) <= BaulkRadius
}

// NearestPocketDistance returns the distance from p to the closest pocket
// center.
func (t *Table) NearestPocketDistance(p Vec2) float64 {
	best := -1.0
	for _, pk := range t.Pockets {
		d := p.DistanceTo(pk)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
