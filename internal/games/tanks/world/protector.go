package world

import "time"

// FieldProtector hardens the brick ring around the base into steel for a
// while and rebuilds it as brick when the protection runs out.
type FieldProtector struct {
	field  *Field
	ring   []Cell
	timer  *Timer
	active bool
}

// NewFieldProtector records the base wall cells present at load time.
func NewFieldProtector(f *Field, clock *Clock, duration time.Duration) *FieldProtector {
	p := &FieldProtector{field: f, timer: NewTimer(clock, duration)}
	for row := 0; row < f.Rows(); row++ {
		for col := 0; col < f.Cols(); col++ {
			c := Cell{Col: col, Row: row}
			if f.Tile(c) == TileBaseWall {
				p.ring = append(p.ring, c)
			}
		}
	}
	return p
}

// Activate turns the ring into steel and (re)starts the countdown.
func (p *FieldProtector) Activate() {
	p.fill(TileSteel)
	p.timer.Start()
	p.active = true
}

// Update restores the brick ring once the protection expired.
func (p *FieldProtector) Update() {
	if p.active && p.timer.Tick() {
		p.fill(TileBaseWall)
		p.active = false
	}
}

// Active reports whether the base is currently hardened.
func (p *FieldProtector) Active() bool {
	return p.active
}

// Remaining returns how long the protection still lasts.
func (p *FieldProtector) Remaining() time.Duration {
	if !p.active {
		return 0
	}
	return p.timer.Remaining()
}

func (p *FieldProtector) fill(t Tile) {
	for _, c := range p.ring {
		p.field.SetTile(c, t)
	}
}
