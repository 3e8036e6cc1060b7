package tanks

// TankSnapshot is the comparable state of one tank.
type TankSnapshot struct {
	ID        uint32
	Type      string
	Direction string
	X, Y      int
	Spawning  bool
}

// Snapshot captures the comparable battle state, used to check that equal
// seeds and inputs replay identically.
type Snapshot struct {
	Ticks       uint64
	Score       int
	Running     bool
	Tanks       []TankSnapshot
	Projectiles int
	Bonuses     int
	EnemiesLeft int
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Ticks:       g.ticks,
		Score:       g.score,
		Running:     g.running,
		Projectiles: len(g.projectiles),
		Bonuses:     len(g.bonuses),
		EnemiesLeft: g.EnemiesLeft(),
	}
	for _, t := range g.Tanks() {
		r := t.Rect()
		s.Tanks = append(s.Tanks, TankSnapshot{
			ID:        uint32(t.ID),
			Type:      t.Type.String(),
			Direction: t.Direction.String(),
			X:         r.X,
			Y:         r.Y,
			Spawning:  t.Spawning,
		})
	}
	return s
}
