package units

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// Power decides what terrain a projectile can break.
type Power int

const (
	PowerNormal Power = iota
	PowerHigh
)

// ProjectileReach is the half-size of the box a projectile claims in the
// occupancy map; two projectiles whose boxes touch annihilate.
const ProjectileReach = 2

// ProjectileID identifies a projectile within a game.
type ProjectileID uint32

// Projectile is a shell in flight. Its position is a point in world px.
type Projectile struct {
	ID        ProjectileID
	X, Y      float64
	Direction world.Direction
	Speed     float64 // px per second
	Power     Power
	Sender    TankID
}

// NewProjectile fires a shell from the tank's gun point.
func NewProjectile(from *Tank) *Projectile {
	x, y := from.GunPoint()
	p := &Projectile{
		X:         float64(x),
		Y:         float64(y),
		Direction: from.Direction,
		Speed:     from.Type.Spec().ShotSpeed,
		Sender:    from.ID,
	}
	if from.HighPower() {
		p.Power = PowerHigh
	}
	return p
}

// MaxHop is the longest distance a projectile covers between two hit checks.
// It keeps a one-cell wall from being jumped at low frame rates.
const MaxHop = world.CellSize / 2

// Advance moves the projectile dist px along its direction.
func (p *Projectile) Advance(dist float64) {
	dx, dy := p.Direction.Delta()
	p.X += float64(dx) * dist
	p.Y += float64(dy) * dist
}

// Hops splits the travel over dt into n equal hops of at most MaxHop px.
func (p *Projectile) Hops(dt time.Duration) (n int, hop float64) {
	dist := p.Speed * dt.Seconds()
	n = int(math.Ceil(dist / MaxHop))
	if n < 1 {
		n = 1
	}
	return n, dist / float64(n)
}

// Point returns the position rounded to px.
func (p *Projectile) Point() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Rect returns the box the projectile claims in the occupancy map.
func (p *Projectile) Rect() core.Rect {
	x, y := p.Point()
	return core.NewRect(x, y, 1, 1).Extend(ProjectileReach)
}

// High reports whether the projectile destroys steel.
func (p *Projectile) High() bool {
	return p.Power == PowerHigh
}
