package units

import (
	"time"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// ExplosionKind selects the size and lifetime of an explosion.
type ExplosionKind int

const (
	ExplosionSuperShort ExplosionKind = iota // terrain hit
	ExplosionShort                           // tank hit
	ExplosionFull                            // destroyed tank or base
)

// Duration is how long an explosion of this kind stays on screen.
func (k ExplosionKind) Duration() time.Duration {
	switch k {
	case ExplosionSuperShort:
		return 150 * time.Millisecond
	case ExplosionShort:
		return 300 * time.Millisecond
	default:
		return 600 * time.Millisecond
	}
}

// Explosion is a purely visual effect centered on a point.
type Explosion struct {
	X, Y  int
	Kind  ExplosionKind
	timer *world.Timer
}

// NewExplosion starts an explosion at (x, y).
func NewExplosion(clock *world.Clock, x, y int, kind ExplosionKind) *Explosion {
	return &Explosion{X: x, Y: y, Kind: kind, timer: world.NewTimer(clock, kind.Duration())}
}

// Done reports whether the explosion has burned out.
func (e *Explosion) Done() bool { return e.timer.Tick() }

// Progress returns the elapsed share of the lifetime in [0, 1].
func (e *Explosion) Progress() float64 {
	total := e.Kind.Duration()
	if total <= 0 {
		return 1
	}
	return 1 - float64(e.timer.Remaining())/float64(total)
}

// PopupDuration is how long a score popup floats above a kill.
const PopupDuration = time.Second

// ScorePopup shows the points earned for a kill.
type ScorePopup struct {
	X, Y   int
	Points int
	timer  *world.Timer
}

// NewScorePopup starts a popup at (x, y).
func NewScorePopup(clock *world.Clock, x, y, points int) *ScorePopup {
	return &ScorePopup{X: x, Y: y, Points: points, timer: world.NewTimer(clock, PopupDuration)}
}

// Done reports whether the popup expired.
func (p *ScorePopup) Done() bool { return p.timer.Tick() }
