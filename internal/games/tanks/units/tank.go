package units

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// TankSize is the side of a tank footprint in px (2x2 cells).
const TankSize = 2 * world.CellSize

// TankID is a stable handle for a tank. Zero is never assigned.
type TankID uint32

// State is the lifecycle stage of a tank.
type State int

const (
	StateSpawning State = iota
	StateActive
	StateHit
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateActive:
		return "active"
	case StateHit:
		return "hit"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Tank is a player or enemy vehicle. Position is the top-left corner in world
// px; Rect rounds it to the pixel grid.
type Tank struct {
	ID       TankID
	Fraction Fraction
	Color    Color
	Type     Type

	Direction world.Direction
	X, Y      float64

	Spawning   bool // appearing; not yet in play
	Hit        bool // hit this frame, resolved by the owner
	ToDestroy  bool // queued for removal
	WantToFire bool // the controller asked for a shot
	Bonus      bool // drops a bonus when destroyed

	prevX, prevY float64
	moving       bool
	fired        bool

	clock       *world.Clock
	fireTimer   *world.Timer
	shieldTimer *world.Timer
}

// NewTank creates a tank facing up at the origin. The fire cooldown starts
// elapsed so the first shot is immediate.
func NewTank(clock *world.Clock, fraction Fraction, color Color, typ Type) *Tank {
	t := &Tank{
		Fraction:  fraction,
		Color:     color,
		Type:      typ,
		Direction: world.DirUp,
		clock:     clock,
		fireTimer: world.NewArmedTimer(clock, typ.Spec().FireCooldown),
	}
	t.shieldTimer = world.NewTimer(clock, 0)
	t.shieldTimer.Finish()
	return t
}

// State derives the lifecycle stage from the tank flags.
func (t *Tank) State() State {
	switch {
	case t.ToDestroy:
		return StateDestroyed
	case t.Spawning:
		return StateSpawning
	case t.Hit:
		return StateHit
	default:
		return StateActive
	}
}

// Place moves the tank without recording a step.
func (t *Tank) Place(x, y int) {
	t.X, t.Y = float64(x), float64(y)
	t.prevX, t.prevY = t.X, t.Y
}

// PlaceAtCell puts the tank's top-left corner on the given cell.
func (t *Tank) PlaceAtCell(c world.Cell) {
	t.Place(c.Col*world.CellSize, c.Row*world.CellSize)
}

// Rect returns the tank footprint in world px.
func (t *Tank) Rect() core.Rect {
	return core.NewRect(int(math.Round(t.X)), int(math.Round(t.Y)), TankSize, TankSize)
}

// Center returns the footprint center point.
func (t *Tank) Center() (int, int) {
	return t.Rect().Center()
}

// Cell returns the cell under the footprint's top-left corner, rounded to the
// nearest grid line.
func (t *Tank) Cell() world.Cell {
	return world.Cell{
		Col: int(math.Round(t.X / world.CellSize)),
		Row: int(math.Round(t.Y / world.CellSize)),
	}
}

// BeginFrame resets the per-frame bookkeeping: the undo point and the
// once-per-frame fire ceiling.
func (t *Tank) BeginFrame() {
	t.prevX, t.prevY = t.X, t.Y
	t.fired = false
	t.moving = false
}

// Turn faces the tank in dir. Changing direction snaps the tank to the grid
// on the axis perpendicular to the new heading.
func (t *Tank) Turn(dir world.Direction) {
	if !dir.Valid() || dir == t.Direction {
		return
	}
	t.Direction = dir
	t.Align()
}

// Move turns the tank toward dir and advances it by its speed over dt.
func (t *Tank) Move(dir world.Direction, dt time.Duration) {
	t.prevX, t.prevY = t.X, t.Y
	t.Turn(dir)
	dx, dy := t.Direction.Delta()
	step := t.Type.Spec().Speed * dt.Seconds()
	t.X += float64(dx) * step
	t.Y += float64(dy) * step
	t.moving = true
}

// UndoMove restores the position recorded before the last Move.
func (t *Tank) UndoMove() {
	t.X, t.Y = t.prevX, t.prevY
}

// Moved reports whether the rounded footprint changed since the frame began
// or the last Move.
func (t *Tank) Moved() bool {
	return math.Round(t.X) != math.Round(t.prevX) || math.Round(t.Y) != math.Round(t.prevY)
}

// Moving reports whether Move was called this frame.
func (t *Tank) Moving() bool { return t.moving }

// Stop clears the moving flag.
func (t *Tank) Stop() { t.moving = false }

// Align snaps the coordinate perpendicular to the heading to the nearest
// cell boundary.
func (t *Tank) Align() {
	if t.Direction.Vertical() {
		t.X = math.Round(t.X/world.CellSize) * world.CellSize
	} else {
		t.Y = math.Round(t.Y/world.CellSize) * world.CellSize
	}
}

// TryFire consumes the fire cooldown. It succeeds at most once per frame.
func (t *Tank) TryFire() bool {
	if t.fired || !t.fireTimer.Tick() {
		return false
	}
	t.fireTimer.Start()
	t.fired = true
	return true
}

// GunPoint is where a new projectile appears: the middle of the leading edge.
func (t *Tank) GunPoint() (int, int) {
	r := t.Rect()
	cx, cy := r.Center()
	switch t.Direction {
	case world.DirUp:
		return cx, r.Y
	case world.DirDown:
		return cx, r.Bottom() - 1
	case world.DirLeft:
		return r.X, cy
	default:
		return r.Right() - 1, cy
	}
}

// SetType changes the model and its fire cooldown.
func (t *Tank) SetType(typ Type) {
	t.Type = typ
	t.fireTimer.Delay = typ.Spec().FireCooldown
}

// Upgrade moves a player tank one tier up the LEVEL ladder.
func (t *Tank) Upgrade() {
	t.SetType(t.Type.Upgraded())
}

// HighPower reports whether the tank's shots destroy steel.
func (t *Tank) HighPower() bool {
	return t.Type.Spec().HighPower
}

// ActivateShield makes the tank immune to hits for d.
func (t *Tank) ActivateShield(d time.Duration) {
	t.shieldTimer.Delay = d
	t.shieldTimer.Start()
}

// Shielded reports whether the shield is up.
func (t *Tank) Shielded() bool {
	return !t.shieldTimer.Tick()
}

// ShieldRemaining returns how long the shield lasts.
func (t *Tank) ShieldRemaining() time.Duration {
	return t.shieldTimer.Remaining()
}

// CheckHit reports whether the point lies inside the footprint.
func (t *Tank) CheckHit(x, y int) bool {
	return t.Rect().Contains(x, y)
}

// Alive reports whether the tank takes part in the battle: not queued for
// removal and past its spawn animation.
func (t *Tank) Alive() bool {
	return !t.ToDestroy && !t.Spawning
}

// ResolveHit applies a pending hit and clears the flag. A PLAIN heavy enemy
// loses its paint first; every other tank is queued for destruction.
// It reports whether the tank was destroyed.
func (t *Tank) ResolveHit() bool {
	if !t.Hit {
		return false
	}
	t.Hit = false
	if t.Type == TypeEnemyHeavy && t.Color == ColorPlain {
		t.Color = ColorGreen
		return false
	}
	t.ToDestroy = true
	return true
}
