package ai

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// Defaults for a single enemy tank.
const (
	DefaultSpawnDelay   = 1500 * time.Millisecond
	DefaultFireInterval = time.Second
	minDirDelay         = 300 * time.Millisecond
	maxDirDelay         = 1500 * time.Millisecond
)

// Battlefield is the part of the game an enemy looks at when deciding.
// Base and Player may return nil when absent.
type Battlefield interface {
	Field() *world.Field
	Base() *units.Base
	Player() *units.Tank
}

// TankAI steers one enemy tank.
type TankAI struct {
	tank *units.Tank
	bf   Battlefield
	rng  *rand.Rand

	fireTimer  *world.Timer
	dirTimer   *world.Timer
	spawnTimer *world.Timer
}

// NewTankAI attaches a controller to the tank. The spawn delay starts now;
// fire and direction timers start elapsed.
func NewTankAI(tank *units.Tank, bf Battlefield, clock *world.Clock, rng *rand.Rand, spawnDelay, fireInterval time.Duration) *TankAI {
	a := &TankAI{
		tank:       tank,
		bf:         bf,
		rng:        rng,
		fireTimer:  world.NewArmedTimer(clock, fireInterval),
		spawnTimer: world.NewTimer(clock, spawnDelay),
	}
	a.dirTimer = world.NewArmedTimer(clock, a.dirDelay())
	return a
}

func (a *TankAI) dirDelay() time.Duration {
	return minDirDelay + time.Duration(a.rng.Int63n(int64(maxDirDelay-minDirDelay)+1))
}

// Tank returns the controlled tank.
func (a *TankAI) Tank() *units.Tank { return a.tank }

// Reset randomizes the heading.
func (a *TankAI) Reset() {
	a.tank.Direction = world.RandomDirection(a.rng)
}

// Update runs one decision step. The occupancy map must hold this frame's
// snapshot.
func (a *TankAI) Update(dt time.Duration) {
	t := a.tank
	if t.Spawning {
		if !a.spawnTimer.Tick() {
			return
		}
		if !a.bf.Field().Occupancy().TestRect(t.Rect(), world.NoOccupant, a.self()) {
			return
		}
		t.Spawning = false
	}

	if t.ResolveHit() {
		return
	}

	if a.fireTimer.Tick() {
		if target, ok := a.targetInLine(); ok {
			a.face(target)
		}
		t.WantToFire = true
		a.fireTimer.Start()
	}

	if a.dirTimer.Tick() {
		t.Direction = a.pickDirection()
		a.dirTimer.Delay = a.dirDelay()
		a.dirTimer.Start()
	}

	if a.tryMove(t.Direction, dt) {
		return
	}
	a.tryMove(a.pickDirection(), dt)
}

func (a *TankAI) self() world.Occupant {
	return world.Occupant{Kind: world.OccupantTank, ID: uint32(a.tank.ID)}
}

// tryMove steps the tank and rolls it back when the new footprint hits
// terrain or another occupant. It reports whether the step stuck.
func (a *TankAI) tryMove(dir world.Direction, dt time.Duration) bool {
	t := a.tank
	f := a.bf.Field()
	t.Move(dir, dt)
	r := t.Rect()
	if f.IntersectRect(r) || !f.Occupancy().TestRect(r, world.NoOccupant, a.self()) {
		t.UndoMove()
		return false
	}
	return true
}

// targetInLine returns the center of the base or the player when one of them
// is on the tank's row or column with nothing solid in between. The base
// takes priority.
func (a *TankAI) targetInLine() (core.Rect, bool) {
	if b := a.bf.Base(); b != nil && !b.Broken {
		if a.clearLine(b.Rect()) {
			return b.Rect(), true
		}
	}
	if p := a.bf.Player(); p != nil && p.Alive() {
		if a.clearLine(p.Rect()) {
			return p.Rect(), true
		}
	}
	return core.Rect{}, false
}

func (a *TankAI) clearLine(target core.Rect) bool {
	f := a.bf.Field()
	from := a.tank.Cell()
	to := f.CellFromCoords(target.X, target.Y)

	switch {
	case from.Col == to.Col:
		step := 1
		if to.Row < from.Row {
			step = -1
		}
		for r := from.Row + step; r != to.Row; r += step {
			if f.Tile(world.Cell{Col: from.Col, Row: r}).BlocksProjectiles() {
				return false
			}
		}
		return true
	case from.Row == to.Row:
		step := 1
		if to.Col < from.Col {
			step = -1
		}
		for c := from.Col + step; c != to.Col; c += step {
			if f.Tile(world.Cell{Col: c, Row: from.Row}).BlocksProjectiles() {
				return false
			}
		}
		return true
	}
	return false
}

func (a *TankAI) face(target core.Rect) {
	tx, ty := target.Center()
	x, y := a.tank.Center()
	dir := world.DirUp
	if core.Abs(tx-x) > core.Abs(ty-y) {
		dir = world.DirLeft
		if tx > x {
			dir = world.DirRight
		}
	} else if ty > y {
		dir = world.DirDown
	}
	a.tank.Turn(dir)
}

// pickDirection heads along a path to the base, else to the player. Without
// a path it picks a random heading that does not run into the border.
func (a *TankAI) pickDirection() world.Direction {
	f := a.bf.Field()
	from := a.tank.Cell()

	var goals []world.Cell
	if b := a.bf.Base(); b != nil && !b.Broken {
		goals = append(goals, f.BaseCell())
	}
	if p := a.bf.Player(); p != nil && p.Alive() {
		goals = append(goals, p.Cell())
	}
	for _, goal := range goals {
		if path := FindPath(f, from, goal, 2); len(path) > 0 {
			return path[0]
		}
	}

	choices := make([]world.Direction, 0, len(world.AllDirections))
	for _, d := range world.AllDirections {
		switch {
		case d == world.DirLeft && from.Col <= 1,
			d == world.DirUp && from.Row <= 1,
			d == world.DirRight && from.Col >= f.Cols()-2,
			d == world.DirDown && from.Row >= f.Rows()-2:
			continue
		}
		choices = append(choices, d)
	}
	if len(choices) == 0 {
		return world.RandomDirection(a.rng)
	}
	return choices[a.rng.Intn(len(choices))]
}
