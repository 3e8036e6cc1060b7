package units

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// Base is the player's headquarters. A single hit breaks it and ends the game.
type Base struct {
	rect   core.Rect
	Broken bool
}

// NewBase places the base footprint on the field's base cell.
func NewBase(f *world.Field) *Base {
	x, y := f.CoordsOfCell(f.BaseCell())
	side := world.BaseSize * world.CellSize
	return &Base{rect: core.NewRect(x, y, side, side)}
}

// Rect returns the base footprint.
func (b *Base) Rect() core.Rect { return b.rect }

// CheckHit reports whether the point lies inside an intact base.
func (b *Base) CheckHit(x, y int) bool {
	return !b.Broken && b.rect.Contains(x, y)
}
