// Package world holds the static side of a tank battle: the terrain grid, the
// per-frame occupancy snapshot, directions and the simulation clock.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// ErrMalformedLevel is returned when level data cannot form a playable field.
var ErrMalformedLevel = errors.New("malformed level")

// BaseSize is the base footprint in cells (square).
const BaseSize = 2

// Layout is the level loader's output: a rectangular tile grid plus the fixed
// base and respawn cells. Spawn and base cells name the top-left cell of a
// 2x2 footprint.
type Layout struct {
	Cols, Rows   int
	Tiles        []Tile // row-major, len = Cols*Rows
	Base         Cell
	EnemySpawns  []Cell
	PlayerSpawns []Cell
}

// Field is the static terrain grid of one battle. It owns the occupancy map.
type Field struct {
	cols, rows   int
	tiles        []Tile
	base         Cell
	enemySpawns  []Cell
	playerSpawns []Cell
	occupancy    *OccupancyMap
}

// NewField validates the layout and builds a field from it.
func NewField(l Layout) (*Field, error) {
	if l.Cols <= 0 || l.Rows <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedLevel, l.Cols, l.Rows)
	}
	if len(l.Tiles) != l.Cols*l.Rows {
		return nil, fmt.Errorf("%w: %d tiles for a %dx%d grid", ErrMalformedLevel, len(l.Tiles), l.Cols, l.Rows)
	}
	f := &Field{
		cols:         l.Cols,
		rows:         l.Rows,
		tiles:        append([]Tile(nil), l.Tiles...),
		base:         l.Base,
		enemySpawns:  append([]Cell(nil), l.EnemySpawns...),
		playerSpawns: append([]Cell(nil), l.PlayerSpawns...),
		occupancy:    NewOccupancyMap(l.Cols, l.Rows),
	}
	if !f.fits(l.Base) {
		return nil, fmt.Errorf("%w: base at %v outside the grid", ErrMalformedLevel, l.Base)
	}
	if len(l.EnemySpawns) == 0 || len(l.PlayerSpawns) == 0 {
		return nil, fmt.Errorf("%w: need at least one enemy and one player respawn cell", ErrMalformedLevel)
	}
	for _, spawns := range [][]Cell{f.enemySpawns, f.playerSpawns} {
		for _, c := range spawns {
			if !f.fits(c) {
				return nil, fmt.Errorf("%w: respawn cell %v outside the grid", ErrMalformedLevel, c)
			}
		}
	}
	return f, nil
}

// fits reports whether a 2x2 footprint with top-left c lies inside the grid.
func (f *Field) fits(c Cell) bool {
	return f.InBounds(c) && f.InBounds(c.Add(BaseSize-1, BaseSize-1))
}

// Cols returns the grid width in cells.
func (f *Field) Cols() int { return f.cols }

// Rows returns the grid height in cells.
func (f *Field) Rows() int { return f.rows }

// Occupancy returns the per-frame occupancy map.
func (f *Field) Occupancy() *OccupancyMap { return f.occupancy }

// BaseCell returns the top-left cell of the base.
func (f *Field) BaseCell() Cell { return f.base }

// Bounds returns the playable area in world pixels.
func (f *Field) Bounds() core.Rect {
	return core.NewRect(0, 0, f.cols*CellSize, f.rows*CellSize)
}

// InBounds reports whether c is a valid grid cell.
func (f *Field) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < f.cols && c.Row >= 0 && c.Row < f.rows
}

// Tile returns the terrain at c; cells outside the grid read as steel.
func (f *Field) Tile(c Cell) Tile {
	if !f.InBounds(c) {
		return TileSteel
	}
	return f.tiles[c.Row*f.cols+c.Col]
}

// SetTile replaces the terrain at c.
func (f *Field) SetTile(c Cell, t Tile) {
	if f.InBounds(c) {
		f.tiles[c.Row*f.cols+c.Col] = t
	}
}

// CellFromCoords converts a world point to the cell containing it.
func (f *Field) CellFromCoords(x, y int) Cell {
	return Cell{Col: floorDiv(x, CellSize), Row: floorDiv(y, CellSize)}
}

// CoordsOfCell returns the world position of the top-left corner of c.
func (f *Field) CoordsOfCell(c Cell) (int, int) {
	return c.Col * CellSize, c.Row * CellSize
}

// Passable reports whether a tank may stand on c.
func (f *Field) Passable(c Cell) bool {
	return f.InBounds(c) && !f.Tile(c).BlocksTanks()
}

// IntersectRect reports whether r leaves the field or overlaps tank-blocking terrain.
func (f *Field) IntersectRect(r core.Rect) bool {
	if r.Empty() {
		return false
	}
	b := f.Bounds()
	if r.X < b.X || r.Y < b.Y || r.Right() > b.Right() || r.Bottom() > b.Bottom() {
		return true
	}
	c0 := f.CellFromCoords(r.X, r.Y)
	c1 := f.CellFromCoords(r.Right()-1, r.Bottom()-1)
	for row := c0.Row; row <= c1.Row; row++ {
		for col := c0.Col; col <= c1.Col; col++ {
			if f.Tile(Cell{Col: col, Row: row}).BlocksTanks() {
				return true
			}
		}
	}
	return false
}

// CheckHit resolves a projectile whose leading point is (x, y) flying in dir.
// The impact zone is one cell wide across the flight line. Tiles in the zone
// that the power can destroy are removed. It returns true when the projectile
// is stopped: it hit a projectile-blocking tile or left the field.
func (f *Field) CheckHit(x, y int, dir Direction, high bool) bool {
	if !f.Bounds().Contains(x, y) {
		return true
	}
	var zone core.Rect
	if dir.Vertical() {
		zone = core.NewRect(x-CellSize/2, y, CellSize, 1)
	} else {
		zone = core.NewRect(x, y-CellSize/2, 1, CellSize)
	}
	c0 := f.CellFromCoords(zone.X, zone.Y)
	c1 := f.CellFromCoords(zone.Right()-1, zone.Bottom()-1)

	hit := false
	for row := c0.Row; row <= c1.Row; row++ {
		for col := c0.Col; col <= c1.Col; col++ {
			c := Cell{Col: col, Row: row}
			if !f.InBounds(c) {
				continue
			}
			t := f.Tile(c)
			if !t.BlocksProjectiles() {
				continue
			}
			hit = true
			if t.Destructible(high) {
				f.SetTile(c, TileEmpty)
			}
		}
	}
	return hit
}

// RespawnPoints returns the candidate spawn cells for a fraction.
func (f *Field) RespawnPoints(enemy bool) []Cell {
	if enemy {
		return append([]Cell(nil), f.enemySpawns...)
	}
	return append([]Cell(nil), f.playerSpawns...)
}
