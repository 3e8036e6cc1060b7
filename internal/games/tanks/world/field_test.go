package world

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// openLayout builds an empty cols x rows layout with the base at the bottom
// middle, one enemy spawn top-left and one player spawn bottom-left.
func openLayout(cols, rows int) Layout {
	return Layout{
		Cols:         cols,
		Rows:         rows,
		Tiles:        make([]Tile, cols*rows),
		Base:         Cell{Col: cols/2 - 1, Row: rows - 2},
		EnemySpawns:  []Cell{{Col: 0, Row: 0}},
		PlayerSpawns: []Cell{{Col: 0, Row: rows - 2}},
	}
}

func mustField(t *testing.T, l Layout) *Field {
	t.Helper()
	f, err := NewField(l)
	if err != nil {
		t.Fatalf("NewField() failed: %v", err)
	}
	return f
}

func TestNewFieldRejectsMalformedLayouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"zero width", func(l *Layout) { l.Cols = 0 }},
		{"tile count mismatch", func(l *Layout) { l.Tiles = l.Tiles[:len(l.Tiles)-1] }},
		{"base outside", func(l *Layout) { l.Base = Cell{Col: l.Cols - 1, Row: 0} }},
		{"no enemy spawns", func(l *Layout) { l.EnemySpawns = nil }},
		{"player spawn outside", func(l *Layout) { l.PlayerSpawns = []Cell{{Col: -1, Row: 0}} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := openLayout(8, 8)
			tc.mutate(&l)
			_, err := NewField(l)
			if !errors.Is(err, ErrMalformedLevel) {
				t.Errorf("NewField() error = %v, expected ErrMalformedLevel", err)
			}
		})
	}
}

func TestFieldCoordinateConversion(t *testing.T) {
	f := mustField(t, openLayout(8, 8))

	c := f.CellFromCoords(17, 31)
	if c != (Cell{Col: 2, Row: 3}) {
		t.Errorf("CellFromCoords(17, 31) = %v, expected (2,3)", c)
	}
	x, y := f.CoordsOfCell(Cell{Col: 3, Row: 5})
	if x != 24 || y != 40 {
		t.Errorf("CoordsOfCell(3,5) = (%d, %d), expected (24, 40)", x, y)
	}
	if f.Tile(Cell{Col: -1, Row: 0}) != TileSteel {
		t.Error("outside cells should read as steel")
	}
}

func TestFieldIntersectRect(t *testing.T) {
	l := openLayout(8, 8)
	l.Tiles[2*8+2] = TileWater
	l.Tiles[2*8+5] = TileGrass
	f := mustField(t, l)

	tests := []struct {
		name string
		r    core.Rect
		want bool
	}{
		{"open ground", core.NewRect(0, 0, 16, 16), false},
		{"water blocks", core.NewRect(12, 12, 16, 16), true},
		{"grass does not block", core.NewRect(40, 16, 16, 16), false},
		{"leaving the field", core.NewRect(-1, 0, 16, 16), true},
		{"past the bottom edge", core.NewRect(0, 56, 16, 16), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectRect(tc.r); got != tc.want {
				t.Errorf("IntersectRect(%+v) = %v, expected %v", tc.r, got, tc.want)
			}
		})
	}
}

func TestFieldCheckHitPowerPolicy(t *testing.T) {
	l := openLayout(8, 8)
	l.Tiles[1*8+3] = TileBrick
	l.Tiles[1*8+4] = TileSteel
	f := mustField(t, l)

	// Vertical shot at the boundary x=32 covers cells (3,1) and (4,1)
	if !f.CheckHit(32, 12, DirUp, false) {
		t.Fatal("normal shot into brick/steel should stop")
	}
	if f.Tile(Cell{Col: 3, Row: 1}) != TileEmpty {
		t.Error("normal shot should destroy brick")
	}
	if f.Tile(Cell{Col: 4, Row: 1}) != TileSteel {
		t.Error("normal shot must not destroy steel")
	}

	if !f.CheckHit(32, 12, DirUp, true) {
		t.Fatal("high power shot into steel should stop")
	}
	if f.Tile(Cell{Col: 4, Row: 1}) != TileEmpty {
		t.Error("high power shot should destroy steel")
	}

	if f.CheckHit(32, 12, DirUp, true) {
		t.Error("shot through open ground should fly on")
	}
	if !f.CheckHit(-1, 12, DirLeft, false) {
		t.Error("shot leaving the field should stop")
	}
}

func TestFieldCheckHitIgnoresWaterAndGrass(t *testing.T) {
	l := openLayout(8, 8)
	l.Tiles[3*8+1] = TileWater
	l.Tiles[4*8+1] = TileGrass
	f := mustField(t, l)

	if f.CheckHit(12, 28, DirRight, false) {
		t.Error("projectiles fly over water")
	}
	if f.CheckHit(12, 36, DirRight, false) {
		t.Error("projectiles fly through grass")
	}
}

func TestFieldRespawnPointsAreCopies(t *testing.T) {
	f := mustField(t, openLayout(8, 8))
	pts := f.RespawnPoints(true)
	pts[0] = Cell{Col: 5, Row: 5}
	if f.RespawnPoints(true)[0] != (Cell{Col: 0, Row: 0}) {
		t.Error("RespawnPoints should not expose internal storage")
	}
}

func TestFieldProtector(t *testing.T) {
	l := openLayout(8, 8)
	wall := Cell{Col: 2, Row: 5}
	l.Tiles[wall.Row*8+wall.Col] = TileBaseWall
	f := mustField(t, l)
	clock := NewClock()
	p := NewFieldProtector(f, clock, 20*time.Second)

	// A destroyed wall is rebuilt when the protection ends
	f.SetTile(wall, TileEmpty)
	p.Activate()
	if f.Tile(wall) != TileSteel || !p.Active() {
		t.Fatal("activate should harden the base wall")
	}

	clock.Advance(19 * time.Second)
	p.Update()
	if f.Tile(wall) != TileSteel {
		t.Fatal("wall should stay steel while protected")
	}

	clock.Advance(time.Second)
	p.Update()
	if f.Tile(wall) != TileBaseWall || p.Active() {
		t.Error("wall should revert to brick when protection expires")
	}
}
