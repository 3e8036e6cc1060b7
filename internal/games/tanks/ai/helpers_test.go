package ai

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

type battlefield struct {
	field  *world.Field
	base   *units.Base
	player *units.Tank
}

func (b *battlefield) Field() *world.Field { return b.field }
func (b *battlefield) Base() *units.Base { return b.base }
func (b *battlefield) Player() *units.Tank { return b.player }

// openBattlefield builds an empty cols x rows field with the base at the
// bottom middle and three enemy respawn cells along the top.
func openBattlefield(t *testing.T, cols, rows int, edit func(l *world.Layout)) *battlefield {
	t.Helper()
	l := world.Layout{
		Cols:         cols,
		Rows:         rows,
		Tiles:        make([]world.Tile, cols*rows),
		Base:         world.Cell{Col: cols/2 - 1, Row: rows - 2},
		EnemySpawns:  []world.Cell{{Col: 0, Row: 0}, {Col: cols/2 - 1, Row: 0}, {Col: cols - 2, Row: 0}},
		PlayerSpawns: []world.Cell{{Col: cols/2 - 4, Row: rows - 2}},
	}
	if edit != nil {
		edit(&l)
	}
	f, err := world.NewField(l)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return &battlefield{field: f, base: units.NewBase(f)}
}

func newRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
