// Package formats parses tank level files into field layouts.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// Level is a parsed level ready to build a field from.
type Level struct {
	ID      string
	Name    string
	Enemies int // spawn quota; 0 means use the configured default
	Layout  world.Layout
}

// Grid legend. Markers name the top-left cell of a 2x2 footprint and leave
// an empty tile behind.
const (
	RuneEmpty       = '.'
	RuneBrick       = '#'
	RuneSteel       = '@'
	RuneWater       = '~'
	RuneGrass       = '%'
	RuneIce         = '-'
	RuneBaseWall    = 'b'
	RuneBase        = 'H'
	RuneEnemySpawn  = 'E'
	RunePlayerSpawn = 'P'
)

var tileRunes = map[rune]world.Tile{
	RuneEmpty:    world.TileEmpty,
	RuneBrick:    world.TileBrick,
	RuneSteel:    world.TileSteel,
	RuneWater:    world.TileWater,
	RuneGrass:    world.TileGrass,
	RuneIce:      world.TileIce,
	RuneBaseWall: world.TileBaseWall,
}

// ParseGrid turns text rows into a layout. Leading and trailing blank lines
// are ignored; every other row must have the same width. The grid needs
// exactly one base marker and at least one respawn marker per fraction.
func ParseGrid(text string) (world.Layout, error) {
	rows := splitRows(text)
	if len(rows) == 0 {
		return world.Layout{}, fmt.Errorf("%w: empty map", world.ErrMalformedLevel)
	}

	cols := len([]rune(rows[0]))
	l := world.Layout{
		Cols:  cols,
		Rows:  len(rows),
		Tiles: make([]world.Tile, 0, cols*len(rows)),
	}
	bases := 0
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			return world.Layout{}, fmt.Errorf("%w: row %d has %d cells, want %d",
				world.ErrMalformedLevel, r, len(runes), cols)
		}
		for c, ch := range runes {
			cell := world.Cell{Col: c, Row: r}
			switch ch {
			case RuneBase:
				l.Base = cell
				bases++
			case RuneEnemySpawn:
				l.EnemySpawns = append(l.EnemySpawns, cell)
			case RunePlayerSpawn:
				l.PlayerSpawns = append(l.PlayerSpawns, cell)
			default:
				t, ok := tileRunes[ch]
				if !ok {
					return world.Layout{}, fmt.Errorf("%w: unknown cell %q at row %d col %d",
						world.ErrMalformedLevel, ch, r, c)
				}
				l.Tiles = append(l.Tiles, t)
				continue
			}
			l.Tiles = append(l.Tiles, world.TileEmpty)
		}
	}
	if bases != 1 {
		return world.Layout{}, fmt.Errorf("%w: want exactly one base, found %d", world.ErrMalformedLevel, bases)
	}
	if len(l.EnemySpawns) == 0 || len(l.PlayerSpawns) == 0 {
		return world.Layout{}, fmt.Errorf("%w: missing respawn cells", world.ErrMalformedLevel)
	}
	return l, nil
}

func splitRows(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}
