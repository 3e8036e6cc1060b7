package world

// CellSize is the side of one grid cell in world pixels.
const CellSize = 8

// Cell is an integer (column, row) grid coordinate.
type Cell struct {
	Col, Row int
}

// Add returns the cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Tile is the static terrain kind of one cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileBrick
	TileSteel
	TileWater
	TileGrass
	TileIce
	TileBaseWall // brick ring around the base, hardened by the protector
)

// BlocksTanks reports whether a tank may not overlap the tile.
func (t Tile) BlocksTanks() bool {
	switch t {
	case TileBrick, TileSteel, TileWater, TileBaseWall:
		return true
	default:
		return false
	}
}

// BlocksProjectiles reports whether a projectile stops on the tile.
func (t Tile) BlocksProjectiles() bool {
	switch t {
	case TileBrick, TileSteel, TileBaseWall:
		return true
	default:
		return false
	}
}

// Destructible reports whether a projectile of the given power removes the tile.
func (t Tile) Destructible(high bool) bool {
	switch t {
	case TileBrick, TileBaseWall:
		return true
	case TileSteel:
		return high
	default:
		return false
	}
}

func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileBrick:
		return "brick"
	case TileSteel:
		return "steel"
	case TileWater:
		return "water"
	case TileGrass:
		return "grass"
	case TileIce:
		return "ice"
	case TileBaseWall:
		return "base-wall"
	default:
		return "unknown"
	}
}
