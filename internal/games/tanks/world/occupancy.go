package world

import "github.com/vovakirdan/tui-tanks/internal/core"

// OccupantKind tells which entity collection an Occupant handle points into.
type OccupantKind uint8

const (
	OccupantNone OccupantKind = iota
	OccupantBase
	OccupantTank
	OccupantProjectile
)

// Occupant is a non-owning handle to an entity standing on a cell.
// The zero value means the cell is empty.
type Occupant struct {
	Kind OccupantKind
	ID   uint32
}

// NoOccupant is the empty cell value.
var NoOccupant = Occupant{}

// Empty reports whether the handle refers to nothing.
func (o Occupant) Empty() bool {
	return o.Kind == OccupantNone
}

// OccupancyMap records which entity covers each cell during the current frame.
// It is rebuilt from scratch every frame and must not be read across frames.
type OccupancyMap struct {
	cols  int
	rows  int
	cells []Occupant
}

// NewOccupancyMap creates an empty map with the given grid dimensions.
func NewOccupancyMap(cols, rows int) *OccupancyMap {
	return &OccupancyMap{
		cols:  cols,
		rows:  rows,
		cells: make([]Occupant, cols*rows),
	}
}

// Clear resets every cell to empty.
func (m *OccupancyMap) Clear() {
	for i := range m.cells {
		m.cells[i] = NoOccupant
	}
}

// FillRect marks every cell covered by r with occ. With onlyIfEmpty set,
// cells that already hold an occupant keep it (first writer wins).
func (m *OccupancyMap) FillRect(r core.Rect, occ Occupant, onlyIfEmpty bool) {
	m.forEachCell(r, func(i int) bool {
		if onlyIfEmpty && !m.cells[i].Empty() {
			return true
		}
		m.cells[i] = occ
		return true
	})
}

// TestRect reports whether every covered cell holds one of good.
// Pass NoOccupant among good to accept empty cells.
func (m *OccupancyMap) TestRect(r core.Rect, good ...Occupant) bool {
	ok := true
	m.forEachCell(r, func(i int) bool {
		for _, g := range good {
			if m.cells[i] == g {
				return true
			}
		}
		ok = false
		return false
	})
	return ok
}

// CellAt returns the occupant of the cell containing world point (x, y).
// Points outside the grid are reported as empty.
func (m *OccupancyMap) CellAt(x, y int) Occupant {
	col, row := floorDiv(x, CellSize), floorDiv(y, CellSize)
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return NoOccupant
	}
	return m.cells[row*m.cols+col]
}

// forEachCell visits the in-bounds cells covered by r until fn returns false.
func (m *OccupancyMap) forEachCell(r core.Rect, fn func(i int) bool) {
	if r.Empty() {
		return
	}
	c0 := max(0, floorDiv(r.X, CellSize))
	r0 := max(0, floorDiv(r.Y, CellSize))
	c1 := min(m.cols-1, floorDiv(r.Right()-1, CellSize))
	r1 := min(m.rows-1, floorDiv(r.Bottom()-1, CellSize))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !fn(row*m.cols + col) {
				return
			}
		}
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
