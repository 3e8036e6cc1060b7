package ai

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// gridMap is a test grid where '#' blocks.
type gridMap []string

func (g gridMap) Passable(c world.Cell) bool {
	if c.Row < 0 || c.Row >= len(g) || c.Col < 0 || c.Col >= len(g[c.Row]) {
		return false
	}
	return g[c.Row][c.Col] != '#'
}

func walk(start world.Cell, path []world.Direction) world.Cell {
	c := start
	for _, d := range path {
		c = c.Step(d)
	}
	return c
}

func TestFindPathStraight(t *testing.T) {
	g := gridMap{
		".....",
		".....",
		".....",
	}
	path := FindPath(g, world.Cell{Col: 0, Row: 1}, world.Cell{Col: 4, Row: 1}, 1)
	if len(path) != 4 {
		t.Fatalf("Expected 4 steps, got %v", path)
	}
	for i, d := range path {
		if d != world.DirRight {
			t.Errorf("Step %d: expected right, got %v", i, d)
		}
	}
}

func TestFindPathSymmetricLengths(t *testing.T) {
	g := gridMap{
		"..........",
		".####.###.",
		".#......#.",
		".#.####.#.",
		"...#..#...",
		"##.#..#.##",
		"..........",
	}
	pairs := [][2]world.Cell{
		{{Col: 0, Row: 0}, {Col: 9, Row: 6}},
		{{Col: 2, Row: 2}, {Col: 4, Row: 4}},
		{{Col: 0, Row: 6}, {Col: 9, Row: 0}},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		ab := FindPath(g, a, b, 1)
		ba := FindPath(g, b, a, 1)
		if len(ab) == 0 || len(ab) != len(ba) {
			t.Errorf("%v <-> %v: lengths %d and %d", a, b, len(ab), len(ba))
			continue
		}
		if got := walk(a, ab); got != b {
			t.Errorf("Path from %v ends at %v, want %v", a, got, b)
		}
		if got := walk(b, ba); got != a {
			t.Errorf("Path from %v ends at %v, want %v", b, got, a)
		}
	}
}

func TestFindPathEnclosedGoal(t *testing.T) {
	g := gridMap{
		".......",
		"..###..",
		"..#.#..",
		"..###..",
		".......",
	}
	if path := FindPath(g, world.Cell{Col: 0, Row: 0}, world.Cell{Col: 3, Row: 2}, 1); path != nil {
		t.Errorf("Enclosed goal should give no path, got %v", path)
	}
}

func TestFindPathStartIsGoal(t *testing.T) {
	g := gridMap{"..."}
	if path := FindPath(g, world.Cell{Col: 1}, world.Cell{Col: 1}, 1); path != nil {
		t.Errorf("Expected empty path, got %v", path)
	}
}

func TestFindPathBlockedGoal(t *testing.T) {
	g := gridMap{"..#"}
	if path := FindPath(g, world.Cell{}, world.Cell{Col: 2}, 1); path != nil {
		t.Errorf("Expected empty path, got %v", path)
	}
}

func TestFindPathFootprint(t *testing.T) {
	// A one cell gap lets a 1x1 mover through but not a 2x2 one.
	rows := []string{
		"........",
		"........",
		"####.###",
		"........",
		"........",
	}
	g := gridMap(rows)
	start, goal := world.Cell{Col: 0, Row: 0}, world.Cell{Col: 0, Row: 3}

	if path := FindPath(g, start, goal, 1); len(path) == 0 {
		t.Error("1x1 mover should pass the gap")
	}
	if path := FindPath(g, start, goal, 2); path != nil {
		t.Errorf("2x2 mover should not fit, got %v", path)
	}

	rows[2] = "####..##"
	g = gridMap(rows)
	path := FindPath(g, start, goal, 2)
	if len(path) == 0 {
		t.Fatal("2x2 mover should fit a two cell gap")
	}
	if got := walk(start, path); got != goal {
		t.Errorf("Path ends at %v, want %v", got, goal)
	}
	if !strings.Contains(pathString(path), "down") {
		t.Errorf("Path should head down, got %v", path)
	}
}

func pathString(path []world.Direction) string {
	parts := make([]string, len(path))
	for i, d := range path {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}
