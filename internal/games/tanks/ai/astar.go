// Package ai drives the enemy side: grid pathfinding, the per-tank decision
// loop and the fraction-level spawner.
package ai

import (
	"container/heap"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// Grid answers whether a single cell can be stood on.
type Grid interface {
	Passable(c world.Cell) bool
}

// --- A* pathfinding ---

type pathNode struct {
	cell   world.Cell
	g, h   int
	seq    int
	dir    world.Direction
	parent *pathNode
	index  int // heap index
}

// openList orders by f = g + h, then by h, then by insertion order, so equal
// cost frontiers pop deterministically.
type openList []*pathNode

func (ol openList) Len() int { return len(ol) }
func (ol openList) Less(i, j int) bool {
	fi, fj := ol[i].g+ol[i].h, ol[j].g+ol[j].h
	if fi != fj {
		return fi < fj
	}
	if ol[i].h != ol[j].h {
		return ol[i].h < ol[j].h
	}
	return ol[i].seq < ol[j].seq
}
func (ol openList) Swap(i, j int)       { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x interface{}) { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

func manhattan(a, b world.Cell) int {
	return core.Abs(a.Col-b.Col) + core.Abs(a.Row-b.Row)
}

// fits reports whether a size x size footprint with top-left at c is passable.
func fits(g Grid, c world.Cell, size int) bool {
	for dr := 0; dr < size; dr++ {
		for dc := 0; dc < size; dc++ {
			if !g.Passable(c.Add(dc, dr)) {
				return false
			}
		}
	}
	return true
}

// FindPath returns the directions leading a size x size footprint from start
// to goal over 4-connected cells with unit step cost. It returns nil when
// start equals goal or no path exists. Among equally short paths the one
// found first by the open list ordering wins.
func FindPath(g Grid, start, goal world.Cell, size int) []world.Direction {
	if size < 1 {
		size = 1
	}
	if start == goal || !fits(g, goal, size) {
		return nil
	}

	seq := 0
	first := &pathNode{cell: start, h: manhattan(start, goal)}
	ol := &openList{first}
	heap.Init(ol)

	closed := make(map[world.Cell]bool)
	best := map[world.Cell]*pathNode{start: first}

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.cell == goal {
			return buildPath(cur)
		}
		if closed[cur.cell] {
			continue
		}
		closed[cur.cell] = true

		for _, d := range world.AllDirections {
			next := cur.cell.Step(d)
			if closed[next] || !fits(g, next, size) {
				continue
			}
			cost := cur.g + 1
			if prev, ok := best[next]; ok && cost >= prev.g {
				continue
			}
			seq++
			node := &pathNode{cell: next, g: cost, h: manhattan(next, goal), seq: seq, dir: d, parent: cur}
			best[next] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

func buildPath(end *pathNode) []world.Direction {
	var path []world.Direction
	for n := end; n.parent != nil; n = n.parent {
		path = append(path, n.dir)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
