package world

import (
	"container/heap"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexsim/internal/economy"
)

// ErrNoPath is returned when the goal cannot be reached.
var ErrNoPath = errors.New("world: no path")

// AStar returns the cheapest path from t to goal, both included.
//
// Tiles with a negative crossing cost are never entered, with one exception:
// a blocked goal that holds a building is entered for economy.DefaultSpeed.
func (t *Tile) AStar(goal *Tile) ([]*Tile, error) {
	if goal == nil || goal.grid != t.grid {
		return nil, ErrDifferentGrid
	}

	goalCost := goal.CrossingCost()
	if goalCost < 0 {
		if !goal.HasBuilding() {
			slog.Debug("path goal is impassable", "from", t.Location, "to", goal.Location)
			return nil, fmt.Errorf("%w: %s is impassable", ErrNoPath, goal.Location)
		}
		goalCost = economy.DefaultSpeed
	}
	if t == goal {
		return []*Tile{t}, nil
	}

	scale := t.grid.stepCost
	estimate := func(n *Tile) int {
		return scale * Distance(n.Location, goal.Location)
	}

	open := &openSet{}
	gScore := map[TileLocation]int{t.Location: 0}
	cameFrom := make(map[TileLocation]*Tile)
	seq := 0
	heap.Push(open, &searchNode{tile: t, g: 0, f: estimate(t), seq: seq})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if cur.g != gScore[cur.tile.Location] {
			continue // superseded by a cheaper entry
		}
		if cur.tile == goal {
			return reconstructPath(cameFrom, goal), nil
		}

		for _, n := range cur.tile.Neighbors() {
			cost := n.CrossingCost()
			if n == goal {
				cost = goalCost
			} else if cost < 0 {
				continue
			}

			tentative := cur.g + cost
			if old, ok := gScore[n.Location]; ok && tentative >= old {
				continue
			}
			gScore[n.Location] = tentative
			cameFrom[n.Location] = cur.tile
			seq++
			heap.Push(open, &searchNode{tile: n, g: tentative, f: tentative + estimate(n), seq: seq})
		}
	}

	slog.Debug("no path found", "from", t.Location, "to", goal.Location)
	return nil, fmt.Errorf("%w: %s to %s", ErrNoPath, t.Location, goal.Location)
}

// PathCost sums the cost of entering every tile after the first, applying
// the blocked-goal override. It returns -1 if an intermediate tile is
// impassable.
func PathCost(path []*Tile) int {
	total := 0
	for i := 1; i < len(path); i++ {
		cost := path[i].CrossingCost()
		if cost < 0 {
			if i != len(path)-1 || !path[i].HasBuilding() {
				return -1
			}
			cost = economy.DefaultSpeed
		}
		total += cost
	}
	return total
}

func reconstructPath(cameFrom map[TileLocation]*Tile, goal *Tile) []*Tile {
	path := []*Tile{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur.Location]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// Reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// --- Priority queue ---

type searchNode struct {
	tile *Tile
	g, f int
	seq  int // insertion order, breaks f ties
}

type openSet []*searchNode

func (h openSet) Len() int { return len(h) }
func (h openSet) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h openSet) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *openSet) Push(x any)   { *h = append(*h, x.(*searchNode)) }
func (h *openSet) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
