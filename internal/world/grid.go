package world

import (
	"fmt"
	"slices"

	"github.com/talgya/hexsim/internal/economy"
)

// BaseLocation holds the player's base on every grid.
var BaseLocation = TileLocation{Column: 0, Row: 0}

// EventKind identifies what changed on a tile.
type EventKind uint8

const (
	EventBuilt        EventKind = iota // A building was placed
	EventPathAssigned                  // A producer was routed or unrouted
	EventDestroyed                     // A building lost a consumer
)

func (k EventKind) String() string {
	switch k {
	case EventBuilt:
		return "built"
	case EventPathAssigned:
		return "path_assigned"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// TileEvent is the change notification fired for the view layer.
type TileEvent struct {
	Kind EventKind
	Tile *Tile
}

// Grid holds every tile of the world. Its bounds are max(|column|, |row|) <= Radius.
type Grid struct {
	Radius int

	tiles     map[TileLocation]*Tile
	order     []TileLocation // Row-major iteration order
	catalog   economy.Catalog
	terrain   terrainSource
	stepCost  int // Cheapest cost of any single step
	listeners []func(TileEvent)
}

// Get returns the tile at loc, or nil if out of bounds.
func (g *Grid) Get(loc TileLocation) *Tile {
	return g.tiles[loc]
}

// At returns the tile at (column, row), or nil if out of bounds.
func (g *Grid) At(column, row int) *Tile {
	return g.Get(TileLocation{Column: column, Row: row})
}

// InBounds reports whether loc lies within the current radius.
func (g *Grid) InBounds(loc TileLocation) bool {
	return abs(loc.Column) <= g.Radius && abs(loc.Row) <= g.Radius
}

// Neighbors returns the tiles adjacent to loc that exist on the grid.
func (g *Grid) Neighbors(loc TileLocation) []*Tile {
	out := make([]*Tile, 0, 6)
	for _, n := range loc.Neighbors() {
		if t := g.tiles[n]; t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Tiles returns every tile ordered by row, then column.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, len(g.order))
	for i, loc := range g.order {
		out[i] = g.tiles[loc]
	}
	return out
}

// Len returns the number of tiles.
func (g *Grid) Len() int {
	return len(g.tiles)
}

// Base returns the tile holding the player's base.
func (g *Grid) Base() *Tile {
	return g.tiles[BaseLocation]
}

// Catalog returns the building factory used by the grid's tiles.
func (g *Grid) Catalog() economy.Catalog {
	return g.catalog
}

// Grow adds one ring of tiles around the grid.
func (g *Grid) Grow() {
	n := g.Radius + 1
	for row := -g.Radius; row <= g.Radius; row++ {
		g.addTile(TileLocation{Column: -n, Row: row})
		g.addTile(TileLocation{Column: n, Row: row})
	}
	for col := -n; col <= n; col++ {
		g.addTile(TileLocation{Column: col, Row: -n})
		g.addTile(TileLocation{Column: col, Row: n})
	}
	g.Radius = n
	g.sortOrder()
}

// Subscribe registers fn to be called after every tile change.
func (g *Grid) Subscribe(fn func(TileEvent)) {
	g.listeners = append(g.listeners, fn)
}

func (g *Grid) notify(kind EventKind, t *Tile) {
	ev := TileEvent{Kind: kind, Tile: t}
	for _, fn := range g.listeners {
		fn(ev)
	}
}

func (g *Grid) addTile(loc TileLocation) *Tile {
	if t, ok := g.tiles[loc]; ok {
		return t
	}
	t := &Tile{
		Location: loc,
		terrain:  g.terrain.terrainAt(loc),
		grid:     g,
	}
	g.tiles[loc] = t
	g.order = append(g.order, loc)
	return t
}

func (g *Grid) sortOrder() {
	slices.SortFunc(g.order, CompareLocations)
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(radius=%d, tiles=%d)", g.Radius, g.Len())
}
