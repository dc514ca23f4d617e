package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexsim/internal/economy"
)

var (
	ErrAlreadyBuilt  = errors.New("world: tile already has a building")
	ErrNoBuilding    = errors.New("world: tile has no building")
	ErrInvalidPath   = errors.New("world: invalid path")
	ErrDifferentGrid = errors.New("world: tiles belong to different grids")
)

// Tile is a single cell of the grid. It satisfies economy.Site.
type Tile struct {
	Location TileLocation
	Building *economy.Building

	terrain Terrain // Fixed at generation
	grid    *Grid   // Owning grid, used for neighbour lookups
}

// Terrain returns the ground type of the tile.
func (t *Tile) Terrain() Terrain {
	return t.terrain
}

// HasBuilding reports whether a building stands on the tile.
func (t *Tile) HasBuilding() bool {
	return t.Building != nil
}

// Build places a new building of type b. A tile holds at most one building
// for its whole life.
func (t *Tile) Build(b economy.BuildingType) error {
	if t.Building != nil {
		slog.Warn("tile already built", "tile", t.Location, "building", t.Building.Type, "requested", b)
		return fmt.Errorf("build %s on %s: %w", b, t.Location, ErrAlreadyBuilt)
	}

	building, err := t.grid.catalog.NewBuilding(b)
	if err != nil {
		slog.Error("building factory failed", "tile", t.Location, "error", err)
		return err
	}
	t.Building = building
	slog.Debug("building placed", "tile", t.Location, "building", b)
	t.grid.notify(EventBuilt, t)
	return nil
}

// Consume hands one unit of r to the building. Missing buildings and
// consumers are not errors; the resource is simply lost.
func (t *Tile) Consume(r economy.ResourceType) bool {
	if t.Building == nil {
		slog.Debug("resource delivered to empty tile", "tile", t.Location, "resource", r)
		return false
	}
	return t.Building.Consume(r)
}

// AssignPath routes the building's producer along path. Packages appear on
// the first tile of the path, which is usually this one. A nil or empty path
// clears the route.
func (t *Tile) AssignPath(path []*Tile) error {
	if t.Building == nil {
		return fmt.Errorf("assign path from %s: %w", t.Location, ErrNoBuilding)
	}
	if t.Building.Producer == nil {
		return fmt.Errorf("assign path from %s: %w", t.Location, economy.ErrNoProducer)
	}
	if err := t.validatePath(path); err != nil {
		return err
	}

	sites := make([]economy.Site, len(path))
	for i, p := range path {
		sites[i] = p
	}
	if err := t.Building.AssignPath(sites); err != nil {
		return err
	}
	t.grid.notify(EventPathAssigned, t)
	return nil
}

func (t *Tile) validatePath(path []*Tile) error {
	if len(path) == 0 {
		return nil
	}
	if path[0].grid != t.grid {
		return fmt.Errorf("%w: %s is on another grid", ErrInvalidPath, path[0].Location)
	}
	for i := 1; i < len(path); i++ {
		prev, next := path[i-1], path[i]
		if next.grid != t.grid {
			return fmt.Errorf("%w: %s is on another grid", ErrInvalidPath, next.Location)
		}
		if !prev.IsNeighbor(next) {
			return fmt.Errorf("%w: %s does not touch %s", ErrInvalidPath, prev.Location, next.Location)
		}
		if next.CrossingCost() < 0 && !(i == len(path)-1 && next.HasBuilding()) {
			return fmt.Errorf("%w: %s cannot be crossed", ErrInvalidPath, next.Location)
		}
	}
	return nil
}

// CrossingCost returns the cost of entering the tile: the terrain cost,
// adjusted by the building if it has a crossing modifier.
func (t *Tile) CrossingCost() int {
	base := t.terrain.BaseCost()
	if t.Building == nil {
		return base
	}
	return t.Building.CrossingCost(base)
}

// EndTurn advances the building's counters. Destroyed buildings are frozen.
// It reports whether the building was destroyed during this turn.
func (t *Tile) EndTurn() bool {
	if t.Building == nil || t.Building.Destroyed() {
		return false
	}
	t.Building.EndTurn()
	if !t.Building.Destroyed() {
		return false
	}
	slog.Info("building destroyed", "tile", t.Location, "building", t.Building.Type)
	t.grid.notify(EventDestroyed, t)
	return true
}

// Produce returns the package the building emits this turn, if any.
func (t *Tile) Produce() *economy.Package {
	if t.Building == nil {
		return nil
	}
	return t.Building.Produce()
}

// Neighbors returns the adjacent tiles on the grid.
func (t *Tile) Neighbors() []*Tile {
	return t.grid.Neighbors(t.Location)
}

// IsNeighbor reports whether o is adjacent to t on the same grid.
func (t *Tile) IsNeighbor(o *Tile) bool {
	return o != nil && o.grid == t.grid && t.Location.IsNeighbor(o.Location)
}

func (t *Tile) String() string {
	if t.Building == nil {
		return fmt.Sprintf("Tile%s<%s>", t.Location, t.terrain)
	}
	return fmt.Sprintf("Tile%s<%s, %s>", t.Location, t.terrain, t.Building.Type)
}
