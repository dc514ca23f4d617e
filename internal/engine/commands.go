package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexsim/internal/economy"
	"github.com/talgya/hexsim/internal/world"
)

// Command errors. They leave the game state untouched.
var (
	ErrOutOfBounds   = errors.New("engine: location out of bounds")
	ErrBaseDestroyed = errors.New("engine: base destroyed")
	ErrBaseBusy      = errors.New("engine: base already has a build order")
	ErrSecondBase    = errors.New("engine: only one base is allowed")
)

// RequestBuild sends a build order from the base to loc. The building
// appears when the package arrives.
func (s *Simulation) RequestBuild(loc world.TileLocation, b economy.BuildingType) error {
	err := s.requestBuild(loc, b)
	if err != nil {
		slog.Warn("build request rejected", "tile", loc, "building", b, "error", err)
	}
	return err
}

func (s *Simulation) requestBuild(loc world.TileLocation, b economy.BuildingType) error {
	if s.Over {
		return ErrGameOver
	}
	if b == economy.BuildingBase {
		return ErrSecondBase
	}
	if _, ok := s.Grid.Catalog()[b]; !ok {
		return fmt.Errorf("%w: %s", economy.ErrUnknownBuilding, b)
	}

	target := s.Grid.Get(loc)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, loc)
	}
	if target.HasBuilding() {
		return fmt.Errorf("build %s on %s: %w", b, loc, world.ErrAlreadyBuilt)
	}

	base := s.Grid.Base()
	if base == nil || !base.HasBuilding() || base.Building.Destroyed() {
		return ErrBaseDestroyed
	}
	producer := base.Building.Producer
	if producer == nil {
		return fmt.Errorf("base: %w", economy.ErrNoProducer)
	}
	if producer.Action != nil {
		return fmt.Errorf("%w: %s", ErrBaseBusy, producer.Action)
	}

	path, err := base.AStar(target)
	if err != nil {
		return fmt.Errorf("route build order to %s: %w", loc, err)
	}
	if err := producer.AssignBuildAction(b); err != nil {
		return err
	}
	if err := base.AssignPath(path); err != nil {
		producer.Action = nil
		return err
	}
	slog.Info("build requested", "tile", loc, "building", b, "hops", len(path)-1, "cost", world.PathCost(path))
	return nil
}

// AssignRoute routes the producer at from along the cheapest path to to.
func (s *Simulation) AssignRoute(from, to world.TileLocation) error {
	src, dst := s.Grid.Get(from), s.Grid.Get(to)
	if src == nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, from)
	}
	if dst == nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, to)
	}
	if !src.HasBuilding() {
		return fmt.Errorf("route from %s: %w", from, world.ErrNoBuilding)
	}
	if src.Building.Producer == nil {
		return fmt.Errorf("route from %s: %w", from, economy.ErrNoProducer)
	}

	path, err := src.AStar(dst)
	if err != nil {
		slog.Warn("route rejected", "from", from, "to", to, "error", err)
		return fmt.Errorf("route %s to %s: %w", from, to, err)
	}
	return src.AssignPath(path)
}

// ClearRoute stops the producer at from.
func (s *Simulation) ClearRoute(from world.TileLocation) error {
	src := s.Grid.Get(from)
	if src == nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, from)
	}
	return src.AssignPath(nil)
}

// PendingBuilds returns the targets of build orders not yet completed:
// packages in transit and the order queued at the base.
func (s *Simulation) PendingBuilds() []world.TileLocation {
	var out []world.TileLocation
	for _, pkg := range s.InTransit {
		if pkg.Action.Kind != economy.ActionBuild {
			continue
		}
		if t, ok := pkg.Destination().(*world.Tile); ok {
			out = append(out, t.Location)
		}
	}
	if base := s.Grid.Base(); base != nil && base.HasBuilding() && base.Building.Producer != nil {
		p := base.Building.Producer
		if p.Action != nil && p.Action.Kind == economy.ActionBuild {
			if t, ok := p.Destination().(*world.Tile); ok {
				out = append(out, t.Location)
			}
		}
	}
	return out
}
