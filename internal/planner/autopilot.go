// Package planner provides a rule-based player that issues build and route
// commands between turns.
package planner

import (
	"errors"
	"log/slog"

	"github.com/talgya/hexsim/internal/economy"
	"github.com/talgya/hexsim/internal/engine"
	"github.com/talgya/hexsim/internal/world"
)

// DefaultOrder is the build cycle used when none is configured: stone and
// wood first to keep the base and the mines alive, then food and gold.
var DefaultOrder = []economy.BuildingType{
	economy.BuildingMine,
	economy.BuildingSawmill,
	economy.BuildingMine,
	economy.BuildingSawmill,
	economy.BuildingFarm,
	economy.BuildingHarbor,
	economy.BuildingMarket,
}

// Autopilot plays the game: it keeps the base busy with build orders and
// routes every producer to the consumer that needs its resource most.
type Autopilot struct {
	Sim   *engine.Simulation
	Order []economy.BuildingType // Build cycle, repeated forever

	next int // Index into Order of the next building
}

// New creates an autopilot for sim using DefaultOrder.
func New(sim *engine.Simulation) *Autopilot {
	return &Autopilot{Sim: sim, Order: DefaultOrder}
}

// Plan issues this turn's commands. It is meant to run as the engine's
// BeforeTurn hook.
func (a *Autopilot) Plan(turn int) {
	if a.Sim.Over {
		return
	}
	a.planBuild(turn)
	a.planRoutes(turn)
}

// planBuild requests the next building of the cycle on the best free site
// when the base has no build order queued.
func (a *Autopilot) planBuild(turn int) {
	if len(a.Order) == 0 {
		return
	}
	base := a.Sim.Grid.Base()
	if base == nil || !base.HasBuilding() || base.Building.Destroyed() || base.Building.Producer == nil {
		return
	}
	if base.Building.Producer.Action != nil {
		return
	}

	b := a.Order[a.next%len(a.Order)]
	taken := make(map[world.TileLocation]bool)
	for _, loc := range a.Sim.PendingBuilds() {
		taken[loc] = true
	}

	sites := RankSites(a.Sim.Grid, b, taken)
	if deadline, ok := a.baseDeadline(b); ok {
		sites = inTime(sites, deadline)
	}
	for _, site := range sites {
		err := a.Sim.RequestBuild(site.Tile.Location, b)
		if errors.Is(err, world.ErrNoPath) {
			continue
		}
		if err != nil {
			slog.Warn("autopilot build failed", "turn", turn, "building", b, "error", err)
			return
		}
		slog.Debug("autopilot build", "turn", turn, "building", b, "tile", site.Tile.Location, "score", site.Score, "cost", site.Cost)
		a.next++
		return
	}

	slog.Debug("autopilot found no site", "turn", turn, "building", b)
	a.next++ // Try the next type rather than stall the cycle.
}

// baseDeadline returns the turns left on the base's most urgent unsatisfied
// need for the resource b produces.
func (a *Autopilot) baseDeadline(b economy.BuildingType) (int, bool) {
	spec, ok := a.Sim.Grid.Catalog()[b]
	if !ok || spec.Producer == nil || spec.Producer.Package != economy.PackageResource {
		return 0, false
	}
	base := a.Sim.Grid.Base()
	left, found := 0, false
	for _, c := range base.Building.Needs(spec.Producer.Resource) {
		if c.Satisfied() {
			continue
		}
		if !found || c.TurnsLeft < left {
			left, found = c.TurnsLeft, true
		}
	}
	return left, found
}

// supplyTurns estimates how long a site takes to feed the base: the build
// order travels out, the new producer is routed the turn after it appears
// and its first package travels back.
func supplyTurns(s Site) int {
	return 2*s.TravelTurns() + 1
}

// inTime moves sites that can supply the base within deadline turns ahead
// of those that cannot, keeping score order within each group.
func inTime(sites []Site, deadline int) []Site {
	out := make([]Site, 0, len(sites))
	var late []Site
	for _, s := range sites {
		if supplyTurns(s) <= deadline {
			out = append(out, s)
		} else {
			late = append(late, s)
		}
	}
	return append(out, late...)
}

// planRoutes points every live resource producer at the live, unsatisfied
// consumer of its resource with the least time left. Ties go to the cheaper
// path.
func (a *Autopilot) planRoutes(turn int) {
	tiles := a.Sim.Grid.Tiles()
	for _, src := range tiles {
		if !src.HasBuilding() || src.Building.Destroyed() {
			continue
		}
		p := src.Building.Producer
		if p == nil || p.Type != economy.PackageResource || p.Action == nil {
			continue
		}

		dst := a.bestConsumer(src, p.Action.Resource, tiles)
		current := p.Destination()
		switch {
		case dst == nil:
			if t, ok := current.(*world.Tile); ok && (!t.HasBuilding() || t.Building.Destroyed()) {
				if err := a.Sim.ClearRoute(src.Location); err != nil {
					slog.Warn("autopilot unroute failed", "turn", turn, "tile", src.Location, "error", err)
				}
			}
		case current == nil || current != economy.Site(dst):
			if err := a.Sim.AssignRoute(src.Location, dst.Location); err != nil {
				slog.Warn("autopilot route failed", "turn", turn, "from", src.Location, "to", dst.Location, "error", err)
			}
		}
	}
}

func (a *Autopilot) bestConsumer(src *world.Tile, r economy.ResourceType, tiles []*world.Tile) *world.Tile {
	var best *world.Tile
	bestLeft, bestCost := 0, 0
	for _, t := range tiles {
		if t == src || !t.HasBuilding() || t.Building.Destroyed() {
			continue
		}
		left := -1
		for _, c := range t.Building.Needs(r) {
			if c.Satisfied() {
				continue
			}
			if left < 0 || c.TurnsLeft < left {
				left = c.TurnsLeft
			}
		}
		if left < 0 {
			continue
		}
		if best != nil && left > bestLeft {
			continue
		}

		path, err := src.AStar(t)
		if err != nil {
			continue
		}
		cost := world.PathCost(path)
		if best == nil || left < bestLeft || cost < bestCost {
			best, bestLeft, bestCost = t, left, cost
		}
	}
	return best
}
