// Simulation ties the grid and the packages in transit together and advances
// them one turn at a time.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexsim/internal/economy"
	"github.com/talgya/hexsim/internal/world"
)

// ErrGameOver is returned once the base has been destroyed.
var ErrGameOver = errors.New("engine: game over")

// maxEvents bounds the event log.
const maxEvents = 1000

// Simulation holds the complete game state and runs the turn sequence.
type Simulation struct {
	Grid      *world.Grid
	InTransit []*economy.Package
	Turn      int  // Completed turns
	Over      bool // Base destroyed
	GrowEvery int  // Add a ring every N turns (0 = never)

	Events []Event // Most recent events, oldest first
	Stats  Stats

	pending []Event // Events not yet returned in a report
}

// Event is a notable occurrence in the game.
type Event struct {
	Turn        int    `json:"turn"`
	Description string `json:"description"`
	Category    string `json:"category"` // "build", "route", "destroyed", "delivery", "lost", "game"
}

// Stats tracks aggregate game statistics.
type Stats struct {
	Buildings int `json:"buildings"`
	Destroyed int `json:"destroyed"`
	Produced  int `json:"produced"`
	Delivered int `json:"delivered"`
	Lost      int `json:"lost"`
}

// TurnReport summarises one call to EndTurn.
type TurnReport struct {
	Turn      int                  `json:"turn"`
	Produced  int                  `json:"produced"`
	Delivered int                  `json:"delivered"`
	Rejected  int                  `json:"rejected"` // Arrived but refused by the destination
	Lost      int                  `json:"lost"`     // Stuck in front of an impassable tile
	InTransit int                  `json:"in_transit"`
	Destroyed []world.TileLocation `json:"destroyed,omitempty"`
	Grown     bool                 `json:"grown,omitempty"`
	GameOver  bool                 `json:"game_over"`
	Events    []Event              `json:"events,omitempty"`
}

// NewSimulation creates a Simulation over g and starts listening to its
// tile events.
func NewSimulation(g *world.Grid) *Simulation {
	s := &Simulation{Grid: g}
	g.Subscribe(s.onTileEvent)
	s.updateStats()
	return s
}

// EndTurn runs one turn: production on every tile, package movement and
// delivery, tile counters, then the end condition. The order is fixed
// because each step reads what the previous one wrote.
func (s *Simulation) EndTurn() (TurnReport, error) {
	if s.Over {
		return TurnReport{Turn: s.Turn, GameOver: true}, ErrGameOver
	}

	report := TurnReport{Turn: s.Turn + 1}
	tiles := s.Grid.Tiles()

	for _, t := range tiles {
		if pkg := t.Produce(); pkg != nil {
			s.InTransit = append(s.InTransit, pkg)
			report.Produced++
			slog.Debug("package produced", "tile", t.Location, "action", pkg.Action, "hops", len(pkg.CompletePath)-1)
		}
	}

	s.advancePackages(&report)

	for _, t := range tiles {
		if t.EndTurn() {
			report.Destroyed = append(report.Destroyed, t.Location)
		}
	}

	s.Turn++
	if base := s.Grid.Base(); base == nil || !base.HasBuilding() || base.Building.Destroyed() {
		s.Over = true
		report.GameOver = true
		s.record("game", fmt.Sprintf("base destroyed after %d turns", s.Turn))
		slog.Info("game over", "turns", s.Turn)
	}

	if !s.Over && s.GrowEvery > 0 && s.Turn%s.GrowEvery == 0 {
		s.Grid.Grow()
		report.Grown = true
		slog.Info("grid grown", "turn", s.Turn, "radius", s.Grid.Radius, "tiles", s.Grid.Len())
	}

	s.Stats.Produced += report.Produced
	s.Stats.Delivered += report.Delivered
	s.Stats.Lost += report.Lost + report.Rejected
	s.updateStats()

	report.InTransit = len(s.InTransit)
	report.Events = s.pending
	s.pending = nil
	return report, nil
}

// advancePackages walks every package in transit. Arrived packages perform
// their action and leave; packages stuck before an impassable tile are lost.
func (s *Simulation) advancePackages(report *TurnReport) {
	kept := s.InTransit[:0]
	for _, pkg := range s.InTransit {
		for range pkg.Walk() {
		}

		switch {
		case pkg.Arrived():
			dest := siteName(pkg.Destination())
			if err := pkg.Deliver(); err != nil {
				report.Rejected++
				s.record("lost", fmt.Sprintf("%s refused at %s: %v", pkg.Action, dest, err))
				continue
			}
			report.Delivered++
			s.record("delivery", fmt.Sprintf("%s at %s", pkg.Action, dest))
		case pkg.Blocked():
			report.Lost++
			s.record("lost", fmt.Sprintf("%s to %s blocked at %s", pkg.Action, siteName(pkg.Destination()), siteName(pkg.RemainingPath()[0])))
		default:
			kept = append(kept, pkg)
		}
	}
	clear(s.InTransit[len(kept):])
	s.InTransit = kept
}

func (s *Simulation) onTileEvent(ev world.TileEvent) {
	t := ev.Tile
	switch ev.Kind {
	case world.EventBuilt:
		s.record("build", fmt.Sprintf("%s built at %s", t.Building.Type, t.Location))
	case world.EventPathAssigned:
		if dest := t.Building.Producer.Destination(); dest != nil {
			s.record("route", fmt.Sprintf("%s at %s routed to %s", t.Building.Type, t.Location, siteName(dest)))
		} else {
			s.record("route", fmt.Sprintf("%s at %s unrouted", t.Building.Type, t.Location))
		}
	case world.EventDestroyed:
		s.record("destroyed", fmt.Sprintf("%s at %s destroyed", t.Building.Type, t.Location))
	}
}

// record appends an event for the turn in progress, trimming the log to the
// most recent maxEvents.
func (s *Simulation) record(category, description string) {
	ev := Event{Turn: s.Turn + 1, Description: description, Category: category}
	if s.Over {
		ev.Turn = s.Turn
	}
	s.Events = append(s.Events, ev)
	s.pending = append(s.pending, ev)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}

func (s *Simulation) updateStats() {
	buildings, destroyed := 0, 0
	for _, t := range s.Grid.Tiles() {
		if !t.HasBuilding() {
			continue
		}
		buildings++
		if t.Building.Destroyed() {
			destroyed++
		}
	}
	s.Stats.Buildings = buildings
	s.Stats.Destroyed = destroyed
}

// siteName renders a site for event text.
func siteName(site economy.Site) string {
	if t, ok := site.(*world.Tile); ok {
		return t.Location.String()
	}
	return fmt.Sprint(site)
}
