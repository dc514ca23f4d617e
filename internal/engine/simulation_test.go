package engine

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/talgya/hexsim/internal/economy"
	"github.com/talgya/hexsim/internal/world"
)

func loc(col, row int) world.TileLocation {
	return world.TileLocation{Column: col, Row: row}
}

// newTestSim returns a simulation over an all-grass grid of the given radius.
func newTestSim(t *testing.T, radius int) *Simulation {
	t.Helper()
	return newPaintedSim(t, radius, nil)
}

// newPaintedSim is newTestSim with the terrain of some tiles overridden.
func newPaintedSim(t *testing.T, radius int, layout map[world.TileLocation]world.Terrain) *Simulation {
	t.Helper()
	cfg := world.SmallTestConfig()
	cfg.Radius = radius
	cfg.TerrainAt = func(l world.TileLocation) world.Terrain {
		if terrain, ok := layout[l]; ok {
			return terrain
		}
		return world.TerrainGrass
	}
	g, err := world.Generate(cfg, economy.DefaultCatalog())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return NewSimulation(g)
}

func mustEndTurn(t *testing.T, s *Simulation) TurnReport {
	t.Helper()
	report, err := s.EndTurn()
	if err != nil {
		t.Fatalf("EndTurn %d: %v", s.Turn+1, err)
	}
	return report
}

func TestGameOverWhenBaseStarves(t *testing.T) {
	s := newTestSim(t, 2)

	for turn := 1; turn < 5; turn++ {
		report := mustEndTurn(t, s)
		if report.GameOver || report.Turn != turn {
			t.Fatalf("turn %d: report %+v", turn, report)
		}
	}
	report := mustEndTurn(t, s)
	if !report.GameOver || !s.Over || s.Turn != 5 {
		t.Fatalf("base survived five turns without stone: %+v", report)
	}
	if !slices.Contains(report.Destroyed, world.BaseLocation) {
		t.Errorf("destroyed = %v, want the base", report.Destroyed)
	}

	if _, err := s.EndTurn(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("EndTurn after game over: got %v", err)
	}
	if s.Turn != 5 {
		t.Errorf("turn advanced to %d after game over", s.Turn)
	}
	if err := s.RequestBuild(loc(1, 0), economy.BuildingFarm); !errors.Is(err, ErrGameOver) {
		t.Errorf("RequestBuild after game over: got %v", err)
	}
}

func TestResourceDelivery(t *testing.T) {
	s := newTestSim(t, 3)
	if err := s.Grid.At(2, 0).Build(economy.BuildingMine); err != nil {
		t.Fatal(err)
	}
	if err := s.AssignRoute(loc(2, 0), world.BaseLocation); err != nil {
		t.Fatalf("AssignRoute: %v", err)
	}

	report := mustEndTurn(t, s)
	if report.Produced != 1 || report.Delivered != 0 || report.InTransit != 1 {
		t.Fatalf("turn 1: %+v", report)
	}
	pkg := s.InTransit[0]
	if len(pkg.RemainingPath()) != 1 || pkg.LeftoverMovement != 0 {
		t.Fatalf("after one turn: %d sites left, leftover %d", len(pkg.RemainingPath()), pkg.LeftoverMovement)
	}

	report = mustEndTurn(t, s)
	if report.Delivered != 1 || report.InTransit != 0 {
		t.Fatalf("turn 2: %+v", report)
	}
	stone := s.Grid.Base().Building.Consumers[0]
	if stone.Required != economy.ResourceStone || stone.AmountConsumed != 1 {
		t.Errorf("base stone consumer = %+v", stone)
	}
	if s.Stats.Delivered != 1 || s.Stats.Produced != 1 {
		t.Errorf("stats = %+v", s.Stats)
	}
}

func TestRoadDeliveryIntoBase(t *testing.T) {
	s := newTestSim(t, 3)
	if err := s.Grid.At(1, 0).Build(economy.BuildingRoad); err != nil {
		t.Fatal(err)
	}
	if err := s.Grid.At(2, 0).Build(economy.BuildingMine); err != nil {
		t.Fatal(err)
	}
	if err := s.AssignRoute(loc(2, 0), world.BaseLocation); err != nil {
		t.Fatalf("AssignRoute: %v", err)
	}

	// Half a turn along the road, then the base is entered for its own cost.
	report := mustEndTurn(t, s)
	if report.Produced != 1 || report.Delivered != 1 || report.InTransit != 0 {
		t.Fatalf("turn 1: %+v, want the stone delivered", report)
	}
	if stone := s.Grid.Base().Building.Consumers[0]; stone.AmountConsumed != 1 {
		t.Errorf("base stone consumer = %+v", stone)
	}
}

func TestPackageLostBehindBlocker(t *testing.T) {
	s := newTestSim(t, 3)
	s.Grid.At(3, 0).Build(economy.BuildingMine)
	if err := s.AssignRoute(loc(3, 0), world.BaseLocation); err != nil {
		t.Fatal(err)
	}
	mustEndTurn(t, s)
	if len(s.InTransit) != 1 {
		t.Fatalf("%d packages in transit, want 1", len(s.InTransit))
	}

	next := s.InTransit[0].RemainingPath()[0].(*world.Tile)
	if err := next.Build(economy.BuildingBase); err != nil {
		t.Fatal(err)
	}

	report := mustEndTurn(t, s)
	if report.Lost != 1 || report.InTransit != 0 {
		t.Fatalf("report %+v, want one lost package", report)
	}
	if !slices.ContainsFunc(report.Events, func(ev Event) bool { return ev.Category == "lost" }) {
		t.Errorf("no lost event in %v", report.Events)
	}
}

func TestRejectedDelivery(t *testing.T) {
	s := newTestSim(t, 3)
	s.Grid.At(2, 0).Build(economy.BuildingMine)
	s.Grid.At(2, 1).Build(economy.BuildingMarket)
	if err := s.AssignRoute(loc(2, 0), loc(2, 1)); err != nil {
		t.Fatal(err)
	}

	// Entering the market costs two turns of movement.
	if report := mustEndTurn(t, s); report.Rejected != 0 || report.InTransit != 1 {
		t.Fatalf("turn 1: %+v", report)
	}
	report := mustEndTurn(t, s)
	if report.Rejected != 1 || report.Delivered != 0 {
		t.Fatalf("report %+v, want the stone refused", report)
	}
	if s.Stats.Lost != 1 {
		t.Errorf("stats = %+v", s.Stats)
	}
}

func TestRequestBuild(t *testing.T) {
	s := newTestSim(t, 3)
	target := loc(2, 0)

	if err := s.RequestBuild(target, economy.BuildingFarm); err != nil {
		t.Fatalf("RequestBuild: %v", err)
	}
	if got := s.PendingBuilds(); !slices.Equal(got, []world.TileLocation{target}) {
		t.Fatalf("pending = %v", got)
	}
	if err := s.RequestBuild(loc(-2, 0), economy.BuildingMine); !errors.Is(err, ErrBaseBusy) {
		t.Fatalf("second order: got %v, want ErrBaseBusy", err)
	}

	report := mustEndTurn(t, s)
	if report.Produced != 1 || s.Grid.Get(target).HasBuilding() {
		t.Fatalf("turn 1: %+v", report)
	}
	if got := s.PendingBuilds(); !slices.Equal(got, []world.TileLocation{target}) {
		t.Fatalf("pending in transit = %v", got)
	}

	report = mustEndTurn(t, s)
	tile := s.Grid.Get(target)
	if report.Delivered != 1 || !tile.HasBuilding() || tile.Building.Type != economy.BuildingFarm {
		t.Fatalf("turn 2: %+v, tile %s", report, tile)
	}
	if len(s.PendingBuilds()) != 0 {
		t.Errorf("pending after arrival = %v", s.PendingBuilds())
	}
	if !slices.ContainsFunc(report.Events, func(ev Event) bool { return ev.Category == "build" && ev.Turn == 2 }) {
		t.Errorf("no build event in %v", report.Events)
	}
	if err := s.RequestBuild(loc(-1, 0), economy.BuildingMine); err != nil {
		t.Errorf("base not free after delivery: %v", err)
	}
}

func TestRequestBuildRejected(t *testing.T) {
	s := newPaintedSim(t, 3, map[world.TileLocation]world.Terrain{loc(-2, 2): world.TerrainWater})

	tests := []struct {
		name     string
		loc      world.TileLocation
		building economy.BuildingType
		want     error
	}{
		{"out of bounds", loc(4, 0), economy.BuildingFarm, ErrOutOfBounds},
		{"occupied", world.BaseLocation, economy.BuildingFarm, world.ErrAlreadyBuilt},
		{"water", loc(-2, 2), economy.BuildingHarbor, world.ErrNoPath},
		{"second base", loc(1, 1), economy.BuildingBase, ErrSecondBase},
		{"unknown type", loc(1, 1), economy.BuildingType(99), economy.ErrUnknownBuilding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.RequestBuild(tt.loc, tt.building); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if s.Grid.Base().Building.Producer.Action != nil {
				t.Error("rejected request left an order at the base")
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	s := newTestSim(t, 3)
	s.Grid.At(1, 1).Build(economy.BuildingRoad)
	s.Grid.At(2, 2).Build(economy.BuildingFarm)

	if err := s.AssignRoute(loc(1, 1), world.BaseLocation); !errors.Is(err, economy.ErrNoProducer) {
		t.Errorf("road: got %v", err)
	}
	if err := s.AssignRoute(loc(-1, -1), world.BaseLocation); !errors.Is(err, world.ErrNoBuilding) {
		t.Errorf("empty tile: got %v", err)
	}
	if err := s.AssignRoute(loc(2, 2), loc(9, 9)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out of bounds: got %v", err)
	}

	if err := s.AssignRoute(loc(2, 2), world.BaseLocation); err != nil {
		t.Fatalf("AssignRoute: %v", err)
	}
	farm := s.Grid.At(2, 2).Building.Producer
	if farm.Destination() != s.Grid.Base() {
		t.Errorf("farm routed to %v", farm.Destination())
	}
	if err := s.ClearRoute(loc(2, 2)); err != nil {
		t.Fatalf("ClearRoute: %v", err)
	}
	if farm.CanProduce() {
		t.Error("farm still routed")
	}

	var routes int
	for _, ev := range s.Events {
		if ev.Category == "route" {
			routes++
		}
	}
	if routes != 2 {
		t.Errorf("%d route events, want 2", routes)
	}
}

func TestGrowEvery(t *testing.T) {
	s := newTestSim(t, 2)
	s.GrowEvery = 2

	if report := mustEndTurn(t, s); report.Grown {
		t.Fatal("grew after one turn")
	}
	report := mustEndTurn(t, s)
	if !report.Grown || s.Grid.Radius != 3 || s.Grid.Len() != 49 {
		t.Fatalf("after two turns: grown=%v radius=%d tiles=%d", report.Grown, s.Grid.Radius, s.Grid.Len())
	}
}

func TestEventLogCapped(t *testing.T) {
	s := newTestSim(t, 1)
	for i := 0; i < maxEvents+50; i++ {
		s.record("test", fmt.Sprintf("event %d", i))
	}
	if len(s.Events) != maxEvents {
		t.Fatalf("%d events kept, want %d", len(s.Events), maxEvents)
	}
	if got := s.Events[0].Description; got != "event 50" {
		t.Errorf("oldest event %q, want %q", got, "event 50")
	}
	report := mustEndTurn(t, s)
	if len(report.Events) < maxEvents+50 {
		t.Errorf("report carried %d events", len(report.Events))
	}
	if len(mustEndTurn(t, s).Events) != 0 {
		t.Error("events reported twice")
	}
}
