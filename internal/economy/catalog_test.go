package economy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogBuildings(t *testing.T) {
	c := DefaultCatalog()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		typ       BuildingType
		produces  bool
		consumers int
		cost      int // crossing cost over grass
	}{
		{BuildingBase, true, 2, -1},
		{BuildingFarm, true, 1, 12},
		{BuildingMine, true, 1, 12},
		{BuildingSawmill, true, 1, 24},
		{BuildingField, true, 1, 12},
		{BuildingHarbor, true, 1, 24},
		{BuildingMarket, true, 1, 24},
		{BuildingRoad, false, 0, 6},
	}
	for _, tt := range tests {
		b, err := c.NewBuilding(tt.typ)
		if err != nil {
			t.Fatalf("NewBuilding(%s): %v", tt.typ, err)
		}
		if (b.Producer != nil) != tt.produces {
			t.Errorf("%s: producer present = %v, want %v", tt.typ, b.Producer != nil, tt.produces)
		}
		if len(b.Consumers) != tt.consumers {
			t.Errorf("%s: %d consumers, want %d", tt.typ, len(b.Consumers), tt.consumers)
		}
		if got := b.CrossingCost(DefaultSpeed); got != tt.cost {
			t.Errorf("%s: crossing cost %d, want %d", tt.typ, got, tt.cost)
		}
	}

	base, _ := c.NewBuilding(BuildingBase)
	if base.Producer.Type != PackageBuild || base.Producer.Action != nil {
		t.Error("base producer should wait for build orders")
	}
	if c.MinEntryCost() != 6 {
		t.Errorf("MinEntryCost = %d, want 6", c.MinEntryCost())
	}
}

func TestBuildingModifierIgnoresTerrain(t *testing.T) {
	b, err := DefaultCatalog().NewBuilding(BuildingSawmill)
	if err != nil {
		t.Fatal(err)
	}
	const forest = 2 * DefaultSpeed
	if got := b.CrossingCost(forest); got != 2*DefaultSpeed {
		t.Errorf("sawmill on forest costs %d, want %d", got, 2*DefaultSpeed)
	}

	farm, _ := DefaultCatalog().NewBuilding(BuildingFarm)
	if got := farm.CrossingCost(forest); got != forest {
		t.Errorf("farm on forest costs %d, want %d", got, forest)
	}
}

func TestUnknownBuilding(t *testing.T) {
	c := DefaultCatalog()
	delete(c, BuildingHarbor)
	if _, err := c.NewBuilding(BuildingHarbor); !errors.Is(err, ErrUnknownBuilding) {
		t.Errorf("got %v, want ErrUnknownBuilding", err)
	}
}

func TestBuildingDestroyedFreezesProduction(t *testing.T) {
	b, _ := DefaultCatalog().NewBuilding(BuildingFarm)
	b.AssignPath(sites(12, 12))
	if b.Produce() == nil {
		t.Fatal("farm did not produce")
	}
	for i := 0; i < 5; i++ {
		b.EndTurn()
	}
	if !b.Destroyed() {
		t.Fatal("farm without wood survived")
	}
	for i := 0; i < 10; i++ {
		b.EndTurn()
	}
	if b.Produce() != nil {
		t.Error("destroyed farm produced")
	}
	if b.Consume(ResourceWood) {
		t.Error("destroyed farm consumed")
	}
}

func TestBaseDestroyedWithoutGold(t *testing.T) {
	b, _ := DefaultCatalog().NewBuilding(BuildingBase)
	for turn := 1; turn <= 20; turn++ {
		// Keep the stone requirement fed so only gold is missing.
		if turn%5 == 1 {
			b.Consume(ResourceStone)
		}
		b.EndTurn()
		if turn < 20 && b.Destroyed() {
			t.Fatalf("base destroyed at turn %d", turn)
		}
	}
	if !b.Destroyed() {
		t.Error("base survived 20 turns without gold")
	}
}

func TestAssignPathWithoutProducer(t *testing.T) {
	road, _ := DefaultCatalog().NewBuilding(BuildingRoad)
	if err := road.AssignPath(sites(12, 12)); !errors.Is(err, ErrNoProducer) {
		t.Errorf("got %v, want ErrNoProducer", err)
	}
	if road.Produce() != nil {
		t.Error("road produced a package")
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data := `{
		"Base": {
			"producer": {"package": "Build", "delay": 2},
			"consumers": [{"resource": "Gold", "amount": 1, "delay": 30}],
			"crossing": {"kind": "blocker"}
		},
		"Road": {"crossing": {"kind": "replacer", "value": 3}}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("loaded %d specs, want 2", len(c))
	}
	base, err := c.NewBuilding(BuildingBase)
	if err != nil {
		t.Fatal(err)
	}
	if base.Producer.Delay != 2 || base.Consumers[0].Delay != 30 {
		t.Errorf("base parameters not loaded: %+v", c[BuildingBase])
	}
	if c.MinEntryCost() != 3 {
		t.Errorf("MinEntryCost = %d, want 3", c.MinEntryCost())
	}
	if _, err := c.NewBuilding(BuildingFarm); !errors.Is(err, ErrUnknownBuilding) {
		t.Errorf("farm: got %v, want ErrUnknownBuilding", err)
	}
}

func TestLoadCatalogRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"no base":       `{"Road": {"crossing": {"kind": "multiplier", "factor": 0.5}}}`,
		"bad consumer":  `{"Base": {"consumers": [{"resource": "Gold", "amount": 0, "delay": 5}]}}`,
		"bad resource":  `{"Base": {"consumers": [{"resource": "Silk", "amount": 1, "delay": 5}]}}`,
		"negative cost": `{"Base": {}, "Road": {"crossing": {"kind": "multiplier", "factor": -1}}}`,
	}
	for name, data := range tests {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadCatalog(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
