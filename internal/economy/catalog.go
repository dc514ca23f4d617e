package economy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
)

// ErrUnknownBuilding is returned by the factory for types missing from the
// catalog.
var ErrUnknownBuilding = errors.New("economy: unknown building type")

// ConsumerSpec describes one resource requirement of a building type.
type ConsumerSpec struct {
	Resource ResourceType `json:"resource"`
	Amount   int          `json:"amount"`
	Delay    int          `json:"delay"`
}

// ProducerSpec describes what a building type emits. Resource is ignored
// for build producers.
type ProducerSpec struct {
	Package  PackageType  `json:"package"`
	Resource ResourceType `json:"resource,omitempty"`
	Delay    int          `json:"delay"`
}

// BuildingSpec holds the fixed parameters of a building type.
type BuildingSpec struct {
	Producer  *ProducerSpec     `json:"producer,omitempty"`
	Consumers []ConsumerSpec    `json:"consumers,omitempty"`
	Crossing  *CrossingModifier `json:"crossing,omitempty"`
}

// Catalog is the building factory table, keyed by type.
type Catalog map[BuildingType]BuildingSpec

// DefaultCatalog returns the built-in building parameters.
func DefaultCatalog() Catalog {
	return Catalog{
		BuildingBase: {
			Producer: &ProducerSpec{Package: PackageBuild, Delay: 1},
			Consumers: []ConsumerSpec{
				{Resource: ResourceStone, Amount: 1, Delay: 5},
				{Resource: ResourceGold, Amount: 1, Delay: 20},
			},
			Crossing: Blocker(),
		},
		BuildingFarm: {
			Producer:  &ProducerSpec{Package: PackageResource, Resource: ResourceFood, Delay: 6},
			Consumers: []ConsumerSpec{{Resource: ResourceWood, Amount: 1, Delay: 5}},
		},
		BuildingMine: {
			Producer:  &ProducerSpec{Package: PackageResource, Resource: ResourceStone, Delay: 10},
			Consumers: []ConsumerSpec{{Resource: ResourceWood, Amount: 1, Delay: 5}},
		},
		BuildingSawmill: {
			Producer:  &ProducerSpec{Package: PackageResource, Resource: ResourceWood, Delay: 10},
			Consumers: []ConsumerSpec{{Resource: ResourceStone, Amount: 1, Delay: 5}},
			Crossing:  Multiplier(2),
		},
		BuildingField: {
			Producer:  &ProducerSpec{Package: PackageResource, Resource: ResourceWheat, Delay: 5},
			Consumers: []ConsumerSpec{{Resource: ResourceWood, Amount: 1, Delay: 5}},
		},
		BuildingHarbor: {
			Producer:  &ProducerSpec{Package: PackageResource, Resource: ResourceFood, Delay: 3},
			Consumers: []ConsumerSpec{{Resource: ResourceStone, Amount: 1, Delay: 3}},
			Crossing:  Multiplier(2),
		},
		BuildingMarket: {
			Producer:  &ProducerSpec{Package: PackageResource, Resource: ResourceGold, Delay: 8},
			Consumers: []ConsumerSpec{{Resource: ResourceFood, Amount: 2, Delay: 8}},
			Crossing:  Multiplier(2),
		},
		BuildingRoad: {
			Crossing: Multiplier(0.5),
		},
	}
}

// LoadCatalog reads a JSON catalog from path and validates it.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every spec can produce a working building.
func (c Catalog) Validate() error {
	if _, ok := c[BuildingBase]; !ok {
		return fmt.Errorf("catalog: missing %s", BuildingBase)
	}
	for _, t := range c.Types() {
		spec := c[t]
		if p := spec.Producer; p != nil {
			if p.Delay < 0 {
				return fmt.Errorf("catalog: %s producer delay %d is negative", t, p.Delay)
			}
		}
		for i, cs := range spec.Consumers {
			if cs.Amount <= 0 || cs.Delay <= 0 {
				return fmt.Errorf("catalog: %s consumer %d needs a positive amount and delay", t, i)
			}
		}
		if m := spec.Crossing; m != nil && m.Kind == CrossingMultiplier && m.Factor < 0 {
			return fmt.Errorf("catalog: %s crossing factor %g is negative", t, m.Factor)
		}
	}
	return nil
}

// Types returns the catalogued building types in declaration order.
func (c Catalog) Types() []BuildingType {
	types := make([]BuildingType, 0, len(c))
	for t := range c {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// NewBuilding constructs a building of type t.
func (c Catalog) NewBuilding(t BuildingType) (*Building, error) {
	spec, ok := c[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuilding, t)
	}

	b := &Building{Type: t}
	if p := spec.Producer; p != nil {
		if p.Package == PackageBuild {
			b.Producer = NewBuildProducer(p.Delay)
		} else {
			b.Producer = NewResourceProducer(p.Resource, p.Delay)
		}
	}
	for _, cs := range spec.Consumers {
		b.Consumers = append(b.Consumers, NewResourceConsumer(cs.Resource, cs.Amount, cs.Delay))
	}
	if spec.Crossing != nil {
		m := *spec.Crossing
		b.Crossing = &m
	}
	return b, nil
}

// MinEntryCost returns the cheapest non-negative crossing cost any
// catalogued building can impose, or DefaultSpeed if none is cheaper.
func (c Catalog) MinEntryCost() int {
	lowest := DefaultSpeed
	for _, spec := range c {
		if spec.Crossing == nil {
			continue
		}
		if cost := spec.Crossing.Apply(DefaultSpeed); cost >= 0 && cost < lowest {
			lowest = cost
		}
	}
	return lowest
}
