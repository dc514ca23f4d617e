package economy

import (
	"errors"
	"log/slog"
)

// ErrNoProducer is returned when routing a building that produces nothing.
var ErrNoProducer = errors.New("economy: building has no producer")

// Building is an economic unit placed on a tile. Its producer, consumers and
// crossing modifier are fixed at construction; only their counters change.
type Building struct {
	Type      BuildingType
	Producer  *PackageProducer
	Consumers []*ResourceConsumer
	Crossing  *CrossingModifier
}

// Destroyed reports whether any consumer has been destroyed.
func (b *Building) Destroyed() bool {
	for _, c := range b.Consumers {
		if c.Destroyed {
			return true
		}
	}
	return false
}

// CrossingCost returns the cost of crossing the building's tile. A modifier
// is applied to DefaultSpeed, not to base; without one base is returned.
func (b *Building) CrossingCost(base int) int {
	if b.Crossing == nil {
		return base
	}
	return b.Crossing.Apply(DefaultSpeed)
}

// Produce emits a package from the producer, if any. Destroyed buildings
// never produce.
func (b *Building) Produce() *Package {
	if b.Destroyed() || b.Producer == nil {
		return nil
	}
	return b.Producer.Produce()
}

// Consume offers r to each consumer in order until one accepts it.
func (b *Building) Consume(r ResourceType) bool {
	for _, c := range b.Consumers {
		if c.Consume(r) {
			return true
		}
	}
	slog.Debug("no consumer accepted resource", "building", b.Type, "resource", r)
	return false
}

// AssignPath sets the route of the building's packages.
func (b *Building) AssignPath(path []Site) error {
	if b.Producer == nil {
		return ErrNoProducer
	}
	b.Producer.AssignPath(path)
	return nil
}

// EndTurn advances every consumer, then the producer.
func (b *Building) EndTurn() {
	for _, c := range b.Consumers {
		c.EndTurn()
	}
	if b.Producer != nil {
		b.Producer.EndTurn()
	}
}

// Needs returns the consumers still accepting r, in order.
func (b *Building) Needs(r ResourceType) []*ResourceConsumer {
	var out []*ResourceConsumer
	for _, c := range b.Consumers {
		if !c.Destroyed && c.Required == r {
			out = append(out, c)
		}
	}
	return out
}
