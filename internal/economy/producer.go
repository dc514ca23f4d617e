package economy

import (
	"errors"
	"fmt"
)

// ErrNotBuildProducer is returned when a build order is given to a producer
// that emits resources.
var ErrNotBuildProducer = errors.New("economy: producer does not emit build orders")

// PackageProducer emits a Package every Delay turns once both a path and an
// action are assigned. Build producers are single-shot: the action is used up
// by the package it produces.
type PackageProducer struct {
	Type        PackageType
	Action      *Action
	Delay       int
	TurnCounter int
	Path        []Site
}

// NewResourceProducer creates a producer delivering r every delay turns.
func NewResourceProducer(r ResourceType, delay int) *PackageProducer {
	action := Deliver(r)
	return &PackageProducer{
		Type:   PackageResource,
		Action: &action,
		Delay:  delay,
	}
}

// NewBuildProducer creates a producer that waits for build orders.
func NewBuildProducer(delay int) *PackageProducer {
	return &PackageProducer{
		Type:  PackageBuild,
		Delay: delay,
	}
}

// CanProduce reports whether a path and an action are both assigned.
func (p *PackageProducer) CanProduce() bool {
	return p.Path != nil && p.Action != nil
}

// Produce emits a package when the counter has run down, restarting it.
func (p *PackageProducer) Produce() *Package {
	if p.TurnCounter != 0 || !p.CanProduce() {
		return nil
	}

	p.TurnCounter = p.Delay
	pkg := NewPackage(p.Type, *p.Action, p.Path)
	if p.Type == PackageBuild {
		p.Action = nil
	}
	return pkg
}

// AssignPath stores a copy of path. A nil or empty path clears the route.
func (p *PackageProducer) AssignPath(path []Site) {
	if len(path) == 0 {
		p.Path = nil
		return
	}
	p.Path = append([]Site(nil), path...)
}

// AssignBuildAction queues a build order for the next package.
func (p *PackageProducer) AssignBuildAction(b BuildingType) error {
	if p.Type != PackageBuild {
		return fmt.Errorf("assign %s: %w", b, ErrNotBuildProducer)
	}
	action := BuildOrder(b)
	p.Action = &action
	return nil
}

// EndTurn counts down towards the next production. The counter only moves
// while the producer is able to produce.
func (p *PackageProducer) EndTurn() {
	if p.CanProduce() && p.TurnCounter > 0 {
		p.TurnCounter--
	}
}

// Destination returns the last site of the assigned path, or nil.
func (p *PackageProducer) Destination() Site {
	if len(p.Path) == 0 {
		return nil
	}
	return p.Path[len(p.Path)-1]
}
