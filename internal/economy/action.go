package economy

import (
	"errors"
	"fmt"
)

// ErrRejected is returned when a destination refuses a delivered resource.
var ErrRejected = errors.New("economy: delivery rejected")

// Site is a tile as seen by the economy: something a package can cross and
// act upon when it arrives.
type Site interface {
	// CrossingCost is the movement needed to enter the site; negative means
	// it cannot be crossed.
	CrossingCost() int
	// Consume hands one unit of r to the site's building.
	Consume(r ResourceType) bool
	// Build places a new building on the site.
	Build(b BuildingType) error
}

// ActionKind selects what a package does at its destination.
type ActionKind uint8

const (
	ActionDeliver ActionKind = iota
	ActionBuild
)

// Action is the payload of a package.
type Action struct {
	Kind     ActionKind
	Resource ResourceType // ActionDeliver only
	Building BuildingType // ActionBuild only
}

// Deliver returns an action handing one unit of r to the destination.
func Deliver(r ResourceType) Action {
	return Action{Kind: ActionDeliver, Resource: r}
}

// BuildOrder returns an action placing a b building on the destination.
func BuildOrder(b BuildingType) Action {
	return Action{Kind: ActionBuild, Building: b}
}

// Perform applies the action to target.
func (a Action) Perform(target Site) error {
	switch a.Kind {
	case ActionDeliver:
		if !target.Consume(a.Resource) {
			return fmt.Errorf("deliver %s: %w", a.Resource, ErrRejected)
		}
		return nil
	case ActionBuild:
		if err := target.Build(a.Building); err != nil {
			return fmt.Errorf("build %s: %w", a.Building, err)
		}
		return nil
	default:
		return fmt.Errorf("economy: unknown action kind %d", a.Kind)
	}
}

func (a Action) String() string {
	if a.Kind == ActionBuild {
		return "build " + a.Building.String()
	}
	return "deliver " + a.Resource.String()
}
