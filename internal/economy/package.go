package economy

import (
	"errors"
	"iter"
)

// ErrInTransit is returned when delivering a package that has not arrived.
var ErrInTransit = errors.New("economy: package still in transit")

// Package is a unit in transit: it carries an Action along a path of sites
// and spends up to Speed movement per turn crossing them.
type Package struct {
	Type         PackageType
	Action       Action
	CompletePath []Site
	Speed        int

	// LeftoverMovement is the progress already made into the next site,
	// carried over from earlier turns.
	LeftoverMovement int

	remaining []Site
}

// NewPackage creates a package at the first site of path. The origin is
// never crossed, so it is dropped from the remaining path right away.
func NewPackage(t PackageType, action Action, path []Site) *Package {
	p := &Package{
		Type:         t,
		Action:       action,
		CompletePath: append([]Site(nil), path...),
		Speed:        DefaultSpeed,
	}
	if len(p.CompletePath) > 0 {
		p.remaining = append([]Site(nil), p.CompletePath[1:]...)
	}
	return p
}

// RemainingPath returns the sites still to be crossed, next one first.
func (p *Package) RemainingPath() []Site {
	return append([]Site(nil), p.remaining...)
}

// Origin returns the site the package was produced at.
func (p *Package) Origin() Site {
	if len(p.CompletePath) == 0 {
		return nil
	}
	return p.CompletePath[0]
}

// Destination returns the last site of the path.
func (p *Package) Destination() Site {
	if len(p.CompletePath) == 0 {
		return nil
	}
	return p.CompletePath[len(p.CompletePath)-1]
}

// Arrived reports whether every site of the path has been crossed.
func (p *Package) Arrived() bool {
	return len(p.remaining) == 0
}

// Blocked reports whether the next site is an intermediate one that cannot
// be entered at all. The destination is always entered for its raw crossing
// cost, so a package that reaches a blocker it was sent to still arrives.
func (p *Package) Blocked() bool {
	return len(p.remaining) > 1 && p.remaining[0].CrossingCost() < 0
}

// Walk yields each site the package fully crosses this turn. Every call is a
// fresh turn: it starts from a full Speed budget, so stopping the iteration
// early and walking again grants a second budget. Stopping early keeps the
// package where it is; budget left over when the next site is too expensive
// is stored as LeftoverMovement.
func (p *Package) Walk() iter.Seq[Site] {
	return func(yield func(Site) bool) {
		budget := p.Speed
		for budget > 0 && len(p.remaining) > 0 {
			if p.Blocked() {
				return
			}
			cost := p.remaining[0].CrossingCost()

			if cost-p.LeftoverMovement <= budget {
				budget -= cost
				p.LeftoverMovement = 0
				next := p.remaining[0]
				p.remaining = p.remaining[1:]
				if !yield(next) {
					return
				}
				continue
			}

			p.LeftoverMovement += budget
			return
		}
	}
}

// Deliver performs the action on the destination.
func (p *Package) Deliver() error {
	if !p.Arrived() || len(p.CompletePath) == 0 {
		return ErrInTransit
	}
	return p.Action.Perform(p.Destination())
}
