package economy

import (
	"fmt"
	"math"
)

// CrossingKind selects how a building alters the cost of crossing its tile.
type CrossingKind uint8

const (
	CrossingBlocker    CrossingKind = iota // Tile cannot be crossed
	CrossingMultiplier                     // Input scaled by Factor
	CrossingReplacer                       // Input replaced by Value
)

func (k CrossingKind) String() string {
	switch k {
	case CrossingBlocker:
		return "blocker"
	case CrossingMultiplier:
		return "multiplier"
	case CrossingReplacer:
		return "replacer"
	default:
		return fmt.Sprintf("crossing(%d)", k)
	}
}

// MarshalText encodes the kind by name.
func (k CrossingKind) MarshalText() ([]byte, error) {
	if k > CrossingReplacer {
		return nil, fmt.Errorf("economy: unknown crossing kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *CrossingKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "blocker":
		*k = CrossingBlocker
	case "multiplier":
		*k = CrossingMultiplier
	case "replacer":
		*k = CrossingReplacer
	default:
		return fmt.Errorf("economy: unknown crossing kind %q", text)
	}
	return nil
}

// CrossingModifier is the crossing cost computer attached to a building.
type CrossingModifier struct {
	Kind   CrossingKind `json:"kind"`
	Factor float64      `json:"factor,omitempty"`
	Value  int          `json:"value,omitempty"`
}

// Blocker makes a tile impassable.
func Blocker() *CrossingModifier {
	return &CrossingModifier{Kind: CrossingBlocker}
}

// Multiplier scales the crossing cost by factor.
func Multiplier(factor float64) *CrossingModifier {
	return &CrossingModifier{Kind: CrossingMultiplier, Factor: factor}
}

// Replacer overrides the crossing cost with value.
func Replacer(value int) *CrossingModifier {
	return &CrossingModifier{Kind: CrossingReplacer, Value: value}
}

// Apply computes the modified cost for input. A negative result means the
// tile cannot be crossed.
func (m CrossingModifier) Apply(input int) int {
	switch m.Kind {
	case CrossingMultiplier:
		return int(math.RoundToEven(m.Factor * float64(input)))
	case CrossingReplacer:
		return m.Value
	default:
		return -1
	}
}
