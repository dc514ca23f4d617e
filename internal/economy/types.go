// Package economy provides buildings, their resource consumers and package
// producers, and the packages that carry resources and build orders between
// tiles.
package economy

import "fmt"

// DefaultSpeed is the movement budget a package spends per turn. Building
// crossing modifiers are evaluated against it rather than the terrain cost.
const DefaultSpeed = 12

// ResourceType enumerates the goods carried by delivery packages.
type ResourceType uint8

const (
	ResourceWood ResourceType = iota
	ResourceIron
	ResourceWheat
	ResourceFood
	ResourceGold
	ResourceStone
)

var resourceNames = [...]string{
	ResourceWood:  "Wood",
	ResourceIron:  "Iron",
	ResourceWheat: "Wheat",
	ResourceFood:  "Food",
	ResourceGold:  "Gold",
	ResourceStone: "Stone",
}

func (r ResourceType) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return fmt.Sprintf("Resource(%d)", r)
}

// MarshalText encodes the resource by name.
func (r ResourceType) MarshalText() ([]byte, error) {
	if int(r) >= len(resourceNames) {
		return nil, fmt.Errorf("economy: unknown resource %d", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a resource name.
func (r *ResourceType) UnmarshalText(text []byte) error {
	v, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseResourceType resolves a resource by its name.
func ParseResourceType(name string) (ResourceType, error) {
	for i, n := range resourceNames {
		if n == name {
			return ResourceType(i), nil
		}
	}
	return 0, fmt.Errorf("economy: unknown resource %q", name)
}

// BuildingType enumerates every building a tile can hold.
type BuildingType uint8

const (
	BuildingField BuildingType = iota
	BuildingFarm
	BuildingMine
	BuildingSawmill
	BuildingHarbor
	BuildingMarket
	BuildingRoad
	BuildingBase
)

var buildingNames = [...]string{
	BuildingField:   "Field",
	BuildingFarm:    "Farm",
	BuildingMine:    "Mine",
	BuildingSawmill: "Sawmill",
	BuildingHarbor:  "Harbor",
	BuildingMarket:  "Market",
	BuildingRoad:    "Road",
	BuildingBase:    "Base",
}

// AllBuildingTypes lists the building types in declaration order.
var AllBuildingTypes = []BuildingType{
	BuildingField, BuildingFarm, BuildingMine, BuildingSawmill,
	BuildingHarbor, BuildingMarket, BuildingRoad, BuildingBase,
}

func (b BuildingType) String() string {
	if int(b) < len(buildingNames) {
		return buildingNames[b]
	}
	return fmt.Sprintf("Building(%d)", b)
}

// MarshalText encodes the building type by name.
func (b BuildingType) MarshalText() ([]byte, error) {
	if int(b) >= len(buildingNames) {
		return nil, fmt.Errorf("economy: unknown building %d", b)
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes a building type name.
func (b *BuildingType) UnmarshalText(text []byte) error {
	v, err := ParseBuildingType(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBuildingType resolves a building type by its name.
func ParseBuildingType(name string) (BuildingType, error) {
	for i, n := range buildingNames {
		if n == name {
			return BuildingType(i), nil
		}
	}
	return 0, fmt.Errorf("economy: unknown building %q", name)
}

// PackageType distinguishes resource deliveries from build orders.
type PackageType uint8

const (
	PackageResource PackageType = iota
	PackageBuild
)

func (p PackageType) String() string {
	switch p {
	case PackageResource:
		return "Resource"
	case PackageBuild:
		return "Build"
	default:
		return fmt.Sprintf("Package(%d)", p)
	}
}

// MarshalText encodes the package type by name.
func (p PackageType) MarshalText() ([]byte, error) {
	switch p {
	case PackageResource, PackageBuild:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("economy: unknown package type %d", p)
}

// UnmarshalText decodes a package type name.
func (p *PackageType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Resource":
		*p = PackageResource
	case "Build":
		*p = PackageBuild
	default:
		return fmt.Errorf("economy: unknown package type %q", text)
	}
	return nil
}
