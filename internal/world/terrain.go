package world

import "github.com/talgya/hexsim/internal/economy"

// Terrain is the ground type of a tile, fixed at generation.
type Terrain uint8

const (
	TerrainGrass    Terrain = iota // Open ground
	TerrainMountain                // Slow to cross
	TerrainForest                  // Twice the cost of grass
	TerrainWater                   // Impassable
)

// AllTerrains lists the terrain types in draw order.
var AllTerrains = []Terrain{TerrainGrass, TerrainMountain, TerrainForest, TerrainWater}

// BaseCost returns the crossing cost of bare terrain. Negative means the
// terrain cannot be crossed.
func (t Terrain) BaseCost() int {
	switch t {
	case TerrainGrass:
		return 1 * economy.DefaultSpeed
	case TerrainForest:
		return 2 * economy.DefaultSpeed
	case TerrainMountain:
		return 3 * economy.DefaultSpeed
	default:
		return -1
	}
}

func (t Terrain) String() string {
	switch t {
	case TerrainGrass:
		return "Grass"
	case TerrainMountain:
		return "Mountain"
	case TerrainForest:
		return "Forest"
	case TerrainWater:
		return "Water"
	default:
		return "Unknown"
	}
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range g.tiles {
		counts[t.terrain]++
	}
	return counts
}
