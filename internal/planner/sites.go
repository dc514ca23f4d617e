package planner

import (
	"cmp"
	"slices"

	"github.com/talgya/hexsim/internal/economy"
	"github.com/talgya/hexsim/internal/world"
)

// distancePenalty is subtracted from a site's score per turn of travel
// between it and the base.
const distancePenalty = 0.75

// Site is a scored candidate location for a new building.
type Site struct {
	Tile  *world.Tile
	Cost  int     // Route cost from the base
	Score float64 // Terrain fit minus travel time from the base
}

// TravelTurns is the number of turns a package at default speed needs to
// cover the route.
func (s Site) TravelTurns() int {
	return travelTurns(s.Cost)
}

func travelTurns(cost int) int {
	if cost <= 0 {
		return 0
	}
	return (cost + economy.DefaultSpeed - 1) / economy.DefaultSpeed
}

// RankSites scores every free tile for building b and returns the usable
// ones, best first. Water tiles, occupied tiles, tiles in taken and tiles
// the base cannot reach are skipped.
func RankSites(g *world.Grid, b economy.BuildingType, taken map[world.TileLocation]bool) []Site {
	base := g.Base()
	if base == nil {
		return nil
	}
	var candidates []Site
	for _, t := range g.Tiles() {
		if t.HasBuilding() || t.Terrain() == world.TerrainWater || taken[t.Location] {
			continue
		}
		fit, ok := siteFit(t, b)
		if !ok {
			continue
		}
		path, err := base.AStar(t)
		if err != nil {
			continue
		}
		cost := world.PathCost(path)
		score := fit - distancePenalty*float64(cost)/float64(economy.DefaultSpeed)
		candidates = append(candidates, Site{Tile: t, Cost: cost, Score: score})
	}

	// Sort by score descending; Tiles() order breaks ties.
	slices.SortStableFunc(candidates, func(a, b Site) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return candidates
}

// siteFit evaluates how well tile t suits building b. It reports false when
// b cannot work there at all.
func siteFit(t *world.Tile, b economy.BuildingType) (float64, bool) {
	counts := make(map[world.Terrain]int)
	built := 0
	for _, n := range t.Neighbors() {
		counts[n.Terrain()]++
		if n.HasBuilding() {
			built++
		}
	}

	score := 0.0
	switch b {
	case economy.BuildingHarbor:
		if counts[world.TerrainWater] == 0 {
			return 0, false // Harbors need open water
		}
		score += 1.5 * float64(counts[world.TerrainWater])
	case economy.BuildingSawmill:
		score += float64(counts[world.TerrainForest])
		if t.Terrain() == world.TerrainForest {
			score += 1.0
		}
	case economy.BuildingMine:
		score += float64(counts[world.TerrainMountain])
		if t.Terrain() == world.TerrainMountain {
			score += 1.0
		}
	case economy.BuildingFarm, economy.BuildingField:
		score += 0.5 * float64(counts[world.TerrainGrass])
		if t.Terrain() == world.TerrainGrass {
			score += 1.0
		}
	case economy.BuildingMarket:
		score += 0.5 * float64(built) // Trade hubs sit among other buildings
	}

	// Mountains slow every package that has to leave the tile's neighbourhood.
	if t.Terrain() == world.TerrainMountain && b != economy.BuildingMine {
		score -= 1.0
	}
	return score, true
}
