// World generation: terrain is either drawn uniformly per tile or derived
// from layered simplex noise for clustered landscapes.
package world

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexsim/internal/economy"
)

// TerrainMode selects how tile terrain is generated.
type TerrainMode string

const (
	TerrainUniform TerrainMode = "uniform" // Each terrain equally likely per tile
	TerrainNoise   TerrainMode = "noise"   // Smooth regions from simplex noise
)

// GenConfig holds grid generation parameters.
type GenConfig struct {
	Radius int         // Tiles span [-Radius, Radius] on both axes
	Seed   int64       // Random seed (0 = random)
	Mode   TerrainMode // Terrain distribution

	// TerrainAt, when set, decides every tile's terrain instead of Mode.
	// Tiles added by Grow use it too.
	TerrainAt func(TileLocation) Terrain
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius: 10,
		Seed:   0,
		Mode:   TerrainUniform,
	}
}

// SmallTestConfig returns a tiny grid for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius: 3,
		Seed:   42,
		Mode:   TerrainUniform,
	}
}

// Generate creates a grid filled with terrain and places the base at its
// centre.
func Generate(cfg GenConfig, catalog economy.Catalog) (*Grid, error) {
	if cfg.Radius < 0 {
		return nil, fmt.Errorf("generate: negative radius %d", cfg.Radius)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	var source terrainSource
	switch {
	case cfg.TerrainAt != nil:
		source = funcTerrain(cfg.TerrainAt)
	case cfg.Mode == TerrainUniform, cfg.Mode == "":
		source = &uniformTerrain{rng: rand.New(rand.NewSource(seed))}
	case cfg.Mode == TerrainNoise:
		source = newNoiseTerrain(seed)
	default:
		return nil, fmt.Errorf("generate: unknown terrain mode %q", cfg.Mode)
	}

	g := &Grid{
		Radius:   cfg.Radius,
		tiles:    make(map[TileLocation]*Tile),
		catalog:  catalog,
		terrain:  source,
		stepCost: min(TerrainGrass.BaseCost(), catalog.MinEntryCost()),
	}

	for col := -cfg.Radius; col <= cfg.Radius; col++ {
		for row := -cfg.Radius; row <= cfg.Radius; row++ {
			g.addTile(TileLocation{Column: col, Row: row})
		}
	}
	g.sortOrder()

	if err := g.Base().Build(economy.BuildingBase); err != nil {
		return nil, fmt.Errorf("generate: place base: %w", err)
	}
	return g, nil
}

// terrainSource decides the terrain of newly created tiles.
type terrainSource interface {
	terrainAt(loc TileLocation) Terrain
}

type funcTerrain func(TileLocation) Terrain

func (f funcTerrain) terrainAt(loc TileLocation) Terrain {
	return f(loc)
}

type uniformTerrain struct {
	rng *rand.Rand
}

func (u *uniformTerrain) terrainAt(TileLocation) Terrain {
	return AllTerrains[u.rng.Intn(len(AllTerrains))]
}

// noiseTerrain samples elevation and moisture fields, so a location always
// gets the same terrain for a given seed.
type noiseTerrain struct {
	elevation opensimplex.Noise
	moisture  opensimplex.Noise
}

func newNoiseTerrain(seed int64) *noiseTerrain {
	return &noiseTerrain{
		elevation: opensimplex.NewNormalized(seed),
		moisture:  opensimplex.NewNormalized(seed + 1),
	}
}

func (n *noiseTerrain) terrainAt(loc TileLocation) Terrain {
	// Offset coordinates to cartesian: odd rows sit half a tile to the right.
	x := float64(loc.Column) + 0.5*float64(loc.Row&1)
	y := float64(loc.Row) * math.Sqrt(3.0) / 2.0

	elev := octaveNoise(n.elevation, x, y, 4, 0.12, 0.5)
	moist := octaveNoise(n.moisture, x, y, 3, 0.09, 0.5)

	switch {
	case elev < 0.32:
		return TerrainWater
	case elev > 0.68:
		return TerrainMountain
	case moist > 0.55:
		return TerrainForest
	default:
		return TerrainGrass
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
