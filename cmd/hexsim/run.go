package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/hexsim/internal/config"
	"github.com/talgya/hexsim/internal/engine"
	"github.com/talgya/hexsim/internal/persistence"
	"github.com/talgya/hexsim/internal/planner"
	"github.com/talgya/hexsim/internal/world"
)

func newRunCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a game until the base falls or the turn limit is reached",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runGame(ctx, *cfg)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&cfg.Radius, "radius", "r", cfg.Radius, "Grid radius")
	f.Int64VarP(&cfg.Seed, "seed", "s", cfg.Seed, "Random seed (0 = random)")
	f.StringVarP(&cfg.Terrain, "terrain", "t", cfg.Terrain, "Terrain mode (uniform, noise)")
	f.IntVarP(&cfg.MaxTurns, "turns", "n", cfg.MaxTurns, "Maximum turns (0 = until game over)")
	f.DurationVar(&cfg.TurnInterval, "interval", cfg.TurnInterval, "Pause between turns")
	f.IntVar(&cfg.GrowEvery, "grow-every", cfg.GrowEvery, "Add a ring of tiles every N turns (0 = never)")
	f.BoolVar(&cfg.Autopilot, "autopilot", cfg.Autopilot, "Let the rule-based planner play")
	return cmd
}

func runGame(ctx context.Context, cfg config.Config) error {
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	slog.Info("generating grid", "radius", cfg.Radius, "seed", cfg.Seed, "terrain", cfg.Terrain)
	grid, err := world.Generate(cfg.GenConfig(), catalog)
	if err != nil {
		return err
	}
	counts := world.TerrainCounts(grid)
	for _, t := range world.AllTerrains {
		slog.Info("terrain", "type", t, "count", counts[t])
	}

	sim := engine.NewSimulation(grid)
	sim.GrowEvery = cfg.GrowEvery

	e := engine.NewEngine(sim)
	e.MaxTurns = cfg.MaxTurns
	e.Interval = cfg.TurnInterval
	if cfg.Autopilot {
		e.BeforeTurn = planner.New(sim).Plan
	}

	var journal *persistence.Journal
	var runID string
	if cfg.JournalPath != "" {
		journal, err = persistence.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer journal.Close()
		slog.Info("journal opened", "path", cfg.JournalPath)

		runID, err = journal.StartRun(cfg.Seed, cfg.Radius, cfg.Terrain)
		if err != nil {
			return err
		}
		if err := journal.SaveMeta("catalog", catalogName(cfg)); err != nil {
			slog.Warn("journal meta not saved", "error", err)
		}
	}

	e.OnTurn = func(r engine.TurnReport) {
		slog.Debug("turn", "turn", r.Turn, "produced", r.Produced, "delivered", r.Delivered, "lost", r.Lost+r.Rejected, "in_transit", r.InTransit)
		if r.Turn%25 == 0 {
			slog.Info("turn report",
				"turn", r.Turn,
				"buildings", sim.Stats.Buildings,
				"destroyed", sim.Stats.Destroyed,
				"delivered", sim.Stats.Delivered,
				"in_transit", r.InTransit,
			)
		}
		if journal != nil {
			if err := journal.RecordTurn(runID, r); err != nil {
				slog.Error("journal write failed", "turn", r.Turn, "error", err)
			}
		}
	}

	reports, err := e.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if journal != nil {
		if err := journal.FinishRun(runID, sim.Turn, sim.Over); err != nil {
			slog.Error("journal finish failed", "error", err)
		}
	}

	printSummary(os.Stdout, cfg, sim, reports)
	return nil
}

func catalogName(cfg config.Config) string {
	if cfg.CatalogPath == "" {
		return "default"
	}
	return cfg.CatalogPath
}
