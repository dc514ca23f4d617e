// Package engine provides the turn coordinator and the loop that drives it.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// Engine drives a simulation forward one turn at a time.
type Engine struct {
	Sim      *Simulation
	MaxTurns int           // Stop after this many turns (0 = until game over)
	Interval time.Duration // Pause between turns (0 = as fast as possible)

	running atomic.Bool

	// Callbacks, populated during setup.
	BeforeTurn func(turn int)          // Before each turn; commands go here
	OnTurn     func(report TurnReport) // After each turn
}

// NewEngine creates an engine for sim with no turn limit and no pause.
func NewEngine(sim *Simulation) *Engine {
	return &Engine{Sim: sim}
}

// Run plays turns until the game is over, MaxTurns is reached, Stop is
// called or ctx is done. It returns the reports of every turn played.
func (e *Engine) Run(ctx context.Context) ([]TurnReport, error) {
	e.running.Store(true)
	defer e.running.Store(false)
	slog.Info("simulation engine started", "turn", e.Sim.Turn, "max_turns", e.MaxTurns, "interval", e.Interval)

	var reports []TurnReport
	for e.running.Load() {
		if e.MaxTurns > 0 && len(reports) >= e.MaxTurns {
			break
		}
		if err := ctx.Err(); err != nil {
			slog.Info("simulation engine interrupted", "turn", e.Sim.Turn)
			return reports, err
		}

		start := time.Now()
		report, err := e.step()
		if errors.Is(err, ErrGameOver) {
			break
		}
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
		if report.GameOver {
			break
		}

		// Sleep for the remainder of the interval.
		if wait := e.Interval - time.Since(start); wait > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(wait):
			}
		}
	}

	slog.Info("simulation engine stopped", "turn", e.Sim.Turn, "game_over", e.Sim.Over)
	return reports, nil
}

// Stop halts the loop after the current turn.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether Run is in progress.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// step advances the simulation by one turn.
func (e *Engine) step() (TurnReport, error) {
	if e.BeforeTurn != nil {
		e.BeforeTurn(e.Sim.Turn + 1)
	}

	report, err := e.Sim.EndTurn()
	if err != nil {
		return report, err
	}

	if e.OnTurn != nil {
		e.OnTurn(report)
	}
	return report, nil
}
