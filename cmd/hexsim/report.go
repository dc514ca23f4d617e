package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/talgya/hexsim/internal/config"
	"github.com/talgya/hexsim/internal/engine"
	"github.com/talgya/hexsim/internal/world"
)

// recentEvents is how many log entries the summary prints.
const recentEvents = 10

func printSummary(w io.Writer, cfg config.Config, sim *engine.Simulation, reports []engine.TurnReport) {
	titleColor := color.New(color.FgCyan, color.Bold)
	lossColor := color.New(color.FgRed, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	titleColor.Fprintf(w, "\nhexsim: seed %d, radius %d, %s terrain\n\n", cfg.Seed, sim.Grid.Radius, cfg.Terrain)
	if sim.Over {
		lossColor.Fprintf(w, "Base destroyed on the %s turn\n\n", humanize.Ordinal(sim.Turn))
	} else {
		successColor.Fprintf(w, "Base standing after %s turns\n\n", humanize.Comma(int64(sim.Turn)))
	}

	peak := 0
	for _, r := range reports {
		peak = max(peak, r.InTransit)
	}

	totals := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Metric", "Value"}))
	for _, row := range [][]string{
		{"Tiles", humanize.Comma(int64(sim.Grid.Len()))},
		{"Buildings", humanize.Comma(int64(sim.Stats.Buildings))},
		{"Destroyed", humanize.Comma(int64(sim.Stats.Destroyed))},
		{"Packages produced", humanize.Comma(int64(sim.Stats.Produced))},
		{"Delivered", humanize.Comma(int64(sim.Stats.Delivered))},
		{"Lost", humanize.Comma(int64(sim.Stats.Lost))},
		{"In transit", humanize.Comma(int64(len(sim.InTransit)))},
		{"Peak in transit", humanize.Comma(int64(peak))},
	} {
		_ = totals.Append(row)
	}
	_ = totals.Render()

	fmt.Fprintln(w)
	printBuildings(w, sim.Grid)

	events := sim.Events
	if len(events) > recentEvents {
		events = events[len(events)-recentEvents:]
	}
	if len(events) == 0 {
		return
	}
	fmt.Fprintln(w)
	titleColor.Fprintln(w, "Recent events")
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Turn", "Category", "Event"}))
	for _, e := range events {
		_ = table.Append([]string{strconv.Itoa(e.Turn), e.Category, e.Description})
	}
	_ = table.Render()
}

func printBuildings(w io.Writer, g *world.Grid) {
	standing := make(map[string]int)
	destroyed := make(map[string]int)
	for _, t := range g.Tiles() {
		if !t.HasBuilding() {
			continue
		}
		name := t.Building.Type.String()
		if t.Building.Destroyed() {
			destroyed[name]++
		} else {
			standing[name]++
		}
	}

	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Building", "Standing", "Destroyed"}))
	for _, bt := range g.Catalog().Types() {
		name := bt.String()
		if standing[name] == 0 && destroyed[name] == 0 {
			continue
		}
		_ = table.Append([]string{name, strconv.Itoa(standing[name]), strconv.Itoa(destroyed[name])})
	}
	_ = table.Render()
}
