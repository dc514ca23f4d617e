package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/talgya/hexsim/internal/config"
	"github.com/talgya/hexsim/internal/persistence"
)

func newRunsCmd(cfg *config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List games recorded in the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JournalPath == "" {
				return errors.New("no journal configured (set HEXSIM_JOURNAL or --journal)")
			}
			journal, err := persistence.Open(cfg.JournalPath)
			if err != nil {
				return err
			}
			defer journal.Close()

			runs, err := journal.Runs(limit)
			if err != nil {
				return err
			}

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Run", "Seed", "Radius", "Terrain", "Turns", "Outcome", "Started"}),
			)
			for _, r := range runs {
				outcome := "running"
				switch {
				case r.GameOver:
					outcome = "base destroyed"
				case r.FinishedAt != nil:
					outcome = "survived"
				}
				_ = table.Append([]string{
					r.ID[:8],
					strconv.FormatInt(r.Seed, 10),
					strconv.Itoa(r.Radius),
					r.Terrain,
					humanize.Comma(int64(r.Turns)),
					outcome,
					humanize.Time(r.Started()),
				})
			}
			return table.Render()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of runs to show")
	return cmd
}
