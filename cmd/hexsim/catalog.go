package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/talgya/hexsim/internal/config"
	"github.com/talgya/hexsim/internal/economy"
)

func newCatalogCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the building catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := cfg.Catalog()
			if err != nil {
				return err
			}
			printCatalog(os.Stdout, catalog)
			return nil
		},
	}
}

func printCatalog(w io.Writer, c economy.Catalog) {
	color.New(color.FgCyan, color.Bold).Fprintln(w, "Buildings")

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Building", "Produces", "Every", "Consumes", "Crossing"}),
	)
	for _, bt := range c.Types() {
		spec := c[bt]
		produces, every := "-", "-"
		if p := spec.Producer; p != nil {
			produces = "build orders"
			if p.Package == economy.PackageResource {
				produces = p.Resource.String()
			}
			every = strconv.Itoa(p.Delay)
		}

		var consumes []string
		for _, cs := range spec.Consumers {
			consumes = append(consumes, fmt.Sprintf("%d %s / %d", cs.Amount, cs.Resource, cs.Delay))
		}
		if len(consumes) == 0 {
			consumes = append(consumes, "-")
		}

		_ = table.Append([]string{bt.String(), produces, every, strings.Join(consumes, ", "), crossingText(spec.Crossing)})
	}
	_ = table.Render()
}

func crossingText(m *economy.CrossingModifier) string {
	if m == nil {
		return "terrain"
	}
	switch m.Kind {
	case economy.CrossingBlocker:
		return "blocked"
	case economy.CrossingMultiplier:
		return fmt.Sprintf("x%g (%d)", m.Factor, m.Apply(economy.DefaultSpeed))
	default:
		return fmt.Sprintf("= %d", m.Value)
	}
}
