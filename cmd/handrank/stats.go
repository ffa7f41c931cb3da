package main

import (
	"fmt"
	"io"

	"github.com/lox/handrank/ranktable"
)

// StatsCmd prints per-category statistics of a table.
type StatsCmd struct {
	Table string `short:"t" help:"Table file to summarise; built in memory when empty"`
}

func (c *StatsCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(logger)
	defer cancel()

	table, err := loadTable(ctx, c.Table, cfg, logger)
	if err != nil {
		return err
	}
	printStats(g.stdout(), table)
	return nil
}

func printStats(w io.Writer, table *ranktable.Table) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-15s %8s %9s %9s %9s", "Category", "Classes", "Hands", "Start", "End")))
	classes := 0
	for _, cs := range table.Categories() {
		classes += cs.Classes
		fmt.Fprintf(w, " %s %8d %9d %s %9d\n",
			handTypeStyle.Render(fmt.Sprintf("%-15s", cs.Type)),
			cs.Classes, cs.Hands,
			scoreStyle.Render(fmt.Sprintf("%9d", cs.StartScore)),
			cs.EndScore)
	}
	fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf(" %-15s %8d %9d", "Total", classes, table.Len())))
}
