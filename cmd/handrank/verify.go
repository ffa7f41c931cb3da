package main

import (
	"fmt"
	"os"

	"github.com/lox/handrank/ranktable"
)

// VerifyCmd re-checks a table file.
type VerifyCmd struct {
	File string `arg:"" type:"existingfile" help:"Table file to verify"`
}

func (c *VerifyCmd) Run(g *Globals) error {
	_, logger, err := g.setup()
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	logger.Info("Verifying table", "file", c.File)
	table, err := ranktable.ReadTable(f)
	if err != nil {
		return err
	}

	fmt.Fprintln(g.stdout(), successStyle.Render("✓"), c.File, "is a valid rank table")
	printStats(g.stdout(), table)
	return nil
}
