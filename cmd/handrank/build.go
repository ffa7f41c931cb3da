package main

import (
	"fmt"
	"io"

	"github.com/lox/handrank/internal/fileutil"
	"github.com/lox/handrank/ranktable"
)

// BuildCmd generates, verifies and writes the rank table.
type BuildCmd struct {
	Output   string `short:"o" help:"Table file to write (overrides config)"`
	Workers  *int   `short:"w" help:"Categories built concurrently; 1 is sequential, 0 uses every CPU (overrides config)"`
	NoVerify bool   `help:"Skip re-verifying the table before writing it"`
	Progress string `default:"auto" enum:"auto,bar,log" help:"Progress display: auto, bar or log"`
}

func (c *BuildCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	if c.Output != "" {
		cfg.Build.Output = c.Output
	}
	if c.Workers != nil {
		cfg.Build.Workers = c.Workers
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	reporter := newProgressReporter(c.Progress, logger, cfg.Level())
	builder := ranktable.NewBuilder(
		ranktable.WithWorkers(cfg.BuildWorkers()),
		ranktable.WithLogger(reporter.Logger()),
		ranktable.WithProgress(reporter.Report),
	)

	var table *ranktable.Table
	err = reporter.Wrap(cancel, func() error {
		var err error
		table, err = builder.Build(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}

	if cfg.VerifyAfterBuild() && !c.NoVerify {
		logger.Info("Verifying table")
		if err := table.Verify(); err != nil {
			return err
		}
	}

	err = fileutil.WriteAtomic(cfg.Build.Output, 0o644, func(w io.Writer) error {
		_, err := table.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", cfg.Build.Output, err)
	}

	logger.Info("Table written", "file", cfg.Build.Output, "hands", table.Len(), "elapsed", table.Elapsed())
	fmt.Fprintln(g.stdout(), successStyle.Render("✓"), "wrote", cfg.Build.Output)
	return nil
}
