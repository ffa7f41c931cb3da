package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/handrank/internal/config"
	"github.com/lox/handrank/poker"
	"github.com/lox/handrank/ranktable"
)

// ScoreCmd prints a hand's rank score.
type ScoreCmd struct {
	Cards  []string `arg:"" help:"Five cards, e.g. As Ks Qs Js Ts"`
	Method string   `default:"ladder" enum:"index,ladder" help:"Scoring method: index (full table lookup) or ladder (strength search)"`
	Table  string   `short:"t" help:"Table file for the index method; built in memory when empty"`
}

func (c *ScoreCmd) Run(g *Globals) error {
	h, err := poker.ParseHand(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	s, err := poker.Classify(h)
	if err != nil {
		return err
	}

	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(logger)
	defer cancel()

	scorer, err := loadScorer(ctx, c.Method, c.Table, cfg, logger)
	if err != nil {
		return err
	}
	score, err := scorer.Score(h)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.stdout(), "%s  %s %s  %s\n",
		renderHand(h),
		handTypeStyle.Render(s.Type.String()), s.Key,
		scoreStyle.Render(fmt.Sprint(score)))
	return nil
}

// loadScorer returns a ladder, or an index over a table read from path or
// built in memory.
func loadScorer(ctx context.Context, method, path string, cfg *config.Config, logger *log.Logger) (ranktable.Scorer, error) {
	if method == "ladder" {
		ladder, err := ranktable.NewLadder()
		if err != nil {
			return nil, err
		}
		return ladder, nil
	}

	table, err := loadTable(ctx, path, cfg, logger)
	if err != nil {
		return nil, err
	}
	idx, err := ranktable.NewIndex(table,
		ranktable.WithLoadFactor(cfg.Index.LoadFactor),
		ranktable.WithIndexLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// loadTable reads and verifies path, or builds a fresh table when path is empty.
func loadTable(ctx context.Context, path string, cfg *config.Config, logger *log.Logger) (*ranktable.Table, error) {
	if path == "" {
		logger.Info("Building table in memory", "workers", cfg.BuildWorkers())
		return ranktable.NewBuilder(
			ranktable.WithWorkers(cfg.BuildWorkers()),
			ranktable.WithLogger(logger),
		).Build(ctx)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	logger.Info("Reading table", "file", path)
	table, err := ranktable.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}
