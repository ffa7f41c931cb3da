package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/handrank/internal/server"
)

// ServeCmd runs the websocket scoring service.
type ServeCmd struct {
	Addr   string `help:"Listen address (overrides config)"`
	Method string `default:"index" enum:"index,ladder" help:"Scoring method backing the service"`
	Table  string `short:"t" help:"Table file for the index method; built in memory when empty"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	readTimeout, err := cfg.ReadTimeout()
	if err != nil {
		return err
	}
	writeTimeout, err := cfg.WriteTimeout()
	if err != nil {
		return err
	}
	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	scorer, err := loadScorer(ctx, c.Method, c.Table, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(addr, scorer,
		server.WithClock(quartz.NewReal()),
		server.WithTimeouts(readTimeout, writeTimeout),
		server.WithLogger(logger),
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}
