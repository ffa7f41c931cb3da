package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Build    BuildCmd         `cmd:"" help:"Generate the rank table and write it to a file"`
	Classify ClassifyCmd      `cmd:"" help:"Classify a five-card hand"`
	Score    ScoreCmd         `cmd:"" help:"Print the rank score of a five-card hand"`
	Deal     DealCmd          `cmd:"" help:"Deal random hands and rank them"`
	Stats    StatsCmd         `cmd:"" help:"Show per-category counts and score ranges"`
	Verify   VerifyCmd        `cmd:"" help:"Check a table file against every ranking invariant"`
	Serve    ServeCmd         `cmd:"" help:"Serve hand scoring over websockets"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handrank"),
		kong.Description("Five-card poker hand classification and rank table generation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
