// Package main implements the main entry point for the CHIP-8 emulator
package main

import (
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet, opts.Trace)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts.Quiet, "retrochip8", version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid arguments", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet, opts.Trace)
	app.PrintBanner(logger, opts.Quiet, "retrochip8", version, commit, date)

	cfg := config.Default()
	if opts.Config != "" {
		cfg, err = config.Load(opts.Config)
		if err != nil {
			logger.Fatal("Loading configuration failed", log.Err(err))
		}
	}

	if err := app.Run(ctx, logger, opts, cfg); err != nil {
		logger.Fatal("Running program failed", log.Err(err))
	}
}
