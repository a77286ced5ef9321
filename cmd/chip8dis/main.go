// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/fileprocessor"
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

	opts, disasmOptions, err := cli.ParseDisasmFlags(os.Args[1:])
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet, false)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts.Quiet, "chip8dis", version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid arguments", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet, false)
	app.PrintBanner(logger, opts.Quiet, "chip8dis", version, commit, date)

	if err := fileprocessor.ProcessFile(ctx, logger, opts, disasmOptions); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}
