// Package app wires the emulator components together.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/remote"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, quiet bool, name, version, commit, date string) {
	if quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// Settings merges the configuration file settings with the command line
// options, command line options take precedence.
func Settings(opts options.Program, cfg config.Config) (host.Options, int) {
	hostOptions := host.Options{
		TickRate: cfg.Emulator.TickRate,
		Seed:     cfg.Emulator.Seed,
		MaxTicks: opts.MaxTicks,
		Trace:    opts.Trace,
	}
	if opts.TickRate > 0 {
		hostOptions.TickRate = opts.TickRate
	}
	if opts.SeedSet {
		seed := opts.Seed
		hostOptions.Seed = &seed
	}

	scale := cfg.Display.Scale
	if opts.Scale > 0 {
		scale = opts.Scale
	}
	return hostOptions, scale
}

// Run loads the ROM and runs it with the selected frontend until the
// program is quit or the context is cancelled.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, cfg config.Config) error {
	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	hostOptions, scale := Settings(opts, cfg)
	buzzer, closeBuzzer := createBuzzer(logger, opts, cfg)
	defer closeBuzzer()

	machine, err := host.New(logger, rom, hostOptions, buzzer)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Listen != "" {
		startRemote(ctx, logger, machine, opts.Listen)
	}

	fg, bg := cfg.Display.Colors()
	shot := screenshot.Options{Foreground: fg, Background: bg, Scale: scale}

	var frontend func(ctx context.Context) error
	switch opts.Frontend {
	case options.FrontendWindow:
		w, err := window.New(logger, machine, window.Options{
			Title:         "retrochip8 - " + rom.Name,
			Name:          rom.Name,
			Scale:         scale,
			Foreground:    fg,
			Background:    bg,
			Keys:          cfg.Keys,
			ScreenshotDir: opts.Screenshots,
		})
		if err != nil {
			return fmt.Errorf("creating window: %w", err)
		}
		machine.AddPresenter(w)
		frontend = w.Run

	case options.FrontendTerminal:
		bindings, err := terminalBindings(cfg.Keys)
		if err != nil {
			return err
		}
		t := terminal.New(logger, os.Stdout, machine, terminal.Options{
			Bindings:      bindings,
			Name:          rom.Name,
			ScreenshotDir: opts.Screenshots,
			Screenshot:    shot,
		})
		machine.AddPresenter(t)
		frontend = func(ctx context.Context) error {
			return t.Run(ctx, os.Stdin)
		}
	}

	if frontend == nil {
		return runMachine(ctx, machine)
	}

	result := make(chan error, 1)
	go func() {
		result <- runMachine(ctx, machine)
		cancel()
	}()

	// frontends that own the main goroutine stop the machine when they return
	frontendErr := frontend(ctx)
	cancel()
	machineErr := <-result
	if frontendErr != nil {
		return frontendErr
	}
	return machineErr
}

// runMachine runs the machine, a cancelled context is not treated as error.
func runMachine(ctx context.Context, machine *host.Machine) error {
	err := machine.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func startRemote(ctx context.Context, logger *log.Logger, machine *host.Machine, address string) {
	hub := remote.New(logger, machine)
	machine.AddPresenter(hub)

	go hub.Run(ctx)
	go func() {
		if err := hub.ListenAndServe(ctx, address); err != nil {
			logger.Error("Remote viewer failed", log.Err(err))
		}
	}()
}

// createBuzzer returns the audio output and a function to close it. A
// silent buzzer is returned if audio is disabled or not available.
func createBuzzer(logger *log.Logger, opts options.Program, cfg config.Config) (host.Buzzer, func()) {
	if !cfg.Audio.Enabled || opts.Frontend == options.FrontendNone {
		return audio.Null{}, func() {}
	}

	player, err := audio.New(logger, cfg.Audio.Frequency, cfg.Audio.Volume)
	if err != nil {
		logger.Warn("Audio output is not available", log.Err(err))
		return audio.Null{}, func() {}
	}
	return player, func() {
		if err := player.Close(); err != nil {
			logger.Error("Closing audio output failed", log.Err(err))
		}
	}
}

func terminalBindings(keys config.Keys) (terminal.Bindings, error) {
	keypad, err := keys.Bindings()
	if err != nil {
		return terminal.Bindings{}, fmt.Errorf("resolving keypad bindings: %w", err)
	}
	return terminal.Bindings{
		Keypad:     keypad,
		Pause:      keys.Pause,
		Reset:      keys.Reset,
		Screenshot: keys.Screenshot,
		Quit:       keys.Quit,
	}, nil
}
