// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

type verbosity int

const (
	verbosityDefault verbosity = iota
	verbosityDebug
	verbosityQuiet
)

// selectVerbosity resolves the logging flags. Debug output wins over quiet
// mode, and instruction tracing keeps info messages visible since the
// trace is logged at info level.
func selectVerbosity(debug, quiet, trace bool) verbosity {
	switch {
	case debug:
		return verbosityDebug
	case quiet && !trace:
		return verbosityQuiet
	default:
		return verbosityDefault
	}
}

// CreateLogger creates a logger for the given command line flags.
func CreateLogger(debug, quiet, trace bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch selectVerbosity(debug, quiet, trace) {
	case verbosityDebug:
		cfg.Level = log.DebugLevel
	case verbosityQuiet:
		cfg.Level = log.ErrorLevel
	case verbosityDefault:
	}
	return log.NewWithConfig(cfg)
}
