// Package config handles the runtime setup shared by all commands
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the command logger honoring the debug and quiet flags
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
