// Package cli handles command line interface logic
package cli

import (
	"fmt"

	"github.com/retroenv/memboard/internal/format"
	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/memboard/internal/options"
	"github.com/retroenv/memboard/internal/scan"
	"github.com/urfave/cli/v3"
)

// NewApp creates the command tree of the utility.
func NewApp(version string) *cli.Command {
	return &cli.Command{
		Name:    "memboard",
		Usage:   "configuration and transfer utility for the memboard memory emulation board",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "quiet mode",
			},
		},
		Commands: []*cli.Command{
			convertCommand(),
			buildCommand(),
			flashCommand(),
			configCommand(),
			inspectCommand(),
		},
	}
}

// baseOptions collects the flags shared by all commands.
func baseOptions(cmd *cli.Command) options.Program {
	return options.Program{
		Debug: cmd.Bool("debug"),
		Quiet: cmd.Bool("quiet"),
	}
}

// rangeOptions parses the optional base and size override flags.
func rangeOptions(cmd *cli.Command, opts *options.Program) error {
	if value := cmd.String("base"); value != "" {
		base, err := scan.Uint(value, 0xffff)
		if err != nil {
			return fmt.Errorf("invalid base address: %w", err)
		}
		opts.Base = uint16(base)
		opts.HasBase = true
	}
	if value := cmd.String("size"); value != "" {
		size, err := scan.Uint(value, image.AddressSpace)
		if err != nil {
			return fmt.Errorf("invalid size: %w", err)
		}
		opts.Size = uint32(size)
		opts.HasSize = true
	}
	return nil
}

// validateFormats checks the given format names.
func validateFormats(names ...string) error {
	for _, name := range names {
		if err := format.Validate(name); err != nil {
			return err
		}
	}
	return nil
}
