package cli

import (
	"context"

	"github.com/retroenv/memboard/internal/config"
	"github.com/retroenv/memboard/internal/fileprocessor"
	"github.com/retroenv/memboard/internal/format"
	"github.com/urfave/cli/v3"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "convert a memory image file between formats",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "input image file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "from",
				Usage:    "input format: " + format.Names(),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "output format: " + format.Names(),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: "override the output base address",
			},
			&cli.StringFlag{
				Name:  "size",
				Usage: "override the output size in bytes",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts := baseOptions(cmd)
			opts.Input = cmd.String("input")
			opts.Output = cmd.String("output")
			opts.From = cmd.String("from")
			opts.To = cmd.String("to")
			if err := validateFormats(opts.From, opts.To); err != nil {
				return err
			}
			if err := rangeOptions(cmd, &opts); err != nil {
				return err
			}

			logger := config.CreateLogger(opts.Debug, opts.Quiet)
			return fileprocessor.Convert(logger, opts)
		},
	}
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "build a memory image from a memory map document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "map",
				Aliases:  []string{"m"},
				Usage:    "memory map document",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "output format: " + format.Names(),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: "override the output base address",
			},
			&cli.StringFlag{
				Name:  "size",
				Usage: "override the output size in bytes",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts := baseOptions(cmd)
			opts.MapFile = cmd.String("map")
			opts.Output = cmd.String("output")
			opts.To = cmd.String("to")
			if err := validateFormats(opts.To); err != nil {
				return err
			}
			if err := rangeOptions(cmd, &opts); err != nil {
				return err
			}

			logger := config.CreateLogger(opts.Debug, opts.Quiet)
			return fileprocessor.BuildMap(logger, opts)
		},
	}
}

func flashCommand() *cli.Command {
	return &cli.Command{
		Name:  "flash",
		Usage: "write a memory image as a flashable block stream",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "input image file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "from",
				Usage:    "input format: " + format.Names(),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: "override the flash destination base address",
			},
			&cli.StringFlag{
				Name:  "size",
				Usage: "override the flashed size in bytes",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts := baseOptions(cmd)
			opts.Input = cmd.String("input")
			opts.Output = cmd.String("output")
			opts.From = cmd.String("from")
			if err := validateFormats(opts.From); err != nil {
				return err
			}
			if err := rangeOptions(cmd, &opts); err != nil {
				return err
			}

			logger := config.CreateLogger(opts.Debug, opts.Quiet)
			return fileprocessor.Flash(logger, opts)
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "parse and validate a board configuration document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "board configuration document",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "dump the parsed configuration as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts := baseOptions(cmd)
			opts.ConfigFile = cmd.String("file")
			opts.JSON = cmd.Bool("json")

			logger := config.CreateLogger(opts.Debug, opts.Quiet)
			return fileprocessor.ShowConfig(logger, opts)
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "decode a memory image file and report its blocks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "input image file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "from",
				Usage:    "input format: " + format.Names(),
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "dump the block list as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts := baseOptions(cmd)
			opts.Input = cmd.String("input")
			opts.From = cmd.String("from")
			opts.JSON = cmd.Bool("json")
			if err := validateFormats(opts.From); err != nil {
				return err
			}

			logger := config.CreateLogger(opts.Debug, opts.Quiet)
			return fileprocessor.Inspect(logger, opts)
		},
	}
}
