// Package main implements the entry point of the memboard configuration and transfer utility
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/memboard/internal/cli"
	"github.com/retroenv/memboard/internal/config"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	root := cli.NewApp(buildinfo.Version(version, commit, date))
	if err := root.Run(ctx, os.Args); err != nil {
		logger := config.CreateLogger(false, false)
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Fatal(err.Error())
	}
}
