// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func getCommands(version string) []*cli.Command {
	cmds := getSystemCommands(version)
	cmds = append(cmds, getPassphraseCommands()...)
	return cmds
}

func main() {
	cmd := &cli.Command{
		Name:     "app",
		Usage:    "Person records with per-record field encryption",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
