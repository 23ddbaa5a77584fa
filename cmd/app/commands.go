package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/internal/app"
	"github.com/allisson/credvault/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getHierarchyCommands()...)
	cmds = append(cmds, getUserCommands()...)
	return cmds
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// withContainer builds a container from the environment for a single command run
// and shuts it down afterwards.
func withContainer(fn func(ctx context.Context, cmd *cli.Command, container *app.Container) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		container := app.NewContainer(config.Load())
		defer func() { _ = container.Shutdown(ctx) }()
		return fn(ctx, cmd, container)
	}
}
