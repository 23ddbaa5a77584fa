package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-role",
			Usage: "Set the role of an existing user (normal, management or admin)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Username of the user to change",
				},
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "New role: normal, management or admin",
				},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				store, err := container.UserStore()
				if err != nil {
					return err
				}
				revocation, err := container.RevocationRepository()
				if err != nil {
					return err
				}

				return commands.RunSetRole(
					ctx,
					store,
					revocation,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("username"),
					cmd.String("role"),
					cmd.String("format"),
				)
			}),
		},
	}
}
