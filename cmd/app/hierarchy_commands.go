package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
)

func getHierarchyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-ou",
			Usage: "Create an organisational unit",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "OU name (unique)",
				},
				&cli.StringFlag{
					Name:    "description",
					Aliases: []string{"d"},
					Usage:   "Free text description",
				},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				hierarchy, err := container.HierarchyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateOU(
					ctx,
					hierarchy,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("description"),
					cmd.String("format"),
				)
			}),
		},
		{
			Name:  "create-division",
			Usage: "Create a division inside an organisational unit",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Division name (unique within the OU)",
				},
				&cli.StringFlag{
					Name:     "ou-id",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Parent OU ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "description",
					Aliases: []string{"d"},
					Usage:   "Free text description",
				},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				hierarchy, err := container.HierarchyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateDivision(
					ctx,
					hierarchy,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("ou-id"),
					cmd.String("description"),
					cmd.String("format"),
				)
			}),
		},
		{
			Name:  "seed",
			Usage: "Load demo OUs, divisions, users and credentials",
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				hierarchy, err := container.HierarchyUseCase()
				if err != nil {
					return err
				}
				auth, err := container.AuthUseCase()
				if err != nil {
					return err
				}
				store, err := container.UserStore()
				if err != nil {
					return err
				}
				credentials, err := container.CredentialUseCase()
				if err != nil {
					return err
				}

				return commands.RunSeed(
					ctx,
					hierarchy,
					auth,
					store,
					credentials,
					container.Logger(),
					commands.DefaultIO().Writer,
				)
			}),
		},
	}
}
