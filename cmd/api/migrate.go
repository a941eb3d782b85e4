package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pmboard/taskmanager-api/internal/infrastructure/db/mongo"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			client, db, err := a.connectMongo(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			if err := mongo.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			a.log.Info().Msg("indexes ensured")
			return nil
		},
	}
}
