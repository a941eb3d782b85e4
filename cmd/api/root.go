package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/pmboard/taskmanager-api/internal/infrastructure/db/mongo"
	"github.com/pmboard/taskmanager-api/internal/pkg/config"
	"github.com/pmboard/taskmanager-api/pkg/logger"
)

const serviceName = "taskmanager-api"

// app holds what every subcommand needs once PersistentPreRunE has run.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:           "taskmanager-api",
		Short:         "Task manager REST API",
		Long:          "Task manager REST API. Runs the HTTP server when called without a subcommand.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: serviceName,
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (trace, debug, info, warn, error)")

	root.AddCommand(newServeCmd(a), newMigrateCmd(a))
	return root
}

// connectMongo opens the client and returns the database handle.
func (a *app) connectMongo(ctx context.Context) (*mongodriver.Client, *mongodriver.Database, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      a.cfg.Mongo.URI,
		Database: a.cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, err
	}
	a.log.Info().Str("database", a.cfg.Mongo.Database).Msg("connected to MongoDB")
	return client, db, nil
}
