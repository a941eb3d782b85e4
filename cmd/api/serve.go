package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pmboard/taskmanager-api/internal/api"
	"github.com/pmboard/taskmanager-api/internal/api/handler"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
	"github.com/pmboard/taskmanager-api/internal/core/service"
	"github.com/pmboard/taskmanager-api/internal/infrastructure/db/mongo"
	"github.com/pmboard/taskmanager-api/internal/infrastructure/db/redis"
)

const (
	shutdownTimeout = 10 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve wires the stores, services and router, then blocks until SIGINT or
// SIGTERM and shuts down gracefully.
func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := a.connectMongo(ctx)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			a.log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongo.Ping(ctx, db) },
	}

	var cache ports.ProjectListCache
	if a.cfg.Redis.Enabled {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: a.cfg.Redis.Addr, DB: a.cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer closeRedis(a, rdb)
		cache = redis.NewProjectListCache(rdb, a.cfg.Redis.CacheTTL)
		checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, rdb) }
		a.log.Info().Str("addr", a.cfg.Redis.Addr).Msg("project list cache enabled")
	}

	userRepo := mongo.NewUserRepository(db)
	projectRepo := mongo.NewProjectRepository(db)
	taskRepo := mongo.NewTaskRepository(db)

	tokens := service.NewTokenService(a.cfg.Auth.JWTSecret, time.Duration(a.cfg.Auth.JWTExpires))
	hasher := service.NewBcryptHasher(a.cfg.Auth.BcryptCost)

	e := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(userRepo, hasher, tokens, a.log),
		Projects:    service.NewProjectService(projectRepo, taskRepo, cache, a.log),
		Tasks:       service.NewTaskService(taskRepo, projectRepo, a.log),
		Tokens:      tokens,
		Checks:      checks,
		CORSOrigins: a.cfg.CORSOrigins,
		Logger:      a.log,
	})

	server := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      e,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", server.Addr).Str("env", a.cfg.Env).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(sctx)
}

func closeRedis(a *app, rdb *goredis.Client) {
	if err := rdb.Close(); err != nil {
		a.log.Error().Err(err).Msg("redis close failed")
	}
}
