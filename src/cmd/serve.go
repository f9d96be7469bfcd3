package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budget-planner/src/api"
	"budget-planner/src/config"
	"budget-planner/src/db"
	store "budget-planner/src/db/sql"
	"budget-planner/src/events"
	"budget-planner/src/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var migrateFirst bool
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), migrateFirst)
		},
	}
	c.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return c
}

func serve(ctx context.Context, migrateFirst bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateFirst {
		if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	defer pool.Close()

	cache, err := db.NewDashboardCache(cfg.CacheMaxCost)
	if err != nil {
		return err
	}
	defer cache.Close()

	var publisher events.Publisher = events.Discard{}
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return err
		}
		defer client.Close()
		publisher = client
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing transaction events")
	}

	router := api.NewRouter(api.Deps{
		Store:          store.NewStore(pool),
		Cache:          cache,
		Publisher:      publisher,
		Logger:         log,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		DemoMode:       cfg.DemoMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Bool("demo", cfg.DemoMode).Msg("API server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
