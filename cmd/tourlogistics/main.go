package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"tourlogistics/internal/app/logistics"
	"tourlogistics/internal/clock"
	"tourlogistics/internal/config"
	"tourlogistics/internal/jobs"
	"tourlogistics/internal/logging"
	"tourlogistics/internal/maps"
	"tourlogistics/internal/store"
	"tourlogistics/migrations"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.SetGlobalLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return err
	}

	dataStore := store.New(db)
	clk := clock.NewSystem()
	mapsClient := maps.NewClient(maps.Config{
		APIKey:         cfg.Maps.APIKey,
		RoutesTimeout:  cfg.Maps.RoutesTimeout,
		GeocodeTimeout: cfg.Maps.GeocodeTimeout,
	})
	if cfg.Maps.APIKey == "" {
		logger.Warn().Msg("GOOGLE_MAPS_API_KEY not set, routing and geocoding will fail")
	}

	logisticsSvc := logistics.New(dataStore, mapsClient, clk)

	if cfg.DemoSeed {
		if err := bootstrapDemoTour(ctx, dataStore, clk); err != nil {
			return err
		}
	}

	handler, err := newHTTPHandler(cfg, dataStore, mapsClient, logisticsSvc)
	if err != nil {
		return err
	}

	if cfg.Jobs.RefreshCron != "" {
		refresher := jobs.NewRefresher(dataStore, logisticsSvc, clk, cfg.Jobs.RefreshDays, logger)
		runner, err := refresher.Schedule(cfg.Jobs.RefreshCron)
		if err != nil {
			return err
		}
		runner.Start()
		defer func() { <-runner.Stop().Done() }()
		logger.Info().Str("schedule", cfg.Jobs.RefreshCron).Int("days", cfg.Jobs.RefreshDays).Msg("logistics refresh scheduled")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
