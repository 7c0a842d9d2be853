// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/trickortreat/internal/api"
	"github.com/tomtom215/trickortreat/internal/auth"
	"github.com/tomtom215/trickortreat/internal/authz"
	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/database"
	"github.com/tomtom215/trickortreat/internal/geocode"
	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/metrics"
	"github.com/tomtom215/trickortreat/internal/photos"
	"github.com/tomtom215/trickortreat/internal/supervisor"
	"github.com/tomtom215/trickortreat/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_driver", cfg.Database.Driver).
		Str("photo_backend", cfg.Photos.Backend).
		Msg("Starting treat provider directory")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	store, err := photos.New(&cfg.Photos)
	if err != nil {
		return fmt.Errorf("open photo store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing photo store")
		}
	}()

	var geocoder geocode.Geocoder = geocode.NewMapboxClient(&cfg.Geocoder)
	if cfg.Geocoder.AccessToken == "" {
		logging.Warn().Msg("MAPBOX_ACCESS_TOKEN is not set; address lookups will fail")
	}
	if cfg.Geocoder.CacheSize > 0 {
		geocoder = geocode.NewCachingGeocoder(geocoder, cfg.Geocoder.CacheSize, cfg.Geocoder.CacheTTL)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize JWT manager: %w", err)
	}

	enforcer, err := authz.NewEnforcer(&cfg.Security.Casbin)
	if err != nil {
		return fmt.Errorf("initialize authorization: %w", err)
	}

	handler := api.NewHandler(db, geocoder, store, cfg, jwtManager)
	handler.SetVersion(version)
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	router := api.NewRouter(handler,
		api.NewChiMiddlewareFromConfig(&cfg.Security),
		auth.NewMiddleware(jwtManager),
		authz.NewMiddleware(enforcer))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if collector, ok := store.(services.GarbageCollector); ok && cfg.Photos.GCInterval > 0 {
		tree.AddStorageService(services.NewPhotoGCService(collector, cfg.Photos.GCInterval))
		logging.Info().Dur("interval", cfg.Photos.GCInterval).Msg("Photo store GC added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervisor tree: %w", err)
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
