// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

// Package main is the entry point for the Filmorate server.
//
// Filmorate is a film catalog and social rating service: users register,
// befriend each other and rate films with likes; the API answers
// popularity and common-friend queries over those relations.
//
// The server initializes components in the following order:
//
//  1. Configuration: koanf v2 layered sources (defaults, optional YAML
//     file, environment variables)
//  2. Logging: zerolog, structured JSON or console output
//  3. Storage: in-memory store or DuckDB, selected by STORAGE_BACKEND
//  4. Services: film and user services on top of the storage interface
//  5. HTTP server: Chi router under a suture supervision tree
//
// Graceful shutdown on SIGINT and SIGTERM drains in-flight requests
// within SHUTDOWN_TIMEOUT before closing the storage backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/filmorate/filmorate/internal/api"
	"github.com/filmorate/filmorate/internal/config"
	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/service"
	"github.com/filmorate/filmorate/internal/storage"
	"github.com/filmorate/filmorate/internal/storage/duckdb"
	"github.com/filmorate/filmorate/internal/storage/memory"
	"github.com/filmorate/filmorate/internal/supervisor"
	"github.com/filmorate/filmorate/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, the default logger applies.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("backend", cfg.Storage.Backend).
		Msg("Starting Filmorate")

	store, err := openStorage(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	handler := api.NewHandler(
		service.NewFilmService(store),
		service.NewUserService(store),
		store,
		cfg.API.DefaultPopularCount,
	)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", addr).Msg("HTTP server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree terminated with error")
		os.Exit(1)
	}

	logging.Info().Msg("Filmorate stopped")
}

// openStorage selects the storage backend from configuration.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "duckdb":
		db, err := duckdb.Open(duckdb.Config{
			Path:      cfg.Storage.Path,
			MaxMemory: cfg.Storage.MaxMemory,
			Threads:   cfg.Storage.Threads,
		})
		if err != nil {
			return nil, fmt.Errorf("opening duckdb at %s: %w", cfg.Storage.Path, err)
		}
		return storage.Instrument(db, "duckdb"), nil
	case "memory":
		return storage.Instrument(memory.New(), "memory"), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
