package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviehub/backend/internal/config"
	"moviehub/backend/internal/httpapi"
	"moviehub/backend/internal/logging"
	"moviehub/backend/internal/omdb"
	"moviehub/backend/internal/store"
	"moviehub/backend/internal/store/memory"
	"moviehub/backend/internal/store/postgres"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	var st store.Store
	var closer func()

	if cfg.DatabaseURL != "" {
		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init postgres store")
		}
		st = pg
		closer = pg.Close
		logger.Info().Msg("using postgres store")
	} else {
		st = memory.NewStore()
		logger.Warn().Msg("no database configured, using memory store")
	}

	if closer != nil {
		defer closer()
	}

	if cfg.OMDbAPIKey == "" {
		logger.Warn().Msg("OMDB_API_KEY not set, movie endpoints will fail upstream")
	}
	movies, err := omdb.New(omdb.Config{
		APIKey:  cfg.OMDbAPIKey,
		BaseURL: cfg.OMDbBaseURL,
		Timeout: cfg.OMDbTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init omdb client")
	}

	srv := httpapi.NewServer(cfg, st, movies, logger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr()).Msg("moviehub backend listening")
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info().Msg("shutdown requested")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
