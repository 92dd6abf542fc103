// Package main is the entry point for the savings-goal tracker.
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

	"gitlab.com/mthiha/goaltrack/internal/config"
	"gitlab.com/mthiha/goaltrack/internal/exchange"
	"gitlab.com/mthiha/goaltrack/internal/ledger"
	"gitlab.com/mthiha/goaltrack/internal/logger"
	"gitlab.com/mthiha/goaltrack/internal/server"
	"gitlab.com/mthiha/goaltrack/internal/storage"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("goaltrack %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	if cfg.LogFormat == "json" {
		logger.SetJSON()
	}
	logger.SetLevel(cfg.LogLevel)

	store := storage.NewBoltStore(cfg.StorePath())
	defer func() { _ = store.Close() }()

	var source exchange.Source
	if cfg.Offline() {
		logger.Log.Warn().Msg("No rate API key configured, using offline fallback rate")
		source = exchange.OfflineSource{}
	} else {
		source = exchange.NewAPIClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateAPIKey, 5*time.Second)
	}

	handler := server.New(
		ledger.New(store),
		exchange.NewRateCache(store, source, cfg.RateCacheTTL),
		cfg,
	)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()

	logger.Log.Info().Str("addr", cfg.ListenAddr).Str("store", cfg.StorePath()).Msg("Goal tracker listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal().Err(err).Msg("Server failed")
	}
	<-ctx.Done()
}
