// Package main provides the CLI entrypoint for the antivirus dashboard
// client. It wires subcommands (scan, status, results, history, stats,
// quarantine, health), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avdash/internal/cache"
	"avdash/internal/config"
	"avdash/internal/dashboard"
	"avdash/internal/poller"
	"avdash/pkg/avapi/rest"
	"avdash/pkg/logger"
)

// buildController assembles the REST client, optional history cache and the
// dashboard controller from configuration. The returned cleanup releases the
// cache handle.
func buildController(ctx context.Context, cfg *config.Config) (*dashboard.Controller, func(), error) {
	client := rest.New(&http.Client{}, rest.Options{
		BaseURL:        cfg.API.BaseURL,
		RequestTimeout: cfg.API.RequestTimeout,
		MaxRPS:         cfg.API.MaxRPS,
	})

	var history *cache.History
	cleanup := func() {}
	if cfg.Cache.Path != "" {
		var err error
		history, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() {
			if err := history.Close(); err != nil {
				logger.Warn(ctx, "could not close history cache", zap.Error(err))
			}
		}
	}

	controller := dashboard.New(client, dashboard.NewStore(), history, dashboard.Options{
		Poll: poller.Options{
			Interval:           cfg.Poller.Interval,
			ResultsPageSize:    cfg.Poller.ResultsPageSize,
			AbortOnStatusError: cfg.Poller.AbortOnStatusError,
		},
		HistoryLimit: cfg.HistoryLimit,
	})

	return controller, cleanup, nil
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "avdash",
		Short: "Client for the antivirus scan service",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		scanCommand(cfg),
		statusCommand(cfg),
		resultsCommand(cfg),
		historyCommand(cfg),
		statsCommand(cfg),
		quarantineCommand(cfg),
		healthCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync(ctx)
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
