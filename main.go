package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"reserve-assistant/config"
	"reserve-assistant/di"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "TOML configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString(cfg.Log.Level)

	ctx := context.Background()
	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("[MAIN] Failed to initialize container")
	}

	if container.SessionJanitor != nil {
		if err := container.SessionJanitor.Start(cfg.Redis.SweepSchedule); err != nil {
			logger.Fatal().Err(err).Msg("[MAIN] Failed to start session janitor")
		}
		defer container.SessionJanitor.Stop()
	}

	logger.Info().Str("addr", cfg.Server.Addr).Bool("model_enabled", cfg.ModelEnabled()).Msg("[MAIN] Starting server")
	if err := container.ReserveAssistantHttpServer.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("[MAIN] Server stopped with error")
	}
}
