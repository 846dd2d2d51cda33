package main

import (
	"context"
	"os"

	"log/slog"

	"github.com/kapu/lastfm-discord-bot-go/internal/app"
	"github.com/kapu/lastfm-discord-bot-go/internal/config"
	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		util.NewLoggerWithLevel("error").Error("config_load_failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := util.EnableFileLoggingWithLevel(util.LogConfig{
		Dir:        cfg.Logging.Dir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}, "bot.log", cfg.Logging.Level)
	if err != nil {
		util.NewLoggerWithLevel("error").Error("logger_init_failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting",
		slog.String("version", cfg.Version),
		slog.Int("port", cfg.Server.Port),
	)

	buildCtx, cancel := context.WithTimeout(context.Background(), constants.AppTimeout.Build)
	container, err := app.Build(buildCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("build_failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := container.Run(context.Background()); err != nil {
		logger.Error("run_failed", slog.Any("error", err))
		os.Exit(1)
	}
}
