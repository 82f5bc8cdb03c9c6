package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"notes-assistant/internal/adapters/telegram"
	"notes-assistant/internal/config"
	"notes-assistant/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("bot", cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.BotToken == "" {
		logger.Error("BOT_TOKEN is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := telegram.NewAPIClient(cfg.APIBaseURL, nil)
	bot, err := telegram.NewBot(cfg.BotToken, client, logger)
	if err != nil {
		logger.Error("bot init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
