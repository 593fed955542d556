// Command monitor-service polls a job board for configured searches and
// sends a Telegram alert for every listing it has not seen before.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"jobwatch/monitor-service/internal/config"
	"jobwatch/monitor-service/internal/monitor"
	"jobwatch/monitor-service/internal/notify"
	"jobwatch/monitor-service/internal/registry"
	"jobwatch/monitor-service/internal/scheduler"
	"jobwatch/monitor-service/internal/search"
	"jobwatch/monitor-service/internal/source"
	"jobwatch/monitor-service/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting job monitor",
		slog.String("store_url", cfg.StoreURL),
		slog.Int("check_interval_s", cfg.CheckInterval),
		slog.String("log_format", cfg.LogFormat),
		slog.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults, err := search.ParseList(cfg.DefaultSearches)
	if err != nil {
		return fmt.Errorf("parse default searches: %w", err)
	}

	st := store.Open(ctx, cfg.StoreURL, logger)

	reg := registry.New(st, logger)
	reg.Init(ctx, defaults)

	notifier, err := notify.NewTelegram(ctx, cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	mon := monitor.New(reg, st, source.NewPracujFetcher(), notifier, logger, monitor.DefaultSearchPause)

	sched := scheduler.New(mon, cfg.CheckInterval, logger)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	logger.Info("received shutdown signal")

	sched.Stop()
	logger.Info("monitor stopped")
	return nil
}
