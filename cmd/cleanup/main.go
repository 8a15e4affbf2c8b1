// Command cleanup removes cached activities that started longer ago than
// the configured retention period. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/family-planner/internal/adapter/postgres"
	"github.com/heartmarshall/family-planner/internal/app"
	"github.com/heartmarshall/family-planner/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := app.NewServices(cfg, pool, logger)

	deleted, err := svc.Activities.PurgeStale(ctx, time.Now())
	if err != nil {
		logger.Error("purge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("purge completed",
		slog.Int64("deleted", deleted),
		slog.Int("retention_days", cfg.Activities.RetentionDays),
	)
}
