// Command seed-users registers household members and partner links from a
// YAML file. Running it again with the same file changes nothing.
//
// Flags:
//
//	--file     path to the household YAML file (default: ./household.yaml)
//	--dry-run  report what would change without writing to DB
//	--config   config YAML path (default: $CONFIG_PATH or ./config.yaml)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/family-planner/internal/adapter/postgres"
	"github.com/heartmarshall/family-planner/internal/app"
	"github.com/heartmarshall/family-planner/internal/app/seeder"
	"github.com/heartmarshall/family-planner/internal/config"
)

func main() {
	fileFlag := flag.String("file", "./household.yaml", "path to household YAML file")
	dryRunFlag := flag.Bool("dry-run", false, "report changes without writing to DB")
	configFlag := flag.String("config", "", "path to config YAML (default: $CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	cfg, err := config.LoadFile(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	household, err := seeder.LoadHousehold(*fileFlag)
	if err != nil {
		logger.Error("load household", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := app.NewServices(cfg, pool, logger)

	pipeline := seeder.NewPipeline(logger, svc.Users, *dryRunFlag)
	if err := pipeline.Run(ctx, household); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if pipeline.HasErrors() {
		logger.Error("seed finished with errors")
		os.Exit(1)
	}

	logger.Info("seed complete",
		slog.Int("users", len(household.Users)),
		slog.Int("partners", len(household.Partners)),
		slog.Bool("dry_run", *dryRunFlag))
}
