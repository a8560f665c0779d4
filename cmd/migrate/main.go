// Command migrate applies or rolls back database migrations outside the
// server startup path, for deploy pipelines and local development.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/fintrack/fintrack/backend/go-services/internal/config"
	"github.com/fintrack/fintrack/backend/go-services/internal/database"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	down := flag.Bool("down", false, "roll back the most recent migration instead of applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := database.ConnectPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.ConnectTimeout, cfg.Postgres.MaxOpenConns)
	if err != nil {
		logger.Fatalf("failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	if *down {
		if err := database.MigrateDown(db); err != nil {
			logger.Fatalf("rollback failed: %v", err)
		}
		logger.Infof("rolled back one migration")
		return
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("migrations failed: %v", err)
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		logger.Fatalf("failed to read migration version: %v", err)
	}
	logger.Infof("migrations applied, schema version %d", version)
}
