package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/employee-directory/config"
	"github.com/employee-directory/database"
	"github.com/employee-directory/logger"
	"go.uber.org/zap"
)

// Copies users and employees from SOURCE_DATABASE_URL into
// TARGET_DATABASE_URL, creating the schema on the target first. The source
// is read as is. Rows whose id already exists on the target are skipped,
// so the copy can be re-run.
func main() {
	config.LoadEnv()

	log, err := logger.New("info", "console")
	if err != nil {
		panic(err)
	}

	err = run(context.Background(), log, os.Getenv("SOURCE_DATABASE_URL"), os.Getenv("TARGET_DATABASE_URL"))
	if err != nil {
		log.Error("Data migration failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, log *zap.Logger, sourceDBURL, targetDBURL string) error {
	log.Info("Starting database migration...")

	if sourceDBURL == "" || targetDBURL == "" {
		return errors.New("SOURCE_DATABASE_URL and TARGET_DATABASE_URL must both be set")
	}

	source := database.NewGateway(database.Options{
		DSN:         sourceDBURL,
		Schema:      config.DatabaseName,
		SkipMigrate: true,
	}, log.Named("source"))
	defer source.Close()

	// Opening the target handle also migrates its schema
	target := database.NewGateway(database.Options{DSN: targetDBURL, Schema: config.DatabaseName}, log.Named("target"))
	defer target.Close()

	sourceDB, err := source.Handle(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}
	targetDB, err := target.Handle(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to target database: %w", err)
	}

	if err := database.CopyData(ctx, sourceDB, targetDB, log); err != nil {
		return err
	}

	log.Info("Database migration completed successfully!")
	return nil
}
