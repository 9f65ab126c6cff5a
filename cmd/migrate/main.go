// Package main applies or rolls back the lead-messenger database schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/infrastructure/migrate"
)

const (
	defaultMigrationsPath = "./migrations"
	defaultMigrateSteps   = 1
)

func main() {
	var (
		migrationsPath string
		steps          int
		all            bool
	)

	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.IntVar(&steps, "steps", defaultMigrateSteps, "Number of migrations to roll back with down")
	flag.BoolVar(&all, "all", false, "Roll back every migration with down")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	args := flag.Args()
	if len(args) == 0 {
		logger.Fatal("Please specify a command: up, down, or version")
	}
	command := args[0]

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close database connection", zap.Error(closeErr))
		}
	}()

	runner := migrate.NewRunner(db, &migrate.Config{MigrationsPath: migrationsPath})

	var version uint
	switch command {
	case "up":
		version, err = runner.Up()
	case "down":
		if all {
			current, verr := runner.Version()
			if verr != nil {
				logger.Fatal("Failed to get version", zap.Error(verr))
			}
			steps = int(current)
		}
		if steps == 0 {
			logger.Info("Nothing to roll back")
			return
		}
		version, err = runner.Steps(-steps)
	case "version":
		version, err = runner.Version()
		if err != nil && !errors.Is(err, migrate.ErrDirty) {
			logger.Fatal("Failed to get version", zap.Error(err))
		}
		if errors.Is(err, migrate.ErrDirty) {
			fmt.Printf("Current version: %d (dirty)\n", version)
		} else {
			fmt.Printf("Current version: %d\n", version)
		}
		return
	default:
		logger.Fatal("Unknown command, use up, down, or version", zap.String("command", command))
	}

	if errors.Is(err, migrate.ErrDirty) {
		logger.Warn("Database is in dirty state", zap.Uint("version", version))
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
	logger.Info("Migration complete", zap.String("command", command), zap.Uint("version", version))
}
