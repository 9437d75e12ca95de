package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"workoutplanner/internal/config"
	"workoutplanner/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.OpenSQLite(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "driver", cfg.DBDriver, "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("Migrations applied", "dir", cfg.MigrationsDir, "path", cfg.DBPath)
}
