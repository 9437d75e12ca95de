// Package cli implements workoutctl, an operator tool that reads and resets
// workout state straight from the database.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"workoutplanner/internal/config"
	"workoutplanner/internal/db"
	"workoutplanner/internal/repository"
	"workoutplanner/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "workoutctl",
	Short: "Inspect and manage workout planner accounts",
	Long: `workoutctl works directly on the server's SQLite database.

Examples:
  workoutctl calendar --email me@example.com --month 2024-01
  workoutctl day --email me@example.com --date 2024-01-01
  workoutctl profile --email me@example.com --imperial
  workoutctl reset --email me@example.com --yes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().String("email", "", "Account email")
	rootCmd.PersistentFlags().String("db", "", "Database path (defaults to DB_PATH)")
	rootCmd.PersistentFlags().String("driver", "", "SQLite driver: sqlite3 or sqlite (defaults to DB_DRIVER)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log storage warnings to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

type app struct {
	db       *sql.DB
	auth     *service.AuthService
	workouts *service.WorkoutService
}

func (a *app) Close() error {
	return a.db.Close()
}

// openApp wires the services the subcommands share from flags and environment.
func openApp(cmd *cobra.Command) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.DBPath = path
	}
	if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
		cfg.DBDriver = driver
	}

	database, err := db.OpenSQLite(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	var out io.Writer = io.Discard
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.LogLevel}))

	workoutRepo := repository.NewWorkoutRepository(database)
	return &app{
		db:       database,
		auth:     service.NewAuthService(repository.NewUserRepository(database), workoutRepo, cfg.JWTSecret, cfg.TokenTTL, logger),
		workouts: service.NewWorkoutService(workoutRepo, logger),
	}, nil
}

// userID resolves --email to an account id.
func (a *app) userID(ctx context.Context, cmd *cobra.Command) (string, error) {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		return "", fmt.Errorf("--email is required")
	}
	id, apiErr := a.auth.LookupUserID(ctx, email)
	if apiErr != nil {
		return "", apiErr
	}
	return id, nil
}
