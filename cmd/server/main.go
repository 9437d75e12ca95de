package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"workoutplanner/internal/coach"
	"workoutplanner/internal/config"
	"workoutplanner/internal/db"
	"workoutplanner/internal/handler"
	"workoutplanner/internal/llm"
	"workoutplanner/internal/planner"
	"workoutplanner/internal/repository"
	"workoutplanner/internal/router"
	"workoutplanner/internal/service"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	database, err := db.OpenSQLite(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "driver", cfg.DBDriver, "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "driver", cfg.DBDriver, "path", cfg.DBPath)

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set; plan generation and coach chat will fail")
	}
	model := llm.NewClient(llm.Options{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.LLMTimeout,
	})

	userRepo := repository.NewUserRepository(database)
	workoutRepo := repository.NewWorkoutRepository(database)

	authService := service.NewAuthService(userRepo, workoutRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	workoutService := service.NewWorkoutService(workoutRepo, logger)
	planService := service.NewPlanService(workoutService, planner.NewLLMGenerator(model), logger)
	coachService := service.NewCoachService(workoutService, coach.NewLLMCoach(model), cfg.CoachHistoryLimit, logger)

	engine := router.New(authService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Workout:  handler.NewWorkoutHandler(workoutService),
		Calendar: handler.NewCalendarHandler(workoutService),
		Plan:     handler.NewPlanHandler(planService),
		Coach:    handler.NewCoachHandler(coachService),
		Exercise: handler.NewExerciseHandler(),
	}, cfg.CORSOrigins, logger)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     engine,
		ReadTimeout: 30 * time.Second,
		// Plan generation waits on the model.
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr, "model", cfg.OpenAIModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
