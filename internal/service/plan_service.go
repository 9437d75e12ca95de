package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apperrors "workoutplanner/internal/errors"
	"workoutplanner/internal/llm"
	"workoutplanner/internal/model"
	"workoutplanner/internal/planner"
	"workoutplanner/internal/workout"
)

const WelcomeMessage = "Welcome in — your plan is ready. Head to the calendar to schedule your week, or ask me to adjust anything."

type PlanService struct {
	workouts  *WorkoutService
	generator planner.Generator
	logger    *slog.Logger
}

func NewPlanService(workouts *WorkoutService, generator planner.Generator, logger *slog.Logger) *PlanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanService{
		workouts:  workouts,
		generator: generator,
		logger:    logger,
	}
}

// Generate stores the submitted form, asks the generator for a plan and, on
// success, installs it with a default weekday spread and a fresh transcript.
func (s *PlanService) Generate(ctx context.Context, userID string, baseVersion int, form model.FormData) (*StateView, *apperrors.APIError) {
	if _, apiErr := s.workouts.UpdateProfile(ctx, userID, baseVersion, form); apiErr != nil {
		return nil, apiErr
	}

	plan, err := s.generator.Generate(ctx, form)
	if err != nil {
		s.logger.Warn("plan generation failed", "user_id", userID, "error", err)
		return nil, modelError(err)
	}

	view, apiErr := s.workouts.mutate(ctx, userID, 0, func(state *workout.State) *apperrors.APIError {
		state.SetPlan(*plan)
		state.ResetTrainingWeekdaysToDefault(plan.TrainingDaysPerWeek)
		state.SetChat([]model.ChatMessage{{Role: model.RoleAssistant, Content: WelcomeMessage}})
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	s.logger.Info("plan generated", "user_id", userID, "days", len(plan.RecommendedSchedule))
	return view, nil
}

// modelError maps planner and model client failures onto API errors.
func modelError(err error) *apperrors.APIError {
	var intakeErr *planner.IntakeError
	if errors.As(err, &intakeErr) {
		return apperrors.BadRequest("invalid_intake", intakeErr.Message)
	}

	if errors.Is(err, llm.ErrMissingAPIKey) {
		return apperrors.New(http.StatusInternalServerError, "missing_api_key", "Missing OPENAI_API_KEY. Add it to your environment and restart the server.")
	}

	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		return apperrors.BadGateway("upstream_error", upstream.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.New(http.StatusGatewayTimeout, "upstream_timeout", "the model did not respond in time")
	}

	return apperrors.BadGateway("upstream_error", err.Error())
}
