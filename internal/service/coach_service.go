package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"workoutplanner/internal/coach"
	apperrors "workoutplanner/internal/errors"
	"workoutplanner/internal/model"
	"workoutplanner/internal/workout"
)

type CoachService struct {
	workouts     *WorkoutService
	coach        coach.Coach
	historyLimit int
	logger       *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCoachService(workouts *WorkoutService, c coach.Coach, historyLimit int, logger *slog.Logger) *CoachService {
	if logger == nil {
		logger = slog.Default()
	}
	if historyLimit <= 0 {
		historyLimit = coach.DefaultHistoryLimit
	}
	return &CoachService{
		workouts:     workouts,
		coach:        c,
		historyLimit: historyLimit,
		logger:       logger,
		inFlight:     make(map[string]struct{}),
	}
}

// Chat records the user's message, asks the coach and applies its reply. Only
// one exchange per user runs at a time.
func (s *CoachService) Chat(ctx context.Context, userID string, baseVersion int, message string) (*StateView, *apperrors.APIError) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, apperrors.BadRequest("invalid_message", "message is required")
	}

	if !s.acquire(userID) {
		return nil, apperrors.Conflict("coach_busy", "the coach is still answering your previous message", nil)
	}
	defer s.release(userID)

	var req coach.Request
	_, apiErr := s.workouts.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		if state.Plan == nil {
			return apperrors.Conflict("plan_required", "generate a plan before chatting with the coach", nil)
		}
		state.AppendChat(model.ChatMessage{Role: model.RoleUser, Content: text})
		req = coach.BuildRequest(state, s.historyLimit)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	result, err := s.coach.Reply(ctx, req)
	if err != nil {
		s.logger.Warn("coach reply failed", "user_id", userID, "error", err)
		return nil, s.apologize(userID, err)
	}

	view, apiErr := s.workouts.mutate(ctx, userID, 0, func(state *workout.State) *apperrors.APIError {
		coach.Apply(state, result)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	s.logger.Info("coach replied",
		"user_id", userID,
		"updated_plan", result.DidUpdatePlan && result.UpdatedPlan != nil,
		"updated_calendar", result.DidUpdateCalendar && result.UpdatedCalendar != nil,
	)
	return view, nil
}

// apologize appends the fallback reply and returns the model error with the
// resulting state attached, so the client can show the transcript.
func (s *CoachService) apologize(userID string, cause error) *apperrors.APIError {
	apiErr := modelError(cause)
	if apiErr.Status == http.StatusBadRequest {
		return apiErr
	}

	// The request context may already be done; the apology is still recorded.
	view, saveErr := s.workouts.mutate(context.Background(), userID, 0, func(state *workout.State) *apperrors.APIError {
		state.AppendChat(model.ChatMessage{Role: model.RoleAssistant, Content: coach.Apology})
		return nil
	})
	if saveErr != nil {
		s.logger.Warn("failed to record coach apology", "user_id", userID, "error", saveErr)
		return apiErr
	}
	apiErr.Details = map[string]interface{}{"state": view}
	return apiErr
}

func (s *CoachService) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *CoachService) release(userID string) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}
