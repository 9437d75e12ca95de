package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"workoutplanner/internal/codec"
	"workoutplanner/internal/dates"
	apperrors "workoutplanner/internal/errors"
	"workoutplanner/internal/model"
	"workoutplanner/internal/planner"
	"workoutplanner/internal/repository"
	"workoutplanner/internal/schedule"
	"workoutplanner/internal/workout"
)

type WorkoutService struct {
	repo   *repository.WorkoutRepository
	logger *slog.Logger
	now    func() time.Time
}

type StateView struct {
	Version    int                    `json:"version"`
	UpdatedAt  time.Time              `json:"updatedAt"`
	HasProfile bool                   `json:"hasProfile"`
	Form       model.FormData         `json:"form"`
	Plan       *model.WorkoutPlan     `json:"plan"`
	Chat       []model.ChatMessage    `json:"chat"`
	WorkoutLog model.WorkoutLog       `json:"workoutLog"`
	Calendar   model.CalendarSettings `json:"calendar"`
	Lifts      model.LiftsTrackerData `json:"lifts"`
	ServerTime time.Time              `json:"serverTime"`
}

// mutation changes a loaded state. Returning an error aborts the transaction.
type mutation func(state *workout.State) *apperrors.APIError

func NewWorkoutService(repo *repository.WorkoutRepository, logger *slog.Logger) *WorkoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkoutService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *WorkoutService) GetState(ctx context.Context, userID string) (*StateView, *apperrors.APIError) {
	var view *StateView
	apiErr := s.read(ctx, userID, func(state *workout.State, meta *repository.Meta) {
		v := s.toStateView(state, meta)
		view = &v
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return view, nil
}

func (s *WorkoutService) UpdateProfile(ctx context.Context, userID string, baseVersion int, form model.FormData) (*StateView, *apperrors.APIError) {
	if form.Units != "" && form.Units != model.UnitsMetric && form.Units != model.UnitsImperial {
		return nil, apperrors.BadRequest("invalid_units", "units must be metric or imperial")
	}
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.SetForm(form)
		return nil
	})
}

func (s *WorkoutService) UpdatePlan(ctx context.Context, userID string, baseVersion int, plan model.WorkoutPlan) (*StateView, *apperrors.APIError) {
	if err := planner.ValidatePlan(&plan, planner.ModeManual); err != nil {
		return nil, invalidPlan(err)
	}
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.SetPlan(plan)
		return nil
	})
}

type UpdateLiftInput struct {
	BaseVersion   int
	Lift          string
	Value         string
	RecordHistory bool
	// Date defaults to today.
	Date string
}

func (s *WorkoutService) UpdateLift(ctx context.Context, userID string, input UpdateLiftInput) (*StateView, *apperrors.APIError) {
	if !model.IsLiftKey(input.Lift) {
		return nil, apperrors.BadRequest("invalid_lift", "unknown lift "+input.Lift)
	}
	date := input.Date
	if date == "" {
		date = dates.Key(s.now())
	} else if _, err := dates.ParseKey(date); err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}

	lift := model.LiftKey(input.Lift)
	return s.mutate(ctx, userID, input.BaseVersion, func(state *workout.State) *apperrors.APIError {
		if input.RecordHistory {
			state.RecordLift(lift, input.Value, date)
		} else {
			state.SetLiftCurrent(lift, input.Value)
		}
		return nil
	})
}

func (s *WorkoutService) SetCompleted(ctx context.Context, userID string, baseVersion int, dateKey string, completed bool) (*StateView, *apperrors.APIError) {
	if _, err := dates.ParseKey(dateKey); err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.ToggleCompleted(dateKey, completed)
		return nil
	})
}

func (s *WorkoutService) ClearAll(ctx context.Context, userID string, baseVersion int) (*StateView, *apperrors.APIError) {
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.ClearAll()
		return nil
	})
}

func (s *WorkoutService) SetTrainingWeekdays(ctx context.Context, userID string, baseVersion int, weekdays []int) (*StateView, *apperrors.APIError) {
	if len(weekdays) == 0 {
		return nil, apperrors.BadRequest("invalid_weekdays", "at least one weekday is required")
	}
	for _, d := range weekdays {
		if d < 0 || d > 6 {
			return nil, apperrors.BadRequest("invalid_weekdays", "weekdays must be between 0 (Sun) and 6 (Sat)")
		}
	}
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.SetTrainingWeekdays(weekdays)
		return nil
	})
}

// ResetTrainingWeekdays applies the default spread for daysPerWeek, or for the
// current plan when daysPerWeek is nil.
func (s *WorkoutService) ResetTrainingWeekdays(ctx context.Context, userID string, baseVersion int, daysPerWeek *int) (*StateView, *apperrors.APIError) {
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		n := 0
		if daysPerWeek != nil {
			n = *daysPerWeek
		} else if state.Plan != nil {
			n = state.Plan.TrainingDaysPerWeek
			if n == 0 {
				n = len(state.Plan.RecommendedSchedule)
			}
		}
		state.ResetTrainingWeekdaysToDefault(n)
		return nil
	})
}

func (s *WorkoutService) SetDateOverride(ctx context.Context, userID string, baseVersion int, dateKey string, override model.DateOverride) (*StateView, *apperrors.APIError) {
	if _, err := dates.ParseKey(dateKey); err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}
	switch o := override.(type) {
	case model.WorkoutOverride:
		if o.WorkoutIndex < 0 {
			return nil, apperrors.BadRequest("invalid_override", "workout_index must not be negative")
		}
	case model.CustomOverride:
		if err := planner.ValidateDay(o.Day); err != nil {
			return nil, apperrors.New(400, "invalid_override", err.Error())
		}
	}
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.SetDateOverride(dateKey, override)
		return nil
	})
}

func (s *WorkoutService) ClearDateOverride(ctx context.Context, userID string, baseVersion int, dateKey string) (*StateView, *apperrors.APIError) {
	if _, err := dates.ParseKey(dateKey); err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.SetDateOverride(dateKey, nil)
		return nil
	})
}

func (s *WorkoutService) ClearDateOverrides(ctx context.Context, userID string, baseVersion int) (*StateView, *apperrors.APIError) {
	return s.mutate(ctx, userID, baseVersion, func(state *workout.State) *apperrors.APIError {
		state.ClearDateOverrides()
		return nil
	})
}

// DayView is the resolved schedule for one date.
type DayView struct {
	Date      string             `json:"date"`
	Weekday   string             `json:"weekday"`
	InMonth   bool               `json:"inMonth"`
	Planned   *schedule.Planned  `json:"planned"`
	Recurring *schedule.Planned  `json:"recurring"`
	Override  model.DateOverride `json:"override,omitempty"`
	Completed bool               `json:"completed"`
}

type MonthView struct {
	Month string    `json:"month"`
	Days  []DayView `json:"days"`
}

func (s *WorkoutService) Day(ctx context.Context, userID, dateKey string) (*DayView, *apperrors.APIError) {
	d, err := dates.ParseKey(dateKey)
	if err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}

	var view DayView
	apiErr := s.read(ctx, userID, func(state *workout.State, _ *repository.Meta) {
		view = resolveDay(state, d, true)
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return &view, nil
}

// Month resolves the six-week grid that displays month (YYYY-MM).
func (s *WorkoutService) Month(ctx context.Context, userID, month string) (*MonthView, *apperrors.APIError) {
	anchor, err := dates.ParseMonth(month)
	if err != nil {
		return nil, apperrors.BadRequest("invalid_month", "month must be YYYY-MM")
	}

	view := MonthView{Month: month}
	apiErr := s.read(ctx, userID, func(state *workout.State, _ *repository.Meta) {
		view.Days = ResolveMonth(state, anchor)
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return &view, nil
}

// ResolveMonth resolves every cell of anchor's month grid.
func ResolveMonth(state *workout.State, anchor time.Time) []DayView {
	cells := dates.MonthGrid(anchor)
	out := make([]DayView, 0, len(cells))
	for _, d := range cells {
		out = append(out, resolveDay(state, d, d.Month() == anchor.Month()))
	}
	return out
}

func resolveDay(state *workout.State, d time.Time, inMonth bool) DayView {
	key := dates.Key(d)
	view := DayView{
		Date:      key,
		Weekday:   dates.WeekdayName(int(d.Weekday())),
		InMonth:   inMonth,
		Override:  state.Calendar.DateOverrides[key],
		Completed: state.WorkoutLog[key].Completed,
	}
	if planned, ok := schedule.PlannedWorkoutForDate(state.Plan, &state.Calendar, d); ok {
		view.Planned = &planned
	}
	if recurring, ok := schedule.RecurringPlannedWorkoutForDate(state.Plan, &state.Calendar, d); ok {
		view.Recurring = &recurring
	}
	return view
}

func (s *WorkoutService) read(ctx context.Context, userID string, fn func(*workout.State, *repository.Meta)) *apperrors.APIError {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	state, meta, apiErr := s.load(ctx, tx, userID)
	if apiErr != nil {
		return apiErr
	}
	fn(state, meta)
	return nil
}

// mutate is the single write path: load, check the base version, apply fn,
// write the changed slots and bump the version, all in one transaction.
func (s *WorkoutService) mutate(ctx context.Context, userID string, baseVersion int, fn mutation) (*StateView, *apperrors.APIError) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	state, meta, apiErr := s.load(ctx, tx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	if apiErr := s.ensureVersion(baseVersion, state, meta); apiErr != nil {
		return nil, apiErr
	}

	if apiErr := fn(state); apiErr != nil {
		return nil, apiErr
	}

	if apiErr := s.persist(ctx, tx, userID, state, meta); apiErr != nil {
		return nil, apiErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}

	view := s.toStateView(state, meta)
	return &view, nil
}

func (s *WorkoutService) load(ctx context.Context, tx *sql.Tx, userID string) (*workout.State, *repository.Meta, *apperrors.APIError) {
	meta, err := s.repo.GetMetaTx(ctx, tx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, apperrors.NotFound("state_not_found", "workout state not found")
	}
	if err != nil {
		return nil, nil, apperrors.Internal("failed to get state")
	}

	blobs, err := s.repo.LoadSlotsTx(ctx, tx, userID)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to load state")
	}

	return workout.Load(blobs, s.logger.With("user_id", userID)), meta, nil
}

// persist writes the changed slots. A slot that fails to encode is skipped and
// a failed delete is ignored; both are logged.
func (s *WorkoutService) persist(ctx context.Context, tx *sql.Tx, userID string, state *workout.State, meta *repository.Meta) *apperrors.APIError {
	if !state.Dirty() {
		return nil
	}

	now := s.now().UTC()
	for _, change := range state.Changes() {
		if change.Delete {
			if err := s.repo.DeleteSlotTx(ctx, tx, userID, change.Slot); err != nil {
				s.logger.Warn("failed to delete slot", "user_id", userID, "slot", change.Slot, "error", err)
			}
			continue
		}

		raw, err := codec.Encode(state.Value(change.Slot))
		if err != nil {
			s.logger.Warn("skipping slot write", "user_id", userID, "slot", change.Slot, "error", err)
			continue
		}
		if err := s.repo.PutSlotTx(ctx, tx, userID, change.Slot, raw, now); err != nil {
			return apperrors.Internal("failed to save state")
		}
	}

	meta.Version++
	meta.UpdatedAt = now
	if err := s.repo.UpdateMetaTx(ctx, tx, meta); err != nil {
		return apperrors.Internal("failed to update state")
	}
	return nil
}

func (s *WorkoutService) ensureVersion(baseVersion int, state *workout.State, meta *repository.Meta) *apperrors.APIError {
	if baseVersion <= 0 || baseVersion == meta.Version {
		return nil
	}
	view := s.toStateView(state, meta)
	return apperrors.Conflict("state_conflict", "state changed on another device", map[string]interface{}{
		"state": view,
	})
}

func (s *WorkoutService) toStateView(state *workout.State, meta *repository.Meta) StateView {
	return StateView{
		Version:    meta.Version,
		UpdatedAt:  meta.UpdatedAt,
		HasProfile: state.HasProfile(),
		Form:       state.Form,
		Plan:       state.Plan,
		Chat:       state.Chat,
		WorkoutLog: state.WorkoutLog,
		Calendar:   state.Calendar,
		Lifts:      state.Lifts,
		ServerTime: s.now().UTC(),
	}
}

func invalidPlan(err error) *apperrors.APIError {
	apiErr := apperrors.BadRequest("invalid_plan", "plan does not meet the required bounds")
	var planErr *planner.PlanError
	if errors.As(err, &planErr) {
		apiErr.Details = map[string]interface{}{"problems": planErr.Problems}
	}
	return apiErr
}
