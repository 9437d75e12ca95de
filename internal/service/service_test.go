package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"

	"workoutplanner/internal/coach"
	"workoutplanner/internal/db"
	"workoutplanner/internal/model"
	"workoutplanner/internal/repository"
	"workoutplanner/internal/workout"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenSQLite(db.DriverCGo, filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func newTestUser(t *testing.T, database *sql.DB, repo *repository.WorkoutRepository) string {
	t.Helper()
	now := time.Now().UTC()
	user := model.User{ID: uuid.NewString(), Email: uuid.NewString() + "@example.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	if err := repository.NewUserRepository(database).Create(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := repo.CreateInitialMeta(context.Background(), user.ID); err != nil {
		t.Fatalf("create meta: %v", err)
	}
	return user.ID
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func threeDayPlan() model.WorkoutPlan {
	plan := model.WorkoutPlan{TrainingDaysPerWeek: 3}
	for _, label := range []string{"A", "B", "C"} {
		plan.RecommendedSchedule = append(plan.RecommendedSchedule, model.WorkoutPlanDay{
			DayLabel:  label,
			Exercises: []model.WorkoutPlanExercise{{Name: label + " lift", Sets: 3, Reps: "8", RestSeconds: 60}},
		})
	}
	return plan
}

// blockingCoach holds every reply until release is closed.
type blockingCoach struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCoach) Reply(ctx context.Context, req coach.Request) (*coach.Result, error) {
	b.entered <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &coach.Result{Answer: "ok"}, nil
}

func TestCoachRejectsConcurrentChat(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewWorkoutRepository(database)
	userID := newTestUser(t, database, repo)

	workouts := NewWorkoutService(repo, quietLogger())
	if _, apiErr := workouts.UpdatePlan(context.Background(), userID, 0, threeDayPlan()); apiErr != nil {
		t.Fatalf("set plan: %v", apiErr)
	}

	fake := &blockingCoach{entered: make(chan struct{}, 1), release: make(chan struct{})}
	svc := NewCoachService(workouts, fake, 0, quietLogger())

	done := make(chan error, 1)
	go func() {
		_, apiErr := svc.Chat(context.Background(), userID, 0, "first")
		if apiErr != nil {
			done <- apiErr
			return
		}
		done <- nil
	}()

	<-fake.entered
	_, apiErr := svc.Chat(context.Background(), userID, 0, "second")
	if apiErr == nil || apiErr.Code != "coach_busy" || apiErr.Status != http.StatusConflict {
		t.Fatalf("expected coach_busy, got %+v", apiErr)
	}

	close(fake.release)
	if err := <-done; err != nil {
		t.Fatalf("first chat failed: %v", err)
	}

	state, apiErr := workouts.GetState(context.Background(), userID)
	if apiErr != nil {
		t.Fatalf("get state: %v", apiErr)
	}
	if len(state.Chat) != 2 || state.Chat[0].Content != "first" || state.Chat[1].Content != "ok" {
		t.Fatalf("unexpected transcript %+v", state.Chat)
	}

	// The guard is released once the exchange finishes.
	go func() {
		<-fake.entered
	}()
	if _, apiErr := svc.Chat(context.Background(), userID, 0, "third"); apiErr != nil {
		t.Fatalf("third chat: %v", apiErr)
	}
}

func TestLoadIgnoresCorruptSlot(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewWorkoutRepository(database)
	userID := newTestUser(t, database, repo)

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.PutSlotTx(ctx, tx, userID, workout.SlotPlan, []byte("{not json"), time.Now()); err != nil {
		t.Fatalf("put plan: %v", err)
	}
	if err := repo.PutSlotTx(ctx, tx, userID, workout.SlotCalendar, []byte(`{"trainingWeekdays":[2,4],"dateOverrides":[]}`), time.Now()); err != nil {
		t.Fatalf("put calendar: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	svc := NewWorkoutService(repo, quietLogger())
	state, apiErr := svc.GetState(ctx, userID)
	if apiErr != nil {
		t.Fatalf("get state: %v", apiErr)
	}
	if state.Plan != nil {
		t.Fatalf("corrupt plan should load as absent, got %+v", state.Plan)
	}
	if len(state.Calendar.TrainingWeekdays) != 2 || len(state.Calendar.DateOverrides) != 0 {
		t.Fatalf("unexpected calendar %+v", state.Calendar)
	}
}

func TestMutationsAreVersioned(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewWorkoutRepository(database)
	userID := newTestUser(t, database, repo)
	svc := NewWorkoutService(repo, quietLogger())
	ctx := context.Background()

	view, apiErr := svc.SetCompleted(ctx, userID, 1, "2024-01-01", true)
	if apiErr != nil {
		t.Fatalf("set completed: %v", apiErr)
	}
	if view.Version != 2 {
		t.Fatalf("expected version 2, got %d", view.Version)
	}

	_, apiErr = svc.SetCompleted(ctx, userID, 1, "2024-01-02", true)
	if apiErr == nil || apiErr.Code != "state_conflict" {
		t.Fatalf("expected state_conflict, got %+v", apiErr)
	}

	_, apiErr = svc.GetState(ctx, "missing-user")
	if apiErr == nil || apiErr.Code != "state_not_found" {
		t.Fatalf("expected state_not_found, got %+v", apiErr)
	}
}

func TestDayAndMonthViews(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewWorkoutRepository(database)
	userID := newTestUser(t, database, repo)
	svc := NewWorkoutService(repo, quietLogger())
	ctx := context.Background()

	if _, apiErr := svc.UpdatePlan(ctx, userID, 0, threeDayPlan()); apiErr != nil {
		t.Fatalf("set plan: %v", apiErr)
	}
	custom := model.CustomOverride{Day: model.WorkoutPlanDay{
		DayLabel:  "Saturday Pump",
		Exercises: []model.WorkoutPlanExercise{{Name: "Curl", Sets: 3, Reps: "12", RestSeconds: 45}},
	}}
	if _, apiErr := svc.SetDateOverride(ctx, userID, 0, "2024-01-06", custom); apiErr != nil {
		t.Fatalf("set override: %v", apiErr)
	}

	day, apiErr := svc.Day(ctx, userID, "2024-01-06")
	if apiErr != nil {
		t.Fatalf("day: %v", apiErr)
	}
	if day.Planned == nil || day.Planned.Pos != -1 || day.Planned.Day.DayLabel != "Saturday Pump" {
		t.Fatalf("expected custom day, got %+v", day.Planned)
	}
	if day.Recurring != nil {
		t.Fatalf("saturday is not a training weekday, got %+v", day.Recurring)
	}

	month, apiErr := svc.Month(ctx, userID, "2024-02")
	if apiErr != nil {
		t.Fatalf("month: %v", apiErr)
	}
	if len(month.Days) != 42 || month.Days[0].Date != "2024-01-28" {
		t.Fatalf("unexpected grid start %+v", month.Days[0])
	}

	bad := model.CustomOverride{Day: model.WorkoutPlanDay{DayLabel: "Empty"}}
	if _, apiErr := svc.SetDateOverride(ctx, userID, 0, "2024-01-07", bad); apiErr == nil || apiErr.Code != "invalid_override" {
		t.Fatalf("expected invalid_override, got %+v", apiErr)
	}
}

func TestModelErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "upstream_timeout"},
		{errors.New("boom"), http.StatusBadGateway, "upstream_error"},
	}
	for _, tt := range tests {
		apiErr := modelError(tt.err)
		if apiErr.Status != tt.status || apiErr.Code != tt.code {
			t.Errorf("modelError(%v) = %d %s, want %d %s", tt.err, apiErr.Status, apiErr.Code, tt.status, tt.code)
		}
	}
}
