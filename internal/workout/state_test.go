package workout

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"workoutplanner/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPlan(days int) model.WorkoutPlan {
	schedule := make([]model.WorkoutPlanDay, 0, days)
	for i := 0; i < days; i++ {
		schedule = append(schedule, model.WorkoutPlanDay{
			DayLabel:  "Day",
			Exercises: []model.WorkoutPlanExercise{{Name: "Squat", Sets: 3, Reps: "5", RestSeconds: 120}},
		})
	}
	return model.WorkoutPlan{TrainingDaysPerWeek: days, RecommendedSchedule: schedule}
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	s := Load(nil, quietLogger())
	if s.Plan != nil {
		t.Fatal("expected no plan")
	}
	if !reflect.DeepEqual(s.Calendar.TrainingWeekdays, []int{1, 3, 5}) {
		t.Fatalf("unexpected default weekdays %v", s.Calendar.TrainingWeekdays)
	}
	if s.Form.Units != model.UnitsMetric || len(s.Form.Strength) != len(model.LiftKeys) {
		t.Fatalf("unexpected default form %+v", s.Form)
	}
	if s.Dirty() {
		t.Fatal("a fresh load must not have pending changes")
	}
}

func TestLoadMergesFormOntoDefaults(t *testing.T) {
	s := Load(map[Slot][]byte{
		SlotForm: []byte(`{"fitnessGoal":"build-muscle","strength":{"bench":"80"}}`),
	}, quietLogger())

	if s.Form.FitnessGoal != model.GoalBuildMuscle {
		t.Fatalf("expected stored goal, got %q", s.Form.FitnessGoal)
	}
	if s.Form.Units != model.UnitsMetric {
		t.Fatalf("expected default units to survive, got %q", s.Form.Units)
	}
	if s.Form.Strength[model.LiftBench] != "80" {
		t.Fatalf("expected bench 80, got %q", s.Form.Strength[model.LiftBench])
	}
	if _, ok := s.Form.Strength[model.LiftSquat]; !ok {
		t.Fatal("expected missing lift keys to be filled")
	}
}

func TestLoadSeedsLiftsFromForm(t *testing.T) {
	s := Load(map[Slot][]byte{
		SlotForm: []byte(`{"strength":{"squat":"120"}}`),
	}, quietLogger())
	if s.Lifts.Current[model.LiftSquat] != "120" {
		t.Fatalf("expected lifts seeded from form, got %q", s.Lifts.Current[model.LiftSquat])
	}

	s = Load(map[Slot][]byte{
		SlotForm:  []byte(`{"strength":{"squat":"120"}}`),
		SlotLifts: []byte(`{"current":{"squat":"140"}}`),
	}, quietLogger())
	if s.Lifts.Current[model.LiftSquat] != "140" {
		t.Fatalf("stored lifts should win over the form, got %q", s.Lifts.Current[model.LiftSquat])
	}
	if s.Lifts.History[model.LiftSquat] == nil {
		t.Fatal("expected history defaults to be filled")
	}
}

func TestLoadCorruptSlotsFallBack(t *testing.T) {
	s := Load(map[Slot][]byte{
		SlotPlan:       []byte(`{not json`),
		SlotChat:       []byte(`{"role":"user"}`),
		SlotWorkoutLog: []byte(`null`),
		SlotLifts:      []byte(`{"history":{}}`),
	}, quietLogger())

	if s.Plan != nil {
		t.Fatal("corrupt plan must load as absent")
	}
	if len(s.Chat) != 0 || s.Chat == nil {
		t.Fatalf("expected empty chat, got %#v", s.Chat)
	}
	if s.WorkoutLog == nil || len(s.WorkoutLog) != 0 {
		t.Fatalf("expected empty log, got %#v", s.WorkoutLog)
	}
	if s.Lifts.Current == nil {
		t.Fatal("lifts without current must fall back to defaults")
	}
}

func TestLoadCalendar(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantWeekdays  []int
		wantOverrides int
	}{
		{"valid", `{"trainingWeekdays":[5,1,3,3],"dateOverrides":{"2024-01-01":{"kind":"rest"}}}`, []int{1, 3, 5}, 1},
		{"drops non-integers", `{"trainingWeekdays":[1,"2",2.5,9,4],"dateOverrides":{}}`, []int{1, 4}, 0},
		{"overrides not an object", `{"trainingWeekdays":[2],"dateOverrides":[1,2]}`, []int{2}, 0},
		{"missing weekdays keeps default", `{"dateOverrides":{"2024-01-01":{"kind":"rest"}}}`, []int{1, 3, 5}, 0},
		{"weekdays not an array", `{"trainingWeekdays":"mon"}`, []int{1, 3, 5}, 0},
		{"drops bad override entries", `{"trainingWeekdays":[0],"dateOverrides":{"a":{"kind":"rest"},"b":{"kind":"bogus"}}}`, []int{0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Load(map[Slot][]byte{SlotCalendar: []byte(tt.raw)}, quietLogger())
			if !reflect.DeepEqual(s.Calendar.TrainingWeekdays, tt.wantWeekdays) {
				t.Fatalf("weekdays = %v, want %v", s.Calendar.TrainingWeekdays, tt.wantWeekdays)
			}
			if len(s.Calendar.DateOverrides) != tt.wantOverrides {
				t.Fatalf("overrides = %d, want %d", len(s.Calendar.DateOverrides), tt.wantOverrides)
			}
		})
	}
}

func TestToggleCompletedMarksOnlyLog(t *testing.T) {
	s := New()
	s.ToggleCompleted("2024-01-01", true)
	s.ToggleCompleted("2024-01-02", false)

	if !s.WorkoutLog["2024-01-01"].Completed || s.WorkoutLog["2024-01-02"].Completed {
		t.Fatalf("unexpected log %+v", s.WorkoutLog)
	}
	want := []Change{{Slot: SlotWorkoutLog}}
	if got := s.Changes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("changes = %+v, want %+v", got, want)
	}
}

func TestSetTrainingWeekdaysTruncatesToPlan(t *testing.T) {
	s := New()
	s.SetPlan(testPlan(2))
	s.SetTrainingWeekdays([]int{6, 5, 4, 3, 2, 1})
	if !reflect.DeepEqual(s.Calendar.TrainingWeekdays, []int{1, 2}) {
		t.Fatalf("expected [1 2], got %v", s.Calendar.TrainingWeekdays)
	}

	noPlan := New()
	noPlan.SetTrainingWeekdays([]int{0, 1, 2, 3, 4, 5, 6, 7})
	if len(noPlan.Calendar.TrainingWeekdays) != 7 {
		t.Fatalf("without a plan nothing is truncated, got %v", noPlan.Calendar.TrainingWeekdays)
	}
}

func TestResetTrainingWeekdaysToDefault(t *testing.T) {
	s := New()
	s.SetTrainingWeekdays([]int{0})
	s.ResetTrainingWeekdaysToDefault(4)
	if !reflect.DeepEqual(s.Calendar.TrainingWeekdays, []int{1, 2, 4, 5}) {
		t.Fatalf("got %v", s.Calendar.TrainingWeekdays)
	}
}

func TestDateOverridesLeaveWeekdaysAlone(t *testing.T) {
	s := New()
	before := append([]int(nil), s.Calendar.TrainingWeekdays...)

	s.SetDateOverride("2024-01-01", model.RestOverride{})
	s.SetDateOverride("2024-01-02", model.WorkoutOverride{WorkoutIndex: 1})
	s.SetDateOverride("2024-01-01", nil)

	if len(s.Calendar.DateOverrides) != 1 {
		t.Fatalf("expected one override, got %d", len(s.Calendar.DateOverrides))
	}
	if !reflect.DeepEqual(s.Calendar.TrainingWeekdays, before) {
		t.Fatalf("weekdays changed: %v", s.Calendar.TrainingWeekdays)
	}
	if s.Plan != nil {
		t.Fatal("plan should be untouched")
	}

	s.ClearDateOverrides()
	if len(s.Calendar.DateOverrides) != 0 {
		t.Fatal("expected overrides cleared")
	}
}

func TestRecordLift(t *testing.T) {
	s := New()
	if !s.RecordLift(model.LiftBench, "100", "2024-01-01") {
		t.Fatal("expected numeric value to be recorded")
	}
	if s.RecordLift(model.LiftBench, "a lot", "2024-01-02") {
		t.Fatal("non-numeric value must not be recorded")
	}
	if s.Lifts.Current[model.LiftBench] != "a lot" {
		t.Fatalf("current should still be updated, got %q", s.Lifts.Current[model.LiftBench])
	}
	history := s.Lifts.History[model.LiftBench]
	if len(history) != 1 || history[0].Value != 100 || history[0].Date != "2024-01-01" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestClearAllDeletesEverySlot(t *testing.T) {
	s := Load(map[Slot][]byte{
		SlotPlan: []byte(`{"training_days_per_week":3,"recommended_schedule":[]}`),
	}, quietLogger())
	s.ToggleCompleted("2024-01-01", true)
	s.ClearAll()

	if s.Plan != nil || len(s.WorkoutLog) != 0 {
		t.Fatal("expected defaults after ClearAll")
	}
	changes := s.Changes()
	if len(changes) != len(AllSlots) {
		t.Fatalf("expected %d changes, got %d", len(AllSlots), len(changes))
	}
	for _, c := range changes {
		if !c.Delete {
			t.Fatalf("expected delete for slot %s", c.Slot)
		}
	}
}
