package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"workoutplanner/internal/model"
	"workoutplanner/internal/service"
	"workoutplanner/internal/workout"
)

func TestRenderMonth(t *testing.T) {
	state := workout.New()
	state.SetPlan(model.WorkoutPlan{
		TrainingDaysPerWeek: 2,
		RecommendedSchedule: []model.WorkoutPlanDay{
			{DayLabel: "Upper", Exercises: []model.WorkoutPlanExercise{{Name: "Bench", Sets: 3, Reps: "8", RestSeconds: 90}}},
			{DayLabel: "Lower", Exercises: []model.WorkoutPlanExercise{{Name: "Squat", Sets: 3, Reps: "5", RestSeconds: 120}}},
		},
	})
	state.SetTrainingWeekdays([]int{1, 4})
	state.ToggleCompleted("2024-01-01", true)
	state.SetDateOverride("2024-01-04", model.RestOverride{})

	anchor := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := renderMonth(&service.MonthView{Month: "2024-01", Days: service.ResolveMonth(state, anchor)})

	for _, want := range []string{"January 2024", "Sun", "Sat", "Upper", "Lower", "✓", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintProfileImperial(t *testing.T) {
	form := model.DefaultForm()
	form.HeightCm = "180"
	form.WeightKg = "80"
	form.FitnessGoal = model.GoalBuildMuscle
	lifts := model.DefaultLifts()
	lifts.Current[model.LiftBench] = "100"
	lifts.History[model.LiftBench] = []model.LiftSample{{Date: "2024-01-01", Value: 100}}

	var buf bytes.Buffer
	printProfile(&buf, form, lifts, true)
	out := buf.String()

	for _, want := range []string{`5'11"`, "176.4 lb", "220.5 lb", "(1 logged)", "build-muscle"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	printProfile(&buf, form, lifts, false)
	if out := buf.String(); !strings.Contains(out, "180 cm") || !strings.Contains(out, "100 kg") {
		t.Errorf("expected metric values in output:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Upper", 8, "Upper"},
		{"Upper Body Power", 8, "Upper B…"},
		{"Push", 1, "P"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestConfirmEmail(t *testing.T) {
	tests := []struct {
		input string
		email string
		want  bool
	}{
		{"me@example.com\n", "me@example.com", true},
		{"  me@example.com  \n", "me@example.com", true},
		{"you@example.com\n", "me@example.com", false},
		{"", "me@example.com", false},
		{"\n", "", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirmEmail(strings.NewReader(tt.input), &out, tt.email)
		if err != nil {
			t.Fatalf("confirmEmail(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("confirmEmail(%q, %q) = %v, want %v", tt.input, tt.email, got, tt.want)
		}
	}
}
