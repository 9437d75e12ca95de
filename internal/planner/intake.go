package planner

import (
	"math"
	"strings"

	"workoutplanner/internal/model"
	"workoutplanner/internal/units"
)

// IntakeError is a form problem the user can fix; the model is not called.
type IntakeError struct {
	Message string
}

func (e *IntakeError) Error() string {
	return e.Message
}

// Intake is the profile summary sent to the plan generator. Strength values
// are nil when the user skipped the section, never tried the lift, or typed
// something that is not a number.
type Intake struct {
	HeightCm            *float64                   `json:"height_cm"`
	WeightKg            *float64                   `json:"weight_kg"`
	Gender              string                     `json:"gender"`
	Goal                string                     `json:"goal"`
	TrainingDaysPerWeek int                        `json:"training_days_per_week"`
	StrengthBaselineKg  map[model.LiftKey]*float64 `json:"strength_baseline_kg"`
	Notes               IntakeNotes                `json:"notes"`
}

type IntakeNotes struct {
	StrengthSkipped bool `json:"strength_skipped"`
}

func BuildIntake(form model.FormData) (*Intake, error) {
	if isBlank(form.HeightCm) || isBlank(form.WeightKg) || isBlank(form.FitnessGoal) ||
		isBlank(form.Gender) || isBlank(form.TrainingDaysPerWeek) {
		return nil, &IntakeError{Message: "Please fill out height, weight, gender, goal, and training days per week."}
	}

	days, ok := units.ParseAmount(form.TrainingDaysPerWeek)
	if !ok || days != math.Trunc(days) || days < 2 || days > 6 {
		return nil, &IntakeError{Message: "Training days per week must be between 2 and 6."}
	}

	baseline := make(map[model.LiftKey]*float64, len(form.Strength))
	for lift, raw := range form.Strength {
		if form.StrengthSkipAll || form.StrengthNeverTried[lift] {
			baseline[lift] = nil
			continue
		}
		baseline[lift] = amount(raw)
	}

	return &Intake{
		HeightCm:            amount(form.HeightCm),
		WeightKg:            amount(form.WeightKg),
		Gender:              form.Gender,
		Goal:                form.FitnessGoal,
		TrainingDaysPerWeek: int(days),
		StrengthBaselineKg:  baseline,
		Notes:               IntakeNotes{StrengthSkipped: form.StrengthSkipAll},
	}, nil
}

func amount(raw string) *float64 {
	n, ok := units.ParseAmount(raw)
	if !ok {
		return nil
	}
	return &n
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
