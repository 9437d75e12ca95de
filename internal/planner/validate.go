package planner

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"workoutplanner/internal/model"
)

const (
	MinDaysPerWeek = 2
	MaxDaysPerWeek = 6

	MinGeneratedDays      = 2
	MinGeneratedExercises = 4
	MinNutritionNotes     = 3
)

type Mode int

const (
	// ModeManual is the looser bound for hand edits and coach-supplied days.
	ModeManual Mode = iota
	// ModeGenerated adds the minimums the generator promises.
	ModeGenerated
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// PlanError lists every bound a plan violates.
type PlanError struct {
	Problems []string
}

func (e *PlanError) Error() string {
	return "invalid plan: " + strings.Join(e.Problems, "; ")
}

func ValidatePlan(plan *model.WorkoutPlan, mode Mode) error {
	if plan == nil {
		return &PlanError{Problems: []string{"plan is required"}}
	}

	var problems []string
	if err := structValidator().Struct(plan); err != nil {
		problems = append(problems, describe(err)...)
	}

	if mode == ModeGenerated {
		if len(plan.RecommendedSchedule) < MinGeneratedDays {
			problems = append(problems, fmt.Sprintf("recommended_schedule needs at least %d days", MinGeneratedDays))
		}
		if len(plan.RecommendedSchedule) != plan.TrainingDaysPerWeek {
			problems = append(problems, fmt.Sprintf("recommended_schedule has %d days, expected %d",
				len(plan.RecommendedSchedule), plan.TrainingDaysPerWeek))
		}
		for i, day := range plan.RecommendedSchedule {
			if len(day.Exercises) < MinGeneratedExercises {
				problems = append(problems, fmt.Sprintf("recommended_schedule[%d] needs at least %d exercises", i, MinGeneratedExercises))
			}
		}
		if len(plan.NutritionNotes) < MinNutritionNotes {
			problems = append(problems, fmt.Sprintf("nutrition_notes needs at least %d entries", MinNutritionNotes))
		}
	}

	if len(problems) > 0 {
		return &PlanError{Problems: problems}
	}
	return nil
}

// ValidateDay checks a single self-contained day, as carried by a custom
// calendar override.
func ValidateDay(day model.WorkoutPlanDay) error {
	if err := structValidator().Struct(day); err != nil {
		return &PlanError{Problems: describe(err)}
	}
	return nil
}

func describe(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			out = append(out, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return out
}
