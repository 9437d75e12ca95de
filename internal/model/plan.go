package model

// Bounds shared by every plan, whether generated or edited by hand.
// The generator applies stricter minimums on top (see planner.ValidatePlan).
type WorkoutPlanExercise struct {
	Name        string `json:"name" validate:"required"`
	Sets        int    `json:"sets" validate:"min=1,max=8"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds" validate:"min=15,max=300"`
	Notes       string `json:"notes"`
}

type WorkoutPlanDay struct {
	DayLabel  string                `json:"day_label"`
	Focus     string                `json:"focus"`
	Warmup    string                `json:"warmup"`
	Exercises []WorkoutPlanExercise `json:"exercises" validate:"min=1,dive"`
	Cooldown  string                `json:"cooldown"`
}

type WorkoutPlan struct {
	Summary             string           `json:"summary"`
	TrainingDaysPerWeek int              `json:"training_days_per_week" validate:"min=2,max=6"`
	RecommendedSchedule []WorkoutPlanDay `json:"recommended_schedule" validate:"min=1,dive"`
	Progression         string           `json:"progression"`
	NutritionNotes      []string         `json:"nutrition_notes"`
	Disclaimer          string           `json:"disclaimer"`
}
