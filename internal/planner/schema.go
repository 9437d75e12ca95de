package planner

// Schemas are built fresh on every call so callers may embed or modify them.

func exerciseSchema() map[string]any {
	return object(map[string]any{
		"name":         str(),
		"sets":         integer(1, 8),
		"reps":         str(),
		"rest_seconds": integer(15, 300),
		"notes":        str(),
	}, "name", "sets", "reps", "rest_seconds", "notes")
}

// DaySchema describes one training day with at least minExercises exercises.
func DaySchema(minExercises int) map[string]any {
	return object(map[string]any{
		"day_label": str(),
		"focus":     str(),
		"warmup":    str(),
		"exercises": map[string]any{
			"type":     "array",
			"minItems": minExercises,
			"items":    exerciseSchema(),
		},
		"cooldown": str(),
	}, "day_label", "focus", "warmup", "exercises", "cooldown")
}

// PlanSchema is the strict output schema for a generated plan.
func PlanSchema() map[string]any {
	return object(map[string]any{
		"summary":                str(),
		"training_days_per_week": integer(MinDaysPerWeek, MaxDaysPerWeek),
		"recommended_schedule": map[string]any{
			"type":     "array",
			"minItems": MinGeneratedDays,
			"items":    DaySchema(MinGeneratedExercises),
		},
		"progression": str(),
		"nutrition_notes": map[string]any{
			"type":     "array",
			"items":    str(),
			"minItems": MinNutritionNotes,
		},
		"disclaimer": str(),
	}, "summary", "training_days_per_week", "recommended_schedule", "progression", "nutrition_notes", "disclaimer")
}

func object(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
		"required":             required,
	}
}

func str() map[string]any {
	return map[string]any{"type": "string"}
}

func integer(minimum, maximum int) map[string]any {
	return map[string]any{"type": "integer", "minimum": minimum, "maximum": maximum}
}
