package coach

import "workoutplanner/internal/planner"

func overrideSchema() map[string]any {
	kind := func(name string) map[string]any {
		return map[string]any{"enum": []string{name}}
	}
	return map[string]any{
		"anyOf": []any{
			map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           map[string]any{"kind": kind("rest")},
				"required":             []string{"kind"},
			},
			map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"kind":          kind("workout"),
					"workout_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 10},
				},
				"required": []string{"kind", "workout_index"},
			},
			map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"kind": kind("custom"),
					"day":  planner.DaySchema(1),
				},
				"required": []string{"kind", "day"},
			},
			map[string]any{"type": "null"},
		},
	}
}

func calendarSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"trainingWeekdays": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 6,
				"items":    map[string]any{"type": "integer", "minimum": 0, "maximum": 6},
			},
			"dateOverrides": map[string]any{
				"type":                 "object",
				"additionalProperties": overrideSchema(),
			},
		},
		"required": []string{"trainingWeekdays"},
	}
}

// ResultSchema is the strict output schema of a coach reply.
func ResultSchema() map[string]any {
	nullable := func(schema map[string]any) map[string]any {
		return map[string]any{"anyOf": []any{schema, map[string]any{"type": "null"}}}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"answer":              map[string]any{"type": "string"},
			"did_update_plan":     map[string]any{"type": "boolean"},
			"updated_plan":        nullable(planner.PlanSchema()),
			"did_update_calendar": map[string]any{"type": "boolean"},
			"updated_calendar":    nullable(calendarSchema()),
		},
		"required": []string{"answer", "did_update_plan", "updated_plan", "did_update_calendar", "updated_calendar"},
	}
}
