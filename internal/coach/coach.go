// Package coach talks to the model-backed coach and folds its structured reply
// back into a user's workout state.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"workoutplanner/internal/llm"
	"workoutplanner/internal/model"
	"workoutplanner/internal/planner"
	"workoutplanner/internal/workout"
)

const (
	DefaultHistoryLimit = 20

	// Apology is appended to the transcript when a coach call fails.
	Apology = "Something went wrong contacting the coach. Double-check your OPENAI_API_KEY and try again."
)

type CalendarContext struct {
	TrainingWeekdays []int               `json:"trainingWeekdays"`
	DateOverrides    model.DateOverrides `json:"dateOverrides"`
	WorkoutLog       model.WorkoutLog    `json:"workoutLog"`
}

type Request struct {
	Plan        model.WorkoutPlan   `json:"plan"`
	UserProfile model.FormData      `json:"user_profile"`
	Calendar    CalendarContext     `json:"calendar"`
	Messages    []model.ChatMessage `json:"messages"`
}

// CalendarUpdate is the calendar part of a coach reply. A nil
// TrainingWeekdays means the reply carries no calendar change at all.
type CalendarUpdate struct {
	TrainingWeekdays []int                 `json:"trainingWeekdays"`
	DateOverrides    model.OverrideUpdates `json:"dateOverrides"`
}

type Result struct {
	Answer            string             `json:"answer"`
	DidUpdatePlan     bool               `json:"did_update_plan"`
	UpdatedPlan       *model.WorkoutPlan `json:"updated_plan"`
	DidUpdateCalendar bool               `json:"did_update_calendar"`
	UpdatedCalendar   *CalendarUpdate    `json:"updated_calendar"`
}

type Coach interface {
	Reply(ctx context.Context, req Request) (*Result, error)
}

// BuildRequest snapshots the state for a coach call. Only the last limit
// user/assistant messages are sent. The state must hold a plan.
func BuildRequest(state *workout.State, limit int) Request {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	history := make([]model.ChatMessage, 0, len(state.Chat))
	for _, m := range state.Chat {
		if m.Role == model.RoleUser || m.Role == model.RoleAssistant {
			history = append(history, m)
		}
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	req := Request{
		UserProfile: state.Form,
		Calendar: CalendarContext{
			TrainingWeekdays: state.Calendar.TrainingWeekdays,
			DateOverrides:    state.Calendar.DateOverrides,
			WorkoutLog:       state.WorkoutLog,
		},
		Messages: history,
	}
	if state.Plan != nil {
		req.Plan = *state.Plan
	}
	return req
}

// Apply folds a coach reply into state: the plan first, so a weekday change in
// the same reply is limited by the new plan's day count, then the weekday set,
// then each override in date order, and finally the answer.
func Apply(state *workout.State, result *Result) {
	if result.DidUpdatePlan && result.UpdatedPlan != nil {
		state.SetPlan(*result.UpdatedPlan)
	}

	if result.DidUpdateCalendar && result.UpdatedCalendar != nil && result.UpdatedCalendar.TrainingWeekdays != nil {
		state.SetTrainingWeekdays(result.UpdatedCalendar.TrainingWeekdays)

		keys := make([]string, 0, len(result.UpdatedCalendar.DateOverrides))
		for key := range result.UpdatedCalendar.DateOverrides {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			state.SetDateOverride(key, result.UpdatedCalendar.DateOverrides[key])
		}
	}

	state.AppendChat(model.ChatMessage{Role: model.RoleAssistant, Content: result.Answer})
}

// Check rejects replies whose plan or custom days break the manual-edit
// bounds.
func Check(result *Result) error {
	if result.DidUpdatePlan && result.UpdatedPlan != nil {
		if err := planner.ValidatePlan(result.UpdatedPlan, planner.ModeManual); err != nil {
			return err
		}
	}
	if result.DidUpdateCalendar && result.UpdatedCalendar != nil {
		for key, override := range result.UpdatedCalendar.DateOverrides {
			custom, ok := override.(model.CustomOverride)
			if !ok {
				continue
			}
			if err := planner.ValidateDay(custom.Day); err != nil {
				return fmt.Errorf("override %s: %w", key, err)
			}
		}
	}
	return nil
}

func contextMessage(label string, v any) (llm.Message, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return llm.Message{}, fmt.Errorf("encode %s: %w", label, err)
	}
	return llm.Message{Role: model.RoleUser, Content: label + ":\n" + string(raw)}, nil
}
