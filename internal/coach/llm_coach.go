package coach

import (
	"context"

	"workoutplanner/internal/llm"
)

const (
	coachSchemaName      = "coach_chat"
	coachTemperature     = 0.4
	coachMaxOutputTokens = 1000

	systemPrompt = "You are a helpful strength & conditioning coach embedded inside a workout-planner app. " +
		"You have access to the user's profile (height, weight, gender, goal, training days/week, and optional baseline strength numbers). " +
		"You also have the user's current calendar settings (trainingWeekdays, optional one-off dateOverrides, and their workout completion log). " +
		"Always tailor your answers and any plan changes to the user's profile and baseline strength if provided. " +
		"You can: (1) answer questions, (2) modify the workout plan, and (3) adjust calendar training days (trainingWeekdays) and/or set one-off date overrides (dateOverrides). " +
		"When the user requests plan changes (swap exercises, change split, adjust volume, make it more specific, etc.), set did_update_plan=true and return updated_plan with the FULL updated plan that matches the plan schema. Otherwise set did_update_plan=false and updated_plan=null. " +
		"When the user requests schedule changes (e.g., 'move my workouts to Tue/Thu/Sat', 'change my training days'), set did_update_calendar=true and return updated_calendar with trainingWeekdays as integers (0=Sun..6=Sat) and dateOverrides as an object keyed by YYYY-MM-DD. " +
		"Use dateOverrides for one-off changes that should NOT affect other weeks (e.g., 'only next Monday make it a rest day', 'swap only this Friday workout to Day 1', or 'make a custom workout for only 2026-02-10'). For removal, set a specific date's override value to null. Otherwise set did_update_calendar=false and updated_calendar=null. " +
		"If the user asks about weights to use, prefer RPE guidance; if baseline lifts are provided, you may suggest rough % ranges. " +
		"Be safe: avoid medical claims; if user reports injury/pain, suggest seeing a professional and offer safer modifications."
)

type LLMCoach struct {
	client llm.JSONResponder
}

func NewLLMCoach(client llm.JSONResponder) *LLMCoach {
	return &LLMCoach{client: client}
}

func (c *LLMCoach) Reply(ctx context.Context, req Request) (*Result, error) {
	profile, err := contextMessage("USER_PROFILE_JSON", req.UserProfile)
	if err != nil {
		return nil, err
	}
	plan, err := contextMessage("CURRENT_PLAN_JSON", req.Plan)
	if err != nil {
		return nil, err
	}
	calendar, err := contextMessage("CALENDAR_CONTEXT_JSON", req.Calendar)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(req.Messages)+4)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt}, profile, plan, calendar)
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	var result Result
	err = c.client.RespondJSON(ctx, llm.Request{
		Name:            coachSchemaName,
		Schema:          ResultSchema(),
		Messages:        messages,
		Temperature:     coachTemperature,
		MaxOutputTokens: coachMaxOutputTokens,
	}, &result)
	if err != nil {
		return nil, err
	}

	if err := Check(&result); err != nil {
		return nil, &llm.UpstreamError{Message: err.Error()}
	}
	return &result, nil
}
