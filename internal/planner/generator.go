// Package planner turns an intake form into a validated weekly workout plan.
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"workoutplanner/internal/llm"
	"workoutplanner/internal/model"
)

const (
	planSchemaName      = "workout_plan"
	planTemperature     = 0.4
	planMaxOutputTokens = 1200

	systemPrompt = "You are a strength & conditioning coach. Build safe, practical gym programs for general audiences. " +
		"Avoid medical claims. If the user mentions injuries (they did not), recommend seeing a professional."

	userPrompt = "Create a weekly workout plan for a user based on this intake JSON. " +
		"Use a typical commercial gym (machines + free weights). " +
		"If strength baselines are missing, assume a novice and use RPE guidance instead of exact loads. " +
		"Include rest days implicitly (only output training days). " +
		"Prioritize good technique cues and sustainable progression.\n\n"
)

type Generator interface {
	Generate(ctx context.Context, form model.FormData) (*model.WorkoutPlan, error)
}

type LLMGenerator struct {
	client llm.JSONResponder
}

func NewLLMGenerator(client llm.JSONResponder) *LLMGenerator {
	return &LLMGenerator{client: client}
}

// Generate validates the form, asks the model for a plan and checks the result
// against the generator bounds. A plan that fails them is an upstream error.
func (g *LLMGenerator) Generate(ctx context.Context, form model.FormData) (*model.WorkoutPlan, error) {
	intake, err := BuildIntake(form)
	if err != nil {
		return nil, err
	}

	summary, err := json.MarshalIndent(intake, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode intake: %w", err)
	}

	var plan model.WorkoutPlan
	err = g.client.RespondJSON(ctx, llm.Request{
		Name:   planSchemaName,
		Schema: PlanSchema(),
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt + string(summary)},
		},
		Temperature:     planTemperature,
		MaxOutputTokens: planMaxOutputTokens,
	}, &plan)
	if err != nil {
		return nil, err
	}

	if err := ValidatePlan(&plan, ModeGenerated); err != nil {
		return nil, &llm.UpstreamError{Message: err.Error()}
	}
	return &plan, nil
}
