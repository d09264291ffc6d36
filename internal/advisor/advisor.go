// Package advisor proxies dietary questions to a text-generation model,
// grounding answers in the user's profile and most recent plan.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ayurdiet/internal/llm"
	"ayurdiet/internal/planner"
	"ayurdiet/internal/profile"
)

// Advisor handles AI-assisted dietary advice.
type Advisor struct {
	textGen llm.TextGenerator
}

// NewAdvisor creates a new Advisor instance.
func NewAdvisor(textGen llm.TextGenerator) *Advisor {
	return &Advisor{textGen: textGen}
}

// Advise answers a free-form question about Ayurvedic diet. When a plan is
// supplied the answer is grounded in it; otherwise only the profile is used.
func (a *Advisor) Advise(ctx context.Context, question string, p profile.Profile, plan *planner.Plan) (llm.ContentResponse, error) {
	if strings.TrimSpace(question) == "" {
		return llm.ContentResponse{}, fmt.Errorf("empty question")
	}

	var contextBuilder strings.Builder
	fmt.Fprintf(&contextBuilder, "User constitution (dosha): %s\n", p.PrimaryDosha())
	if len(p.Goals) > 0 {
		fmt.Fprintf(&contextBuilder, "Health goals: %s\n", strings.Join(p.Goals, ", "))
	}
	if len(p.Conditions) > 0 {
		fmt.Fprintf(&contextBuilder, "Medical conditions: %s\n", strings.Join(p.Conditions, ", "))
	}

	if plan != nil {
		planJSON, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return llm.ContentResponse{}, fmt.Errorf("failed to marshal plan for prompt: %w", err)
		}
		fmt.Fprintf(&contextBuilder, "\nCurrent diet plan:\n%s\n", planJSON)
	}

	prompt := fmt.Sprintf(`
You are an Ayurvedic dietary advisor. Answer the user's question using the
context below. Keep the answer practical and under 200 words. If the question
asks for medical advice beyond diet, say so and recommend consulting a doctor.

Context:
%s

Question: "%s"
`, contextBuilder.String(), question)

	resp, err := a.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return llm.ContentResponse{}, fmt.Errorf("failed to generate advice: %w", err)
	}
	return resp, nil
}

// ExplainPlan asks the model for a short narrative summary of a generated
// plan, suitable for showing alongside the raw slot listing.
func (a *Advisor) ExplainPlan(ctx context.Context, plan *planner.Plan) (llm.ContentResponse, error) {
	if plan == nil {
		return llm.ContentResponse{}, fmt.Errorf("nil plan")
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return llm.ContentResponse{}, fmt.Errorf("failed to marshal plan for prompt: %w", err)
	}

	prompt := fmt.Sprintf(`
You are an Ayurvedic dietary advisor. Summarize the following generated diet
plan for the user in 3-4 sentences: why the foods suit their %s constitution
in %s season, and one tip for following it.

Plan:
%s
`, plan.Dosha, plan.Season, planJSON)

	resp, err := a.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return llm.ContentResponse{}, fmt.Errorf("failed to generate plan summary: %w", err)
	}
	return resp, nil
}
