package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/lumi/internal/llm"
	"github.com/abhisek/lumi/internal/logger"
	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/vault"
)

// Generative asks the model for the daily plan and mistake variants and
// serves everything else from the wrapped provider. Any generation error
// falls back to the wrapped provider's answer.
type Generative struct {
	Provider
	llm llm.Provider
	log *logger.Logger
}

// NewGenerative wraps fallback. log may be nil.
func NewGenerative(fallback Provider, provider llm.Provider, log *logger.Logger) *Generative {
	if log == nil {
		log = logger.Nop()
	}
	return &Generative{Provider: fallback, llm: provider, log: log}
}

type planOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tasks       []struct {
		Title           string `json:"title"`
		Subject         string `json:"subject"`
		DurationMinutes int    `json:"duration_minutes"`
		Rationale       string `json:"rationale"`
	} `json:"tasks"`
}

type variantOutput struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
}

func (g *Generative) DailyPlan(ctx context.Context) (plan.DayPlan, error) {
	fallback, err := g.Provider.DailyPlan(ctx)
	if err != nil {
		return plan.DayPlan{}, err
	}
	p, err := g.generatePlan(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return plan.DayPlan{}, ctx.Err()
		}
		g.log.Warn("plan generation failed, using content pack", "error", err)
		return fallback, nil
	}
	return p, nil
}

func (g *Generative) generatePlan(ctx context.Context, fallback plan.DayPlan) (plan.DayPlan, error) {
	stats, err := g.Provider.UserStats(ctx)
	if err != nil {
		return plan.DayPlan{}, err
	}
	groups, err := g.Provider.MistakeVault(ctx)
	if err != nil {
		return plan.DayPlan{}, err
	}

	ctx = llm.WithPurpose(ctx, "daily-plan")
	resp, err := g.llm.Generate(ctx, llm.Request{
		System: planSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlanUserMessage(stats, vault.New(groups).Pending())},
		},
		Schema:      PlanSchema,
		MaxTokens:   1024,
		Temperature: 0.4,
	})
	if err != nil {
		return plan.DayPlan{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw planOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return plan.DayPlan{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Tasks) == 0 {
		return plan.DayPlan{}, fmt.Errorf("generated plan has no tasks")
	}

	out := plan.DayPlan{
		ID:          "plan-" + uuid.NewString(),
		Title:       raw.Title,
		Description: raw.Description,
		TotalXP:     fallback.TotalXP,
	}
	for i, t := range raw.Tasks {
		subj, err := subject.Parse(t.Subject)
		if err != nil {
			return plan.DayPlan{}, fmt.Errorf("task %d: %w", i+1, err)
		}
		out.Tasks = append(out.Tasks, plan.Task{
			ID:              fmt.Sprintf("t%d", i+1),
			Title:           t.Title,
			Subject:         subj,
			DurationMinutes: t.DurationMinutes,
			Rationale:       t.Rationale,
		})
	}
	return out, nil
}

func (g *Generative) Variant(ctx context.Context, mistakeID string) (quiz.Item, error) {
	groups, err := g.Provider.MistakeVault(ctx)
	if err != nil {
		return quiz.Item{}, err
	}
	src, err := vault.New(groups).Find(mistakeID)
	if err != nil {
		return quiz.Item{}, fmt.Errorf("%w: %q", ErrUnknownMistake, mistakeID)
	}

	it, err := g.generateVariant(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return quiz.Item{}, ctx.Err()
		}
		g.log.Warn("variant generation failed, using content pack", "mistake", mistakeID, "error", err)
		return g.Provider.Variant(ctx, mistakeID)
	}
	return it, nil
}

func (g *Generative) generateVariant(ctx context.Context, src vault.Item) (quiz.Item, error) {
	ctx = llm.WithPurpose(ctx, "mistake-variant")
	resp, err := g.llm.Generate(ctx, llm.Request{
		System: variantSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildVariantUserMessage(src)},
		},
		Schema:      VariantSchema,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return quiz.Item{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw variantOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return quiz.Item{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	it := quiz.Item{
		ID:          "variant-" + uuid.NewString(),
		Kind:        quiz.SingleChoice,
		Tag:         "变式训练",
		Prompt:      raw.Prompt,
		Options:     raw.Options,
		Correct:     quiz.Single(raw.Correct),
		Explanation: raw.Explanation,
	}
	if err := it.Validate(); err != nil {
		return quiz.Item{}, err
	}
	return it, nil
}
