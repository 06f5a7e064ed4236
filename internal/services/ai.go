package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/velora-hq/velora-api/internal/analytics"
	"github.com/velora-hq/velora-api/internal/models"
)

var (
	ErrAIUnavailable      = errors.New("AI service is not configured")
	ErrInvalidInsightType = errors.New("insight type must be general, tasks, milestones, or growth")
)

// InsightType selects the angle of an AI insight request.
type InsightType string

const (
	InsightTypeGeneral    InsightType = "general"
	InsightTypeTasks      InsightType = "tasks"
	InsightTypeMilestones InsightType = "milestones"
	InsightTypeGrowth     InsightType = "growth"
)

// Valid reports whether the insight type is one of the known angles.
func (t InsightType) Valid() bool {
	switch t {
	case InsightTypeGeneral, InsightTypeTasks, InsightTypeMilestones, InsightTypeGrowth:
		return true
	}
	return false
}

// AIService wraps the OpenAI client for insight and pitch generation.
// A nil client means no API key was configured; calls fail fast.
type AIService struct {
	client *openai.Client
}

// NewAIService creates a new AIService. An empty apiKey leaves the
// service disabled rather than failing startup.
func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return &AIService{}
	}
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// Enabled reports whether an API key was configured
func (s *AIService) Enabled() bool {
	return s.client != nil
}

func insightFocus(insightType InsightType) string {
	switch insightType {
	case InsightTypeTasks:
		return "Focus on task execution: backlog health, completion rate, and which tasks the team should prioritize next."
	case InsightTypeMilestones:
		return "Focus on milestone progress: which milestones are at risk, which are on track, and how to sequence the remaining work."
	case InsightTypeGrowth:
		return "Focus on growth: what the feedback ratings and team activity suggest about product-market fit and where to invest next."
	default:
		return "Give a general assessment of how the startup is executing and the top three things the founder should act on."
	}
}

// GenerateInsight asks the model for actionable advice grounded in the
// workspace's current summary numbers.
func (s *AIService) GenerateInsight(ctx context.Context, workspace *models.Workspace, summary *analytics.Summary, insightType InsightType) (string, error) {
	if s.client == nil {
		return "", ErrAIUnavailable
	}
	if insightType == "" {
		insightType = InsightTypeGeneral
	}
	if !insightType.Valid() {
		return "", ErrInvalidInsightType
	}

	prompt := fmt.Sprintf(`You are an AI assistant designed to help startup founders identify key actions.

Startup profile:
Name: %s
Industry: %s
Stage: %s
Description: %s

Current numbers:
Team size: %d
Tasks: %d total, %d completed (%d%% completion rate)
Milestones: %d total
Feedback entries: %d, average rating %.1f out of 5

%s

Respond with concise, actionable advice in plain text. Do not repeat the numbers back.`,
		workspace.Name, workspace.Industry, workspace.Stage, workspace.Description,
		summary.TeamSize,
		summary.TotalTasks, summary.CompletedTasks, summary.CompletionRate,
		summary.TotalMilestones,
		summary.TotalFeedback, summary.AvgRating,
		insightFocus(insightType))

	return s.complete(ctx, prompt, 0.7)
}

// GeneratePitch drafts an investor pitch from the workspace profile and
// its traction numbers.
func (s *AIService) GeneratePitch(ctx context.Context, workspace *models.Workspace, summary *analytics.Summary, finance *analytics.FinanceSummary) (string, error) {
	if s.client == nil {
		return "", ErrAIUnavailable
	}

	var traction strings.Builder
	fmt.Fprintf(&traction, "Team of %d. %d of %d tasks completed.", summary.TeamSize, summary.CompletedTasks, summary.TotalTasks)
	if summary.TotalFeedback > 0 {
		fmt.Fprintf(&traction, " Average customer feedback rating %.1f/5 across %d entries.", summary.AvgRating, summary.TotalFeedback)
	}
	if finance != nil {
		fmt.Fprintf(&traction, " Total income %.0f, total expenses %.0f, net balance %.0f.",
			finance.TotalIncome, finance.TotalExpenses, finance.NetBalance)
	}

	prompt := fmt.Sprintf(`You are an expert in crafting investor pitches.

Based on the following startup data, generate a compelling investor pitch:

Company Name: %s
Industry: %s
Stage: %s
What it does: %s
Traction: %s

Structure the pitch as short sections covering the problem, the solution, traction, and the ask. Plain text only.`,
		workspace.Name, workspace.Industry, workspace.Stage, workspace.Description, traction.String())

	return s.complete(ctx, prompt, 0.8)
}

func (s *AIService) complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
