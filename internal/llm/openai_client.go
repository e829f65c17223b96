package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical wellness coach for shift workers.

You receive one user's computed wellness scores: weekly sleep deficit, social
jetlag, ShiftLag, Shift Rhythm (with its sub-scores), binge risk, activity, and
a short history of daily rhythm scores. Base every conclusion only on the
provided data.

Your goals:
- Summarize how the last week went for this worker in plain, supportive language.
- Name the one or two factors with the most room to improve, using the scores.
- Give practical, behavioral suggestions that fit shift work (sleep windows,
  light exposure, meal timing around shifts, short activity breaks).

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- If data is limited, say so explicitly instead of guessing.
- Be concise and concrete. Three short paragraphs at most.

You must respond as strict JSON with exactly this shape:

{
  "summary": "The full coach summary as plain text."
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON with this shift worker's computed scores.

- "scores" holds today's full score set (sleep deficit, social jetlag,
  shift lag, shift rhythm, binge risk, activity).
- "daily_history" holds up to 14 recent daily Shift Rhythm totals, newest first.

JSON:

%s

Based on this data, respond in the required JSON format.`

// CoachContext is the payload sent to the model.
type CoachContext struct {
	Scores       any `json:"scores"`
	DailyHistory any `json:"daily_history"`
}

type coachOutput struct {
	Summary string `json:"summary"`
}

// CoachLLM generates the weekly coach summary.
type CoachLLM interface {
	GenerateSummary(ctx context.Context, coachCtx *CoachContext) (string, error)
	Model() string
}

// OpenAIClient implements CoachLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for the coach.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

func (c *OpenAIClient) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// GenerateSummary calls OpenAI to produce the coach summary text.
func (c *OpenAIClient) GenerateSummary(ctx context.Context, coachCtx *CoachContext) (string, error) {
	if c == nil {
		return "", ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(coachCtx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var output coachOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if output.Summary == "" {
		return "", fmt.Errorf("%w: empty summary", ErrOpenAIResponse)
	}

	return output.Summary, nil
}
