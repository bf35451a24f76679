// Package intent decides how a user turn should be routed: to the time
// sub-agent, to the general agent, or back to the user as a clarifying
// question.
package intent

import (
	"context"
	"strings"

	"github.com/hourglass-ai/hourglass/pkg/logger"
	"github.com/hourglass-ai/hourglass/pkg/providers"
)

// Result is the classification of a single user turn.
type Result string

const (
	TimeRelated     Result = "time-related"
	NonTimeRelated  Result = "non-time-related"
	CannotDetermine Result = "cannot-determine"
	Unknown         Result = "unknown"
)

const classifySystemPrompt = `You are an intent classifier. Decide whether the user's question is about time or dates.

Rules:
1. Analyze the user's question.
2. If it concerns time or dates, reply exactly: time-related
3. If it does not, reply exactly: non-time-related
4. If you cannot tell, reply exactly: cannot-determine

Time-related questions include, but are not limited to:
- asking the current time, date, or weekday
- asking when an event happens
- timezone conversion
- time differences
- date arithmetic (e.g. what date is 3 days from today)

Reply with only one of "time-related", "non-time-related" or "cannot-determine" and nothing else.`

const clarifySystemPrompt = `You are a conversational assistant. When the user's intent is unclear, ask one short question that helps them state it.

Rules:
1. Analyze the ambiguous input.
2. Produce one short, polite question that helps the user express their intent.
3. Pay special attention to whether the question might be about time, and guide the user to confirm that.

Examples:
- Input: "How about today?"
  Reply: "Would you like to know the current time and date, or something else about today?"
- Input: "Tomorrow's plan?"
  Reply: "Are you asking for tomorrow's date and time, or about your schedule for tomorrow?"

Keep the question short and friendly. Do not answer, only ask.`

// DefaultClarification is returned when the clarifying-question call to
// the model itself fails.
const DefaultClarification = "Are you asking about time-related information, or something else?"

// Classifier labels user turns and generates clarifying questions.
type Classifier struct {
	provider providers.LLMProvider
	model    string
}

func NewClassifier(provider providers.LLMProvider, model string) *Classifier {
	if model == "" {
		model = provider.GetDefaultModel()
	}
	return &Classifier{provider: provider, model: model}
}

// Classify labels the input. Any upstream failure or off-script model
// reply maps to Unknown; Classify never returns an error.
func (c *Classifier) Classify(ctx context.Context, input string) Result {
	messages := []providers.Message{
		{Role: "system", Content: classifySystemPrompt},
		{Role: "user", Content: input},
	}

	response, err := c.provider.Chat(ctx, messages, nil, c.model, map[string]any{
		"max_tokens":  10,
		"temperature": 0.0,
	})
	if err != nil {
		logger.ErrorCF("intent", "Classification failed", map[string]any{"error": err.Error()})
		return Unknown
	}

	label := Result(strings.TrimSpace(response.Content))
	switch label {
	case TimeRelated, NonTimeRelated, CannotDetermine:
		return label
	}
	logger.WarnCF("intent", "Unexpected classification label", map[string]any{"label": string(label)})
	return Unknown
}

// Clarify produces a clarifying question for an ambiguous input. On
// failure it falls back to DefaultClarification.
func (c *Classifier) Clarify(ctx context.Context, input string) string {
	messages := []providers.Message{
		{Role: "system", Content: clarifySystemPrompt},
		{Role: "user", Content: input},
	}

	response, err := c.provider.Chat(ctx, messages, nil, c.model, map[string]any{
		"max_tokens":  50,
		"temperature": 0.7,
	})
	if err != nil {
		logger.ErrorCF("intent", "Clarification failed", map[string]any{"error": err.Error()})
		return DefaultClarification
	}

	question := strings.TrimSpace(response.Content)
	if question == "" {
		return DefaultClarification
	}
	return question
}

// Process classifies the input and, when the label is CannotDetermine
// or Unknown, pairs it with a clarifying question. For decisive labels
// the question is empty.
func (c *Classifier) Process(ctx context.Context, input string) (Result, string) {
	result := c.Classify(ctx, input)
	if result == CannotDetermine || result == Unknown {
		return result, c.Clarify(ctx, input)
	}
	return result, ""
}
