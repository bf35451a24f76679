package agent

import (
	"context"
	"encoding/json"

	"github.com/hourglass-ai/hourglass/pkg/logger"
	"github.com/hourglass-ai/hourglass/pkg/providers"
	"github.com/hourglass-ai/hourglass/pkg/tools"
)

const generalSystemPrompt = `You are a helpful assistant with access to the following tools:

1. When the user asks for the current time, date or weekday, use the get_current_time tool.
2. When the user asks about the weather, use the get_weather tool.
3. When the user asks about stocks, use the get_stock_info tool.
4. When the user needs a calculation, use the calculate tool.

Pick the appropriate tool for the question, or answer directly.`

const summarizeSystemPrompt = "Based on the conversation history and the tool results, give the user a friendly, natural summary answer."

const generalApology = "Sorry, something went wrong while handling your request: "

const fallbackAnswer = "Sorry, I cannot provide an answer."

// GeneralAgent handles every non-time turn: one model decision, at most
// one tool execution, then an answer.
type GeneralAgent struct {
	provider providers.LLMProvider
	registry *tools.Registry
	model    string
	options  map[string]any
}

type GeneralOption func(*GeneralAgent)

// WithCompletionOptions sets extra request options (max_tokens,
// temperature) for the decision call.
func WithCompletionOptions(options map[string]any) GeneralOption {
	return func(a *GeneralAgent) {
		a.options = options
	}
}

func NewGeneralAgent(provider providers.LLMProvider, registry *tools.Registry, model string, opts ...GeneralOption) *GeneralAgent {
	if model == "" {
		model = provider.GetDefaultModel()
	}
	a := &GeneralAgent{
		provider: provider,
		registry: registry,
		model:    model,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Run processes one user turn against the given history and returns the
// reply plus the updated transcript. The caller's slice is not mutated.
func (a *GeneralAgent) Run(ctx context.Context, history []providers.Message, userInput string) (string, []providers.Message) {
	messages := a.decide(ctx, history, userInput)

	if n := len(messages); n > 0 && messages[n-1].Role == "assistant" && len(messages[n-1].ToolCalls) > 0 {
		messages = a.executeTool(ctx, messages)
	}

	return a.answer(ctx, messages)
}

// decide asks the model whether to call a tool. On upstream failure it
// appends an apology instead, so the turn still ends in an assistant
// message.
func (a *GeneralAgent) decide(ctx context.Context, history []providers.Message, userInput string) []providers.Message {
	request := []providers.Message{{Role: "system", Content: generalSystemPrompt}}
	for _, msg := range history {
		if msg.Role != "system" {
			request = append(request, msg)
		}
	}
	if !hasUserMessage(request, userInput) {
		request = append(request, providers.Message{Role: "user", Content: userInput})
	}

	transcript := append([]providers.Message(nil), history...)
	if !hasUserMessage(transcript, userInput) {
		transcript = append(transcript, providers.Message{Role: "user", Content: userInput})
	}

	response, err := a.provider.Chat(ctx, request, a.registry.Definitions(), a.model, a.options)
	if err != nil {
		logger.ErrorCF("general_agent", "Decision call failed", map[string]any{"error": err.Error()})
		return append(transcript, providers.Message{
			Role:    "assistant",
			Content: generalApology + err.Error(),
		})
	}

	if len(response.ToolCalls) > 0 {
		return append(transcript, providers.Message{
			Role:      "assistant",
			ToolCalls: response.ToolCalls,
		})
	}

	content := response.Content
	if content == "" {
		content = fallbackAnswer
	}
	return append(transcript, providers.Message{Role: "assistant", Content: content})
}

// executeTool runs the first requested tool call and appends its result
// as a tool message. Later calls in the same decision are ignored.
func (a *GeneralAgent) executeTool(ctx context.Context, messages []providers.Message) []providers.Message {
	call := messages[len(messages)-1].ToolCalls[0]

	args := call.Arguments
	if args == nil && call.Function != nil {
		args = providers.ParseToolArguments(call.Function.Arguments)
	}
	if args == nil {
		args = map[string]any{}
	}

	result := a.registry.Execute(ctx, call.Name, args)
	return append(messages, providers.Message{
		Role:       "tool",
		Content:    result.ForLLM(),
		Name:       call.Name,
		ToolCallID: call.ID,
	})
}

// answer produces the final reply. A trailing tool result triggers a
// second model call to phrase it; otherwise the decision's answer
// stands as-is.
func (a *GeneralAgent) answer(ctx context.Context, messages []providers.Message) (string, []providers.Message) {
	n := len(messages)
	if n == 0 {
		return fallbackAnswer, messages
	}

	last := messages[n-1]
	if last.Role == "assistant" {
		if last.Content == "" {
			return fallbackAnswer, messages
		}
		return last.Content, messages
	}
	if last.Role != "tool" {
		return fallbackAnswer, messages
	}

	transcriptJSON, err := json.Marshal(messages)
	if err != nil {
		transcriptJSON = []byte("[]")
	}

	request := []providers.Message{
		{Role: "system", Content: summarizeSystemPrompt},
		{Role: "user", Content: "Summarize the following conversation and tool results:\n" + string(transcriptJSON)},
	}

	response, err := a.provider.Chat(ctx, request, nil, a.model, map[string]any{"max_tokens": 200})
	if err != nil {
		logger.ErrorCF("general_agent", "Summary call failed", map[string]any{"error": err.Error()})
		reply := generalApology + err.Error()
		return reply, append(messages, providers.Message{Role: "assistant", Content: reply})
	}

	reply := response.Content
	if reply == "" {
		reply = fallbackAnswer
	}
	return reply, append(messages, providers.Message{Role: "assistant", Content: reply})
}

func hasUserMessage(messages []providers.Message, content string) bool {
	for _, msg := range messages {
		if msg.Role == "user" && msg.Content == content {
			return true
		}
	}
	return false
}
