package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hourglass-ai/hourglass/pkg/logger"
	"github.com/hourglass-ai/hourglass/pkg/providers"
	"github.com/hourglass-ai/hourglass/pkg/tools"
)

const timeAgentRefusal = "Sorry, I am a time assistant and can only answer questions about times and dates."

const (
	timeStateDecide    = "decide"
	timeStateCallTool  = "call_tool"
	timeStateSummarize = "summarize"
	timeStateEnd       = "end"
)

// TimeAgent answers world-clock questions with a fixed three-step
// workflow: extract locations, resolve timezones, fetch and summarize
// the current time per timezone. It never calls the language model.
type TimeAgent struct {
	registry        *tools.Registry
	defaultTimezone string
}

func NewTimeAgent(registry *tools.Registry, defaultTimezone string) *TimeAgent {
	return &TimeAgent{
		registry:        registry,
		defaultTimezone: defaultTimezone,
	}
}

type timeAgentState struct {
	messages  []providers.Message
	requested []locationRequest
	next      string
}

// Run drives the state machine over a copy of the conversation and
// returns the final assistant reply plus the full transcript. The
// caller's slice is never mutated, and exactly one new trailing
// assistant message is always present on return.
func (a *TimeAgent) Run(ctx context.Context, conversation []providers.Message) (string, []providers.Message) {
	state := &timeAgentState{
		messages: append([]providers.Message(nil), conversation...),
		next:     timeStateDecide,
	}

	for state.next != timeStateEnd {
		switch state.next {
		case timeStateDecide:
			a.decide(state)
		case timeStateCallTool:
			a.callTool(ctx, state)
		case timeStateSummarize:
			a.summarize(ctx, state)
		default:
			state.next = timeStateEnd
		}
	}

	reply := ""
	if n := len(state.messages); n > 0 && state.messages[n-1].Role == "assistant" {
		reply = state.messages[n-1].Content
	}
	return reply, state.messages
}

func (a *TimeAgent) decide(state *timeAgentState) {
	// A trailing tool result means the calls already ran.
	if n := len(state.messages); n > 0 && state.messages[n-1].Role == "tool" {
		state.next = timeStateSummarize
		return
	}

	question := firstUserContent(state.messages)

	if !containsTimeKeyword(question) {
		state.messages = append(state.messages, providers.Message{
			Role:    "assistant",
			Content: timeAgentRefusal,
		})
		state.next = timeStateEnd
		return
	}

	requested := extractLocations(question)
	if len(requested) == 0 {
		requested = []locationRequest{{Timezone: a.defaultTimezone}}
	}
	logger.DebugCF("time_agent", "Resolved locations", map[string]any{
		"question":  question,
		"locations": len(requested),
	})

	toolCalls := make([]providers.ToolCall, 0, len(requested))
	for _, req := range requested {
		args := map[string]any{"format": "both", "timezone": req.Timezone}
		toolCalls = append(toolCalls, providers.ToolCall{
			ID:   uuid.NewString(),
			Type: "function",
			Function: &providers.FunctionCall{
				Name:      "get_current_time",
				Arguments: providers.EncodeToolArguments(args),
			},
			Name:      "get_current_time",
			Arguments: args,
		})
	}

	state.messages = append(state.messages, providers.Message{
		Role:      "assistant",
		ToolCalls: toolCalls,
	})
	state.requested = requested
	state.next = timeStateCallTool
}

func (a *TimeAgent) callTool(ctx context.Context, state *timeAgentState) {
	n := len(state.messages)
	if n == 0 || state.messages[n-1].Role != "assistant" || len(state.messages[n-1].ToolCalls) == 0 {
		state.messages = append(state.messages, providers.Message{
			Role:    "assistant",
			Content: "Sorry, I could not recognize the tool call.",
		})
		state.next = timeStateEnd
		return
	}

	// Each call fails or succeeds on its own; one bad timezone does not
	// abort the rest.
	for _, call := range state.messages[n-1].ToolCalls {
		args := call.Arguments
		if args == nil && call.Function != nil {
			args = providers.ParseToolArguments(call.Function.Arguments)
		}

		result := a.registry.Execute(ctx, call.Name, args)
		state.messages = append(state.messages, providers.Message{
			Role:       "tool",
			Content:    result.ForLLM(),
			Name:       call.Name,
			ToolCallID: call.ID,
		})
	}

	state.next = timeStateSummarize
}

func (a *TimeAgent) summarize(ctx context.Context, state *timeAgentState) {
	requested := state.requested
	if len(requested) == 0 {
		// Reached via a pre-seeded tool result: recover the locations
		// from the question itself.
		requested = extractLocations(firstUserContent(state.messages))
	}
	if len(requested) == 0 {
		requested = []locationRequest{{Timezone: a.defaultTimezone}}
	}

	clauses := make([]string, 0, len(requested))
	for _, req := range requested {
		result := a.registry.Execute(ctx, "get_current_time", map[string]any{
			"format":   "both",
			"timezone": req.Timezone,
		})
		if !result.Success {
			continue
		}
		data, ok := result.Data.(map[string]any)
		if !ok {
			continue
		}
		clockTime, _ := data["time"].(string)
		clockDate, _ := data["date"].(string)

		switch {
		case clockTime != "" && clockDate != "":
			clauses = append(clauses, timeClause(req.Location, fmt.Sprintf("current time is %s, today is %s", clockTime, clockDate)))
		case clockTime != "":
			clauses = append(clauses, timeClause(req.Location, fmt.Sprintf("current time is %s", clockTime)))
		case clockDate != "":
			clauses = append(clauses, timeClause(req.Location, fmt.Sprintf("today is %s", clockDate)))
		}
	}

	var summary string
	switch len(clauses) {
	case 0:
		summary = "Unable to summarize the time lookup results."
	case 1:
		summary = clauses[0] + "."
	case 2:
		summary = strings.Join(clauses, "; ") + "."
	default:
		summary = "• " + strings.Join(clauses, "\n• ") + "."
	}

	state.messages = append(state.messages, providers.Message{
		Role:    "assistant",
		Content: summary,
	})
	state.next = timeStateEnd
}

func timeClause(location, body string) string {
	if location == "" {
		return "The " + body
	}
	return location + "'s " + body
}

func firstUserContent(messages []providers.Message) string {
	for _, msg := range messages {
		if msg.Role == "user" {
			return msg.Content
		}
	}
	return ""
}
