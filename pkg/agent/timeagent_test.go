package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hourglass-ai/hourglass/pkg/providers"
	"github.com/hourglass-ai/hourglass/pkg/tools"
)

// fakeClockTool returns a fixed time for any timezone and records every
// timezone it was asked about.
type fakeClockTool struct {
	requested []string
	fail      bool
}

func (f *fakeClockTool) Name() string               { return "get_current_time" }
func (f *fakeClockTool) Description() string        { return "fixed clock" }
func (f *fakeClockTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (f *fakeClockTool) Execute(_ context.Context, args map[string]any) *tools.ToolResult {
	tz, _ := args["timezone"].(string)
	f.requested = append(f.requested, tz)
	if f.fail {
		return tools.ErrorResult("clock unavailable")
	}
	return tools.SuccessResult(map[string]any{
		"timezone": tz,
		"time":     "10:00:00",
		"date":     "2026-01-05 (Monday)",
	})
}

func newTimeAgentWithClock(fail bool) (*TimeAgent, *fakeClockTool) {
	clock := &fakeClockTool{fail: fail}
	registry := tools.NewRegistry()
	registry.Register(clock)
	return NewTimeAgent(registry, "Asia/Shanghai"), clock
}

func userTurn(content string) []providers.Message {
	return []providers.Message{{Role: "user", Content: content}}
}

func TestTimeAgent_TwoCitiesTwoCallsSemicolonSummary(t *testing.T) {
	agent, _ := newTimeAgentWithClock(false)

	reply, transcript := agent.Run(context.Background(), userTurn("北京现在几点？东京呢？"))

	var assistantCalls []providers.ToolCall
	toolMessages := 0
	for _, msg := range transcript {
		if msg.Role == "assistant" && len(msg.ToolCalls) > 0 {
			assistantCalls = msg.ToolCalls
		}
		if msg.Role == "tool" {
			toolMessages++
		}
	}

	if len(assistantCalls) != 2 {
		t.Fatalf("expected exactly 2 tool calls, got %d", len(assistantCalls))
	}
	assert.Equal(t, 2, toolMessages)

	assert.Contains(t, reply, "北京's current time is 10:00:00")
	assert.Contains(t, reply, "东京's current time is 10:00:00")
	assert.Contains(t, reply, "today is 2026-01-05 (Monday)")
	assert.Equal(t, 1, strings.Count(reply, ";"), "two clauses join with a single semicolon")
	assert.True(t, strings.HasSuffix(reply, "."))
}

func TestTimeAgent_NoLocationUsesDefaultTimezone(t *testing.T) {
	agent, clock := newTimeAgentWithClock(false)

	reply, transcript := agent.Run(context.Background(), userTurn("现在几点了？"))

	var assistantCalls []providers.ToolCall
	for _, msg := range transcript {
		if msg.Role == "assistant" && len(msg.ToolCalls) > 0 {
			assistantCalls = msg.ToolCalls
		}
	}
	if len(assistantCalls) != 1 {
		t.Fatalf("expected exactly 1 tool call, got %d", len(assistantCalls))
	}
	assert.Equal(t, "Asia/Shanghai", clock.requested[0])

	assert.Equal(t, "The current time is 10:00:00, today is 2026-01-05 (Monday).", reply)
}

func TestTimeAgent_ThreeCitiesBulletedSummary(t *testing.T) {
	agent, _ := newTimeAgentWithClock(false)

	reply, _ := agent.Run(context.Background(), userTurn("北京、伦敦和悉尼现在几点？"))

	lines := strings.Split(reply, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 bulleted lines, got %d: %q", len(lines), reply)
	}
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "• "), "line %q", line)
	}
}

func TestTimeAgent_RefusesNonTimeQuestion(t *testing.T) {
	agent, clock := newTimeAgentWithClock(false)

	reply, transcript := agent.Run(context.Background(), userTurn("tell me a joke"))

	assert.Equal(t, timeAgentRefusal, reply)
	assert.Empty(t, clock.requested)
	assert.Equal(t, 2, len(transcript))
	assert.Equal(t, "assistant", transcript[1].Role)
}

func TestTimeAgent_ClockFailureStillAnswers(t *testing.T) {
	agent, _ := newTimeAgentWithClock(true)

	reply, transcript := agent.Run(context.Background(), userTurn("现在几点？"))

	assert.NotEmpty(t, reply)
	assert.Equal(t, "assistant", transcript[len(transcript)-1].Role)
}

func TestTimeAgent_DoesNotMutateCallerSlice(t *testing.T) {
	agent, _ := newTimeAgentWithClock(false)

	conversation := make([]providers.Message, 1, 8)
	conversation[0] = providers.Message{Role: "user", Content: "现在几点？"}

	_, transcript := agent.Run(context.Background(), conversation)

	if len(conversation) != 1 {
		t.Fatalf("caller slice grew: %d", len(conversation))
	}
	assert.Greater(t, len(transcript), 1)
	assert.Equal(t, "user", conversation[0].Role)
}

func TestTimeAgent_TrailingToolResultGoesStraightToSummary(t *testing.T) {
	agent, clock := newTimeAgentWithClock(false)

	conversation := []providers.Message{
		{Role: "user", Content: "北京现在几点？"},
		{Role: "assistant", ToolCalls: []providers.ToolCall{{ID: "call_1", Name: "get_current_time"}}},
		{Role: "tool", Content: `{"success":true}`, Name: "get_current_time", ToolCallID: "call_1"},
	}

	reply, transcript := agent.Run(context.Background(), conversation)

	assert.Contains(t, reply, "北京's current time is")
	// Only the summary re-fetch, no second round of tool messages.
	assert.Equal(t, []string{"Asia/Shanghai"}, clock.requested)
	assert.Equal(t, len(conversation)+1, len(transcript))
}
