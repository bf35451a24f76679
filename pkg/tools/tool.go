package tools

import (
	"context"
	"encoding/json"

	"github.com/hourglass-ai/hourglass/pkg/providers"
)

// Tool is a named, schema-described synchronous capability the model may
// request. Execute never panics across the registry boundary; failures are
// reported through the result.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) *ToolResult
}

// ToolResult is the tagged outcome of a tool invocation: either Data on
// success or Error text on failure.
type ToolResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResult(data any) *ToolResult {
	return &ToolResult{Success: true, Data: data}
}

func ErrorResult(message string) *ToolResult {
	return &ToolResult{Success: false, Error: message}
}

// ForLLM serializes the result for a tool-role message.
func (r *ToolResult) ForLLM() string {
	b, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"error":"unserializable tool result"}`
	}
	return string(b)
}

// ToDefinition renders a tool as the function schema sent to the model.
func ToDefinition(t Tool) providers.ToolDefinition {
	return providers.ToolDefinition{
		Type: "function",
		Function: providers.ToolFunctionDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		},
	}
}
