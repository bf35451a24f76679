package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hourglass-ai/hourglass/pkg/logger"
	"github.com/hourglass-ai/hourglass/pkg/providers"
)

// ErrToolNotFound reports an Execute against an unregistered name.
var ErrToolNotFound = errors.New("tool not found")

// Registry maps tool names to implementations. Registration order is
// preserved so Definitions is stable across calls; re-registering a name
// replaces the tool in place without changing its position.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		logger.DebugCF("tool", "Replacing registered tool", map[string]any{"tool": name})
	} else {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Definitions returns the function schemas in registration order.
func (r *Registry) Definitions() []providers.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]providers.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, ToDefinition(r.tools[name]))
	}
	return defs
}

// Execute invokes a tool by name. A missing tool and a panicking tool both
// come back as failed results, never as control-flow failures.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result *ToolResult) {
	logger.InfoCF("tool", "Tool execution started",
		map[string]any{
			"tool": name,
			"args": args,
		})

	tool, ok := r.Get(name)
	if !ok {
		logger.ErrorCF("tool", "Tool not found", map[string]any{"tool": name})
		return ErrorResult(fmt.Sprintf("%v: %q", ErrToolNotFound, name))
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorCF("tool", "Tool panicked",
				map[string]any{
					"tool":  name,
					"panic": fmt.Sprint(rec),
				})
			result = ErrorResult(fmt.Sprintf("tool %q failed: %v", name, rec))
		}
	}()

	start := time.Now()
	result = tool.Execute(ctx, args)
	duration := time.Since(start)

	if result == nil {
		result = ErrorResult(fmt.Sprintf("tool %q returned no result", name))
	}

	if !result.Success {
		logger.ErrorCF("tool", "Tool execution failed",
			map[string]any{
				"tool":        name,
				"duration_ms": duration.Milliseconds(),
				"error":       result.Error,
			})
	} else {
		logger.InfoCF("tool", "Tool execution completed",
			map[string]any{
				"tool":        name,
				"duration_ms": duration.Milliseconds(),
			})
	}

	return result
}
