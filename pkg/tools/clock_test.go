package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newFixedClock(defaultTZ string) *ClockTool {
	tool := NewClockTool(defaultTZ)
	tool.now = func() time.Time {
		return time.Date(2026, 3, 2, 12, 30, 45, 0, time.UTC)
	}
	return tool
}

func TestClock_FormatBoth(t *testing.T) {
	tool := newFixedClock("Asia/Shanghai")
	result := tool.Execute(context.Background(), map[string]any{
		"timezone": "Asia/Tokyo",
		"format":   "both",
	})
	if !result.Success {
		t.Fatalf("expected success, got %s", result.Error)
	}
	data := result.Data.(map[string]any)
	assert.Equal(t, "Asia/Tokyo", data["timezone"])
	assert.Equal(t, "21:30:45", data["time"])
	assert.Equal(t, "2026-03-02 (Monday)", data["date"])
}

func TestClock_FormatTimeOnly(t *testing.T) {
	tool := newFixedClock("UTC")
	result := tool.Execute(context.Background(), map[string]any{"format": "time"})
	if !result.Success {
		t.Fatalf("expected success, got %s", result.Error)
	}
	data := result.Data.(map[string]any)
	assert.Equal(t, "12:30:45", data["time"])
	_, hasDate := data["date"]
	assert.False(t, hasDate)
}

func TestClock_DefaultsToConfiguredTimezone(t *testing.T) {
	tool := newFixedClock("Asia/Shanghai")
	result := tool.Execute(context.Background(), map[string]any{})
	if !result.Success {
		t.Fatalf("expected success, got %s", result.Error)
	}
	data := result.Data.(map[string]any)
	assert.Equal(t, "Asia/Shanghai", data["timezone"])
	assert.Equal(t, "20:30:45", data["time"])
}

func TestClock_UnknownTimezone(t *testing.T) {
	tool := newFixedClock("UTC")
	result := tool.Execute(context.Background(), map[string]any{"timezone": "Mars/Olympus"})
	if result.Success {
		t.Fatal("expected failure for unknown timezone")
	}
	assert.Contains(t, result.Error, "Mars/Olympus")
	assert.Contains(t, result.Error, "Asia/Shanghai")
}

func TestClock_UnknownFormat(t *testing.T) {
	tool := newFixedClock("UTC")
	result := tool.Execute(context.Background(), map[string]any{"format": "iso"})
	assert.False(t, result.Success)
}
