package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hourglass-ai/hourglass/pkg/providers"
)

func TestGetOrCreate(t *testing.T) {
	m := NewManager("")

	first := m.GetOrCreate("cli:alice")
	if first.Key != "cli:alice" {
		t.Errorf("expected key cli:alice, got %q", first.Key)
	}
	if len(first.Messages) != 0 {
		t.Errorf("expected empty messages, got %d", len(first.Messages))
	}

	second := m.GetOrCreate("cli:alice")
	if first != second {
		t.Error("expected same session for same key")
	}
}

func TestAddMessageAndHistory(t *testing.T) {
	m := NewManager("")
	m.AddMessage("s1", "user", "hello")
	m.AddMessage("s1", "assistant", "hi there")

	history := m.GetHistory("s1")
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[0].Content != "hello" {
		t.Errorf("unexpected first message: %+v", history[0])
	}
	if history[1].Role != "assistant" || history[1].Content != "hi there" {
		t.Errorf("unexpected second message: %+v", history[1])
	}
}

func TestGetHistoryReturnsCopy(t *testing.T) {
	m := NewManager("")
	m.AddMessage("s1", "user", "original")

	history := m.GetHistory("s1")
	history[0].Content = "mutated"
	history = append(history, providers.Message{Role: "assistant", Content: "extra"})
	_ = history

	stored := m.GetHistory("s1")
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored message, got %d", len(stored))
	}
	if stored[0].Content != "original" {
		t.Errorf("stored history mutated: %q", stored[0].Content)
	}
}

func TestGetHistoryUnknownKey(t *testing.T) {
	m := NewManager("")
	history := m.GetHistory("missing")
	if history == nil || len(history) != 0 {
		t.Errorf("expected empty slice, got %v", history)
	}
}

func TestSetHistoryIsolatesCallerSlice(t *testing.T) {
	m := NewManager("")
	m.GetOrCreate("s1")

	replacement := []providers.Message{{Role: "user", Content: "a"}}
	m.SetHistory("s1", replacement)
	replacement[0].Content = "mutated"

	stored := m.GetHistory("s1")
	if stored[0].Content != "a" {
		t.Errorf("session shares caller's slice: %q", stored[0].Content)
	}
}

func TestTruncateHistory(t *testing.T) {
	m := NewManager("")
	for _, content := range []string{"1", "2", "3", "4"} {
		m.AddMessage("s1", "user", content)
	}

	m.TruncateHistory("s1", 2)
	history := m.GetHistory("s1")
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Content != "3" || history[1].Content != "4" {
		t.Errorf("unexpected remaining messages: %+v", history)
	}

	m.TruncateHistory("s1", 0)
	if len(m.GetHistory("s1")) != 0 {
		t.Error("expected history cleared with keepLast 0")
	}
}

func TestAddFullMessagePreservesToolFields(t *testing.T) {
	m := NewManager("")
	m.AddFullMessage("s1", providers.Message{
		Role:       "tool",
		Content:    `{"success":true}`,
		ToolCallID: "call_1",
		Name:       "get_weather",
	})

	history := m.GetHistory("s1")
	if len(history) != 1 {
		t.Fatalf("expected 1 message, got %d", len(history))
	}
	if history[0].ToolCallID != "call_1" || history[0].Name != "get_weather" {
		t.Errorf("tool fields lost: %+v", history[0])
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	m := NewManager(dir)
	m.AddMessage("cli:alice", "user", "persist me")
	if err := m.Save("cli:alice"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// ':' must not survive into the filename.
	if _, err := os.Stat(filepath.Join(dir, "cli_alice.json")); err != nil {
		t.Fatalf("expected sanitized session file: %v", err)
	}

	reloaded := NewManager(dir)
	history := reloaded.GetHistory("cli:alice")
	if len(history) != 1 || history[0].Content != "persist me" {
		t.Errorf("reloaded history mismatch: %+v", history)
	}
}

func TestSaveRejectsTraversalKeys(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	for _, key := range []string{"../escape", "a/b", `a\b`, ".."} {
		m.AddMessage(key, "user", "x")
		if err := m.Save(key); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestSaveWithoutStorageIsNoop(t *testing.T) {
	m := NewManager("")
	m.AddMessage("s1", "user", "x")
	if err := m.Save("s1"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
