package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolArguments_RoundTrip(t *testing.T) {
	original := map[string]any{
		"city":   "Beijing",
		"count":  3.0,
		"nested": map[string]any{"unit": "metric"},
	}

	encoded := EncodeToolArguments(original)
	decoded := ParseToolArguments(encoded)
	assert.Equal(t, original, decoded)
}

func TestParseToolArguments_MalformedJSON(t *testing.T) {
	for _, raw := range []string{"", "{", "not json", `["list"]`, "42"} {
		decoded := ParseToolArguments(raw)
		if decoded == nil {
			t.Fatalf("expected empty map for %q, got nil", raw)
		}
		assert.Empty(t, decoded, "input %q", raw)
	}
}
