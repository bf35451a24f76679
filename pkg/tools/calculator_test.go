package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func calcResult(t *testing.T, expr string) *ToolResult {
	t.Helper()
	tool := NewCalculatorTool()
	return tool.Execute(context.Background(), map[string]any{"expression": expr})
}

func TestCalculator_Precedence(t *testing.T) {
	result := calcResult(t, "2+3*4")
	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	data := result.Data.(map[string]any)
	assert.Equal(t, 14.0, data["result"])
}

func TestCalculator_Expressions(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"1+1", 2},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"-3+5", 2},
		{"2*(3+(4-1))", 12},
		{" 7 - 2 ", 5},
		{"1.5*2", 3},
	}

	for _, tc := range cases {
		result := calcResult(t, tc.expr)
		if !result.Success {
			t.Errorf("%q: expected success, got %s", tc.expr, result.Error)
			continue
		}
		data := result.Data.(map[string]any)
		assert.Equal(t, tc.want, data["result"], "expression %q", tc.expr)
	}
}

func TestCalculator_RejectsDisallowedCharacters(t *testing.T) {
	result := calcResult(t, "2+DROP")
	if result.Success {
		t.Fatal("expected failure for disallowed characters")
	}
	assert.Contains(t, result.Error, "'D'")
}

func TestCalculator_DivisionByZero(t *testing.T) {
	result := calcResult(t, "1/0")
	if result.Success {
		t.Fatal("expected failure for division by zero")
	}
	assert.Contains(t, result.Error, "division")
}

func TestCalculator_MalformedExpressions(t *testing.T) {
	for _, expr := range []string{"", "   ", "(1+2", "1+", "1..2", "()"} {
		result := calcResult(t, expr)
		assert.False(t, result.Success, "expression %q should fail", expr)
	}
}
