package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ClockTool reports the current time and date in a requested IANA
// timezone. It is the only built-in tool that touches real state.
type ClockTool struct {
	defaultTimezone string
	now             func() time.Time
}

type clockArgs struct {
	Timezone string `mapstructure:"timezone"`
	Format   string `mapstructure:"format"`
}

func NewClockTool(defaultTimezone string) *ClockTool {
	return &ClockTool{
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}

func (t *ClockTool) Name() string {
	return "get_current_time"
}

func (t *ClockTool) Description() string {
	return "Get the current time and date in a given timezone."
}

func (t *ClockTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"timezone": map[string]any{
				"type":        "string",
				"description": "IANA timezone name, e.g. Asia/Shanghai or America/New_York. Defaults to the configured timezone.",
			},
			"format": map[string]any{
				"type":        "string",
				"enum":        []string{"time", "date", "both"},
				"description": "What to return: clock time, calendar date, or both. Defaults to 'both'.",
			},
		},
	}
}

func (t *ClockTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	var params clockArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return ErrorResult("invalid arguments: " + err.Error())
	}
	if params.Timezone == "" {
		params.Timezone = t.defaultTimezone
	}
	if params.Format == "" {
		params.Format = "both"
	}

	loc, err := time.LoadLocation(params.Timezone)
	if err != nil {
		return ErrorResult(fmt.Sprintf("unknown timezone %q, expected an IANA name such as Asia/Shanghai or America/New_York", params.Timezone))
	}

	now := t.now().In(loc)
	data := map[string]any{
		"timezone": params.Timezone,
	}
	switch params.Format {
	case "time":
		data["time"] = now.Format("15:04:05")
	case "date":
		data["date"] = now.Format("2006-01-02 (Monday)")
	case "both":
		data["time"] = now.Format("15:04:05")
		data["date"] = now.Format("2006-01-02 (Monday)")
	default:
		return ErrorResult(fmt.Sprintf("unknown format %q, expected time, date or both", params.Format))
	}

	return SuccessResult(data)
}
