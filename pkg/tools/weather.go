package tools

import (
	"context"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// WeatherTool returns canned forecast data. It stands in for a real
// forecast API so the agent loop can be exercised end to end.
type WeatherTool struct{}

type weatherArgs struct {
	City string `mapstructure:"city"`
	Date string `mapstructure:"date"`
}

func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

func (t *WeatherTool) Name() string {
	return "get_weather"
}

func (t *WeatherTool) Description() string {
	return "Get the weather report for a city."
}

func (t *WeatherTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{
				"type":        "string",
				"description": "City name to look up.",
			},
			"date": map[string]any{
				"type":        "string",
				"description": "Date to query, YYYY-MM-DD. Defaults to today.",
			},
		},
		"required": []string{"city"},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	var params weatherArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return ErrorResult("invalid arguments: " + err.Error())
	}
	if strings.TrimSpace(params.City) == "" {
		return ErrorResult("city is required")
	}
	if params.Date == "" {
		params.Date = "today"
	}

	return SuccessResult(map[string]any{
		"city":        params.City,
		"date":        params.Date,
		"temperature": 25,
		"weather":     "sunny",
		"humidity":    60,
		"wind_speed":  15,
	})
}
