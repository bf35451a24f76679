package tools

import (
	"context"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// StockTool returns a canned quote for a symbol. Mock data only.
type StockTool struct{}

type stockArgs struct {
	Symbol   string `mapstructure:"symbol"`
	Exchange string `mapstructure:"exchange"`
}

func NewStockTool() *StockTool {
	return &StockTool{}
}

func (t *StockTool) Name() string {
	return "get_stock_info"
}

func (t *StockTool) Description() string {
	return "Get quote information for a stock symbol."
}

func (t *StockTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symbol": map[string]any{
				"type":        "string",
				"description": "Stock symbol, e.g. 600000.",
			},
			"exchange": map[string]any{
				"type":        "string",
				"description": "Exchange code, 'sh' (Shanghai) or 'sz' (Shenzhen). Defaults to 'sh'.",
			},
		},
		"required": []string{"symbol"},
	}
}

func (t *StockTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	var params stockArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return ErrorResult("invalid arguments: " + err.Error())
	}
	if strings.TrimSpace(params.Symbol) == "" {
		return ErrorResult("symbol is required")
	}
	if params.Exchange == "" {
		params.Exchange = "sh"
	}

	return SuccessResult(map[string]any{
		"symbol":         params.Symbol,
		"exchange":       params.Exchange,
		"full_symbol":    strings.ToUpper(params.Exchange) + params.Symbol,
		"name":           "Sample Holdings",
		"current_price":  123.45,
		"open_price":     120.00,
		"high_price":     125.00,
		"low_price":      119.50,
		"volume":         1000000,
		"change":         3.45,
		"change_percent": 2.85,
	})
}
