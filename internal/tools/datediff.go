package tools

import (
	"context"

	"github.com/Neruzzz/utility-helper/internal/calendar"
	"github.com/Neruzzz/utility-helper/internal/functions"
)

type ToolDateDiff struct {
	svc *functions.Service
}

func (ToolDateDiff) Name() string { return "datediff_function" }

func (ToolDateDiff) Description() string {
	return "Determine the difference between two dates (YYYY-MM-DD) in days, weeks, months or years, and whether the second date is an anniversary of the first."
}

func (ToolDateDiff) ParametersSchema() map[string]any {
	return map[string]any{
		"type":  "object",
		"title": "Calculate date difference",
		"properties": map[string]any{
			"date1": map[string]any{"type": "string", "format": "date", "title": "First Date", "description": "The start date"},
			"date2": map[string]any{"type": "string", "format": "date", "title": "Second Date", "description": "The end date"},
			"unit": map[string]any{
				"type":        "string",
				"title":       "Unit of Time",
				"description": "Calculate difference in...",
				"enum":        []string{"Days", "Weeks", "Months", "Years"},
				"default":     "Days",
			},
			"decimal_places": map[string]any{
				"type":        "integer",
				"title":       "Decimal Places",
				"description": "Number of decimal places for the result (0-10)",
				"minimum":     0,
				"maximum":     calendar.MaxPlaces,
				"default":     0,
			},
		},
		"required": []string{"date1", "date2", "unit"},
	}
}

func (t ToolDateDiff) Call(ctx context.Context, args map[string]any) (string, error) {
	if err := requireArgs(args, "date1", "date2"); err != nil {
		return "", err
	}
	var in functions.DateDiffInput
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	out, err := t.svc.DateDiff(ctx, in)
	if err != nil {
		return "", err
	}
	return encode(out)
}
