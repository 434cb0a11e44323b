package tools

import (
	"context"

	"github.com/Neruzzz/utility-helper/internal/functions"
)

type ToolDatetime struct {
	svc *functions.Service
}

func (ToolDatetime) Name() string { return "datetime_function" }

func (ToolDatetime) Description() string {
	return "Determine a relative date and time value: move a reference date (or now) by a number of days, weeks, months, years, hours or minutes in the user's time zone, optionally at a specific time."
}

func (ToolDatetime) ParametersSchema() map[string]any {
	return map[string]any{
		"type":  "object",
		"title": "Calculate date",
		"properties": map[string]any{
			"reference_date": map[string]any{
				"type":        "string",
				"format":      "date",
				"title":       "Reference Date",
				"description": "Starting point for calculation (leave empty to use current date)",
			},
			"relative_count": map[string]any{
				"type":        "integer",
				"title":       "Value Difference",
				"description": "How many units into the future? Negative values go back in time.",
			},
			"relative_unit": map[string]any{
				"type":        "string",
				"title":       "Units",
				"description": "Move forward by...",
				"enum":        []string{"Days", "Weeks", "Months", "Years", "Hours", "Minutes"},
			},
			"time_specific": map[string]any{
				"type":        "string",
				"title":       "Time",
				"description": "In format HH:MM AM/PM e.g., 2:30 PM",
			},
			"user": map[string]any{
				"type":        "string",
				"title":       "Relative to user",
				"description": "User id used for time zone offset calculation",
			},
		},
		"required": []string{"relative_count", "relative_unit", "user"},
	}
}

func (t ToolDatetime) Call(ctx context.Context, args map[string]any) (string, error) {
	if err := requireArgs(args, "relative_count", "relative_unit", "user"); err != nil {
		return "", err
	}
	var in functions.DatetimeInput
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	out, err := t.svc.Datetime(ctx, in)
	if err != nil {
		return "", err
	}
	return encode(out)
}
