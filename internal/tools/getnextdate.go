package tools

import (
	"context"

	"github.com/Neruzzz/utility-helper/internal/functions"
)

type ToolNextDate struct {
	svc *functions.Service
}

func (ToolNextDate) Name() string { return "getnextdate_function" }

func (ToolNextDate) Description() string {
	return "Fetch the date of a day of the week in the future, at a specific time in the user's time zone."
}

var weekdayChoices = []map[string]any{
	{"value": "1", "title": "Monday"},
	{"value": "2", "title": "Tuesday"},
	{"value": "3", "title": "Wednesday"},
	{"value": "4", "title": "Thursday"},
	{"value": "5", "title": "Friday"},
	{"value": "6", "title": "Saturday"},
	{"value": "7", "title": "Sunday"},
}

func (ToolNextDate) ParametersSchema() map[string]any {
	return map[string]any{
		"type":  "object",
		"title": "Get specific day",
		"properties": map[string]any{
			"day_of_week": map[string]any{
				"type":        "integer",
				"title":       "Day of the week",
				"description": "ISO day of the week: 1 is Monday, 7 is Sunday",
				"enum":        []int{1, 2, 3, 4, 5, 6, 7},
				"choices":     weekdayChoices,
			},
			"jump_forward_weeks": map[string]any{
				"type":        "integer",
				"title":       "Skip weeks",
				"description": "If 0, will try to use the current week or the next week if not possible. 1 will always start with next week.",
				"minimum":     0,
				"default":     0,
			},
			"time": map[string]any{
				"type":        "string",
				"title":       "Time",
				"description": "In format HH:MM AM/PM e.g., 2:30 PM",
			},
			"user": map[string]any{
				"type":        "string",
				"title":       "Relative to user",
				"description": "User id used for time zone calculation",
			},
		},
		"required": []string{"day_of_week", "time", "user"},
	}
}

func (t ToolNextDate) Call(ctx context.Context, args map[string]any) (string, error) {
	if err := requireArgs(args, "day_of_week", "time", "user"); err != nil {
		return "", err
	}
	var in functions.NextDateInput
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	out, err := t.svc.NextDate(ctx, in)
	if err != nil {
		return "", err
	}
	return encode(out)
}
