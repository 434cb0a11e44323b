package tools

import (
	"context"
	"time"

	"github.com/Neruzzz/utility-helper/internal/functions"
)

type ToolTodayDate struct {
	svc *functions.Service
}

func (ToolTodayDate) Name() string { return "get_today_date" }

func (ToolTodayDate) Description() string {
	return "Get today's date and time in RFC3339 format (UTC)."
}

func (ToolTodayDate) ParametersSchema() map[string]any {
	// no parameters
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t ToolTodayDate) Call(context.Context, map[string]any) (string, error) {
	return t.svc.Now().UTC().Format(time.RFC3339), nil
}
