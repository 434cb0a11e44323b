package tools

import (
	"context"

	"github.com/Neruzzz/utility-helper/internal/arith"
	"github.com/Neruzzz/utility-helper/internal/calendar"
	"github.com/Neruzzz/utility-helper/internal/functions"
)

type ToolMathExpression struct {
	svc *functions.Service
}

func (ToolMathExpression) Name() string { return "math_expression_function" }

func (ToolMathExpression) Description() string {
	return "Evaluate a mathematical expression such as '1 + 2 * 3' or 'sqrt(2) ^ 4' and round the result."
}

func (ToolMathExpression) ParametersSchema() map[string]any {
	places := make([]int, calendar.MaxPlaces+1)
	for i := range places {
		places[i] = i
	}
	return map[string]any{
		"type":  "object",
		"title": "Evaluate Math Expression",
		"properties": map[string]any{
			"expression": map[string]any{
				"type":        "string",
				"title":       "Math Expression",
				"description": "A mathematical expression to evaluate, e.g. 1 + 2 * 3",
			},
			"round_to": map[string]any{
				"type":        "integer",
				"title":       "Round to",
				"description": "The number of decimal places to round to",
				"enum":        places,
				"default":     arith.DefaultRoundTo,
			},
		},
		"required": []string{"expression"},
	}
}

func (t ToolMathExpression) Call(ctx context.Context, args map[string]any) (string, error) {
	if err := requireArgs(args, "expression"); err != nil {
		return "", err
	}
	var in functions.MathExpressionInput
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	out, err := t.svc.MathExpression(ctx, in)
	if err != nil {
		return "", err
	}
	return encode(out)
}
