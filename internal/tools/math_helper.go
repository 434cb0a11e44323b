package tools

import (
	"context"

	"github.com/Neruzzz/utility-helper/internal/functions"
)

type ToolMathHelper struct {
	svc *functions.Service
}

func (ToolMathHelper) Name() string { return "math_helper_function" }

func (ToolMathHelper) Description() string {
	return "Perform a basic mathematical operation on two numbers: X + Y, X - Y, X x Y, X ÷ Y or X^Y."
}

func (ToolMathHelper) ParametersSchema() map[string]any {
	return map[string]any{
		"type":  "object",
		"title": "Do maths",
		"properties": map[string]any{
			"number_x": map[string]any{"type": "number", "title": "Value of X", "description": "An integer or decimal"},
			"number_y": map[string]any{"type": "number", "title": "Value of Y", "description": "An integer or decimal"},
			"operator": map[string]any{
				"type":        "string",
				"title":       "Operator",
				"description": "Choose operator",
				"enum":        []string{"+", "-", "x", "÷", "^"},
				"choices": []map[string]any{
					{"value": "+", "title": "X + Y", "description": "X plus Y"},
					{"value": "-", "title": "X - Y", "description": "X minus Y"},
					{"value": "x", "title": "X x Y", "description": "X multiplied by Y"},
					{"value": "÷", "title": "X ÷ Y", "description": "X divided by Y"},
					{"value": "^", "title": "X^Y", "description": "X to the power of Y"},
				},
			},
		},
		"required": []string{"number_x", "number_y", "operator"},
	}
}

func (t ToolMathHelper) Call(ctx context.Context, args map[string]any) (string, error) {
	if err := requireArgs(args, "number_x", "number_y", "operator"); err != nil {
		return "", err
	}
	var in functions.MathHelperInput
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	out, err := t.svc.MathHelper(ctx, in)
	if err != nil {
		return "", err
	}
	return encode(out)
}
