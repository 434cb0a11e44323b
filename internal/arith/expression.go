package arith

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"

	"github.com/Neruzzz/utility-helper/internal/calendar"
)

const DefaultRoundTo = 2

var (
	ErrEmptyExpression   = errors.New("empty expression")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrNotNumeric        = errors.New("expression did not evaluate to a number")
)

var constants = map[string]any{
	"pi": math.Pi,
	"PI": math.Pi,
	"e":  math.E,
	"E":  math.E,
}

// unary wraps a float function so it accepts any numeric expr value.
func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return fn(x), nil
	})
}

// abs, ceil, floor, round, min and max are expr builtins.
var functions = []expr.Option{
	unary("sqrt", math.Sqrt),
	unary("cbrt", math.Cbrt),
	unary("sin", math.Sin),
	unary("cos", math.Cos),
	unary("tan", math.Tan),
	unary("asin", math.Asin),
	unary("acos", math.Acos),
	unary("atan", math.Atan),
	unary("exp", math.Exp),
	unary("ln", math.Log),
	unary("log", math.Log),
	unary("log10", math.Log10),
	unary("log2", math.Log2),
	unary("trunc", math.Trunc),
	// Literals must be floats before % is matched against fmod.
	expr.Patch(floatLiterals{}),
	expr.Function("fmod", func(params ...any) (any, error) {
		return math.Mod(params[0].(float64), params[1].(float64)), nil
	}, new(func(float64, float64) float64)),
	expr.Operator("%", "fmod"),
}

// floatLiterals rewrites integer literals as floats so every expression is
// evaluated in float64 and large values lose precision instead of wrapping.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// Evaluate computes a math expression such as "1 + 2 * 3" or "sqrt(2) ^ 4"
// and rounds the result to roundTo decimals (clamped to [0, 10]). Syntax and
// runtime errors are always returned.
func Evaluate(expression string, roundTo int, mode calendar.Mode) (float64, error) {
	if strings.TrimSpace(expression) == "" {
		return 0, ErrEmptyExpression
	}

	opts := append([]expr.Option{expr.Env(constants)}, functions...)
	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}
	out, err := expr.Run(program, constants)
	if err != nil {
		return 0, fmt.Errorf("%w: evaluation: %w", ErrInvalidExpression, err)
	}

	v, err := toFloat(out)
	if err != nil {
		return 0, err
	}
	if v, err = finite(v, mode); err != nil {
		return 0, err
	}
	return roundHalfUp(v, calendar.ClampPlaces(roundTo)), nil
}

// roundHalfUp rounds ties towards positive infinity.
func roundHalfUp(x float64, places int) float64 {
	pow := math.Pow10(places)
	r := math.Floor(x*pow+0.5) / pow
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return x
	}
	if r == 0 {
		return 0
	}
	return r
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, v)
	}
}
