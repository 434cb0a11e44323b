// Package arith evaluates the two math functions: a single binary operation
// and free-form expressions.
package arith

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Neruzzz/utility-helper/internal/calendar"
)

var (
	ErrUnknownOperator = errors.New("unknown operator")
	ErrNonFinite       = errors.New("result is not a finite number")
)

type Operator string

const (
	Add      Operator = "+"
	Subtract Operator = "-"
	Multiply Operator = "x"
	Divide   Operator = "÷"
	Power    Operator = "^"
)

// Operators lists the canonical operators in display order.
func Operators() []Operator {
	return []Operator{Add, Subtract, Multiply, Divide, Power}
}

var aliases = map[string]Operator{
	"+": Add,
	"-": Subtract,
	"−": Subtract,
	"x": Multiply,
	"X": Multiply,
	"*": Multiply,
	"×": Multiply,
	"÷": Divide,
	"/": Divide,
	"^": Power,
}

// ParseOperator resolves an operator or one of its aliases. Unknown operators
// mean addition unless mode is strict.
func ParseOperator(s string, mode calendar.Mode) (Operator, error) {
	if op, ok := aliases[strings.TrimSpace(s)]; ok {
		return op, nil
	}
	if mode == calendar.Strict {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
	return Add, nil
}

// Apply computes x op y. A NaN or infinite result becomes 0 in lenient mode.
func Apply(x, y float64, op Operator, mode calendar.Mode) (float64, error) {
	var r float64
	switch op {
	case Subtract:
		r = x - y
	case Multiply:
		r = x * y
	case Divide:
		r = x / y
	case Power:
		r = math.Pow(x, y)
	default:
		r = x + y
	}
	return finite(r, mode)
}

func finite(r float64, mode calendar.Mode) (float64, error) {
	if !math.IsNaN(r) && !math.IsInf(r, 0) {
		return r, nil
	}
	if mode == calendar.Strict {
		return 0, ErrNonFinite
	}
	return 0, nil
}
