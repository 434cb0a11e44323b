package functions

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Int decodes a JSON number or a numeric string. Hosts send enum choices
// such as day_of_week as strings ("1") and free inputs as numbers.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("number out of range: %s", b)
	}
	*n = Int(f)
	return nil
}

func intOr(p *Int, def int) int {
	if p == nil {
		return def
	}
	return int(*p)
}

type DateDiffInput struct {
	Date1         string `json:"date1"`
	Date2         string `json:"date2"`
	Unit          string `json:"unit,omitempty"`
	DecimalPlaces *Int   `json:"decimal_places,omitempty"`
}

type DateDiffOutput struct {
	Difference    float64 `json:"difference"`
	UnitUsed      string  `json:"unit_used"`
	IsAnniversary bool    `json:"is_anniversary"`
}

type DatetimeInput struct {
	ReferenceDate string `json:"reference_date,omitempty"`
	RelativeCount Int    `json:"relative_count"`
	RelativeUnit  string `json:"relative_unit"`
	TimeSpecific  string `json:"time_specific,omitempty"`
	User          string `json:"user"`
}

type NextDateInput struct {
	DayOfWeek        Int    `json:"day_of_week"`
	JumpForwardWeeks Int    `json:"jump_forward_weeks,omitempty"`
	Time             string `json:"time"`
	User             string `json:"user"`
}

// DateOutput is returned by the date producing functions.
type DateOutput struct {
	DateValue      string `json:"date_value"`
	TimestampValue int64  `json:"timestamp_value"`
	TimeValue      string `json:"time_value,omitempty"`
}

type MathHelperInput struct {
	NumberX  float64 `json:"number_x"`
	NumberY  float64 `json:"number_y"`
	Operator string  `json:"operator"`
}

type MathExpressionInput struct {
	Expression string `json:"expression"`
	RoundTo    *Int   `json:"round_to,omitempty"`
}

type MathOutput struct {
	Result float64 `json:"result"`
}
