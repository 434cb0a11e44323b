package functions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"

	"github.com/Neruzzz/utility-helper/internal/arith"
	"github.com/Neruzzz/utility-helper/internal/calendar"
	"github.com/Neruzzz/utility-helper/internal/directory"
)

// Wednesday 2024-01-17 10:00 UTC.
var wednesday = calendar.FixedClock(time.Date(2024, time.January, 17, 10, 0, 0, 0, time.UTC))

func newService(opts ...Option) *Service {
	dir := directory.NewStatic(map[string]directory.Timezone{
		"U_UTC": {Name: "UTC", Label: "Coordinated Universal Time"},
		"U_NY":  {Name: "America/New_York", Label: "Eastern Standard Time", OffsetSeconds: -18000},
		"U_LA":  {Name: "America/Los_Angeles", Label: "Pacific Daylight Time", OffsetSeconds: -25200},
		"U_BAD": {Name: "Nowhere/Special", Label: "Bogus Time"},
		"U_MAD": {Name: "Europe/Madrid"},
	})
	return New(dir, append([]Option{WithClock(wednesday)}, opts...)...)
}

func ptr(n int) *Int {
	v := Int(n)
	return &v
}

func TestService_DateDiff(t *testing.T) {
	ctx := context.Background()
	s := newService()

	tests := []struct {
		name string
		in   DateDiffInput
		want DateDiffOutput
	}{
		{
			name: "months",
			in:   DateDiffInput{Date1: "2024-01-15", Date2: "2024-03-15", Unit: "Months"},
			want: DateDiffOutput{Difference: 2, UnitUsed: "Months"},
		},
		{
			name: "years not reached",
			in:   DateDiffInput{Date1: "2024-02-29", Date2: "2025-02-28", Unit: "Years"},
			want: DateDiffOutput{Difference: 0, UnitUsed: "Years"},
		},
		{
			name: "default unit is days",
			in:   DateDiffInput{Date1: "2024-01-01", Date2: "2025-01-01"},
			want: DateDiffOutput{Difference: 366, UnitUsed: "Days", IsAnniversary: true},
		},
		{
			name: "unknown unit falls back to days",
			in:   DateDiffInput{Date1: "2024-01-01", Date2: "2024-01-15", Unit: "Fortnights"},
			want: DateDiffOutput{Difference: 14, UnitUsed: "Days"},
		},
		{
			name: "decimal places",
			in:   DateDiffInput{Date1: "2024-01-01", Date2: "2024-01-11", Unit: "Weeks", DecimalPlaces: ptr(3)},
			want: DateDiffOutput{Difference: 1.429, UnitUsed: "Weeks"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.DateDiff(ctx, tt.in)
			if err != nil {
				t.Fatalf("DateDiff() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DateDiff() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := s.DateDiff(ctx, DateDiffInput{Date1: "soon", Date2: "2024-01-01"}); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("DateDiff(bad date) error = %v, want ErrInvalidDate", err)
	}
	strict := newService(WithMode(calendar.Strict))
	if _, err := strict.DateDiff(ctx, DateDiffInput{Date1: "2024-01-01", Date2: "2024-01-02", Unit: "Fortnights"}); !errors.Is(err, calendar.ErrUnknownUnit) {
		t.Errorf("strict DateDiff(bad unit) error = %v, want ErrUnknownUnit", err)
	}
}

func TestService_Datetime(t *testing.T) {
	ctx := context.Background()
	s := newService()

	tests := []struct {
		name string
		in   DatetimeInput
		want DateOutput
	}{
		{
			name: "from now in new york",
			in:   DatetimeInput{RelativeCount: 2, RelativeUnit: "Days", TimeSpecific: "9:00 AM", User: "U_NY"},
			want: DateOutput{
				DateValue:      "2024-01-19",
				TimestampValue: time.Date(2024, time.January, 19, 14, 0, 0, 0, time.UTC).Unix(),
				TimeValue:      "9:00am",
			},
		},
		{
			name: "reference date month rollover",
			in:   DatetimeInput{ReferenceDate: "2024-01-31", RelativeCount: 1, RelativeUnit: "Months", User: "U_UTC"},
			want: DateOutput{
				DateValue:      "2024-03-02",
				TimestampValue: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC).Unix(),
				TimeValue:      "12:00am",
			},
		},
		{
			name: "hours",
			in:   DatetimeInput{RelativeCount: -3, RelativeUnit: "Hours", User: "U_UTC"},
			want: DateOutput{
				DateValue:      "2024-01-17",
				TimestampValue: time.Date(2024, time.January, 17, 7, 0, 0, 0, time.UTC).Unix(),
				TimeValue:      "7:00am",
			},
		},
		{
			name: "malformed time is ignored",
			in:   DatetimeInput{RelativeCount: 1, RelativeUnit: "Weeks", TimeSpecific: "teatime", User: "U_UTC"},
			want: DateOutput{
				DateValue:      "2024-01-24",
				TimestampValue: time.Date(2024, time.January, 24, 10, 0, 0, 0, time.UTC).Unix(),
				TimeValue:      "10:00am",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Datetime(ctx, tt.in)
			if err != nil {
				t.Fatalf("Datetime() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Datetime() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := s.Datetime(ctx, DatetimeInput{RelativeCount: 1, RelativeUnit: "Days", User: "U_MISSING"}); !errors.Is(err, directory.ErrUserNotFound) {
		t.Errorf("Datetime(unknown user) error = %v, want ErrUserNotFound", err)
	}
	if _, err := s.Datetime(ctx, DatetimeInput{ReferenceDate: "31/01/2024", RelativeUnit: "Days", User: "U_UTC"}); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("Datetime(bad reference) error = %v, want ErrInvalidDate", err)
	}
}

func TestService_NextDate(t *testing.T) {
	ctx := context.Background()

	t.Run("legacy shift", func(t *testing.T) {
		got, err := newService().NextDate(ctx, NextDateInput{DayOfWeek: 1, Time: "2:30 PM", User: "U_UTC"})
		if err != nil {
			t.Fatalf("NextDate() unexpected error: %v", err)
		}
		want := DateOutput{
			DateValue:      "2024-01-22",
			TimestampValue: time.Date(2024, time.January, 22, 2, 30, 0, 0, time.UTC).Unix(),
			TimeValue:      "2:30am",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("NextDate() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zoned", func(t *testing.T) {
		s := newService(WithLegacyWeekdayShift(false))
		got, err := s.NextDate(ctx, NextDateInput{DayOfWeek: 5, JumpForwardWeeks: 1, Time: "9:30 AM", User: "U_NY"})
		if err != nil {
			t.Fatalf("NextDate() unexpected error: %v", err)
		}
		want := DateOutput{
			DateValue:      "2024-01-26",
			TimestampValue: time.Date(2024, time.January, 26, 14, 30, 0, 0, time.UTC).Unix(),
			TimeValue:      "9:30am",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("NextDate() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("daylight label adds an hour", func(t *testing.T) {
		got, err := newService().NextDate(ctx, NextDateInput{DayOfWeek: 5, Time: "2:30 PM", User: "U_LA"})
		if err != nil {
			t.Fatalf("NextDate() unexpected error: %v", err)
		}
		if got.TimeValue != "3:30am" {
			t.Errorf("NextDate() time = %q, want %q", got.TimeValue, "3:30am")
		}
	})

	t.Run("invalid zone fails", func(t *testing.T) {
		if _, err := newService().NextDate(ctx, NextDateInput{DayOfWeek: 5, Time: "2:30 PM", User: "U_BAD"}); err == nil {
			t.Error("NextDate() expected error for invalid zone, got nil")
		}
	})

	t.Run("invalid weekday fails", func(t *testing.T) {
		_, err := newService().NextDate(ctx, NextDateInput{DayOfWeek: 9, Time: "2:30 PM", User: "U_UTC"})
		if !errors.Is(err, calendar.ErrInvalidWeekday) {
			t.Errorf("NextDate() error = %v, want ErrInvalidWeekday", err)
		}
	})
}

func TestService_Math(t *testing.T) {
	ctx := context.Background()
	s := newService()

	got, err := s.MathHelper(ctx, MathHelperInput{NumberX: 6, NumberY: 7, Operator: "x"})
	if err != nil || got.Result != 42 {
		t.Errorf("MathHelper(6 x 7) = %v, %v; want 42, nil", got.Result, err)
	}
	got, err = s.MathHelper(ctx, MathHelperInput{NumberX: 1, NumberY: 0, Operator: "÷"})
	if err != nil || got.Result != 0 {
		t.Errorf("MathHelper(1 ÷ 0) = %v, %v; want 0, nil", got.Result, err)
	}

	got, err = s.MathExpression(ctx, MathExpressionInput{Expression: "10 / 3"})
	if err != nil || got.Result != 3.33 {
		t.Errorf("MathExpression(10 / 3) = %v, %v; want 3.33, nil", got.Result, err)
	}
	got, err = s.MathExpression(ctx, MathExpressionInput{Expression: "10 / 3", RoundTo: ptr(0)})
	if err != nil || got.Result != 3 {
		t.Errorf("MathExpression(10 / 3, round_to=0) = %v, %v; want 3, nil", got.Result, err)
	}

	strict := newService(WithMode(calendar.Strict))
	if _, err := strict.MathHelper(ctx, MathHelperInput{NumberX: 1, NumberY: 0, Operator: "÷"}); !errors.Is(err, arith.ErrNonFinite) {
		t.Errorf("strict MathHelper(1 ÷ 0) error = %v, want ErrNonFinite", err)
	}
}

func TestService_NamedZoneWithoutOffset(t *testing.T) {
	ctx := context.Background()
	s := newService(WithLegacyWeekdayShift(false))

	projected, err := s.Datetime(ctx, DatetimeInput{RelativeUnit: "Days", TimeSpecific: "11:00 AM", User: "U_MAD"})
	if err != nil {
		t.Fatalf("Datetime() unexpected error: %v", err)
	}
	want := DateOutput{
		DateValue:      "2024-01-17",
		TimestampValue: time.Date(2024, time.January, 17, 10, 0, 0, 0, time.UTC).Unix(),
		TimeValue:      "11:00am",
	}
	if diff := cmp.Diff(want, projected); diff != "" {
		t.Errorf("Datetime() mismatch (-want +got):\n%s", diff)
	}

	// Wednesday is today, so both functions land on the same Madrid wall clock.
	next, err := s.NextDate(ctx, NextDateInput{DayOfWeek: 3, Time: "11:00 AM", User: "U_MAD"})
	if err != nil {
		t.Fatalf("NextDate() unexpected error: %v", err)
	}
	if next.TimestampValue != projected.TimestampValue {
		t.Errorf("NextDate() timestamp = %d, Datetime() timestamp = %d; want equal", next.TimestampValue, projected.TimestampValue)
	}
}

func TestInt_UnmarshalJSON(t *testing.T) {
	var in NextDateInput
	if err := json.Unmarshal([]byte(`{"day_of_week":"3","jump_forward_weeks":2,"time":"1:00 PM","user":"U1"}`), &in); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	want := NextDateInput{DayOfWeek: 3, JumpForwardWeeks: 2, Time: "1:00 PM", User: "U1"}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}

	for _, raw := range []string{
		`{"day_of_week":"Monday"}`,
		`{"day_of_week":"NaN"}`,
		`{"day_of_week":"Inf"}`,
		`{"day_of_week":"-Infinity"}`,
		`{"day_of_week":1e300}`,
		`{"jump_forward_weeks":-1e19}`,
		`{"day_of_week":"9223372036854775808"}`,
	} {
		if err := json.Unmarshal([]byte(raw), &in); err == nil {
			t.Errorf("Unmarshal(%s) expected error, got nil (input %+v)", raw, in)
		}
	}

	var big DatetimeInput
	if err := json.Unmarshal([]byte(`{"relative_count":-4000000000}`), &big); err != nil || big.RelativeCount != -4_000_000_000 {
		t.Errorf("Unmarshal(-4e9) = %d, %v; want -4000000000, nil", big.RelativeCount, err)
	}
}
