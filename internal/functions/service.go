// Package functions implements the utility-helper functions as plain
// input/output transformations. Hosts decode their request into an input
// struct, call the matching Service method and encode the output struct.
package functions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Neruzzz/utility-helper/internal/arith"
	"github.com/Neruzzz/utility-helper/internal/calendar"
	"github.com/Neruzzz/utility-helper/internal/directory"
)

type Service struct {
	dir         directory.Directory
	calc        *calendar.Calculator
	legacyShift bool
}

type Option func(*Service)

func WithClock(c calendar.Clock) Option {
	return func(s *Service) { s.calc.Clock = c }
}

func WithMode(m calendar.Mode) Option {
	return func(s *Service) { s.calc.Mode = m }
}

// WithLegacyWeekdayShift toggles the historical -12h shift of the weekday
// lookup. It is on by default.
func WithLegacyWeekdayShift(on bool) Option {
	return func(s *Service) { s.legacyShift = on }
}

func New(dir directory.Directory, opts ...Option) *Service {
	s := &Service{
		dir:         dir,
		calc:        calendar.NewCalculator(calendar.SystemClock{}, calendar.Lenient),
		legacyShift: true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Mode() calendar.Mode { return s.calc.Mode }

func (s *Service) Now() time.Time { return s.calc.Clock.Now() }

// DateDiff computes the difference between two dates.
func (s *Service) DateDiff(ctx context.Context, in DateDiffInput) (DateDiffOutput, error) {
	slog.DebugContext(ctx, "Calculating date difference", "date1", in.Date1, "date2", in.Date2, "unit", in.Unit)

	d1, err := calendar.ParseDate(in.Date1)
	if err != nil {
		return DateDiffOutput{}, fmt.Errorf("date1: %w", err)
	}
	d2, err := calendar.ParseDate(in.Date2)
	if err != nil {
		return DateDiffOutput{}, fmt.Errorf("date2: %w", err)
	}
	unit, err := calendar.ParseUnit(in.Unit, s.calc.Mode)
	if err != nil {
		return DateDiffOutput{}, err
	}

	res := calendar.Difference(d1, d2, unit, intOr(in.DecimalPlaces, 0))
	slog.DebugContext(ctx, "Date difference", "difference", res.Value, "unit", res.Unit, "anniversary", res.Anniversary)

	return DateDiffOutput{
		Difference:    res.Value,
		UnitUsed:      res.Unit.String(),
		IsAnniversary: res.Anniversary,
	}, nil
}

// Datetime projects a date relative to a reference date (or now) on the
// user's wall clock.
func (s *Service) Datetime(ctx context.Context, in DatetimeInput) (DateOutput, error) {
	unit, err := calendar.ParseUnit(in.RelativeUnit, s.calc.Mode)
	if err != nil {
		return DateOutput{}, err
	}
	var ref time.Time
	if in.ReferenceDate != "" {
		if ref, err = calendar.ParseDate(in.ReferenceDate); err != nil {
			return DateOutput{}, fmt.Errorf("reference_date: %w", err)
		}
	}

	tz, err := s.lookup(ctx, in.User)
	if err != nil {
		return DateOutput{}, err
	}

	slog.DebugContext(ctx, "Projecting date",
		"count", int(in.RelativeCount), "unit", unit, "reference", in.ReferenceDate, "offset", tz.OffsetSeconds)

	p, err := s.calc.Project(calendar.ProjectionRequest{
		Reference:     ref,
		Count:         int(in.RelativeCount),
		Unit:          unit,
		TimeOfDay:     in.TimeSpecific,
		OffsetSeconds: tz.OffsetSeconds,
	})
	if err != nil {
		return DateOutput{}, err
	}
	return toDateOutput(p), nil
}

// NextDate finds the next given weekday in the user's time zone.
func (s *Service) NextDate(ctx context.Context, in NextDateInput) (DateOutput, error) {
	tz, err := s.lookup(ctx, in.User)
	if err != nil {
		return DateOutput{}, err
	}
	loc, err := tz.Location()
	if err != nil {
		return DateOutput{}, err
	}

	slog.DebugContext(ctx, "Looking up next weekday",
		"weekday", int(in.DayOfWeek), "skip_weeks", int(in.JumpForwardWeeks), "tz", loc.String(), "dst", tz.IsDST())

	p, err := s.calc.NextWeekday(calendar.WeekdayRequest{
		Weekday:     int(in.DayOfWeek),
		SkipWeeks:   int(in.JumpForwardWeeks),
		TimeOfDay:   in.Time,
		Location:    loc,
		DST:         tz.IsDST(),
		LegacyShift: s.legacyShift,
	})
	if err != nil {
		return DateOutput{}, err
	}
	return toDateOutput(p), nil
}

// MathHelper applies one operator to two numbers.
func (s *Service) MathHelper(_ context.Context, in MathHelperInput) (MathOutput, error) {
	op, err := arith.ParseOperator(in.Operator, s.calc.Mode)
	if err != nil {
		return MathOutput{}, err
	}
	r, err := arith.Apply(in.NumberX, in.NumberY, op, s.calc.Mode)
	if err != nil {
		return MathOutput{}, err
	}
	return MathOutput{Result: r}, nil
}

// MathExpression evaluates an expression string.
func (s *Service) MathExpression(_ context.Context, in MathExpressionInput) (MathOutput, error) {
	r, err := arith.Evaluate(in.Expression, intOr(in.RoundTo, arith.DefaultRoundTo), s.calc.Mode)
	if err != nil {
		return MathOutput{}, err
	}
	return MathOutput{Result: r}, nil
}

func (s *Service) lookup(ctx context.Context, user string) (directory.Timezone, error) {
	tz, err := s.dir.LookupUserTimezone(ctx, user)
	if err != nil {
		return directory.Timezone{}, fmt.Errorf("lookup timezone for user %q: %w", user, err)
	}
	return tz.ResolveOffset(s.Now()), nil
}

func toDateOutput(p calendar.Projection) DateOutput {
	return DateOutput{
		DateValue:      p.Date(),
		TimestampValue: p.Timestamp(),
		TimeValue:      p.DisplayTime(),
	}
}
