package calendar

import (
	"fmt"
	"math"
	"time"
)

// Projection is an instant produced by a projection or weekday lookup,
// expressed in the zone it was computed in.
type Projection struct {
	Instant time.Time
}

// Date returns the calendar date as YYYY-MM-DD.
func (p Projection) Date() string { return p.Instant.Format(time.DateOnly) }

// Timestamp returns UTC epoch seconds.
func (p Projection) Timestamp() int64 { return p.Instant.Unix() }

// DisplayTime returns the 12-hour wall-clock time, e.g. "8:05pm".
func (p Projection) DisplayTime() string {
	return TimeOfDay{Hour: p.Instant.Hour(), Minute: p.Instant.Minute()}.String()
}

type ProjectionRequest struct {
	// Reference is the starting instant. The zero value means now.
	Reference time.Time
	Count     int
	Unit      Unit
	// TimeOfDay optionally overrides the resulting hour and minute.
	TimeOfDay string
	// OffsetSeconds is added to UTC to get the user's wall clock.
	OffsetSeconds int
}

type WeekdayRequest struct {
	// Weekday is the ISO weekday, 1 (Monday) to 7 (Sunday).
	Weekday   int
	SkipWeeks int
	TimeOfDay string
	Location  *time.Location
	DST       bool
	// LegacyShift reproduces the historical output: the wall-clock time is
	// read as UTC and moved back 12 hours (plus the DST hour).
	LegacyShift bool
}

// Calculator runs projections against a clock.
type Calculator struct {
	Clock Clock
	Mode  Mode
}

func NewCalculator(clock Clock, mode Mode) *Calculator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calculator{Clock: clock, Mode: mode}
}

// Project moves the reference instant by Count units on the user's wall
// clock, then optionally pins the time of day.
//
// Month and year steps normalize overflowing days the way time.AddDate does,
// so 2024-01-31 plus one month is 2024-03-02.
func (c *Calculator) Project(req ProjectionRequest) (Projection, error) {
	ref := req.Reference
	if ref.IsZero() {
		ref = c.Clock.Now()
	}
	local := ref.In(time.FixedZone(zoneName(req.OffsetSeconds), req.OffsetSeconds))

	n := req.Count
	if err := checkSpan(n, req.Unit); err != nil {
		return Projection{}, err
	}
	switch req.Unit {
	case Years:
		local = local.AddDate(n, 0, 0)
	case Months:
		local = local.AddDate(0, n, 0)
	case Weeks:
		local = local.AddDate(0, 0, 7*n)
	case Hours:
		local = time.Date(local.Year(), local.Month(), local.Day(),
			local.Hour()+n, local.Minute(), local.Second(), local.Nanosecond(), local.Location())
	case Minutes:
		local = time.Date(local.Year(), local.Month(), local.Day(),
			local.Hour(), local.Minute()+n, local.Second(), local.Nanosecond(), local.Location())
	default:
		local = local.AddDate(0, 0, n)
	}

	if req.TimeOfDay != "" {
		tod, err := ParseTimeOfDay(req.TimeOfDay)
		switch {
		case err == nil:
			local = time.Date(local.Year(), local.Month(), local.Day(),
				tod.Hour, tod.Minute, local.Second(), local.Nanosecond(), local.Location())
		case c.Mode == Strict:
			return Projection{}, err
		}
	}
	return Projection{Instant: local}, nil
}

// NextWeekday finds the next occurrence of an ISO weekday in the request's
// location. A weekday later in the current week (or today) is used as is; an
// earlier one rolls to the following week. SkipWeeks adds whole weeks on top.
func (c *Calculator) NextWeekday(req WeekdayRequest) (Projection, error) {
	if req.Weekday < 1 || req.Weekday > 7 {
		return Projection{}, fmt.Errorf("%w: got %d", ErrInvalidWeekday, req.Weekday)
	}
	skip := req.SkipWeeks
	if skip < 0 {
		if c.Mode == Strict {
			return Projection{}, fmt.Errorf("%w: got %d", ErrNegativeSkip, skip)
		}
		skip = 0
	}
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	now := c.Clock.Now().In(loc)
	days := req.Weekday - ISOWeekday(now)
	weeks := skip
	if days < 0 {
		weeks++
	}

	var dst time.Duration
	if req.DST {
		// One hour ahead while the user is on daylight saving time.
		dst = time.Hour
	}
	base := now.Add(dst).AddDate(0, 0, 7*weeks+days)

	hour, minute := base.Hour(), base.Minute()
	if tod, err := ParseTimeOfDay(req.TimeOfDay); err == nil {
		hour, minute = tod.Hour, tod.Minute
	} else if c.Mode == Strict {
		return Projection{}, err
	}

	if req.LegacyShift {
		t := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
		return Projection{Instant: t.Add(-12*time.Hour + dst)}, nil
	}
	return Projection{Instant: time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, loc)}, nil
}

// MaxSpanDays bounds how far a projection may move, the same range a
// JavaScript Date covers on either side of the epoch.
const MaxSpanDays = 100_000_000

var unitDays = map[Unit]float64{
	Days:    1,
	Weeks:   7,
	Months:  31,
	Years:   366,
	Hours:   1.0 / 24,
	Minutes: 1.0 / 1440,
}

func checkSpan(n int, unit Unit) error {
	days, ok := unitDays[unit]
	if !ok {
		days = 1
	}
	if math.Abs(float64(n))*days > MaxSpanDays {
		return fmt.Errorf("%w: %d %s", ErrCountOutOfRange, n, unit)
	}
	return nil
}

// ISOWeekday numbers Monday 1 through Sunday 7.
func ISOWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

func zoneName(offset int) string {
	if offset == 0 {
		return "UTC"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, offset%3600/60)
}
