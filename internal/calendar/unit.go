// Package calendar implements the date and time arithmetic behind the
// utility-helper functions: signed date differences, relative projections
// and next-weekday lookups. Every function is pure; "now" comes from a Clock
// and time zones are always explicit.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownUnit     = errors.New("unknown time unit")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidClock    = errors.New("invalid time of day")
	ErrInvalidWeekday  = errors.New("weekday must be between 1 (Monday) and 7 (Sunday)")
	ErrNegativeSkip    = errors.New("week skip must not be negative")
	ErrCountOutOfRange = errors.New("relative count out of range")
)

// Mode selects how recoverable input problems are handled. Lenient mode keeps
// the historical behavior of silently falling back; Strict mode reports them.
type Mode int

const (
	Lenient Mode = iota
	Strict
)

// ParseMode maps a config value to a Mode. Anything but "strict" is lenient.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "strict") {
		return Strict
	}
	return Lenient
}

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

type Unit int

const (
	Days Unit = iota
	Weeks
	Months
	Years
	Hours
	Minutes
)

var unitNames = [...]string{
	Days:    "Days",
	Weeks:   "Weeks",
	Months:  "Months",
	Years:   "Years",
	Hours:   "Hours",
	Minutes: "Minutes",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return unitNames[Days]
	}
	return unitNames[u]
}

// Units lists every unit in declaration order.
func Units() []Unit {
	return []Unit{Days, Weeks, Months, Years, Hours, Minutes}
}

// ParseUnit resolves a unit name case-insensitively. An empty or unknown name
// resolves to Days unless mode is Strict.
func ParseUnit(s string, mode Mode) (Unit, error) {
	s = strings.TrimSpace(s)
	for _, u := range Units() {
		if strings.EqualFold(s, u.String()) {
			return u, nil
		}
	}
	if mode == Strict {
		return Days, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return Days, nil
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Used by tests and replays.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
