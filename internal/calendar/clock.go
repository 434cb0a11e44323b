package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The trailing letters group catches text glued to the time or meridiem,
// e.g. "2:30PMish", which is rejected rather than read as 24-hour.
var clockPattern = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})(?:\s*([ap])\.?\s?m\.?)?([a-z]*)`)

// TimeOfDay is a wall-clock hour (0-23) and minute.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String renders the time the way it is displayed to users: "h:mma".
func (t TimeOfDay) String() string {
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	meridiem := "am"
	if t.Hour >= 12 {
		meridiem = "pm"
	}
	return fmt.Sprintf("%d:%02d%s", h, t.Minute, meridiem)
}

// ParseTimeOfDay reads "H:MM", "H:MM AM" or "H:MM PM" from s. The meridiem is
// case-insensitive and may be dotted ("p.m."). 12 AM is midnight, and a PM
// hour below 12 gains 12 hours. Without a meridiem the hour is read on a
// 24-hour clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil || m[4] != "" {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d in %q", ErrInvalidClock, minute, s)
	}

	switch strings.ToUpper(m[3]) {
	case "":
		if hour > 23 {
			return TimeOfDay{}, fmt.Errorf("%w: hour %d in %q", ErrInvalidClock, hour, s)
		}
	case "A":
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, fmt.Errorf("%w: hour %d in %q", ErrInvalidClock, hour, s)
		}
		if hour == 12 {
			hour = 0
		}
	case "P":
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, fmt.Errorf("%w: hour %d in %q", ErrInvalidClock, hour, s)
		}
		if hour < 12 {
			hour += 12
		}
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}
