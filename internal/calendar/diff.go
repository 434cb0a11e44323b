package calendar

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	MaxPlaces = 10

	msPerMinute = 60 * 1000
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay
)

// DifferenceResult is the signed distance from a first date to a second one.
type DifferenceResult struct {
	Value       float64
	Unit        Unit
	Anniversary bool
}

// ParseDate accepts a calendar date (YYYY-MM-DD, read as UTC midnight) or an
// RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ClampPlaces limits a requested decimal place count to [0, MaxPlaces].
func ClampPlaces(p int) int {
	return max(0, min(MaxPlaces, p))
}

// Round rounds x half away from zero to the clamped number of places.
func Round(x float64, places int) float64 {
	pow := math.Pow10(ClampPlaces(places))
	scaled := x * pow
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return x
	}
	r := math.Round(scaled) / pow
	if r == 0 {
		return 0
	}
	return r
}

// IsAnniversary reports whether both dates fall on the same month and day,
// whatever their years.
func IsAnniversary(d1, d2 time.Time) bool {
	return d1.Month() == d2.Month() && d1.Day() == d2.Day()
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Difference computes d2 - d1 in unit, rounded to places decimals.
//
// Days, weeks, hours and minutes are exact divisions of the elapsed time.
// Months and years count calendar fields: when places is zero a partial
// month or year that has not been reached yet is not counted, otherwise the
// leftover days are added as a fraction (of the end month's length for
// months, of 365 days for years).
func Difference(d1, d2 time.Time, unit Unit, places int) DifferenceResult {
	places = ClampPlaces(places)
	elapsed := float64(d2.UnixMilli() - d1.UnixMilli())

	var v float64
	switch unit {
	case Weeks:
		v = elapsed / msPerWeek
	case Hours:
		v = elapsed / msPerHour
	case Minutes:
		v = elapsed / msPerMinute
	case Months:
		v = monthsBetween(d1, d2, places > 0)
	case Years:
		v = yearsBetween(d1, d2, places > 0)
	default:
		unit = Days
		v = elapsed / msPerDay
	}

	return DifferenceResult{
		Value:       Round(v, places),
		Unit:        unit,
		Anniversary: IsAnniversary(d1, d2),
	}
}

func monthsBetween(d1, d2 time.Time, fractional bool) float64 {
	months := float64((d2.Year()-d1.Year())*12 + int(d2.Month()-d1.Month()))
	if fractional {
		return months + float64(d2.Day()-d1.Day())/float64(DaysIn(d2.Year(), d2.Month()))
	}
	if d2.Day() < d1.Day() {
		months--
	}
	return months
}

func yearsBetween(d1, d2 time.Time, fractional bool) float64 {
	years := float64(d2.Year() - d1.Year())
	if fractional {
		// Fixed 365-day year, not leap aware.
		return years + float64(d2.Month()-d1.Month())/12 + float64(d2.Day()-d1.Day())/365
	}
	if d2.Month() < d1.Month() || (d2.Month() == d1.Month() && d2.Day() < d1.Day()) {
		years--
	}
	return years
}
