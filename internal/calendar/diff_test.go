package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) unexpected error: %v", s, err)
	}
	return d
}

func TestDifference(t *testing.T) {
	tests := []struct {
		name   string
		d1, d2 string
		unit   Unit
		places int
		want   DifferenceResult
	}{
		{"whole months", "2024-01-15", "2024-03-15", Months, 0, DifferenceResult{Value: 2, Unit: Months}},
		{"year not reached on leap day", "2024-02-29", "2025-02-28", Years, 0, DifferenceResult{Value: 0, Unit: Years}},
		{"days across leap february", "2024-01-01", "2024-03-01", Days, 0, DifferenceResult{Value: 60, Unit: Days}},
		{"negative days", "2024-03-01", "2024-01-01", Days, 0, DifferenceResult{Value: -60, Unit: Days}},
		{"fractional weeks", "2024-01-01", "2024-01-11", Weeks, 2, DifferenceResult{Value: 1.43, Unit: Weeks}},
		{"fractional months use end month length", "2024-01-15", "2024-02-20", Months, 2, DifferenceResult{Value: 1.17, Unit: Months}},
		{"month not reached", "2024-01-31", "2024-02-29", Months, 0, DifferenceResult{Value: 0, Unit: Months}},
		{"fractional years", "2020-06-15", "2024-03-10", Years, 2, DifferenceResult{Value: 3.74, Unit: Years}},
		{"whole years anniversary", "2020-06-15", "2024-06-15", Years, 0, DifferenceResult{Value: 4, Unit: Years, Anniversary: true}},
		{"hours", "2024-01-01", "2024-01-02", Hours, 0, DifferenceResult{Value: 24, Unit: Hours}},
		{"minutes", "2024-01-01T00:00:00Z", "2024-01-01T01:30:00Z", Minutes, 0, DifferenceResult{Value: 90, Unit: Minutes, Anniversary: true}},
		{"unknown unit falls back to days", "2024-01-01", "2024-01-08", Unit(42), 0, DifferenceResult{Value: 7, Unit: Days}},
		{"half day rounds away from zero", "2024-01-01T00:00:00Z", "2024-01-03T12:00:00Z", Days, 0, DifferenceResult{Value: 3, Unit: Days}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Difference(mustDate(t, tt.d1), mustDate(t, tt.d2), tt.unit, tt.places)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Difference() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDifference_Antisymmetric(t *testing.T) {
	pairs := [][2]string{
		{"2024-01-01", "2024-03-01"},
		{"1999-12-31", "2024-02-29"},
		{"2024-01-01T00:00:00Z", "2024-01-03T12:00:00Z"},
		{"2023-07-04T08:15:00Z", "2023-07-01T20:45:00Z"},
	}
	for _, p := range pairs {
		for _, places := range []int{0, 1, 3, 10} {
			a, b := mustDate(t, p[0]), mustDate(t, p[1])
			fwd := Difference(a, b, Days, places).Value
			back := Difference(b, a, Days, places).Value
			if fwd != -back {
				t.Errorf("Difference(%s, %s, places=%d) = %v, reverse = %v", p[0], p[1], places, fwd, back)
			}
		}
	}
}

func TestDifference_SameDate(t *testing.T) {
	d := mustDate(t, "2024-05-17")
	for _, u := range Units() {
		got := Difference(d, d, u, 4)
		if got.Value != 0 {
			t.Errorf("Difference(d, d, %s) = %v, want 0", u, got.Value)
		}
		if !got.Anniversary {
			t.Errorf("Difference(d, d, %s) anniversary = false, want true", u)
		}
	}
}

func TestIsAnniversary(t *testing.T) {
	tests := []struct {
		d1, d2 string
		want   bool
	}{
		{"1990-07-04", "2024-07-04", true},
		{"2024-07-04", "1990-07-04", true},
		{"2024-07-04", "2024-07-05", false},
		{"2024-02-29", "2025-02-28", false},
		{"2024-03-15", "2024-04-15", false},
	}
	for _, tt := range tests {
		if got := IsAnniversary(mustDate(t, tt.d1), mustDate(t, tt.d2)); got != tt.want {
			t.Errorf("IsAnniversary(%s, %s) = %v, want %v", tt.d1, tt.d2, got, tt.want)
		}
	}
}

func TestRound_ClampsPlaces(t *testing.T) {
	tests := []struct {
		x      float64
		places int
		want   float64
	}{
		{1.0 / 3, 15, 0.3333333333},
		{1.0 / 3, 10, 0.3333333333},
		{1.6, -3, 2},
		{-1.5, 0, -2},
		{2.375, 2, 2.38},
		{-0.0001, 2, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.x, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.x, tt.places, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-29"); err != nil {
		t.Errorf("ParseDate(leap day) unexpected error: %v", err)
	}
	got, err := ParseDate("2024-02-29T10:00:00+02:00")
	if err != nil {
		t.Fatalf("ParseDate(RFC3339) unexpected error: %v", err)
	}
	if got.Hour() != 10 || got.Day() != 29 {
		t.Errorf("ParseDate(RFC3339) = %v, want wall clock preserved", got)
	}
	for _, bad := range []string{"2024-02-30", "yesterday", ""} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		mode    Mode
		want    Unit
		wantErr error
	}{
		{"Months", Lenient, Months, nil},
		{"  weeks ", Strict, Weeks, nil},
		{"MINUTES", Lenient, Minutes, nil},
		{"Fortnights", Lenient, Days, nil},
		{"", Lenient, Days, nil},
		{"Fortnights", Strict, Days, ErrUnknownUnit},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in, tt.mode)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseUnit(%q, %s) error = %v, want %v", tt.in, tt.mode, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseUnit(%q, %s) = %s, want %s", tt.in, tt.mode, got, tt.want)
		}
	}
}
