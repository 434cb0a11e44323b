// Package directory looks up the time zone settings of chat users.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// Directory resolves a user's time zone.
type Directory interface {
	LookupUserTimezone(ctx context.Context, userID string) (Timezone, error)
}

// Timezone is the zone a user has configured.
type Timezone struct {
	// Name is the IANA zone, e.g. "America/Los_Angeles".
	Name string `bson:"tz" json:"tz"`
	// Label is the human readable zone, e.g. "Pacific Daylight Time".
	Label string `bson:"tz_label" json:"tz_label"`
	// OffsetSeconds is added to UTC to get the user's wall clock.
	OffsetSeconds int `bson:"tz_offset" json:"tz_offset"`
}

// IsDST reports whether the label names a daylight saving zone.
func (tz Timezone) IsDST() bool {
	return strings.Contains(strings.ToLower(tz.Label), "daylight")
}

// Location loads the IANA zone, or a fixed zone at OffsetSeconds when the
// name is empty.
func (tz Timezone) Location() (*time.Location, error) {
	if strings.TrimSpace(tz.Name) == "" {
		return time.FixedZone(tz.Label, tz.OffsetSeconds), nil
	}
	loc, err := time.LoadLocation(tz.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz.Name, err)
	}
	return loc, nil
}

// ResolveOffset fills a missing OffsetSeconds from the named zone as of now,
// so a zone given only by name yields the same wall clock everywhere.
// Explicit offsets and unknown zone names are returned unchanged.
func (tz Timezone) ResolveOffset(now time.Time) Timezone {
	if tz.OffsetSeconds != 0 || strings.TrimSpace(tz.Name) == "" {
		return tz
	}
	loc, err := time.LoadLocation(tz.Name)
	if err != nil {
		return tz
	}
	_, tz.OffsetSeconds = now.In(loc).Zone()
	return tz
}

// Static is an in-memory Directory.
type Static struct {
	mu    sync.RWMutex
	users map[string]Timezone
}

func NewStatic(users map[string]Timezone) *Static {
	s := &Static{users: make(map[string]Timezone, len(users))}
	for id, tz := range users {
		s.users[id] = tz
	}
	return s
}

func (s *Static) Set(userID string, tz Timezone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = tz
}

func (s *Static) LookupUserTimezone(_ context.Context, userID string) (Timezone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tz, ok := s.users[userID]
	if !ok {
		return Timezone{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return tz, nil
}

// Fixed answers every lookup with the same zone.
type Fixed Timezone

func (f Fixed) LookupUserTimezone(context.Context, string) (Timezone, error) {
	return Timezone(f), nil
}
