package model

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// MidnightUTC keeps the calendar day as seen in t's own offset and pins it to
// 00:00 UTC, so 2024-12-18T23:30-05:00 stays 2024-12-18.
func MidnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDueDate accepts YYYY-MM-DD or RFC3339 timestamps. Empty input means no date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d := MidnightUTC(t)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC3339", s)
}

// NormalizeDueDate returns a midnight-UTC copy, or nil.
func NormalizeDueDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := MidnightUTC(*t)
	return &d
}

// Today is the current calendar day at midnight UTC in the given location.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return MidnightUTC(now.In(loc))
}
