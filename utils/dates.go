package utils

import (
	"fmt"
	"time"
)

type dateLayout struct {
	layout   string
	dateOnly bool
}

var dateLayouts = []dateLayout{
	{time.RFC3339, false},
	{"2006-01-02", true},
	{"2006-01-02T15:04:05.000Z", false},
	{"02/01/2006", true},
}

// ParseDateFlexible accepts the date formats the dashboard sends. Empty input gives nil.
func ParseDateFlexible(s string) (*time.Time, error) {
	t, _, err := ParseDateBound(s)
	return t, err
}

// ParseDateBound is ParseDateFlexible that also reports whether s carried no clock time.
func ParseDateBound(s string) (*time.Time, bool, error) {
	if s == "" {
		return nil, false, nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return &t, l.dateOnly, nil
		}
	}
	return nil, false, fmt.Errorf("invalid time format %q", s)
}

// EndOfDay returns the last instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Add(24*time.Hour - time.Nanosecond)
}
