// Package time contains time related helpers
package time

import (
	"strings"
	"time"

	perr "bridgewatch/internal/platform/errors"
)

// Clock returns the current instant. Services take one so tests can pin "now"
type Clock func() time.Time

// System is the wall clock
func System() time.Time { return time.Now() }

// Fixed returns a Clock that always reports t
func Fixed(t time.Time) Clock { return func() time.Time { return t } }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// layouts accepted by ParseIn, most specific first
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseIn reads a reference instant from user input. Values carrying an offset keep it
// and are then moved into loc; zone-less values are read as wall time in loc
func ParseIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, perr.InvalidArgf("empty time value")
	}
	if loc == nil {
		loc = time.UTC
	}
	for i, layout := range layouts {
		var (
			t   time.Time
			err error
		)
		if i < 2 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, loc)
		}
		if err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, perr.InvalidArgf("unrecognized time %q, want RFC3339 or YYYY-MM-DD[ HH:MM]", s)
}
