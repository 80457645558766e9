package service

import (
	"fmt"
	"strings"
	"time"
)

// arrivalLayouts are tried in order. Layouts without a zone parse as UTC.
var arrivalLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"2006-01-02",
}

// ParseArrival parses an estimated arrival string and returns it in UTC.
func ParseArrival(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidArrival)
	}

	for _, layout := range arrivalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", ErrInvalidArrival, s)
}
