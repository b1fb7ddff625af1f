package codec

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned for text that is not a recognizable
// calendar timestamp.
var ErrInvalidDateTime = errors.New("invalid date-time")

// dateTimeLayouts are tried in order. Layouts without a zone are read as
// UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDateTime parses s into a UTC time. Out-of-range fields (for example
// February 30) are rejected.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDateTime
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

// FormatDateTime renders t in UTC as RFC 3339 (trailing zero fractions
// trimmed).
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
