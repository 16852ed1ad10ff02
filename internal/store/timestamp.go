package store

import (
	"fmt"
	"time"
)

// Timestamp handling for every codec lives here. No other package may
// parse or format a stored date string; upper layers only ever see
// time.Time values.
//
// Encode always produces the canonical fixed-offset, second-precision
// format. Decode accepts the canonical format (fractional seconds from
// older files are tolerated) plus exactly one legacy fallback, the
// date-only form. Any other shape is a hard decode error.
const (
	// TimestampFormat is the canonical on-disk timestamp format.
	TimestampFormat = "2006-01-02T15:04:05-07:00"
	// DateFormat is the date-only format, used for birthdates and
	// accepted as a legacy fallback for timestamps.
	DateFormat = "2006-01-02"
)

// Now returns the current time truncated to the codec's second
// precision, so a freshly stamped entity is identical to its re-read
// form. Services stamp CreatedAt/UpdatedAt/OccurredAt with this, never
// with time.Now directly.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// FormatTimestamp renders t in the canonical on-disk format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// ParseTimestamp parses a stored timestamp. Legacy date-only values
// decode to midnight UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("malformed timestamp %q", s)
}

// FormatDate renders a date-only value.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a date-only value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	return t, nil
}
