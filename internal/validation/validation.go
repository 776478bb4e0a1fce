package validation

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for date query parameters.
const DateFormat = "2006-01-02"

// Common validation errors
var (
	ErrInvalidDate = fmt.Errorf("invalid date format, expected YYYY-MM-DD")
)

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

// ParseDateOrDefault parses a YYYY-MM-DD string, returning fallback when the
// value is empty.
func ParseDateOrDefault(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return ParseDate(value)
}
