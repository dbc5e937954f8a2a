package dataprocessing

import (
	"fmt"
	"strings"
	"time"

	apperrors "idpflow/internal/errors"
)

// monthNames maps lower-case English month names to their number
var monthNames = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for mo := time.January; mo <= time.December; mo++ {
		m[strings.ToLower(mo.String())] = mo
	}
	return m
}()

// ParseMonthName resolves a full English month name, ignoring case and
// surrounding whitespace. Abbreviations are not accepted.
func ParseMonthName(name string) (time.Month, error) {
	if mo, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return mo, nil
	}
	return 0, apperrors.NewDateParseError(fmt.Sprintf("unrecognized month name %q", name), nil).
		WithContext("value", name)
}

// ParseYear reads a calendar year in 1..9999. Integral floats such as
// "2020.0" are accepted since spreadsheet exports often widen years.
func ParseYear(s string) (int, error) {
	v, ok := ParseNumber(s)
	if !ok || v != float64(int(v)) || v < 1 || v > 9999 {
		return 0, apperrors.NewDateParseError(fmt.Sprintf("invalid year %q", s), nil).
			WithContext("value", s)
	}
	return int(v), nil
}

// dateLayouts are tried in order: ISO first, then day-first forms.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
}

// ParseDate parses a date cell, trying ISO layouts before day-first ones
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewDateParseError(fmt.Sprintf("unsupported date format %q", s), nil).
		WithContext("value", s)
}
