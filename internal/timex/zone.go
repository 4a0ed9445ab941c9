package timex

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LocalLayout is the wall-clock form handed to the viewer: no offset.
const LocalLayout = "2006-01-02T15:04:05"

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// layouts accepted for timestamps that carry no offset. Form inputs send
// minutes only.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// layouts accepted for timestamps that carry an offset. The minute form is
// what AddLocalOffset produces for form input.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Parse reads a timestamp with or without an offset. Values without an
// offset are interpreted in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// HasOffset reports whether s ends with "Z" or a ±HH:MM offset.
func HasOffset(s string) bool {
	if strings.HasSuffix(s, "Z") {
		return true
	}
	if len(s) < 6 {
		return false
	}
	tail := s[len(s)-6:]
	return (tail[0] == '+' || tail[0] == '-') && tail[3] == ':'
}

// ConvertToLocal renders an offset-carrying timestamp as local wall-clock
// time in loc, dropping the offset. Empty input is returned unchanged.
func ConvertToLocal(s string, loc *time.Location) (string, error) {
	if s == "" {
		return s, nil
	}
	t, err := Parse(s, loc)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(LocalLayout), nil
}

// AddLocalOffset appends the loc offset in force at that wall-clock moment
// to a timestamp that has none. Values already carrying an offset, and the
// empty string, are returned unchanged.
func AddLocalOffset(s string, loc *time.Location) (string, error) {
	if s == "" || HasOffset(s) {
		return s, nil
	}
	t, err := Parse(s, loc)
	if err != nil {
		return "", err
	}
	return s + FormatOffset(t), nil
}

// FormatOffset renders the zone offset of t as ±HH:MM.
func FormatOffset(t time.Time) string {
	_, secs := t.Zone()
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	mins := secs / 60
	return fmt.Sprintf("%c%02d:%02d", sign, mins/60, mins%60)
}
