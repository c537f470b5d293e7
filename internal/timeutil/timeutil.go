package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Anchor is the request-time "today" used as the reference point for all
// relative and partial date resolution. Computed fresh per request.
type Anchor struct {
	Today time.Time // start of today (midnight) in the request's location
	Year  int
	Month time.Month
	Day   int
}

// AnchorAt builds an Anchor from a wall-clock instant.
func AnchorAt(now time.Time) Anchor {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Anchor{
		Today: start,
		Year:  start.Year(),
		Month: start.Month(),
		Day:   start.Day(),
	}
}

// dateLayouts are the formats accepted for model-produced date fields.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a date-like string in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date value is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

// ResolveDate normalizes a date-like string to YYYY-MM-DD and corrects years
// that sit in the past relative to the anchor. Generation backends are
// observed to default to a training-cutoff year, so a parsed year earlier
// than the anchor year is replaced with the anchor year; if the replaced
// date still precedes the start of today, the user is assumed to mean the
// next occurrence of that month/day and the year advances once more.
// Years at or after the anchor year pass through unmodified. An unparseable
// value returns ok=false and the field must be treated as unspecified,
// never defaulted to today.
func ResolveDate(value string, anchor Anchor) (string, bool) {
	parsed, err := ParseDate(value, anchor.Today.Location())
	if err != nil {
		return "", false
	}

	if parsed.Year() < anchor.Year {
		parsed = time.Date(anchor.Year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, anchor.Today.Location())
		if parsed.Before(anchor.Today) {
			parsed = parsed.AddDate(1, 0, 0)
		}
	}

	return parsed.Format("2006-01-02"), true
}

// ResolveRelativeDay maps "today"/"tomorrow" onto the anchor. Returns
// ok=false for anything else so callers fall back to ResolveDate.
func ResolveRelativeDay(term string, anchor Anchor) (time.Time, bool) {
	switch strings.ToLower(strings.TrimSpace(term)) {
	case "today":
		return anchor.Today, true
	case "tomorrow":
		return anchor.Today.AddDate(0, 0, 1), true
	default:
		return time.Time{}, false
	}
}

// EndOfDay returns 23:59:59 on the same calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
