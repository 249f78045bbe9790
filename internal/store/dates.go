package store

import (
	"strings" // Input normalization
	"time"    // Timestamp parsing
)

// dateLayouts are the ISO-8601 shapes accepted for a workout date
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate parses a workout timestamp. Values without an offset are read as UTC.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// dateOrNow applies the lenient policy for new workouts: anything unparseable becomes now
func dateOrNow(raw string, now func() time.Time) time.Time {
	if t, ok := parseDate(raw); ok {
		return t
	}
	return now().UTC()
}
