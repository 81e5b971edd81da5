package utils

import (
	"fmt"
	"time"
)

// Date layouts accepted on input, tried in order. Callers send ISO-8601
// timestamps; bare dates are tolerated for hand-built payloads.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

const MonthKeyFormat = "2006-01"

// ParseDate parses an ISO-8601 date string.
func ParseDate(dateStr string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q, expected ISO-8601", dateStr)
}

// MonthKey returns the calendar-month key ("2006-01") used to align
// projected and actual series.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyFormat)
}
