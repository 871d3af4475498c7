package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted for client supplied timestamps, tried in order. Layouts
// without a zone are read in the caller's location.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTime parses an ISO-8601 style timestamp or unix seconds.
func ParseTime(input string, location *time.Location) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	if location == nil {
		location = time.UTC
	}

	if unix, err := strconv.ParseInt(input, 10, 64); err == nil {
		if unix > 0 && unix < 4102444800 {
			return time.Unix(unix, 0).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("unix time out of range: %d", unix)
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, input, location); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %q", input)
}
