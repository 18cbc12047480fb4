package store

import (
	"fmt"
	"strings"
	"time"
)

func parseLocalDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

// dayBounds returns the half-open [start, end) storage-format bounds
// for a local calendar date.
func dayBounds(date string) (string, string, error) {
	start, err := parseLocalDate(date)
	if err != nil {
		return "", "", err
	}
	return formatTime(start), formatTime(start.AddDate(0, 0, 1)), nil
}

func parseDateStart(date string) (string, error) {
	start, err := parseLocalDate(date)
	if err != nil {
		return "", err
	}
	return formatTime(start), nil
}

func parseDateEndExclusive(date string) (string, error) {
	start, err := parseLocalDate(date)
	if err != nil {
		return "", err
	}
	return formatTime(start.AddDate(0, 0, 1)), nil
}
