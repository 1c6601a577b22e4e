package utils

import (
	"errors"
	"regexp"
	"time"
)

var hhmmRe = regexp.MustCompile(`\b(\d{2}):(\d{2})\b`)

// ValidDate parses a YYYY-MM-DD journey date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// NormalizeTimeStr extracts a valid HH:MM from input like "08:00 CET".
func NormalizeTimeStr(t string) (string, error) {
	m := hhmmRe.FindStringSubmatch(t)
	if len(m) < 3 {
		return "", errors.New("invalid time format (example: 08:00)")
	}
	hhmm := m[0]
	if _, err := time.Parse("15:04", hhmm); err != nil {
		return "", errors.New("invalid time format")
	}
	return hhmm, nil
}

// DateOnly truncates a datetime string to its date part.
func DateOnly(v string) string {
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}
