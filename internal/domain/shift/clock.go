package shift

import (
	"fmt"
	"strings"
	"time"
)

// ParseClock parses a 24-hour HH:MM value into minutes after midnight.
func ParseClock(value string) (int, error) {
	value = strings.TrimSpace(value)
	parsed, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// NormalizeClock returns value re-rendered as zero-padded HH:MM.
func NormalizeClock(value string) (string, error) {
	minutes, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

func ClockSpanMinutes(start, end string) (int, error) {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return endMinutes - startMinutes, nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
