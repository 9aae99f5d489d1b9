// Package dateparse turns user-supplied date strings into local calendar
// days. Three literal layouts are accepted: YYYY-MM-DD, DD.MM.YYYY and
// MM/DD/YYYY.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatError means the input does not have the shape of any accepted
// layout: not exactly three numeric parts, or no 4-digit year in a
// recognizable position.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date format %q: use DD.MM.YYYY, YYYY-MM-DD, or MM/DD/YYYY", e.Input)
}

// InvalidDateError means the input parsed structurally but names no real
// calendar date, e.g. month 13 or day 32.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date values in %q", e.Input)
}

// Parse disambiguates the three accepted layouts and returns the date at
// local midnight. A 4-digit first part means YYYY-MM-DD; a 4-digit third
// part means DD.MM.YYYY when the string contains a dot, MM/DD/YYYY
// otherwise.
func Parse(s string) (time.Time, error) {
	parts := splitDate(s)
	if len(parts) != 3 {
		return time.Time{}, &FormatError{Input: s}
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, &FormatError{Input: s}
		}
		nums[i] = n
	}

	var year, month, day int
	switch {
	case len(parts[0]) == 4:
		year, month, day = nums[0], nums[1], nums[2]
	case len(parts[2]) == 4:
		if strings.Contains(s, ".") {
			day, month = nums[0], nums[1]
		} else {
			month, day = nums[0], nums[1]
		}
		year = nums[2]
	default:
		// Year must be 4 digits in first or third position.
		return time.Time{}, &FormatError{Input: s}
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range components, so a round-trip
	// mismatch means the input named no real date.
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, &InvalidDateError{Input: s}
	}
	return d, nil
}

// splitDate splits on every '.', '-' or '/'. Adjacent separators yield
// empty segments, so runs like "25..12.2024" fail the three-part check
// instead of silently collapsing.
func splitDate(s string) []string {
	parts := make([]string, 0, 3)
	start := 0
	for i, r := range s {
		if r == '.' || r == '-' || r == '/' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether t falls on the calendar day of day, evaluated
// in day's zone. UTC-stamped instants from the feed must be viewed on
// the caller's clock, not matched by their UTC date.
func SameDay(t, day time.Time) bool {
	ty, tm, td := t.In(day.Location()).Date()
	dy, dm, dd := day.Date()
	return ty == dy && tm == dm && td == dd
}
