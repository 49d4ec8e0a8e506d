// Package timeutil resolves the day arguments accepted by hrs.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)        // YYYY-MM (missing day)
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)                // YYYY (year only)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)      // MM-DD or DD-MM (missing year)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)      // DD/MM (missing year)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`) // Too many separators
)

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDay resolves a day argument relative to now. Besides the formats
// ParseDate accepts, it understands "today", "y"/"yesterday" and an empty
// string, which means today.
func ParseDay(input string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today", "t":
		return StartOfDay(now), nil
	case "y", "yesterday":
		return StartOfDay(now.AddDate(0, 0, -1)), nil
	}
	return ParseDate(strings.TrimSpace(input), now.Location())
}

// ParseDate parses a date string in YYYY-MM-DD or DD/MM/YYYY format and
// returns the start of that day in loc. ISO format wins for ambiguous input.
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, loc); err == nil {
		return t, nil
	}

	return time.Time{}, buildDateParseError(input)
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use today, yesterday, YYYY-MM-DD or DD/MM/YYYY)", input)
	}
}

// FormatDay renders a day heading such as "Mon 15 Jan 2024", using "today"
// and "yesterday" where they apply.
func FormatDay(day, now time.Time) string {
	d := StartOfDay(day)
	if d.Equal(StartOfDay(now)) {
		return "today"
	}
	if d.Equal(StartOfDay(now.AddDate(0, 0, -1))) {
		return "yesterday"
	}
	return day.Format("Mon 2 Jan 2006")
}
