// Package dates provides date and timestamp parsing helpers shared by the
// CLI, the MCP tools and the organiser reader.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DateLayout is the layout of organiser day headings and date arguments.
	DateLayout = "2006-01-02"

	// StampLayout is the minute-precision layout of focus-session records.
	StampLayout = "2006-01-02 15:04"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Keywords lists the accepted relative date arguments.
var Keywords = []string{"today", "tomorrow", "yesterday"}

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// ParseDateArg parses a CLI date argument which can be:
// - "today", "yesterday", "tomorrow" (relative to now)
// - "YYYY-MM-DD" format (absolute date)
// - Empty string defaults to today
//
// The result is midnight in now's location.
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	anchor := StartOfDay(now)

	dateArg := strings.ToLower(strings.TrimSpace(arg))
	switch dateArg {
	case "", "today":
		return anchor, nil
	case "yesterday":
		return anchor.AddDate(0, 0, -1), nil
	case "tomorrow":
		return anchor.AddDate(0, 0, 1), nil
	default:
		parsed, err := ParseDate(dateArg, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date format '%s', use YYYY-MM-DD or today/yesterday/tomorrow", dateArg)
		}
		return parsed, nil
	}
}

// ParseStamp parses a focus-session start time. Accepted forms are
// "YYYY-MM-DD HH:MM", "YYYY-MM-DDTHH:MM", RFC3339 and "now". Times without a
// zone are read in now's location. The result is truncated to the minute.
func ParseStamp(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "now") {
		return now.Truncate(time.Minute), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(now.Location()).Truncate(time.Minute), nil
	}
	for _, layout := range []string{StampLayout, "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, use YYYY-MM-DD HH:MM", s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
