package parser

import (
	"fmt"
	"strings"
	"time"
)

// examDateLayouts are tried in order and the first successful parse wins.
// Timetable dates carry no format tag, so "01/02/2023" means whatever the
// earliest matching layout says it means.
var examDateLayouts = []string{
	"02-Jan",
	"02/Jan",
	"Jan/02",
	"Jan/02/2006",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02",
}

// examTimeLayouts are tried in order against the uppercased input
var examTimeLayouts = []string{
	"3:04PM",
	"3:04 PM",
	"3:045PM",
	"3:045 PM",
	"15:04",
}

// ParseExamDate parses a timetable date
// Supported formats (in priority order):
// - 20-Apr, 20/Apr, Apr/20 (year taken from now)
// - Apr/20/2023
// - 2023/04/20
// - 04/20/2023
// - 2023-04-20
func ParseExamDate(input string, now time.Time) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	for _, layout := range examDateLayouts {
		parsed, err := time.Parse(layout, input)
		if err != nil {
			continue
		}

		year := parsed.Year()
		if !strings.Contains(layout, "2006") {
			year = now.Year()
		}

		date := time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())

		// Reject Feb 29 in a non-leap year instead of rolling into March
		if date.Day() != parsed.Day() {
			continue
		}

		return date, true
	}

	return time.Time{}, false
}

// ParseExamTime parses a timetable time of day
// Supported formats: 9:00AM, 9:00 AM, 2:000PM, 2:000 PM, 14:00
// The result is the next occurrence of that time of day after now.
func ParseExamTime(input string, now time.Time) (time.Time, bool) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, false
	}

	for _, layout := range examTimeLayouts {
		parsed, err := time.Parse(layout, input)
		if err != nil {
			continue
		}

		next := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		if next.Before(now) {
			next = next.AddDate(0, 0, 1)
		}

		return next, true
	}

	return time.Time{}, false
}

// FormatExamDate formats a timetable date for display.
// Dates that don't parse are shown exactly as given.
func FormatExamDate(raw string, now time.Time) string {
	date, ok := ParseExamDate(raw, now)
	if !ok {
		return raw
	}
	return date.Format("Mon Jan 02 2006")
}

// FormatExamTime formats a timetable time as H:MM (24-hour).
// Times that don't parse are shown exactly as given.
func FormatExamTime(raw string, now time.Time) string {
	t, ok := ParseExamTime(raw, now)
	if !ok {
		return raw
	}
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}
