package timetable

import (
	"slices"
	"time"

	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
)

// Compare orders two timings for display.
// Unparseable dates come first, then dates ascending. Ties go to the start
// time, again unparseable first, compared by hour only.
func Compare(a, b models.ExamTiming, now time.Time) int {
	aDate, aOK := parser.ParseExamDate(a.Date, now)
	bDate, bOK := parser.ParseExamDate(b.Date, now)

	switch {
	case !aOK && bOK:
		return -1
	case aOK && !bOK:
		return 1
	case aOK && bOK:
		if c := aDate.Compare(bDate); c != 0 {
			return c
		}
	}

	aStart, aOK := parser.ParseExamTime(a.Start, now)
	bStart, bOK := parser.ParseExamTime(b.Start, now)

	switch {
	case !aOK && bOK:
		return -1
	case aOK && !bOK:
		return 1
	case aOK && bOK:
		// Minutes are ignored: 10:05 and 10:45 are equal here
		return aStart.Hour() - bStart.Hour()
	}
	return 0
}

// Sort orders timings in place with Compare. Equal timings keep their order.
func Sort(timings []models.ExamTiming, now time.Time) {
	slices.SortStableFunc(timings, func(a, b models.ExamTiming) int {
		return Compare(a, b, now)
	})
}
