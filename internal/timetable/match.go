package timetable

import (
	"time"

	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
)

// Match is a resolved timing with its display strings
type Match struct {
	Timing models.ExamTiming `json:"timing"`
	Date   string            `json:"date"`
	Start  string            `json:"start"`
	End    string            `json:"end"`
}

// Present formats matched timings for display, keeping their order
func Present(timings []models.ExamTiming, now time.Time) []Match {
	matches := make([]Match, 0, len(timings))
	for _, timing := range timings {
		matches = append(matches, Match{
			Timing: timing,
			Date:   parser.FormatExamDate(timing.Date, now),
			Start:  parser.FormatExamTime(timing.Start, now),
			End:    parser.FormatExamTime(timing.End, now),
		})
	}
	return matches
}
