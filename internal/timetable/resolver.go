// Package timetable resolves a student's courses against an exam timetable
// and orders the matches for display.
package timetable

import (
	"time"

	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
)

// FindTiming returns the first timing for the decision whose split accepts surname.
// Course and section are compared exactly; callers pass them already uppercased.
func FindTiming(timings []models.ExamTiming, decision models.Decision, surname string) (models.ExamTiming, bool) {
	return findTiming(timings, decision, surname, parser.ParseSplit)
}

func findTiming(timings []models.ExamTiming, decision models.Decision, surname string, parse func(string) parser.Split) (models.ExamTiming, bool) {
	for _, timing := range timings {
		if timing.Course != decision.Course {
			continue
		}
		if timing.Section != models.AllSections && timing.Section != decision.Section {
			continue
		}
		if parse(timing.Split).Contains(surname) {
			return timing, true
		}
	}
	return models.ExamTiming{}, false
}

// Resolve looks up every decision in order. Decisions without a match are skipped.
func Resolve(timings []models.ExamTiming, decisions []models.Decision, surname string) []models.ExamTiming {
	return resolve(timings, decisions, surname, parser.ParseSplit)
}

func resolve(timings []models.ExamTiming, decisions []models.Decision, surname string, parse func(string) parser.Split) []models.ExamTiming {
	matched := make([]models.ExamTiming, 0, len(decisions))
	for _, decision := range decisions {
		if timing, ok := findTiming(timings, decision, surname, parse); ok {
			matched = append(matched, timing)
		}
	}
	return matched
}

// Lookup resolves the decisions and sorts the matches for display
func Lookup(timings []models.ExamTiming, decisions []models.Decision, surname string, now time.Time) []models.ExamTiming {
	matched := Resolve(timings, decisions, surname)
	Sort(matched, now)
	return matched
}
