package timetable

import (
	"sync"
	"time"

	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
)

// Matcher is a Lookup that remembers parsed splits.
// It is safe for concurrent use; results are the same as Lookup's.
type Matcher struct {
	splits sync.Map // raw split string -> parser.Split
}

// NewMatcher creates an empty Matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Split returns the parsed split for raw, parsing it on first use
func (m *Matcher) Split(raw string) parser.Split {
	if cached, ok := m.splits.Load(raw); ok {
		return cached.(parser.Split)
	}
	split := parser.ParseSplit(raw)
	m.splits.Store(raw, split)
	return split
}

// Lookup resolves the decisions and sorts the matches for display
func (m *Matcher) Lookup(timings []models.ExamTiming, decisions []models.Decision, surname string, now time.Time) []models.ExamTiming {
	matched := resolve(timings, decisions, surname, m.Split)
	Sort(matched, now)
	return matched
}
