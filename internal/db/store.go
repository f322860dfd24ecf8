package db

import "github.com/balkashynov/examtt/internal/models"

// Store exposes the session queries through a value that can be passed
// to consumers expecting an interface
type Store struct{}

// Sessions returns all imported sessions
func (Store) Sessions() ([]models.ExamSession, error) {
	return GetSessions()
}

// Session returns one session by code
func (Store) Session(code string) (*models.ExamSession, error) {
	return GetSessionByCode(code)
}

// Timings returns a session's timetable in source order
func (Store) Timings(code string) ([]models.ExamTiming, error) {
	return GetTimings(code)
}
