package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/balkashynov/examtt/internal/calendar"
	"github.com/balkashynov/examtt/internal/db"
	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
	"github.com/balkashynov/examtt/internal/timetable"
)

type lookupQuery struct {
	surname   string
	decisions []models.Decision
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listSessions(c *gin.Context) {
	sessions, err := s.store.Sessions()
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, sessions, map[string]interface{}{"count": len(sessions)})
}

func (s *Server) getSession(c *gin.Context) {
	session, err := s.store.Session(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, session, nil)
}

func (s *Server) lookup(c *gin.Context) {
	code := c.Param("code")
	matched, query, ok := s.resolve(c, code)
	if !ok {
		return
	}

	now := s.now()
	respondJSON(c, http.StatusOK, timetable.Present(matched, now), map[string]interface{}{
		"session":   code,
		"surname":   query.surname,
		"requested": len(query.decisions),
		"matched":   len(matched),
	})
}

func (s *Server) exportCalendar(c *gin.Context) {
	code := c.Param("code")
	matched, _, ok := s.resolve(c, code)
	if !ok {
		return
	}

	body, err := calendar.Build(code, matched, s.now(), s.loc)
	if err != nil {
		s.log.Error("calendar export failed", zap.String("session", code), zap.Error(err))
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="exams-%s.ics"`, code))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// resolve runs the lookup shared by the JSON and calendar routes.
// On failure the error response has already been written.
func (s *Server) resolve(c *gin.Context, code string) ([]models.ExamTiming, lookupQuery, bool) {
	query, err := parseLookupQuery(c)
	if err != nil {
		s.metrics.ObserveLookup(lookupResultRejected, 0)
		respondError(c, err)
		return nil, query, false
	}

	timings, err := s.store.Timings(code)
	if err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			s.metrics.ObserveLookup(lookupResultNoSession, 0)
		}
		respondError(c, err)
		return nil, query, false
	}

	matched := s.matcher.Lookup(timings, query.decisions, query.surname, s.now())

	result := lookupResultMatched
	if len(matched) == 0 {
		result = lookupResultNoMatch
	}
	s.metrics.ObserveLookup(result, len(matched))

	s.log.Debug("lookup resolved",
		zap.String("session", code),
		zap.Int("requested", len(query.decisions)),
		zap.Int("matched", len(matched)))

	return matched, query, true
}

// parseLookupQuery reads ?surname= and repeated ?course= parameters.
// A course parameter may also hold a comma separated list.
func parseLookupQuery(c *gin.Context) (lookupQuery, error) {
	query := lookupQuery{surname: c.Query("surname")}
	if strings.TrimSpace(query.surname) == "" {
		return query, withMessage(ErrValidation, "surname is required")
	}

	courses := c.QueryArray("course")
	if len(courses) == 0 {
		return query, withMessage(ErrValidation, "at least one course is required")
	}

	parsed := parser.ParseDecisions(strings.Join(courses, ","))
	if len(parsed.Errors) > 0 {
		return query, withMessage(ErrValidation, strings.Join(parsed.Errors, "; "))
	}
	if len(parsed.Decisions) == 0 {
		return query, withMessage(ErrValidation, "at least one course is required")
	}

	query.decisions = parsed.Decisions
	return query, nil
}
