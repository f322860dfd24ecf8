// Package calendar exports resolved exam timings as an iCalendar feed.
package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
)

const (
	ProductID = "-//examtt//Exam Timetable//EN"
	uidDomain = "examtt"
)

// uidNamespace keeps UIDs stable across exports of the same timing
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/balkashynov/examtt"))

// stubCalendar is served when nothing could be exported; clients reject empty feeds
const stubCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ProductID + "\r\nEND:VCALENDAR\r\n"

// Build encodes timings as a VCALENDAR with one event per timing.
// Dates and clock times are read in loc, the timezone the timetable is
// published in, and written as UTC. A nil loc keeps now's location.
// Timings whose date doesn't parse are skipped; timings whose start time
// doesn't parse become all-day events.
func Build(sessionCode string, timings []models.ExamTiming, now time.Time, loc *time.Location) ([]byte, error) {
	if loc != nil {
		now = now.In(loc)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText("X-WR-CALNAME", calendarName(sessionCode))
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	skipped := 0
	for _, timing := range timings {
		event, ok := newEvent(sessionCode, timing, now)
		if !ok {
			skipped++
			zap.L().Info("skipping exam with unparseable date",
				zap.String("course", timing.Course),
				zap.String("date", timing.Date))
			continue
		}
		cal.Children = append(cal.Children, event.Component)
	}

	zap.L().Debug("calendar built",
		zap.Int("events", len(cal.Children)),
		zap.Int("skipped", skipped))

	if len(cal.Children) == 0 {
		return []byte(stubCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func newEvent(sessionCode string, timing models.ExamTiming, now time.Time) (*ical.Event, bool) {
	date, ok := parser.ParseExamDate(timing.Date, now)
	if !ok {
		return nil, false
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, UID(sessionCode, timing))
	event.Props.SetText(ical.PropSummary, timing.Course+" exam")

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(now.UTC())
	event.Props.Set(stamp)

	start, startOK := parser.ParseExamTime(timing.Start, now)
	if startOK {
		startAt := onDate(date, start)

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDateTime(startAt.UTC())
		event.Props.Set(dtStart)

		if end, ok := parser.ParseExamTime(timing.End, now); ok {
			endAt := onDate(date, end)
			if endAt.After(startAt) {
				dtEnd := ical.NewProp(ical.PropDateTimeEnd)
				dtEnd.SetDateTime(endAt.UTC())
				event.Props.Set(dtEnd)
			}
		}
	} else {
		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDate(date)
		event.Props.Set(dtStart)
	}

	if timing.Location != "" {
		event.Props.SetText(ical.PropLocation, timing.Location)
	}
	if description := describe(timing); description != "" {
		event.Props.SetText(ical.PropDescription, description)
	}

	return event, true
}

// UID returns the stable event UID for a timing
func UID(sessionCode string, timing models.ExamTiming) string {
	key := strings.Join([]string{sessionCode, timing.Course, timing.Section, timing.Split}, "|")
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@" + uidDomain
}

// onDate puts the time of day from clock onto date
func onDate(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

func describe(timing models.ExamTiming) string {
	var lines []string
	if timing.Section != "" && timing.Section != models.AllSections {
		lines = append(lines, "Section: "+timing.Section)
	}
	if timing.Split != "" {
		lines = append(lines, "Surnames: "+timing.Split)
	}
	if timing.Format != "" {
		lines = append(lines, "Format: "+timing.Format)
	}
	if timing.Notes != "" {
		lines = append(lines, timing.Notes)
	}
	return strings.Join(lines, "\n")
}

func calendarName(sessionCode string) string {
	if sessionCode == "" {
		return "Exams"
	}
	return "Exams " + sessionCode
}
