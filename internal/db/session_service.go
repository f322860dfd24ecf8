package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/examtt/internal/models"
)

// ErrSessionNotFound is returned when no session has the requested code
var ErrSessionNotFound = errors.New("exam session not found")

// ImportSessionRequest holds a full timetable for one session
type ImportSessionRequest struct {
	Code    string
	Name    string
	Source  string
	Timings []models.ExamTiming
}

// ImportSession stores a session's timetable, replacing any previous import
// of the same session. Timings keep the order they were given in.
func ImportSession(req ImportSessionRequest) (*models.ExamSession, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("session code is required")
	}

	var session models.ExamSession
	err := DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("code = ?", code).First(&session).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			session = models.ExamSession{Code: code}
		case err != nil:
			return err
		default:
			// Existing session: drop the old timetable wholesale
			if err := tx.Where("session_id = ?", session.ID).Delete(&models.ExamTiming{}).Error; err != nil {
				return fmt.Errorf("failed to clear old timings: %w", err)
			}
		}

		session.Name = req.Name
		if session.Name == "" {
			session.Name = code
		}
		session.Source = req.Source
		session.ImportedAt = time.Now()

		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if len(req.Timings) == 0 {
			return nil
		}

		timings := make([]models.ExamTiming, len(req.Timings))
		for i, timing := range req.Timings {
			timing.ID = 0
			timing.SessionID = session.ID
			timing.Position = i
			timings[i] = timing
		}

		return tx.CreateInBatches(&timings, 200).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import session %s: %w", code, err)
	}

	return &session, nil
}

// GetSessions returns all imported sessions, newest code first
func GetSessions() ([]models.ExamSession, error) {
	var sessions []models.ExamSession
	if err := DB.Order("code DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSessionByCode retrieves a session without its timings
func GetSessionByCode(code string) (*models.ExamSession, error) {
	var session models.ExamSession
	err := DB.Where("code = ?", strings.TrimSpace(code)).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetTimings returns a session's timetable in source order
func GetTimings(code string) ([]models.ExamTiming, error) {
	session, err := GetSessionByCode(code)
	if err != nil {
		return nil, err
	}

	var timings []models.ExamTiming
	if err := DB.Where("session_id = ?", session.ID).Order("position ASC").Find(&timings).Error; err != nil {
		return nil, err
	}
	return timings, nil
}

// CountTimings returns how many timetable rows a session has
func CountTimings(sessionID uint) (int64, error) {
	var count int64
	err := DB.Model(&models.ExamTiming{}).Where("session_id = ?", sessionID).Count(&count).Error
	return count, err
}

// DeleteSession removes a session and its timetable.
// If it was the active session, the active session is cleared.
func DeleteSession(code string) error {
	session, err := GetSessionByCode(code)
	if err != nil {
		return err
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&models.ExamTiming{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(session).Error; err != nil {
			return err
		}
		return tx.Where("name = ? AND value = ?", models.SettingActiveSession, session.Code).
			Delete(&models.Setting{}).Error
	})
}

// SetActiveSession selects the session used when none is given explicitly
func SetActiveSession(code string) error {
	session, err := GetSessionByCode(code)
	if err != nil {
		return err
	}
	return setSetting(models.SettingActiveSession, session.Code)
}

// GetActiveSession returns the selected session code, or "" if none is selected
func GetActiveSession() (string, error) {
	return getSetting(models.SettingActiveSession)
}
