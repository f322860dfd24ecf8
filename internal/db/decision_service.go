package db

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
)

// AddDecision saves a course (and optional section) to the user's list
func AddDecision(course, section string) (*models.Decision, error) {
	decision := models.Decision{
		Course:  parser.NormalizeCourseCode(course),
		Section: parser.NormalizeSection(section),
	}
	if decision.Course == "" {
		return nil, fmt.Errorf("course code is required")
	}

	// Skip exact duplicates
	var existing models.Decision
	err := DB.Where("course = ? AND section = ?", decision.Course, decision.Section).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%s is already in your course list (#%d)", describeDecision(existing), existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var maxPosition sql.NullInt64
	if err := DB.Model(&models.Decision{}).Select("MAX(position)").Row().Scan(&maxPosition); err != nil {
		return nil, err
	}
	if maxPosition.Valid {
		decision.Position = int(maxPosition.Int64) + 1
	}

	if err := DB.Create(&decision).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}

// GetDecisions returns the saved course list in the order it was entered
func GetDecisions() ([]models.Decision, error) {
	var decisions []models.Decision
	if err := DB.Order("position ASC, id ASC").Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

// RemoveDecision deletes a saved course by ID
func RemoveDecision(id uint) (*models.Decision, error) {
	var decision models.Decision
	if err := DB.First(&decision, id).Error; err != nil {
		return nil, fmt.Errorf("course #%d not found", id)
	}
	if err := DB.Delete(&decision).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}

// ClearDecisions removes every saved course
func ClearDecisions() (int64, error) {
	result := DB.Where("1 = 1").Delete(&models.Decision{})
	return result.RowsAffected, result.Error
}

// ReplaceDecisions swaps the saved course list for a new one
func ReplaceDecisions(decisions []models.Decision) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Decision{}).Error; err != nil {
			return err
		}
		for i, d := range decisions {
			row := models.Decision{
				Course:   parser.NormalizeCourseCode(d.Course),
				Section:  parser.NormalizeSection(d.Section),
				Position: i,
			}
			if row.Course == "" {
				continue
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetSurname saves the surname used for lookups. It is stored as given,
// since matching never trims.
func SetSurname(surname string) error {
	return setSetting(models.SettingSurname, surname)
}

// GetSurname returns the saved surname, or "" if none is saved
func GetSurname() (string, error) {
	return getSetting(models.SettingSurname)
}

func setSetting(key, value string) error {
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Name: key, Value: value}).Error
}

func getSetting(key string) (string, error) {
	var setting models.Setting
	err := DB.Where("name = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil // unset is not an error
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func describeDecision(d models.Decision) string {
	if d.Section == "" {
		return d.Course
	}
	return d.Course + ":" + d.Section
}
