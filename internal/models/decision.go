package models

import "time"

// Decision is a course (and optionally a section) the user wants looked up.
// Course and Section are stored uppercased; a blank Section matches any section.
type Decision struct {
	ID        uint      `gorm:"primarykey" json:"id,omitempty"`
	CreatedAt time.Time `json:"-"`

	Course   string `gorm:"not null" json:"course"`
	Section  string `json:"section"`
	Position int    `gorm:"not null;default:0" json:"-"`
}

// Setting is a key/value preference row
type Setting struct {
	Name  string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// Setting keys
const (
	SettingSurname       = "surname"
	SettingActiveSession = "active_session"
)
