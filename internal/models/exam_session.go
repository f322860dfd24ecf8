package models

import "time"

// ExamSession is one term's exam timetable, e.g. 20231 for Winter 2023
type ExamSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Code       string    `gorm:"uniqueIndex;not null" json:"session"`
	Name       string    `json:"name"`
	Source     string    `json:"source"` // file path or URL the timetable came from
	ImportedAt time.Time `json:"imported_at"`

	// Relationships
	Timings []ExamTiming `gorm:"foreignKey:SessionID;" json:"exam_times,omitempty"`
}

// ExamTiming is one row of the exam timetable.
// Rows are read-only once imported; a re-import replaces all of them.
type ExamTiming struct {
	ID        uint `gorm:"primarykey" json:"-"`
	SessionID uint `gorm:"index;not null" json:"-"`
	Position  int  `gorm:"not null" json:"-"` // order in the source file

	Course   string `gorm:"index;not null" json:"course"`
	Section  string `json:"section"` // "ALL" or a specific section
	Format   string `json:"format"`
	Split    string `json:"split"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Notes    string `json:"notes"`
}

// AllSections is the section value that applies to every section of a course
const AllSections = "ALL"
