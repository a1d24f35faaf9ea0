package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionKindMultipleChoice = "multiple_choice"
	QuestionKindFreeText       = "free_text"
	QuestionKindFileUpload     = "file_upload"
)

type AssessmentQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	AssessmentID  uint           `json:"assessment_id" gorm:"not null;index"`
	Position      int            `json:"position" gorm:"not null"` // zero-based order within the assessment
	Text          string         `json:"text" gorm:"type:text;not null"`
	Kind          string         `json:"kind" gorm:"not null;default:'multiple_choice'"`
	Options       datatypes.JSON `json:"options,omitempty"`        // []string, empty unless multiple_choice
	CorrectAnswer *int           `json:"correct_answer,omitempty"` // option index, nil unless multiple_choice
	Marks         int            `json:"marks" gorm:"not null;default:1"`
	Explanation   string         `json:"explanation,omitempty" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// SnapshotQuestion is the frozen form of a question copied into an attempt at
// start time. Scoring and resume views read the snapshot, so an employer
// editing a published assessment never changes the outcome of an attempt that
// is already underway.
type SnapshotQuestion struct {
	Position      int      `json:"position"`
	Text          string   `json:"text"`
	Kind          string   `json:"kind"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
	Marks         int      `json:"marks"`
	Explanation   string   `json:"explanation,omitempty"`
}
