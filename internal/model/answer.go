package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptAnswer is keyed by (attempt, question index): re-answering the same
// question upserts this row rather than appending a second one.
type AttemptAnswer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	AttemptID      uint           `json:"attempt_id" gorm:"not null;index;uniqueIndex:idx_answer_per_question"`
	QuestionIndex  int            `json:"question_index" gorm:"not null;uniqueIndex:idx_answer_per_question"`
	SelectedAnswer *int           `json:"selected_answer,omitempty"`
	TextAnswer     *string        `json:"text_answer,omitempty" gorm:"type:text"`
	UploadedFile   datatypes.JSON `json:"uploaded_file,omitempty"` // UploadedFile, nil unless file_upload
	TimeSpent      int            `json:"time_spent"`              // seconds, client reported
	AnsweredAt     time.Time      `json:"answered_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// UploadedFile is the stored metadata for a file_upload answer.
type UploadedFile struct {
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	PublicID     string    `json:"public_id"`
	URL          string    `json:"url"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
