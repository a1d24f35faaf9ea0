package model

import (
	"time"

	"gorm.io/gorm"
)

// Job carries just enough of the job aggregate for assessment views to show
// which posting an application belongs to.
type Job struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	EmployerID  uint           `json:"employer_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Designation string         `json:"designation,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
