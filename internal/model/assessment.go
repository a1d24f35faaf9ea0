package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AssessmentStatusDraft     = "draft"
	AssessmentStatusPublished = "published"
)

// DefaultPassingPercentage applies when an employer does not set a threshold.
const DefaultPassingPercentage = 60.0

type Assessment struct {
	ID                uint                 `gorm:"primarykey" json:"id"`
	EmployerID        uint                 `json:"employer_id" gorm:"not null;index"`
	SerialNumber      int                  `json:"serial_number" gorm:"not null;index"` // per-employer ordinal, starts at 1
	Title             string               `json:"title" gorm:"not null"`
	Type              string               `json:"type,omitempty"`
	Designation       string               `json:"designation,omitempty"`
	Description       string               `json:"description,omitempty" gorm:"type:text"`
	Instructions      string               `json:"instructions,omitempty" gorm:"type:text"`
	TimerMinutes      int                  `json:"timer_minutes" gorm:"not null"`
	PassingPercentage float64              `json:"passing_percentage" gorm:"default:60"`
	Status            string               `json:"status" gorm:"default:'published'"`
	TotalQuestions    int                  `json:"total_questions" gorm:"not null"`
	Questions         []AssessmentQuestion `json:"questions,omitempty" gorm:"foreignKey:AssessmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	DeletedAt         gorm.DeletedAt       `gorm:"index" json:"-"`
}
