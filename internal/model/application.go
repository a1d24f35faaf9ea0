package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationAssessmentAvailable   = "available"
	ApplicationAssessmentInProgress  = "in_progress"
	ApplicationAssessmentCompleted   = "completed"
)

// Application is the job-application aggregate. The assessment subsystem does
// not own it; it only reads the candidate/job linkage and writes back the
// denormalized assessment summary so review screens never have to re-query
// the attempt.
type Application struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	CandidateID          uint           `json:"candidate_id" gorm:"not null;index"`
	JobID                uint           `json:"job_id" gorm:"not null;index"`
	Job                  Job            `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Status               string         `json:"status,omitempty"`
	AssessmentID         *uint          `json:"assessment_id,omitempty" gorm:"index"`
	AttemptID            *uint          `json:"attempt_id,omitempty"`
	AssessmentStatus     string         `json:"assessment_status,omitempty" gorm:"index"`
	AssessmentScore      *int           `json:"assessment_score,omitempty"`
	AssessmentPercentage *float64       `json:"assessment_percentage,omitempty"`
	AssessmentResult     *string        `json:"assessment_result,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
