package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusCompleted  = "completed"
	AttemptStatusExpired    = "expired"
)

const (
	ResultPass = "pass"
	ResultFail = "fail"
)

// AssessmentAttempt is one candidate's run at an assessment for one job
// application. The (assessment, candidate, application) triple is unique, so
// two racing start calls cannot create a duplicate; start reactivates the
// existing row instead.
type AssessmentAttempt struct {
	ID               uint               `gorm:"primarykey" json:"id"`
	AssessmentID     uint               `json:"assessment_id" gorm:"not null;index;uniqueIndex:idx_attempt_identity"`
	CandidateID      uint               `json:"candidate_id" gorm:"not null;index;uniqueIndex:idx_attempt_identity"`
	ApplicationID    uint               `json:"application_id" gorm:"not null;index;uniqueIndex:idx_attempt_identity"`
	Assessment       Assessment         `json:"assessment,omitempty" gorm:"foreignKey:AssessmentID"`
	Status           string             `json:"status" gorm:"default:'in_progress';index"`
	StartTime        time.Time          `json:"start_time"`
	EndTime          *time.Time         `json:"end_time,omitempty"`
	TimeRemaining    int                `json:"time_remaining"` // seconds at start, advisory only
	CurrentQuestion  int                `json:"current_question"`
	TotalMarks       int                `json:"total_marks"`
	TermsAccepted    bool               `json:"terms_accepted"`
	TermsAcceptedAt  *time.Time         `json:"terms_accepted_at,omitempty"`
	QuestionSnapshot datatypes.JSON     `json:"-"` // []SnapshotQuestion taken at start
	PassingPercentage float64           `json:"passing_percentage"` // frozen at start alongside the snapshot
	Score            int                `json:"score"`
	Percentage       float64            `json:"percentage"`
	Result           string             `json:"result,omitempty"`
	Answers          []AttemptAnswer    `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Violations       []AttemptViolation `json:"violations,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`
}

// Terminal reports whether the attempt can no longer be mutated by the candidate.
func (a *AssessmentAttempt) Terminal() bool {
	return a.Status == AttemptStatusCompleted || a.Status == AttemptStatusExpired
}
