package repository

import (
	"time"

	"github.com/dungnh/jobhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	Create(attempt *model.AssessmentAttempt) error
	Save(attempt *model.AssessmentAttempt) error
	FindByID(id uint) (*model.AssessmentAttempt, error)
	FindByIDWithDetails(id uint) (*model.AssessmentAttempt, error)
	FindByIdentity(assessmentID, candidateID, applicationID uint) (*model.AssessmentAttempt, error)
	FindByApplication(applicationID, candidateID uint) (*model.AssessmentAttempt, error)
	FindCompletedByAssessment(assessmentID uint) ([]model.AssessmentAttempt, error)
	FindOverdueInProgress(now time.Time) ([]model.AssessmentAttempt, error)
	UpsertAnswer(answer *model.AttemptAnswer) error
	AppendViolation(violation *model.AttemptViolation) error
	CountAnswers(attemptID uint) (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.AssessmentAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Save(attempt *model.AssessmentAttempt) error {
	return r.db.Omit("Answers", "Violations", "Assessment").Save(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.AssessmentAttempt, error) {
	var attempt model.AssessmentAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithDetails(id uint) (*model.AssessmentAttempt, error) {
	var attempt model.AssessmentAttempt
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_answers.question_index ASC")
		}).
		Preload("Violations", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_violations.occurred_at ASC")
		}).
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIdentity(assessmentID, candidateID, applicationID uint) (*model.AssessmentAttempt, error) {
	var attempt model.AssessmentAttempt
	err := r.db.Where(
		"assessment_id = ? AND candidate_id = ? AND application_id = ?",
		assessmentID, candidateID, applicationID,
	).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByApplication(applicationID, candidateID uint) (*model.AssessmentAttempt, error) {
	var attempt model.AssessmentAttempt
	err := r.db.Where("application_id = ? AND candidate_id = ?", applicationID, candidateID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindCompletedByAssessment(assessmentID uint) ([]model.AssessmentAttempt, error) {
	var attempts []model.AssessmentAttempt
	err := r.db.Where("assessment_id = ? AND status = ?", assessmentID, model.AttemptStatusCompleted).
		Order("percentage DESC").
		Find(&attempts).Error
	return attempts, err
}

// FindOverdueInProgress returns in_progress attempts whose timer ran out
// before now. Used only by the expiry sweep.
func (r *attemptRepository) FindOverdueInProgress(now time.Time) ([]model.AssessmentAttempt, error) {
	var attempts []model.AssessmentAttempt
	err := r.db.Where(
		"status = ? AND start_time + (time_remaining * interval '1 second') < ?",
		model.AttemptStatusInProgress, now,
	).Find(&attempts).Error
	return attempts, err
}

// UpsertAnswer overwrites on (attempt_id, question_index) conflict, so
// re-answering a question never duplicates the row.
func (r *attemptRepository) UpsertAnswer(answer *model.AttemptAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_index"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_answer", "text_answer", "uploaded_file",
			"time_spent", "answered_at", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *attemptRepository) AppendViolation(violation *model.AttemptViolation) error {
	return r.db.Create(violation).Error
}

func (r *attemptRepository) CountAnswers(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AttemptAnswer{}).
		Where("attempt_id = ?", attemptID).
		Count(&count).Error
	return count, err
}
