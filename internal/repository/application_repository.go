package repository

import (
	"github.com/dungnh/jobhub/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	FindByIDAndCandidate(id uint, candidateID uint) (*model.Application, error)
	FindAvailableByCandidate(candidateID uint) ([]model.Application, error)
	SetAssessmentInProgress(id uint, assessmentID uint, attemptID uint) error
	SetAssessmentOutcome(id uint, score int, percentage float64, result string) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) FindByIDAndCandidate(id uint, candidateID uint) (*model.Application, error) {
	var app model.Application
	err := r.db.Where("id = ? AND candidate_id = ?", id, candidateID).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindAvailableByCandidate(candidateID uint) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Preload("Job").
		Where("candidate_id = ? AND assessment_status = ? AND assessment_id IS NOT NULL",
			candidateID, model.ApplicationAssessmentAvailable).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) SetAssessmentInProgress(id uint, assessmentID uint, attemptID uint) error {
	return r.db.Model(&model.Application{}).Where("id = ?", id).
		Updates(map[string]any{
			"assessment_status": model.ApplicationAssessmentInProgress,
			"assessment_id":     assessmentID,
			"attempt_id":        attemptID,
		}).Error
}

func (r *applicationRepository) SetAssessmentOutcome(id uint, score int, percentage float64, result string) error {
	return r.db.Model(&model.Application{}).Where("id = ?", id).
		Updates(map[string]any{
			"assessment_status":     model.ApplicationAssessmentCompleted,
			"assessment_score":      score,
			"assessment_percentage": percentage,
			"assessment_result":     result,
		}).Error
}
