package repository

import (
	"github.com/dungnh/jobhub/internal/model"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	Update(assessment *model.Assessment) error
	Delete(id uint, employerID uint) (int64, error)
	FindByID(id uint) (*model.Assessment, error)
	FindByIDAndEmployer(id uint, employerID uint) (*model.Assessment, error)
	FindAllByEmployer(employerID uint) ([]model.Assessment, error)
	MaxSerialNumber(employerID uint) (int, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	// Creates embedded questions in the same insert via the association.
	return r.db.Create(assessment).Error
}

// Update rewrites the question list wholesale: the definition's questions are
// an owned, ordered value list, not independently addressable rows.
func (r *assessmentRepository) Update(assessment *model.Assessment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", assessment.ID).
			Delete(&model.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		return tx.Save(assessment).Error
	})
}

func (r *assessmentRepository) Delete(id uint, employerID uint) (int64, error) {
	res := r.db.Where("id = ? AND employer_id = ?", id, employerID).
		Delete(&model.Assessment{})
	return res.RowsAffected, res.Error
}

func (r *assessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("assessment_questions.position ASC")
	}).First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByIDAndEmployer(id uint, employerID uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("assessment_questions.position ASC")
	}).Where("id = ? AND employer_id = ?", id, employerID).
		First(&assessment).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindAllByEmployer(employerID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.db.Where("employer_id = ?", employerID).
		Order("serial_number ASC").
		Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) MaxSerialNumber(employerID uint) (int, error) {
	var max *int
	err := r.db.Model(&model.Assessment{}).
		Where("employer_id = ?", employerID).
		Select("MAX(serial_number)").
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}
