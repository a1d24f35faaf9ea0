package service

import (
	"errors"

	"github.com/dungnh/jobhub/internal/apperr"
	"github.com/dungnh/jobhub/internal/dto"
	"github.com/dungnh/jobhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CandidateAssessmentService serves the test-taker's read side. Every view it
// produces has the answer key (correct_answer, explanation) stripped.
type CandidateAssessmentService interface {
	AvailableAssessments(candidateID uint) ([]dto.AvailableAssessmentResponse, error)
	GetAssessment(id uint) (*dto.CandidateAssessmentResponse, error)
}

type candidateAssessmentService struct {
	assessmentRepo  repository.AssessmentRepository
	applicationRepo repository.ApplicationRepository
}

func NewCandidateAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	applicationRepo repository.ApplicationRepository,
) CandidateAssessmentService {
	return &candidateAssessmentService{
		assessmentRepo:  assessmentRepo,
		applicationRepo: applicationRepo,
	}
}

// AvailableAssessments lists the candidate's applications whose assessment
// slot is still open, joined to the assessment and the parent job.
func (s *candidateAssessmentService) AvailableAssessments(candidateID uint) ([]dto.AvailableAssessmentResponse, error) {
	apps, err := s.applicationRepo.FindAvailableByCandidate(candidateID)
	if err != nil {
		return nil, apperr.Unexpected("failed to list available assessments", err)
	}

	rows := make([]dto.AvailableAssessmentResponse, 0, len(apps))
	for _, app := range apps {
		if app.AssessmentID == nil {
			continue
		}
		assessment, err := s.assessmentRepo.FindByID(*app.AssessmentID)
		if err != nil {
			// An application can outlive its assessment; skip the orphan.
			log.Warn().Err(err).Uint("application_id", app.ID).Uint("assessment_id", *app.AssessmentID).
				Msg("AvailableAssessments: linked assessment missing")
			continue
		}
		rows = append(rows, dto.AvailableAssessmentResponse{
			ApplicationID:  app.ID,
			AssessmentID:   assessment.ID,
			JobID:          app.JobID,
			JobTitle:       app.Job.Title,
			Title:          assessment.Title,
			TimerMinutes:   assessment.TimerMinutes,
			TotalQuestions: assessment.TotalQuestions,
		})
	}
	return rows, nil
}

func (s *candidateAssessmentService) GetAssessment(id uint) (*dto.CandidateAssessmentResponse, error) {
	assessment, err := s.assessmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Assessment not found")
		}
		return nil, apperr.Unexpected("failed to fetch assessment", err)
	}

	resp := dto.CandidateAssessmentResponse{
		ID:             assessment.ID,
		Title:          assessment.Title,
		Type:           assessment.Type,
		Designation:    assessment.Designation,
		Description:    assessment.Description,
		Instructions:   assessment.Instructions,
		TimerMinutes:   assessment.TimerMinutes,
		TotalQuestions: assessment.TotalQuestions,
	}
	for _, q := range assessment.Questions {
		resp.Questions = append(resp.Questions, dto.CandidateQuestionResponse{
			Position: q.Position,
			Text:     q.Text,
			Kind:     q.Kind,
			Options:  decodeOptions(q.Options),
			Marks:    q.Marks,
		})
	}
	return &resp, nil
}
