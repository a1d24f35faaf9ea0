package service

import (
	"encoding/json"
	"errors"

	"github.com/dungnh/jobhub/internal/apperr"
	"github.com/dungnh/jobhub/internal/dto"
	"github.com/dungnh/jobhub/internal/model"
	"github.com/dungnh/jobhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResultsService is the employer's read side over finished attempts.
type ResultsService interface {
	ResultsForAssessment(employerID uint, assessmentID uint) ([]dto.EmployerAttemptResponse, error)
	AttemptDetail(employerID uint, attemptID uint) (*dto.EmployerAttemptResponse, error)
}

type resultsService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.AttemptRepository
}

func NewResultsService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
) ResultsService {
	return &resultsService{assessmentRepo: assessmentRepo, attemptRepo: attemptRepo}
}

func (s *resultsService) ResultsForAssessment(employerID uint, assessmentID uint) ([]dto.EmployerAttemptResponse, error) {
	if _, err := s.assessmentRepo.FindByIDAndEmployer(assessmentID, employerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Assessment not found")
		}
		return nil, apperr.Unexpected("failed to fetch assessment results", err)
	}

	attempts, err := s.attemptRepo.FindCompletedByAssessment(assessmentID)
	if err != nil {
		return nil, apperr.Unexpected("failed to fetch assessment results", err)
	}

	rows := make([]dto.EmployerAttemptResponse, 0, len(attempts))
	for i := range attempts {
		rows = append(rows, *employerAttemptResponse(&attempts[i]))
	}
	return rows, nil
}

// AttemptDetail is the one place ownership failure is a distinct 403: the
// attempt is fetched first, then its assessment's owner is checked.
func (s *resultsService) AttemptDetail(employerID uint, attemptID uint) (*dto.EmployerAttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Attempt not found")
		}
		return nil, apperr.Unexpected("failed to fetch attempt", err)
	}

	assessment, err := s.assessmentRepo.FindByID(attempt.AssessmentID)
	if err != nil {
		log.Warn().Err(err).Uint("attempt_id", attemptID).Msg("AttemptDetail: linked assessment missing")
		return nil, apperr.NotFound("Attempt not found")
	}
	if assessment.EmployerID != employerID {
		return nil, apperr.Forbidden("You do not have access to this attempt")
	}

	return employerAttemptResponse(attempt), nil
}

func employerAttemptResponse(attempt *model.AssessmentAttempt) *dto.EmployerAttemptResponse {
	resp := dto.EmployerAttemptResponse{
		AttemptID:     attempt.ID,
		AssessmentID:  attempt.AssessmentID,
		CandidateID:   attempt.CandidateID,
		ApplicationID: attempt.ApplicationID,
		Status:        attempt.Status,
		Score:         attempt.Score,
		TotalMarks:    attempt.TotalMarks,
		Percentage:    attempt.Percentage,
		Result:        attempt.Result,
		StartTime:     attempt.StartTime,
		EndTime:       attempt.EndTime,
	}
	for _, a := range attempt.Answers {
		var row dto.AnswerResponse
		if err := copier.Copy(&row, &a); err != nil {
			log.Warn().Err(err).Uint("attempt_id", attempt.ID).Msg("Failed to map answer row")
			continue
		}
		if len(a.UploadedFile) > 0 {
			row.UploadedFile = decodeUploadedFile(a.UploadedFile)
		}
		resp.Answers = append(resp.Answers, row)
	}
	for _, v := range attempt.Violations {
		resp.Violations = append(resp.Violations, dto.ViolationResponse{
			Type:       v.Type,
			Details:    v.Details,
			OccurredAt: v.OccurredAt,
		})
	}
	return &resp
}

func decodeUploadedFile(raw []byte) any {
	var file model.UploadedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil
	}
	return file
}
