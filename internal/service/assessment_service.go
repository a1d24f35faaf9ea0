package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dungnh/jobhub/internal/apperr"
	"github.com/dungnh/jobhub/internal/dto"
	"github.com/dungnh/jobhub/internal/model"
	"github.com/dungnh/jobhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AssessmentService is the employer-facing definition store: CRUD with
// field-level validation and per-employer serial numbers.
type AssessmentService interface {
	Create(employerID uint, req dto.AssessmentCreateRequest) (*dto.AssessmentResponse, error)
	Update(id uint, employerID uint, req dto.AssessmentCreateRequest) (*dto.AssessmentResponse, error)
	Delete(id uint, employerID uint) error
	List(employerID uint) ([]dto.AssessmentResponse, error)
	Get(id uint, employerID uint) (*dto.AssessmentResponse, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
}

func NewAssessmentService(assessmentRepo repository.AssessmentRepository) AssessmentService {
	return &assessmentService{assessmentRepo: assessmentRepo}
}

func (s *assessmentService) Create(employerID uint, req dto.AssessmentCreateRequest) (*dto.AssessmentResponse, error) {
	questions, err := buildQuestions(req)
	if err != nil {
		return nil, err
	}

	// Next serial = max existing + 1. Two simultaneous creates by the same
	// employer can compute the same next value; a weak invariant, kept as is.
	maxSerial, err := s.assessmentRepo.MaxSerialNumber(employerID)
	if err != nil {
		log.Error().Err(err).Uint("employer_id", employerID).Msg("Create assessment: serial lookup failed")
		return nil, apperr.Unexpected("failed to create assessment", err)
	}

	passing := req.PassingPercentage
	if passing == 0 {
		passing = model.DefaultPassingPercentage
	}

	assessment := model.Assessment{
		EmployerID:        employerID,
		SerialNumber:      maxSerial + 1,
		Title:             strings.TrimSpace(req.Title),
		Type:              strings.TrimSpace(req.Type),
		Designation:       strings.TrimSpace(req.Designation),
		Description:       strings.TrimSpace(req.Description),
		Instructions:      strings.TrimSpace(req.Instructions),
		TimerMinutes:      req.TimerMinutes,
		PassingPercentage: passing,
		Status:            model.AssessmentStatusPublished,
		TotalQuestions:    len(questions),
		Questions:         questions,
	}

	if err := s.assessmentRepo.Create(&assessment); err != nil {
		log.Error().Err(err).Uint("employer_id", employerID).Msg("Create assessment: persist failed")
		return nil, apperr.Unexpected("failed to create assessment", err)
	}
	return assessmentResponse(&assessment), nil
}

func (s *assessmentService) Update(id uint, employerID uint, req dto.AssessmentCreateRequest) (*dto.AssessmentResponse, error) {
	existing, err := s.assessmentRepo.FindByIDAndEmployer(id, employerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Assessment not found")
		}
		return nil, apperr.Unexpected("failed to update assessment", err)
	}

	questions, err := buildQuestions(req)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].AssessmentID = existing.ID
	}

	passing := req.PassingPercentage
	if passing == 0 {
		passing = model.DefaultPassingPercentage
	}

	existing.Title = strings.TrimSpace(req.Title)
	existing.Type = strings.TrimSpace(req.Type)
	existing.Designation = strings.TrimSpace(req.Designation)
	existing.Description = strings.TrimSpace(req.Description)
	existing.Instructions = strings.TrimSpace(req.Instructions)
	existing.TimerMinutes = req.TimerMinutes
	existing.PassingPercentage = passing
	existing.TotalQuestions = len(questions)
	existing.Questions = questions

	if err := s.assessmentRepo.Update(existing); err != nil {
		log.Error().Err(err).Uint("assessment_id", id).Msg("Update assessment: persist failed")
		return nil, apperr.Unexpected("failed to update assessment", err)
	}
	return assessmentResponse(existing), nil
}

func (s *assessmentService) Delete(id uint, employerID uint) error {
	affected, err := s.assessmentRepo.Delete(id, employerID)
	if err != nil {
		log.Error().Err(err).Uint("assessment_id", id).Msg("Delete assessment failed")
		return apperr.Unexpected("failed to delete assessment", err)
	}
	if affected == 0 {
		return apperr.NotFound("Assessment not found")
	}
	return nil
}

func (s *assessmentService) List(employerID uint) ([]dto.AssessmentResponse, error) {
	assessments, err := s.assessmentRepo.FindAllByEmployer(employerID)
	if err != nil {
		return nil, apperr.Unexpected("failed to list assessments", err)
	}
	responses := make([]dto.AssessmentResponse, 0, len(assessments))
	for i := range assessments {
		responses = append(responses, *assessmentResponse(&assessments[i]))
	}
	return responses, nil
}

func (s *assessmentService) Get(id uint, employerID uint) (*dto.AssessmentResponse, error) {
	assessment, err := s.assessmentRepo.FindByIDAndEmployer(id, employerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Assessment not found")
		}
		return nil, apperr.Unexpected("failed to fetch assessment", err)
	}
	return assessmentResponse(assessment), nil
}

// buildQuestions validates and normalizes the incoming question list. Error
// messages name the question number (1-based) and option letter so the UI can
// surface them verbatim.
func buildQuestions(req dto.AssessmentCreateRequest) ([]model.AssessmentQuestion, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("Assessment title cannot be empty")
	}
	if req.TimerMinutes <= 0 {
		return nil, apperr.Validation("Timer must be a positive number of minutes")
	}
	if req.PassingPercentage < 0 || req.PassingPercentage > 100 {
		return nil, apperr.Validation("Passing percentage must be between 0 and 100")
	}
	if len(req.Questions) == 0 {
		return nil, apperr.Validation("Assessment must have at least one question")
	}

	questions := make([]model.AssessmentQuestion, 0, len(req.Questions))
	for i, q := range req.Questions {
		number := i + 1

		text := strings.TrimSpace(q.Text)
		if text == "" {
			return nil, apperr.Validation("Question %d text cannot be empty", number)
		}

		kind := q.Kind
		if kind == "" {
			kind = model.QuestionKindMultipleChoice
		}
		switch kind {
		case model.QuestionKindMultipleChoice, model.QuestionKindFreeText, model.QuestionKindFileUpload:
		default:
			return nil, apperr.Validation("Question %d has an unknown kind %q", number, q.Kind)
		}

		marks := q.Marks
		if marks == 0 {
			marks = 1
		}
		if marks < 1 {
			return nil, apperr.Validation("Question %d must be worth at least 1 mark", number)
		}

		question := model.AssessmentQuestion{
			Position:    i,
			Text:        text,
			Kind:        kind,
			Marks:       marks,
			Explanation: strings.TrimSpace(q.Explanation),
		}

		if kind == model.QuestionKindMultipleChoice {
			if len(q.Options) < 2 {
				return nil, apperr.Validation("Question %d must have at least 2 options", number)
			}
			options := make([]string, len(q.Options))
			for j, opt := range q.Options {
				trimmed := strings.TrimSpace(opt)
				if trimmed == "" {
					return nil, apperr.Validation("Option %s of question %d cannot be empty", optionLetter(j), number)
				}
				options[j] = trimmed
			}
			if q.CorrectAnswer == nil {
				return nil, apperr.Validation("Question %d is missing a correct answer", number)
			}
			if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(options) {
				return nil, apperr.Validation("Question %d has an invalid correct answer", number)
			}
			raw, err := json.Marshal(options)
			if err != nil {
				return nil, apperr.Unexpected("failed to encode question options", err)
			}
			question.Options = raw
			correct := *q.CorrectAnswer
			question.CorrectAnswer = &correct
		} else {
			// Server-side normalization: non-MCQ questions never carry
			// options or a correct answer, whatever the client sent.
			question.Options = []byte("[]")
			question.CorrectAnswer = nil
		}

		questions = append(questions, question)
	}
	return questions, nil
}

func optionLetter(index int) string {
	if index < 26 {
		return string(rune('A' + index))
	}
	return fmt.Sprintf("%d", index+1)
}

func assessmentResponse(a *model.Assessment) *dto.AssessmentResponse {
	resp := dto.AssessmentResponse{
		ID:                a.ID,
		SerialNumber:      a.SerialNumber,
		Title:             a.Title,
		Type:              a.Type,
		Designation:       a.Designation,
		Description:       a.Description,
		Instructions:      a.Instructions,
		TimerMinutes:      a.TimerMinutes,
		PassingPercentage: a.PassingPercentage,
		Status:            a.Status,
		TotalQuestions:    a.TotalQuestions,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	for _, q := range a.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			Position:      q.Position,
			Text:          q.Text,
			Kind:          q.Kind,
			Options:       decodeOptions(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
			Explanation:   q.Explanation,
		})
	}
	return &resp
}

func decodeOptions(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var options []string
	if err := json.Unmarshal(raw, &options); err != nil {
		log.Warn().Err(err).Msg("Failed to decode question options")
		return nil
	}
	return options
}
