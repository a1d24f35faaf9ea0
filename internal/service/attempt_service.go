package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/dungnh/jobhub/internal/apperr"
	"github.com/dungnh/jobhub/internal/dto"
	"github.com/dungnh/jobhub/internal/model"
	"github.com/dungnh/jobhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UploadAnswerInput carries one multipart file answer into the service.
type UploadAnswerInput struct {
	AttemptID     uint
	QuestionIndex int
	TimeSpent     int
	OriginalName  string
	MimeType      string
	Size          int64
	File          io.Reader
}

// AttemptService is the attempt lifecycle controller: the state machine
// behind start, answer, upload, violation and submit.
type AttemptService interface {
	Start(candidateID uint, req dto.StartAttemptRequest) (*dto.StartAttemptResponse, error)
	SubmitAnswer(candidateID uint, req dto.SubmitAnswerRequest) error
	UploadAnswer(ctx context.Context, candidateID uint, input UploadAnswerInput) (*dto.UploadAnswerResponse, error)
	RecordViolation(candidateID uint, req dto.RecordViolationRequest) error
	Submit(candidateID uint, req dto.SubmitAssessmentRequest) (*dto.SubmitResultResponse, error)
	ResultByAttempt(candidateID uint, attemptID uint) (*dto.AttemptResultResponse, error)
	ResultByApplication(candidateID uint, applicationID uint) (*dto.AttemptResultResponse, error)
}

type attemptService struct {
	assessmentRepo  repository.AssessmentRepository
	attemptRepo     repository.AttemptRepository
	applicationRepo repository.ApplicationRepository
	storage         FileStorage
}

func NewAttemptService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
	applicationRepo repository.ApplicationRepository,
	storage FileStorage,
) AttemptService {
	return &attemptService{
		assessmentRepo:  assessmentRepo,
		attemptRepo:     attemptRepo,
		applicationRepo: applicationRepo,
		storage:         storage,
	}
}

// Start creates or reactivates the candidate's attempt for one application.
// Re-invoking start on an in_progress attempt resets the clock; that is the
// portal's published policy, not an accident. Completed and expired attempts
// are terminal and cannot be restarted.
func (s *attemptService) Start(candidateID uint, req dto.StartAttemptRequest) (*dto.StartAttemptResponse, error) {
	app, err := s.applicationRepo.FindByIDAndCandidate(req.ApplicationID, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Application not found")
		}
		return nil, apperr.Unexpected("failed to start assessment", err)
	}
	if app.JobID != req.JobID {
		return nil, apperr.NotFound("Application not found")
	}

	assessment, err := s.assessmentRepo.FindByID(req.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Assessment not found")
		}
		return nil, apperr.Unexpected("failed to start assessment", err)
	}

	now := time.Now()

	attempt, err := s.attemptRepo.FindByIdentity(req.AssessmentID, candidateID, req.ApplicationID)
	switch {
	case err == nil:
		if attempt.Status == model.AttemptStatusCompleted {
			return nil, apperr.StateConflict("Assessment already completed, retake is not allowed")
		}
		if attempt.Status == model.AttemptStatusExpired {
			return nil, apperr.StateConflict("Assessment time expired, retake is not allowed")
		}
		// Reactivation: fresh clock, progress pointer back to the first
		// question. Snapshot, total marks and any stored answers survive.
		attempt.Status = model.AttemptStatusInProgress
		attempt.StartTime = now
		attempt.EndTime = nil
		attempt.TimeRemaining = assessment.TimerMinutes * 60
		attempt.CurrentQuestion = 0
		attempt.TermsAccepted = true
		attempt.TermsAcceptedAt = &now
		if err := s.attemptRepo.Save(attempt); err != nil {
			log.Error().Err(err).Uint("attempt_id", attempt.ID).Msg("Start: failed to reactivate attempt")
			return nil, apperr.Unexpected("failed to start assessment", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		snapshot := snapshotQuestions(assessment.Questions)
		rawSnapshot, marshalErr := json.Marshal(snapshot)
		if marshalErr != nil {
			return nil, apperr.Unexpected("failed to start assessment", marshalErr)
		}
		attempt = &model.AssessmentAttempt{
			AssessmentID:      req.AssessmentID,
			CandidateID:       candidateID,
			ApplicationID:     req.ApplicationID,
			Status:            model.AttemptStatusInProgress,
			StartTime:         now,
			TimeRemaining:     assessment.TimerMinutes * 60,
			CurrentQuestion:   0,
			TotalMarks:        SumMarks(snapshot),
			TermsAccepted:     true,
			TermsAcceptedAt:   &now,
			QuestionSnapshot:  rawSnapshot,
			PassingPercentage: assessment.PassingPercentage,
		}
		if err := s.attemptRepo.Create(attempt); err != nil {
			log.Error().Err(err).Uint("assessment_id", req.AssessmentID).Uint("candidate_id", candidateID).
				Msg("Start: failed to create attempt")
			return nil, apperr.Unexpected("failed to start assessment", err)
		}
	default:
		return nil, apperr.Unexpected("failed to start assessment", err)
	}

	if err := s.applicationRepo.SetAssessmentInProgress(app.ID, assessment.ID, attempt.ID); err != nil {
		// The attempt itself is live; a stale application summary is logged,
		// not surfaced to the candidate.
		log.Error().Err(err).Uint("application_id", app.ID).Msg("Start: failed to update application status")
	}

	return &dto.StartAttemptResponse{
		AttemptID:       attempt.ID,
		Status:          attempt.Status,
		StartTime:       attempt.StartTime,
		TimeRemaining:   attempt.TimeRemaining,
		TotalMarks:      attempt.TotalMarks,
		CurrentQuestion: attempt.CurrentQuestion,
	}, nil
}

func (s *attemptService) SubmitAnswer(candidateID uint, req dto.SubmitAnswerRequest) error {
	attempt, err := s.ownedInProgressAttempt(req.AttemptID, candidateID)
	if err != nil {
		return err
	}

	questions, err := decodeSnapshot(attempt.QuestionSnapshot)
	if err != nil {
		return apperr.Unexpected("failed to submit answer", err)
	}

	if req.QuestionIndex == nil {
		return apperr.Validation("Question index is required")
	}
	index := *req.QuestionIndex
	if index < 0 || index >= len(questions) {
		return apperr.Validation("Question %d does not exist in this assessment", index+1)
	}
	question := questions[index]

	answer := model.AttemptAnswer{
		AttemptID:     attempt.ID,
		QuestionIndex: index,
		TimeSpent:     req.TimeSpent,
		AnsweredAt:    time.Now(),
	}

	switch question.Kind {
	case model.QuestionKindFileUpload:
		return apperr.Validation("Question %d requires a file upload", index+1)
	case model.QuestionKindFreeText:
		if req.TextAnswer == nil || strings.TrimSpace(*req.TextAnswer) == "" {
			return apperr.Validation("Answer text cannot be empty")
		}
		text := *req.TextAnswer
		answer.TextAnswer = &text
	default:
		if req.SelectedAnswer == nil {
			return apperr.Validation("An option must be selected")
		}
		if *req.SelectedAnswer < 0 || *req.SelectedAnswer >= len(question.Options) {
			return apperr.Validation("Selected option is out of range for question %d", index+1)
		}
		selected := *req.SelectedAnswer
		answer.SelectedAnswer = &selected
	}

	if err := s.attemptRepo.UpsertAnswer(&answer); err != nil {
		log.Error().Err(err).Uint("attempt_id", attempt.ID).Int("question_index", index).
			Msg("SubmitAnswer: upsert failed")
		return apperr.Unexpected("failed to submit answer", err)
	}

	if index+1 > attempt.CurrentQuestion {
		attempt.CurrentQuestion = index + 1
		if err := s.attemptRepo.Save(attempt); err != nil {
			log.Warn().Err(err).Uint("attempt_id", attempt.ID).Msg("SubmitAnswer: failed to advance progress pointer")
		}
	}
	return nil
}

func (s *attemptService) UploadAnswer(ctx context.Context, candidateID uint, input UploadAnswerInput) (*dto.UploadAnswerResponse, error) {
	attempt, err := s.ownedInProgressAttempt(input.AttemptID, candidateID)
	if err != nil {
		return nil, err
	}

	questions, err := decodeSnapshot(attempt.QuestionSnapshot)
	if err != nil {
		return nil, apperr.Unexpected("failed to upload answer", err)
	}
	if input.QuestionIndex < 0 || input.QuestionIndex >= len(questions) {
		return nil, apperr.Validation("Question %d does not exist in this assessment", input.QuestionIndex+1)
	}
	if questions[input.QuestionIndex].Kind != model.QuestionKindFileUpload {
		return nil, apperr.Validation("Question %d does not accept file uploads", input.QuestionIndex+1)
	}

	if err := CheckUploadPolicy(input.MimeType, input.Size); err != nil {
		return nil, err
	}

	stored, err := s.storage.Upload(ctx, input.File, input.OriginalName)
	if err != nil {
		return nil, apperr.Unexpected("failed to store uploaded file", err)
	}

	uploaded := model.UploadedFile{
		OriginalName: input.OriginalName,
		MimeType:     input.MimeType,
		Size:         input.Size,
		PublicID:     stored.PublicID,
		URL:          stored.URL,
		UploadedAt:   time.Now(),
	}
	rawFile, err := json.Marshal(uploaded)
	if err != nil {
		return nil, apperr.Unexpected("failed to upload answer", err)
	}

	answer := model.AttemptAnswer{
		AttemptID:     attempt.ID,
		QuestionIndex: input.QuestionIndex,
		UploadedFile:  rawFile,
		TimeSpent:     input.TimeSpent,
		AnsweredAt:    time.Now(),
	}
	if err := s.attemptRepo.UpsertAnswer(&answer); err != nil {
		log.Error().Err(err).Uint("attempt_id", attempt.ID).Msg("UploadAnswer: upsert failed")
		return nil, apperr.Unexpected("failed to upload answer", err)
	}

	attempt.CurrentQuestion = input.QuestionIndex + 1
	if err := s.attemptRepo.Save(attempt); err != nil {
		log.Warn().Err(err).Uint("attempt_id", attempt.ID).Msg("UploadAnswer: failed to advance progress pointer")
	}

	return &dto.UploadAnswerResponse{
		QuestionIndex: input.QuestionIndex,
		OriginalName:  uploaded.OriginalName,
		MimeType:      uploaded.MimeType,
		Size:          uploaded.Size,
		URL:           uploaded.URL,
	}, nil
}

// RecordViolation appends one proctoring event. It never changes attempt
// status: whether a violation ends the attempt is the client's policy.
func (s *attemptService) RecordViolation(candidateID uint, req dto.RecordViolationRequest) error {
	attempt, err := s.ownedInProgressAttempt(req.AttemptID, candidateID)
	if err != nil {
		return err
	}
	violation := model.AttemptViolation{
		AttemptID:  attempt.ID,
		Type:       req.Type,
		Details:    req.Details,
		OccurredAt: time.Now(),
	}
	if err := s.attemptRepo.AppendViolation(&violation); err != nil {
		log.Error().Err(err).Uint("attempt_id", attempt.ID).Str("type", req.Type).
			Msg("RecordViolation: append failed")
		return apperr.Unexpected("failed to record violation", err)
	}
	return nil
}

// Submit finalizes the attempt exactly once: grade the stored answers against
// the snapshot, decide expired vs completed from elapsed time, persist the
// outcome and push the summary onto the application.
func (s *attemptService) Submit(candidateID uint, req dto.SubmitAssessmentRequest) (*dto.SubmitResultResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(req.AttemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Attempt not found")
		}
		return nil, apperr.Unexpected("failed to submit assessment", err)
	}
	if attempt.CandidateID != candidateID {
		return nil, apperr.NotFound("Attempt not found")
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, apperr.StateConflict("Assessment already completed")
	}
	if attempt.Status == model.AttemptStatusExpired {
		return nil, apperr.StateConflict("Assessment time expired")
	}

	now := time.Now()

	// Violations supplied with the final payload are appended to the log,
	// same semantics as RecordViolation.
	for _, v := range req.Violations {
		violation := model.AttemptViolation{
			AttemptID:  attempt.ID,
			Type:       v.Type,
			Details:    v.Details,
			OccurredAt: now,
		}
		if err := s.attemptRepo.AppendViolation(&violation); err != nil {
			log.Warn().Err(err).Uint("attempt_id", attempt.ID).Msg("Submit: failed to append violation")
		}
	}

	questions, err := decodeSnapshot(attempt.QuestionSnapshot)
	if err != nil {
		return nil, apperr.Unexpected("failed to submit assessment", err)
	}

	summary := ScoreAttempt(attempt.Answers, questions, attempt.TotalMarks, attempt.PassingPercentage)

	isExpired := now.Sub(attempt.StartTime) > time.Duration(attempt.TimeRemaining)*time.Second
	if isExpired {
		attempt.Status = model.AttemptStatusExpired
	} else {
		attempt.Status = model.AttemptStatusCompleted
	}
	attempt.EndTime = &now
	attempt.Score = summary.Score
	attempt.Percentage = summary.Percentage
	attempt.Result = summary.Result

	if err := s.attemptRepo.Save(attempt); err != nil {
		log.Error().Err(err).Uint("attempt_id", attempt.ID).Msg("Submit: failed to persist outcome")
		return nil, apperr.Unexpected("failed to submit assessment", err)
	}

	if err := s.applicationRepo.SetAssessmentOutcome(attempt.ApplicationID, summary.Score, summary.Percentage, summary.Result); err != nil {
		log.Error().Err(err).Uint("application_id", attempt.ApplicationID).
			Msg("Submit: failed to push outcome onto application")
	}

	return &dto.SubmitResultResponse{
		AttemptID:      attempt.ID,
		Status:         attempt.Status,
		Score:          summary.Score,
		TotalMarks:     summary.TotalMarks,
		Percentage:     summary.Percentage,
		Result:         summary.Result,
		CorrectAnswers: summary.CorrectAnswers,
		TotalQuestions: summary.TotalQuestions,
		TotalAnswered:  summary.TotalAnswered,
		Unanswered:     summary.Unanswered,
	}, nil
}

func (s *attemptService) ResultByAttempt(candidateID uint, attemptID uint) (*dto.AttemptResultResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Result not found")
		}
		return nil, apperr.Unexpected("failed to fetch result", err)
	}
	return candidateResult(attempt, candidateID)
}

func (s *attemptService) ResultByApplication(candidateID uint, applicationID uint) (*dto.AttemptResultResponse, error) {
	attempt, err := s.attemptRepo.FindByApplication(applicationID, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Result not found")
		}
		return nil, apperr.Unexpected("failed to fetch result", err)
	}
	return candidateResult(attempt, candidateID)
}

func candidateResult(attempt *model.AssessmentAttempt, candidateID uint) (*dto.AttemptResultResponse, error) {
	if attempt.CandidateID != candidateID {
		return nil, apperr.NotFound("Result not found")
	}
	if attempt.Status != model.AttemptStatusCompleted {
		return nil, apperr.NotFound("Result not available yet")
	}
	return &dto.AttemptResultResponse{
		AttemptID:     attempt.ID,
		AssessmentID:  attempt.AssessmentID,
		ApplicationID: attempt.ApplicationID,
		Status:        attempt.Status,
		Score:         attempt.Score,
		TotalMarks:    attempt.TotalMarks,
		Percentage:    attempt.Percentage,
		Result:        attempt.Result,
		StartTime:     attempt.StartTime,
		EndTime:       attempt.EndTime,
	}, nil
}

// ownedInProgressAttempt is the shared precondition for every mid-attempt
// mutation. Ownership failure reads the same as not-found so attempts of
// other candidates are never confirmed to exist.
func (s *attemptService) ownedInProgressAttempt(attemptID uint, candidateID uint) (*model.AssessmentAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Attempt not found")
		}
		return nil, apperr.Unexpected("failed to load attempt", err)
	}
	if attempt.CandidateID != candidateID {
		return nil, apperr.NotFound("Attempt not found")
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, apperr.StateConflict("Assessment already completed")
	}
	if attempt.Status == model.AttemptStatusExpired {
		return nil, apperr.StateConflict("Assessment time expired")
	}
	return attempt, nil
}

func snapshotQuestions(questions []model.AssessmentQuestion) []model.SnapshotQuestion {
	snapshot := make([]model.SnapshotQuestion, 0, len(questions))
	for _, q := range questions {
		marks := q.Marks
		if marks <= 0 {
			marks = 1
		}
		snapshot = append(snapshot, model.SnapshotQuestion{
			Position:      q.Position,
			Text:          q.Text,
			Kind:          q.Kind,
			Options:       decodeOptions(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Marks:         marks,
			Explanation:   q.Explanation,
		})
	}
	return snapshot
}

func decodeSnapshot(raw []byte) ([]model.SnapshotQuestion, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var questions []model.SnapshotQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
