package dto

import "time"

type StartAttemptRequest struct {
	AssessmentID  uint `json:"assessment_id" binding:"required"`
	JobID         uint `json:"job_id" binding:"required"`
	ApplicationID uint `json:"application_id" binding:"required"`
}

type StartAttemptResponse struct {
	AttemptID       uint      `json:"attempt_id"`
	Status          string    `json:"status"`
	StartTime       time.Time `json:"start_time"`
	TimeRemaining   int       `json:"time_remaining"`
	TotalMarks      int       `json:"total_marks"`
	CurrentQuestion int       `json:"current_question"`
}

type SubmitAnswerRequest struct {
	AttemptID      uint    `json:"attempt_id" binding:"required"`
	QuestionIndex  *int    `json:"question_index" binding:"required"`
	SelectedAnswer *int    `json:"selected_answer,omitempty"`
	TextAnswer     *string `json:"text_answer,omitempty"`
	TimeSpent      int     `json:"time_spent"`
}

type ViolationDTO struct {
	Type    string `json:"type" binding:"required"`
	Details string `json:"details,omitempty"`
}

type RecordViolationRequest struct {
	AttemptID uint   `json:"attempt_id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Details   string `json:"details,omitempty"`
}

type SubmitAssessmentRequest struct {
	AttemptID  uint           `json:"attempt_id" binding:"required"`
	Violations []ViolationDTO `json:"violations,omitempty"`
}

// SubmitResultResponse is the final block returned by submit.
type SubmitResultResponse struct {
	AttemptID      uint    `json:"attempt_id"`
	Status         string  `json:"status"`
	Score          int     `json:"score"`
	TotalMarks     int     `json:"total_marks"`
	Percentage     float64 `json:"percentage"`
	Result         string  `json:"result"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	TotalAnswered  int     `json:"total_answered"`
	Unanswered     int     `json:"unanswered"`
}

type AnswerResponse struct {
	QuestionIndex  int        `json:"question_index"`
	SelectedAnswer *int       `json:"selected_answer,omitempty"`
	TextAnswer     *string    `json:"text_answer,omitempty"`
	UploadedFile   any        `json:"uploaded_file,omitempty"`
	TimeSpent      int        `json:"time_spent"`
	AnsweredAt     time.Time  `json:"answered_at"`
}

type ViolationResponse struct {
	Type       string    `json:"type"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AttemptResultResponse is the candidate-facing view of a completed attempt.
type AttemptResultResponse struct {
	AttemptID      uint       `json:"attempt_id"`
	AssessmentID   uint       `json:"assessment_id"`
	ApplicationID  uint       `json:"application_id"`
	Status         string     `json:"status"`
	Score          int        `json:"score"`
	TotalMarks     int        `json:"total_marks"`
	Percentage     float64    `json:"percentage"`
	Result         string     `json:"result"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
}

// EmployerAttemptResponse is the employer-facing attempt row, answers and
// violations included.
type EmployerAttemptResponse struct {
	AttemptID     uint                `json:"attempt_id"`
	AssessmentID  uint                `json:"assessment_id"`
	CandidateID   uint                `json:"candidate_id"`
	ApplicationID uint                `json:"application_id"`
	Status        string              `json:"status"`
	Score         int                 `json:"score"`
	TotalMarks    int                 `json:"total_marks"`
	Percentage    float64             `json:"percentage"`
	Result        string              `json:"result"`
	StartTime     time.Time           `json:"start_time"`
	EndTime       *time.Time          `json:"end_time,omitempty"`
	Answers       []AnswerResponse    `json:"answers,omitempty"`
	Violations    []ViolationResponse `json:"violations,omitempty"`
}

type UploadAnswerResponse struct {
	QuestionIndex int    `json:"question_index"`
	OriginalName  string `json:"original_name"`
	MimeType      string `json:"mime_type"`
	Size          int64  `json:"size"`
	URL           string `json:"url"`
}
