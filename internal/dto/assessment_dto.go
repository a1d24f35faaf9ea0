package dto

import "time"

// QuestionDTO is one question in an employer create/update payload.
// Kind defaults to multiple_choice when omitted. For free_text and
// file_upload kinds the server discards options/correct_answer regardless of
// what the client sent.
type QuestionDTO struct {
	Text          string   `json:"text"`
	Kind          string   `json:"kind,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
	Marks         int      `json:"marks,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

type AssessmentCreateRequest struct {
	Title             string        `json:"title"`
	Type              string        `json:"type"`
	Designation       string        `json:"designation"`
	Description       string        `json:"description"`
	Instructions      string        `json:"instructions"`
	TimerMinutes      int           `json:"timer_minutes"`
	PassingPercentage float64       `json:"passing_percentage"`
	Questions         []QuestionDTO `json:"questions"`
}

type QuestionResponse struct {
	Position      int      `json:"position"`
	Text          string   `json:"text"`
	Kind          string   `json:"kind"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
	Marks         int      `json:"marks"`
	Explanation   string   `json:"explanation,omitempty"`
}

type AssessmentResponse struct {
	ID                uint               `json:"id"`
	SerialNumber      int                `json:"serial_number"`
	Title             string             `json:"title"`
	Type              string             `json:"type,omitempty"`
	Designation       string             `json:"designation,omitempty"`
	Description       string             `json:"description,omitempty"`
	Instructions      string             `json:"instructions,omitempty"`
	TimerMinutes      int                `json:"timer_minutes"`
	PassingPercentage float64            `json:"passing_percentage"`
	Status            string             `json:"status"`
	TotalQuestions    int                `json:"total_questions"`
	Questions         []QuestionResponse `json:"questions,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// CandidateQuestionResponse never carries correct_answer or explanation.
type CandidateQuestionResponse struct {
	Position int      `json:"position"`
	Text     string   `json:"text"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Marks    int      `json:"marks"`
}

type CandidateAssessmentResponse struct {
	ID             uint                        `json:"id"`
	Title          string                      `json:"title"`
	Type           string                      `json:"type,omitempty"`
	Designation    string                      `json:"designation,omitempty"`
	Description    string                      `json:"description,omitempty"`
	Instructions   string                      `json:"instructions,omitempty"`
	TimerMinutes   int                         `json:"timer_minutes"`
	TotalQuestions int                         `json:"total_questions"`
	Questions      []CandidateQuestionResponse `json:"questions,omitempty"`
}

// AvailableAssessmentResponse is one row of the candidate's pending
// assessment list, joined to the application and its job.
type AvailableAssessmentResponse struct {
	ApplicationID uint   `json:"application_id"`
	AssessmentID  uint   `json:"assessment_id"`
	JobID         uint   `json:"job_id"`
	JobTitle      string `json:"job_title,omitempty"`
	Title         string `json:"title"`
	TimerMinutes  int    `json:"timer_minutes"`
	TotalQuestions int   `json:"total_questions"`
}
