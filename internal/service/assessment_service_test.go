package service

import (
	"testing"

	"github.com/dungnh/jobhub/internal/apperr"
	"github.com/dungnh/jobhub/internal/dto"
	"github.com/dungnh/jobhub/internal/model"
)

func validCreateRequest() dto.AssessmentCreateRequest {
	return dto.AssessmentCreateRequest{
		Title:        "Backend screening",
		TimerMinutes: 30,
		Questions: []dto.QuestionDTO{
			{Text: "What is 2+2?", Options: []string{"3", "4"}, CorrectAnswer: intPtr(1)},
		},
	}
}

func TestCreateAssessmentValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.AssessmentCreateRequest)
		message string
	}{
		{
			name:    "blank title",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Title = "   " },
			message: "Assessment title cannot be empty",
		},
		{
			name:    "zero timer",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.TimerMinutes = 0 },
			message: "Timer must be a positive number of minutes",
		},
		{
			name:    "negative timer",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.TimerMinutes = -5 },
			message: "Timer must be a positive number of minutes",
		},
		{
			name:    "passing percentage above 100",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.PassingPercentage = 101 },
			message: "Passing percentage must be between 0 and 100",
		},
		{
			name:    "no questions",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions = nil },
			message: "Assessment must have at least one question",
		},
		{
			name:    "blank question text",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions[0].Text = "  " },
			message: "Question 1 text cannot be empty",
		},
		{
			name:    "unknown kind",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions[0].Kind = "essay" },
			message: `Question 1 has an unknown kind "essay"`,
		},
		{
			name:    "negative marks",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions[0].Marks = -1 },
			message: "Question 1 must be worth at least 1 mark",
		},
		{
			name:    "single option",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions[0].Options = []string{"4"} },
			message: "Question 1 must have at least 2 options",
		},
		{
			name:    "blank option",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions[0].Options = []string{"3", "  "} },
			message: "Option B of question 1 cannot be empty",
		},
		{
			name:    "missing correct answer",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions[0].CorrectAnswer = nil },
			message: "Question 1 is missing a correct answer",
		},
		{
			name:    "correct answer out of range",
			mutate:  func(r *dto.AssessmentCreateRequest) { r.Questions[0].CorrectAnswer = intPtr(2) },
			message: "Question 1 has an invalid correct answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAssessmentService(newFakeAssessmentRepo())
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.Create(fixtureEmployerID, req)
			wantKind(t, err, apperr.KindValidation)
			if apperr.MessageOf(err) != tt.message {
				t.Errorf("message = %q, want %q", apperr.MessageOf(err), tt.message)
			}
		})
	}
}

func TestCreateAssessmentAssignsSerials(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewAssessmentService(repo)

	for want := 1; want <= 3; want++ {
		resp, err := svc.Create(fixtureEmployerID, validCreateRequest())
		if err != nil {
			t.Fatal(err)
		}
		if resp.SerialNumber != want {
			t.Errorf("SerialNumber = %d, want %d", resp.SerialNumber, want)
		}
	}

	// Serials are per employer, so a different employer starts back at 1.
	resp, err := svc.Create(fixtureEmployerID+1, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}
	if resp.SerialNumber != 1 {
		t.Errorf("SerialNumber = %d, want 1 for a new employer", resp.SerialNumber)
	}
}

func TestCreateAssessmentNormalizes(t *testing.T) {
	svc := NewAssessmentService(newFakeAssessmentRepo())

	resp, err := svc.Create(fixtureEmployerID, dto.AssessmentCreateRequest{
		Title:        "  Backend screening  ",
		TimerMinutes: 45,
		Questions: []dto.QuestionDTO{
			// Kind omitted: defaults to multiple choice, marks default to 1.
			{Text: " What is 2+2? ", Options: []string{" 3 ", "4"}, CorrectAnswer: intPtr(1)},
			// Free text arriving with junk options loses them server-side.
			{Text: "Tell us about a project.", Kind: model.QuestionKindFreeText,
				Options: []string{"a", "b"}, CorrectAnswer: intPtr(0), Marks: 3},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if resp.Title != "Backend screening" {
		t.Errorf("Title = %q, want trimmed", resp.Title)
	}
	if resp.PassingPercentage != model.DefaultPassingPercentage {
		t.Errorf("PassingPercentage = %v, want default %v", resp.PassingPercentage, model.DefaultPassingPercentage)
	}
	if resp.Status != model.AssessmentStatusPublished {
		t.Errorf("Status = %q, want published", resp.Status)
	}
	if resp.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", resp.TotalQuestions)
	}

	q0 := resp.Questions[0]
	if q0.Kind != model.QuestionKindMultipleChoice {
		t.Errorf("question 1 kind = %q, want default multiple_choice", q0.Kind)
	}
	if q0.Marks != 1 {
		t.Errorf("question 1 marks = %d, want default 1", q0.Marks)
	}
	if q0.Text != "What is 2+2?" || q0.Options[0] != "3" {
		t.Errorf("question 1 not trimmed: text=%q options=%v", q0.Text, q0.Options)
	}

	q1 := resp.Questions[1]
	if len(q1.Options) != 0 || q1.CorrectAnswer != nil {
		t.Errorf("free text kept options=%v correct=%v, want both stripped", q1.Options, q1.CorrectAnswer)
	}
}

func TestUpdateAssessmentRewritesQuestions(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewAssessmentService(repo)

	created, err := svc.Create(fixtureEmployerID, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	req := validCreateRequest()
	req.PassingPercentage = 80
	req.Questions = append(req.Questions, dto.QuestionDTO{
		Text: "Upload your resume.", Kind: model.QuestionKindFileUpload, Marks: 2,
	})

	updated, err := svc.Update(created.ID, fixtureEmployerID, req)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.SerialNumber != created.SerialNumber {
		t.Errorf("SerialNumber changed on update: %d -> %d", created.SerialNumber, updated.SerialNumber)
	}
	if updated.TotalQuestions != 2 || len(updated.Questions) != 2 {
		t.Errorf("TotalQuestions = %d with %d questions, want 2/2", updated.TotalQuestions, len(updated.Questions))
	}
	if updated.PassingPercentage != 80 {
		t.Errorf("PassingPercentage = %v, want 80", updated.PassingPercentage)
	}

	// Another employer's update reads as not found.
	_, err = svc.Update(created.ID, fixtureEmployerID+1, req)
	wantKind(t, err, apperr.KindNotFound)
}

func TestDeleteAssessment(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewAssessmentService(repo)

	created, err := svc.Create(fixtureEmployerID, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	wantKind(t, svc.Delete(created.ID, fixtureEmployerID+1), apperr.KindNotFound)

	if err := svc.Delete(created.ID, fixtureEmployerID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	wantKind(t, svc.Delete(created.ID, fixtureEmployerID), apperr.KindNotFound)

	_, err = svc.Get(created.ID, fixtureEmployerID)
	wantKind(t, err, apperr.KindNotFound)
}
