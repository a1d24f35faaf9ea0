package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dungnh/jobhub/internal/model"
)

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }

func mcq(correct int, marks int, options ...string) model.SnapshotQuestion {
	return model.SnapshotQuestion{
		Kind:          model.QuestionKindMultipleChoice,
		Options:       options,
		CorrectAnswer: intPtr(correct),
		Marks:         marks,
	}
}

func uploadJSON(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(model.UploadedFile{
		OriginalName: "resume.pdf",
		MimeType:     "application/pdf",
		Size:         1024,
		PublicID:     "uploads/abc",
		URL:          "https://res.example.com/uploads/abc",
		UploadedAt:   time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestScoreAttempt(t *testing.T) {
	twoMCQ := []model.SnapshotQuestion{mcq(0, 1, "a", "b"), mcq(1, 2, "a", "b", "c")}

	tests := []struct {
		name       string
		answers    []model.AttemptAnswer
		questions  []model.SnapshotQuestion
		totalMarks int
		threshold  float64
		want       ScoreSummary
	}{
		{
			name: "one correct one incorrect",
			answers: []model.AttemptAnswer{
				{QuestionIndex: 0, SelectedAnswer: intPtr(0)},
				{QuestionIndex: 1, SelectedAnswer: intPtr(0)},
			},
			questions:  twoMCQ,
			totalMarks: 3,
			threshold:  60,
			want: ScoreSummary{
				Score: 1, TotalMarks: 3, Percentage: 33.33, Result: model.ResultFail,
				CorrectAnswers: 1, TotalQuestions: 2, TotalAnswered: 2, Unanswered: 0,
			},
		},
		{
			name: "all correct",
			answers: []model.AttemptAnswer{
				{QuestionIndex: 0, SelectedAnswer: intPtr(0)},
				{QuestionIndex: 1, SelectedAnswer: intPtr(1)},
			},
			questions:  twoMCQ,
			totalMarks: 3,
			threshold:  60,
			want: ScoreSummary{
				Score: 3, TotalMarks: 3, Percentage: 100, Result: model.ResultPass,
				CorrectAnswers: 2, TotalQuestions: 2, TotalAnswered: 2, Unanswered: 0,
			},
		},
		{
			name:       "no answers",
			answers:    nil,
			questions:  twoMCQ,
			totalMarks: 3,
			threshold:  60,
			want: ScoreSummary{
				Score: 0, TotalMarks: 3, Percentage: 0, Result: model.ResultFail,
				CorrectAnswers: 0, TotalQuestions: 2, TotalAnswered: 0, Unanswered: 2,
			},
		},
		{
			name: "out of range selection never awards",
			answers: []model.AttemptAnswer{
				{QuestionIndex: 0, SelectedAnswer: intPtr(5)},
				{QuestionIndex: 1, SelectedAnswer: intPtr(-1)},
			},
			questions:  twoMCQ,
			totalMarks: 3,
			threshold:  60,
			want: ScoreSummary{
				Score: 0, TotalMarks: 3, Percentage: 0, Result: model.ResultFail,
				CorrectAnswers: 0, TotalQuestions: 2, TotalAnswered: 2, Unanswered: 0,
			},
		},
		{
			name: "answer for a vanished question is skipped",
			answers: []model.AttemptAnswer{
				{QuestionIndex: 7, SelectedAnswer: intPtr(0)},
				{QuestionIndex: 0, SelectedAnswer: intPtr(0)},
			},
			questions:  twoMCQ,
			totalMarks: 3,
			threshold:  60,
			want: ScoreSummary{
				Score: 1, TotalMarks: 3, Percentage: 33.33, Result: model.ResultFail,
				CorrectAnswers: 1, TotalQuestions: 2, TotalAnswered: 1, Unanswered: 1,
			},
		},
		{
			name: "boundary percentage passes",
			answers: []model.AttemptAnswer{
				{QuestionIndex: 0, SelectedAnswer: intPtr(0)},
			},
			questions:  []model.SnapshotQuestion{mcq(0, 3, "a", "b"), mcq(1, 2, "a", "b")},
			totalMarks: 5,
			threshold:  60,
			want: ScoreSummary{
				Score: 3, TotalMarks: 5, Percentage: 60, Result: model.ResultPass,
				CorrectAnswers: 1, TotalQuestions: 2, TotalAnswered: 1, Unanswered: 1,
			},
		},
		{
			name: "zero total marks avoids division",
			answers: []model.AttemptAnswer{
				{QuestionIndex: 0, SelectedAnswer: intPtr(0)},
			},
			questions:  []model.SnapshotQuestion{mcq(0, 0, "a", "b")},
			totalMarks: 0,
			threshold:  60,
			want: ScoreSummary{
				Score: 0, TotalMarks: 0, Percentage: 0, Result: model.ResultFail,
				CorrectAnswers: 0, TotalQuestions: 1, TotalAnswered: 1, Unanswered: 0,
			},
		},
		{
			name: "free text answered earns full marks",
			answers: []model.AttemptAnswer{
				{QuestionIndex: 0, TextAnswer: strPtr("  my essay  ")},
				{QuestionIndex: 1, TextAnswer: strPtr("   ")},
			},
			questions: []model.SnapshotQuestion{
				{Kind: model.QuestionKindFreeText, Marks: 2},
				{Kind: model.QuestionKindFreeText, Marks: 3},
			},
			totalMarks: 5,
			threshold:  60,
			want: ScoreSummary{
				Score: 2, TotalMarks: 5, Percentage: 40, Result: model.ResultFail,
				CorrectAnswers: 1, TotalQuestions: 2, TotalAnswered: 2, Unanswered: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAttempt(tt.answers, tt.questions, tt.totalMarks, tt.threshold)
			if got != tt.want {
				t.Errorf("ScoreAttempt() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreAttemptUpload(t *testing.T) {
	questions := []model.SnapshotQuestion{
		{Kind: model.QuestionKindFileUpload, Marks: 4},
		{Kind: model.QuestionKindFileUpload, Marks: 1},
	}
	answers := []model.AttemptAnswer{
		{QuestionIndex: 0, UploadedFile: uploadJSON(t)},
		{QuestionIndex: 1}, // nothing uploaded
	}

	got := ScoreAttempt(answers, questions, 5, 60)
	if got.Score != 4 {
		t.Errorf("Score = %d, want 4", got.Score)
	}
	if got.Percentage != 80 {
		t.Errorf("Percentage = %v, want 80", got.Percentage)
	}
	if got.Result != model.ResultPass {
		t.Errorf("Result = %q, want pass", got.Result)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total int
		want         float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{3, 3, 100},
		{0, 0, 0},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.score, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestSumMarks(t *testing.T) {
	questions := []model.SnapshotQuestion{
		{Marks: 2},
		{Marks: 0}, // unset, counts as 1
		{Marks: 3},
	}
	if got := SumMarks(questions); got != 6 {
		t.Errorf("SumMarks() = %d, want 6", got)
	}
}
