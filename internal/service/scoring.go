package service

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/dungnh/jobhub/internal/model"
	"github.com/rs/zerolog/log"
)

// ScoreSummary is the output of grading one attempt.
type ScoreSummary struct {
	Score          int
	TotalMarks     int
	Percentage     float64
	Result         string
	CorrectAnswers int
	TotalQuestions int
	TotalAnswered  int
	Unanswered     int
}

// ScoreAttempt grades stored answers against the question snapshot. It never
// fails: an answer whose index no longer maps to a question is logged and
// skipped, so one bad entry cannot sink the candidate's whole submission.
func ScoreAttempt(answers []model.AttemptAnswer, questions []model.SnapshotQuestion, totalMarks int, passingPercentage float64) ScoreSummary {
	summary := ScoreSummary{
		TotalMarks:     totalMarks,
		TotalQuestions: len(questions),
	}

	for _, answer := range answers {
		if answer.QuestionIndex < 0 || answer.QuestionIndex >= len(questions) {
			log.Warn().Int("question_index", answer.QuestionIndex).
				Uint("attempt_id", answer.AttemptID).
				Msg("Scoring: answer references a question that does not exist, skipping")
			continue
		}
		question := questions[answer.QuestionIndex]
		summary.TotalAnswered++

		if awarded := gradeAnswer(answer, question); awarded > 0 {
			summary.Score += awarded
			summary.CorrectAnswers++
		}
	}

	summary.Unanswered = summary.TotalQuestions - summary.TotalAnswered
	if summary.Unanswered < 0 {
		summary.Unanswered = 0
	}

	summary.Percentage = Percentage(summary.Score, totalMarks)
	if summary.Percentage >= passingPercentage {
		summary.Result = model.ResultPass
	} else {
		summary.Result = model.ResultFail
	}
	return summary
}

func gradeAnswer(answer model.AttemptAnswer, question model.SnapshotQuestion) int {
	switch question.Kind {
	case model.QuestionKindFreeText:
		// No automatic grading of content: a non-blank answer earns full
		// marks and is flagged for manual review downstream.
		if answer.TextAnswer != nil && strings.TrimSpace(*answer.TextAnswer) != "" {
			return question.Marks
		}
	case model.QuestionKindFileUpload:
		// Presence of an upload earns full marks, no content evaluation.
		if hasUploadedFile(answer.UploadedFile) {
			return question.Marks
		}
	default: // multiple choice
		if answer.SelectedAnswer == nil || question.CorrectAnswer == nil {
			return 0
		}
		selected := *answer.SelectedAnswer
		if selected < 0 || selected >= len(question.Options) {
			return 0
		}
		if selected == *question.CorrectAnswer {
			return question.Marks
		}
	}
	return 0
}

func hasUploadedFile(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	var file model.UploadedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return false
	}
	return file.PublicID != "" || file.URL != ""
}

// Percentage is score/totalMarks*100 rounded to 2 decimals, 0 for an empty
// assessment rather than a division error.
func Percentage(score, totalMarks int) float64 {
	if totalMarks == 0 {
		return 0
	}
	return math.Round(float64(score)/float64(totalMarks)*100*100) / 100
}

// SumMarks totals question marks, counting 1 for any question whose marks
// were never set.
func SumMarks(questions []model.SnapshotQuestion) int {
	total := 0
	for _, q := range questions {
		if q.Marks > 0 {
			total += q.Marks
		} else {
			total++
		}
	}
	return total
}
