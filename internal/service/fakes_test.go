package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/dungnh/jobhub/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mimic the few behaviors the services rely
// on: gorm.ErrRecordNotFound for misses, upsert-by-(attempt, index) for
// answers, append-only violations.

type fakeAssessmentRepo struct {
	assessments map[uint]*model.Assessment
	nextID      uint
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: map[uint]*model.Assessment{}}
}

func (r *fakeAssessmentRepo) Create(assessment *model.Assessment) error {
	r.nextID++
	assessment.ID = r.nextID
	copy := *assessment
	r.assessments[assessment.ID] = &copy
	return nil
}

func (r *fakeAssessmentRepo) Update(assessment *model.Assessment) error {
	if _, ok := r.assessments[assessment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *assessment
	r.assessments[assessment.ID] = &copy
	return nil
}

func (r *fakeAssessmentRepo) Delete(id uint, employerID uint) (int64, error) {
	a, ok := r.assessments[id]
	if !ok || a.EmployerID != employerID {
		return 0, nil
	}
	delete(r.assessments, id)
	return 1, nil
}

func (r *fakeAssessmentRepo) FindByID(id uint) (*model.Assessment, error) {
	a, ok := r.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *fakeAssessmentRepo) FindByIDAndEmployer(id uint, employerID uint) (*model.Assessment, error) {
	a, ok := r.assessments[id]
	if !ok || a.EmployerID != employerID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *fakeAssessmentRepo) FindAllByEmployer(employerID uint) ([]model.Assessment, error) {
	var out []model.Assessment
	for _, a := range r.assessments {
		if a.EmployerID == employerID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNumber < out[j].SerialNumber })
	return out, nil
}

func (r *fakeAssessmentRepo) MaxSerialNumber(employerID uint) (int, error) {
	max := 0
	for _, a := range r.assessments {
		if a.EmployerID == employerID && a.SerialNumber > max {
			max = a.SerialNumber
		}
	}
	return max, nil
}

type fakeAttemptRepo struct {
	attempts   map[uint]*model.AssessmentAttempt
	answers    map[uint]map[int]model.AttemptAnswer
	violations map[uint][]model.AttemptViolation
	nextID     uint
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts:   map[uint]*model.AssessmentAttempt{},
		answers:    map[uint]map[int]model.AttemptAnswer{},
		violations: map[uint][]model.AttemptViolation{},
	}
}

func (r *fakeAttemptRepo) Create(attempt *model.AssessmentAttempt) error {
	r.nextID++
	attempt.ID = r.nextID
	copy := *attempt
	r.attempts[attempt.ID] = &copy
	return nil
}

func (r *fakeAttemptRepo) Save(attempt *model.AssessmentAttempt) error {
	if _, ok := r.attempts[attempt.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *attempt
	copy.Answers = nil
	copy.Violations = nil
	r.attempts[attempt.ID] = &copy
	return nil
}

func (r *fakeAttemptRepo) FindByID(id uint) (*model.AssessmentAttempt, error) {
	a, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *fakeAttemptRepo) FindByIDWithDetails(id uint) (*model.AssessmentAttempt, error) {
	a, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	for _, ans := range r.answersFor(id) {
		a.Answers = append(a.Answers, ans)
	}
	a.Violations = append(a.Violations, r.violations[id]...)
	return a, nil
}

func (r *fakeAttemptRepo) FindByIdentity(assessmentID, candidateID, applicationID uint) (*model.AssessmentAttempt, error) {
	for _, a := range r.attempts {
		if a.AssessmentID == assessmentID && a.CandidateID == candidateID && a.ApplicationID == applicationID {
			copy := *a
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) FindByApplication(applicationID, candidateID uint) (*model.AssessmentAttempt, error) {
	for _, a := range r.attempts {
		if a.ApplicationID == applicationID && a.CandidateID == candidateID {
			copy := *a
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) FindCompletedByAssessment(assessmentID uint) ([]model.AssessmentAttempt, error) {
	var out []model.AssessmentAttempt
	for _, a := range r.attempts {
		if a.AssessmentID == assessmentID && a.Status == model.AttemptStatusCompleted {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	return out, nil
}

func (r *fakeAttemptRepo) FindOverdueInProgress(now time.Time) ([]model.AssessmentAttempt, error) {
	var out []model.AssessmentAttempt
	for _, a := range r.attempts {
		deadline := a.StartTime.Add(time.Duration(a.TimeRemaining) * time.Second)
		if a.Status == model.AttemptStatusInProgress && deadline.Before(now) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) UpsertAnswer(answer *model.AttemptAnswer) error {
	byIndex, ok := r.answers[answer.AttemptID]
	if !ok {
		byIndex = map[int]model.AttemptAnswer{}
		r.answers[answer.AttemptID] = byIndex
	}
	byIndex[answer.QuestionIndex] = *answer
	return nil
}

func (r *fakeAttemptRepo) AppendViolation(violation *model.AttemptViolation) error {
	r.violations[violation.AttemptID] = append(r.violations[violation.AttemptID], *violation)
	return nil
}

func (r *fakeAttemptRepo) CountAnswers(attemptID uint) (int64, error) {
	return int64(len(r.answers[attemptID])), nil
}

func (r *fakeAttemptRepo) answersFor(attemptID uint) []model.AttemptAnswer {
	byIndex := r.answers[attemptID]
	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	out := make([]model.AttemptAnswer, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, byIndex[i])
	}
	return out
}

type outcomeCall struct {
	applicationID uint
	score         int
	percentage    float64
	result        string
}

type fakeApplicationRepo struct {
	apps            map[uint]*model.Application
	inProgressCalls int
	outcomes        []outcomeCall
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[uint]*model.Application{}}
}

func (r *fakeApplicationRepo) FindByIDAndCandidate(id uint, candidateID uint) (*model.Application, error) {
	a, ok := r.apps[id]
	if !ok || a.CandidateID != candidateID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *fakeApplicationRepo) FindAvailableByCandidate(candidateID uint) ([]model.Application, error) {
	var out []model.Application
	for _, a := range r.apps {
		if a.CandidateID == candidateID && a.AssessmentStatus == model.ApplicationAssessmentAvailable && a.AssessmentID != nil {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) SetAssessmentInProgress(id uint, assessmentID uint, attemptID uint) error {
	a, ok := r.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.AssessmentStatus = model.ApplicationAssessmentInProgress
	a.AssessmentID = &assessmentID
	a.AttemptID = &attemptID
	r.inProgressCalls++
	return nil
}

func (r *fakeApplicationRepo) SetAssessmentOutcome(id uint, score int, percentage float64, result string) error {
	a, ok := r.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.AssessmentStatus = model.ApplicationAssessmentCompleted
	a.AssessmentScore = &score
	a.AssessmentPercentage = &percentage
	a.AssessmentResult = &result
	r.outcomes = append(r.outcomes, outcomeCall{id, score, percentage, result})
	return nil
}

type fakeStorage struct {
	uploads int
}

func (s *fakeStorage) Upload(ctx context.Context, file io.Reader, originalName string) (*StoredFile, error) {
	s.uploads++
	return &StoredFile{PublicID: "uploads/fake", URL: "https://res.example.com/uploads/fake"}, nil
}
