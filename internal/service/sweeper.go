package service

import (
	"time"

	"github.com/dungnh/jobhub/config"
	"github.com/dungnh/jobhub/internal/model"
	"github.com/dungnh/jobhub/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ExpirySweeper closes the gap left by lazy expiry: a candidate who never
// calls submit would otherwise leave an attempt in_progress forever. When
// enabled it periodically grades and expires overdue attempts the same way
// submit would.
type ExpirySweeper struct {
	attemptRepo     repository.AttemptRepository
	applicationRepo repository.ApplicationRepository
	cron            *cron.Cron
	spec            string
	enabled         bool
}

func NewExpirySweeper(
	cfg *config.Config,
	attemptRepo repository.AttemptRepository,
	applicationRepo repository.ApplicationRepository,
) *ExpirySweeper {
	return &ExpirySweeper{
		attemptRepo:     attemptRepo,
		applicationRepo: applicationRepo,
		cron:            cron.New(),
		spec:            cfg.Sweep.Cron,
		enabled:         cfg.Sweep.Enabled,
	}
}

func (s *ExpirySweeper) Start() error {
	if !s.enabled {
		log.Info().Msg("Expiry sweep disabled, relying on lazy expiry at submit")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("schedule", s.spec).Msg("Expiry sweep scheduled")
	return nil
}

func (s *ExpirySweeper) Stop() {
	s.cron.Stop()
}

// Sweep expires every in_progress attempt whose timer ran out.
func (s *ExpirySweeper) Sweep() {
	now := time.Now()
	overdue, err := s.attemptRepo.FindOverdueInProgress(now)
	if err != nil {
		log.Error().Err(err).Msg("Expiry sweep: query failed")
		return
	}
	for _, stale := range overdue {
		attempt, err := s.attemptRepo.FindByIDWithDetails(stale.ID)
		if err != nil {
			log.Error().Err(err).Uint("attempt_id", stale.ID).Msg("Expiry sweep: reload failed")
			continue
		}
		if attempt.Status != model.AttemptStatusInProgress {
			continue
		}

		questions, err := decodeSnapshot(attempt.QuestionSnapshot)
		if err != nil {
			log.Error().Err(err).Uint("attempt_id", attempt.ID).Msg("Expiry sweep: bad snapshot")
			continue
		}
		summary := ScoreAttempt(attempt.Answers, questions, attempt.TotalMarks, attempt.PassingPercentage)

		attempt.Status = model.AttemptStatusExpired
		attempt.EndTime = &now
		attempt.Score = summary.Score
		attempt.Percentage = summary.Percentage
		attempt.Result = summary.Result

		if err := s.attemptRepo.Save(attempt); err != nil {
			log.Error().Err(err).Uint("attempt_id", attempt.ID).Msg("Expiry sweep: save failed")
			continue
		}
		if err := s.applicationRepo.SetAssessmentOutcome(attempt.ApplicationID, summary.Score, summary.Percentage, summary.Result); err != nil {
			log.Error().Err(err).Uint("application_id", attempt.ApplicationID).
				Msg("Expiry sweep: failed to push outcome onto application")
		}
		log.Info().Uint("attempt_id", attempt.ID).Msg("Expired overdue attempt")
	}
}
