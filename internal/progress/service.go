package progress

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lernquiz/backend/internal/models"
)

// saveRetries bounds how often a session apply is retried after losing a
// version race to a concurrent writer.
const saveRetries = 3

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// loadOrInit fetches and reconciles the learner's document. A failed read
// falls back to a fresh empty aggregate rather than blocking the session,
// which makes a genuine read failure look like a new learner. The failure
// is at least logged.
func (s *Service) loadOrInit(userID int64) (*models.Progress, int) {
	p, version, err := s.store.Load(userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[progress] load failed for user %d, starting fresh: %v", userID, err)
		}
		return NewProgress(), 0
	}
	Reconcile(p)
	return p, version
}

// CompleteSession applies a finished session to the learner's document and
// persists it in one write. The whole load-apply-save cycle retries on a
// version conflict; a persistent write failure is surfaced to the caller so
// the session's credit is not silently lost.
func (s *Service) CompleteSession(userID int64, req models.CompleteSessionRequest) (*models.SessionSummary, error) {
	now := time.Now().UTC()

	var lastErr error
	for attempt := 0; attempt < saveRetries; attempt++ {
		p, version := s.loadOrInit(userID)
		earned, challengeCompleted := ApplySessionResult(p, req.Subject, req.Results, req.DurationSeconds, now)

		err := s.store.Save(userID, p, version)
		if err == nil {
			if earned == nil {
				earned = []string{}
			}
			outcome := Summarize(req.Subject, req.Results, req.DurationSeconds)
			return &models.SessionSummary{
				Progress:           p,
				NewBadges:          earned,
				PointsEarned:       outcome.PointsEarned,
				ChallengeCompleted: challengeCompleted,
			}, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		log.Printf("[progress] version conflict for user %d, retrying (attempt %d)", userID, attempt+1)
		lastErr = err
	}
	return nil, fmt.Errorf("complete session: %w", lastErr)
}

// GetProgress returns the learner's reconciled document. A stale daily
// challenge is regenerated in the returned copy; it is persisted on the
// next session write.
func (s *Service) GetProgress(userID int64) *models.Progress {
	p, _ := s.loadOrInit(userID)
	EnsureDailyChallenge(p, time.Now().UTC())
	return p
}

// GetDailyChallenge returns today's challenge for the learner.
func (s *Service) GetDailyChallenge(userID int64) *models.DailyChallenge {
	return s.GetProgress(userID).DailyChallenge
}

// GetReviewQueue returns up to limit struggled questions due for review.
func (s *Service) GetReviewQueue(userID int64, limit int) []models.DifficultQuestion {
	p, _ := s.loadOrInit(userID)
	due := ReviewQueue(p, time.Now().UTC(), limit)
	if due == nil {
		due = []models.DifficultQuestion{}
	}
	return due
}

// SharesForSubject computes the advisory difficulty mix for the learner's
// next session in a subject.
func (s *Service) SharesForSubject(userID int64, subject string) DifficultyShares {
	p, _ := s.loadOrInit(userID)
	skill := 0.0
	if sp := p.Subjects[subject]; sp != nil {
		skill = sp.SkillLevel
	}
	return SharesForSkill(skill)
}
