package progress

import (
	"sort"
	"time"

	"github.com/lernquiz/backend/internal/models"
)

const (
	// reviewDelay is how far out a re-presentation is scheduled once a
	// question has been missed reviewAttemptGate times.
	reviewDelay       = 3 * 24 * time.Hour
	reviewAttemptGate = 3

	// masteryAttemptMin is the number of recorded wrong attempts required
	// before a correct answer graduates the question. A single prior miss
	// is not enough.
	masteryAttemptMin = 2
)

// RecordWrongAnswer tracks a missed question, creating the entry on the
// first miss. Mastered entries are terminal and ignore further answers.
func RecordWrongAnswer(p *models.Progress, questionID string, now time.Time) {
	for i := range p.DifficultQuestions {
		dq := &p.DifficultQuestions[i]
		if dq.QuestionID != questionID {
			continue
		}
		if dq.Mastered {
			return
		}
		dq.Attempts++
		dq.LastAttempt = now
		if dq.Attempts >= reviewAttemptGate && dq.NextReview == nil {
			review := now.Add(reviewDelay)
			dq.NextReview = &review
		}
		return
	}

	p.DifficultQuestions = append(p.DifficultQuestions, models.DifficultQuestion{
		QuestionID:   questionID,
		Attempts:     1,
		FirstAttempt: now,
		LastAttempt:  now,
	})
}

// RecordCorrectAnswer graduates a tracked question to mastered once it has
// been missed at least masteryAttemptMin times. A correct answer below that
// gate leaves the entry unchanged.
func RecordCorrectAnswer(p *models.Progress, questionID string, now time.Time) {
	for i := range p.DifficultQuestions {
		dq := &p.DifficultQuestions[i]
		if dq.QuestionID != questionID || dq.Mastered {
			continue
		}
		if dq.Attempts >= masteryAttemptMin {
			dq.Mastered = true
			dq.NextReview = nil
			dq.LastAttempt = now
		}
		return
	}
}

// ReviewQueue returns up to limit non-mastered questions whose review is
// unscheduled or due, most-struggled first. limit <= 0 means no limit.
func ReviewQueue(p *models.Progress, now time.Time, limit int) []models.DifficultQuestion {
	var due []models.DifficultQuestion
	for _, dq := range p.DifficultQuestions {
		if dq.Mastered {
			continue
		}
		if dq.NextReview != nil && dq.NextReview.After(now) {
			continue
		}
		due = append(due, dq)
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Attempts > due[j].Attempts
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}
