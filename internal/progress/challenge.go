package progress

import (
	"time"

	"github.com/lernquiz/backend/internal/models"
)

type challengeTemplate struct {
	challengeType models.ChallengeType
	target        int
	bonusPoints   int
}

// challengeRotation is indexed by day-of-year mod 4, so the challenge for a
// given date is deterministic.
var challengeRotation = []challengeTemplate{
	{models.ChallengeQuestions, 5, 50},
	{models.ChallengePoints, 100, 75},
	{models.ChallengePerfect, 1, 100},
	{models.ChallengeStreak, 1, 25},
}

// ChallengeForDay instantiates the challenge for the given date.
func ChallengeForDay(now time.Time) *models.DailyChallenge {
	tpl := challengeRotation[now.UTC().YearDay()%len(challengeRotation)]
	date := dateOf(now)
	return &models.DailyChallenge{
		ID:          "daily-" + date,
		Date:        date,
		Type:        tpl.challengeType,
		Target:      tpl.target,
		BonusPoints: tpl.bonusPoints,
	}
}

// EnsureDailyChallenge replaces a missing or stale challenge in place. A
// regenerated challenge starts over at zero progress.
func EnsureDailyChallenge(p *models.Progress, now time.Time) {
	if p.DailyChallenge == nil || p.DailyChallenge.Date != dateOf(now) {
		p.DailyChallenge = ChallengeForDay(now)
	}
}

// AccrueChallenge applies a session's outcome to today's challenge.
// Progress is clamped to the target; the completion bonus lands in
// totalPoints exactly once, at the false→true transition. Returns whether
// the challenge completed during this call.
func AccrueChallenge(p *models.Progress, outcome SessionOutcome, now time.Time) bool {
	EnsureDailyChallenge(p, now)
	c := p.DailyChallenge
	if c.Completed {
		return false
	}

	switch c.Type {
	case models.ChallengeQuestions:
		c.Progress += outcome.CorrectAnswers
	case models.ChallengePoints:
		c.Progress += outcome.PointsEarned
	case models.ChallengePerfect:
		if outcome.Perfect {
			c.Progress = c.Target
		}
	case models.ChallengeStreak:
		if p.LearningStreak.Current > 0 {
			c.Progress = 1
		}
	}

	if c.Progress > c.Target {
		c.Progress = c.Target
	}
	if c.Progress >= c.Target {
		c.Completed = true
		p.TotalPoints += c.BonusPoints
		return true
	}
	return false
}
