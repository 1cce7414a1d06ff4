package progress

import (
	"time"

	"github.com/lernquiz/backend/internal/models"
)

// dateOf normalizes a timestamp to its UTC calendar day.
func dateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TouchStreak advances the streak for activity at now. Active yesterday
// extends the run; any longer gap (or first-ever activity) restarts it at 1.
// Calling it again within the same calendar day is a no-op.
func TouchStreak(streak *models.LearningStreak, now time.Time) {
	if streak.LastActivity != nil {
		last := *streak.LastActivity
		today := dateOf(now)
		if dateOf(last) == today {
			return
		}
		if dateOf(last.AddDate(0, 0, 1)) == today {
			streak.Current++
		} else {
			streak.Current = 1
		}
	} else {
		streak.Current = 1
	}

	if streak.Current > streak.Longest {
		streak.Longest = streak.Current
	}
	t := now
	streak.LastActivity = &t
}
