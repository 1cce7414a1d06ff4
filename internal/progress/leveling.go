package progress

import "github.com/lernquiz/backend/internal/models"

// MaxLevel is the terminal progression tier. No further growth is
// communicated to the caller beyond it.
const MaxLevel = 10

// levelThresholds holds cumulative base-XP lower bounds for levels 1-10.
var levelThresholds = []int{0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700}

// BaseXP converts lifetime subject counters into cumulative XP.
func BaseXP(quizzesCompleted, correctAnswers, averageScore int) int {
	return quizzesCompleted*10 + correctAnswers*2 + averageScore/10
}

// LevelForXP returns the largest level whose threshold baseXP covers,
// capped at MaxLevel.
func LevelForXP(baseXP int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if baseXP >= threshold {
			level = i + 1
		}
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return level
}

// ApplyLeveling recomputes level, xp-within-band, and xp-to-next-level on a
// subject record from its counters. Pure recomputation: running it again on
// unchanged counters reproduces the same output.
func ApplyLeveling(sp *models.SubjectProgress) {
	base := BaseXP(sp.QuizzesCompleted, sp.CorrectAnswers, sp.AverageScore)
	level := LevelForXP(base)
	sp.Level = level
	sp.XP = base - levelThresholds[level-1]
	if level == MaxLevel {
		sp.XPToNextLevel = 0
	} else {
		sp.XPToNextLevel = levelThresholds[level] - levelThresholds[level-1]
	}
}
