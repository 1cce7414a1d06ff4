package progress

import "github.com/lernquiz/backend/internal/models"

// Assumed success probability per served difficulty label. Unlabelled
// questions count as leicht.
const (
	expectedLeicht = 0.85
	expectedMittel = 0.70
	expectedSchwer = 0.55
)

// skillAdjustmentRate dampens per-session skill corrections.
const skillAdjustmentRate = 0.12

// maxSkillAdjustment bounds a single session's skill movement.
const maxSkillAdjustment = 0.20

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// AggregateSkill estimates a skill level from lifetime stats. Used only to
// backfill documents that carry no stored skill value yet; once a session
// update has run, the persisted value wins.
func AggregateSkill(averageScore, level, quizzesCompleted int) float64 {
	experience := float64(quizzesCompleted) / 10.0
	if experience > 1 {
		experience = 1
	}
	skill := 0.5*(float64(averageScore)/100.0) +
		0.3*(float64(level-1)/9.0) +
		0.2*experience

	// New learners start conservatively.
	if quizzesCompleted < 3 && skill > 0.3 {
		skill = 0.3
	}
	return clamp01(skill)
}

// ExpectedPerformance averages the assumed success probability over the
// served question set.
func ExpectedPerformance(difficulties []models.Difficulty) float64 {
	if len(difficulties) == 0 {
		return expectedLeicht
	}
	sum := 0.0
	for _, d := range difficulties {
		switch d {
		case models.DifficultyMittel:
			sum += expectedMittel
		case models.DifficultySchwer:
			sum += expectedSchwer
		default:
			sum += expectedLeicht
		}
	}
	return sum / float64(len(difficulties))
}

// UpdateSkill applies the damped error-correction step after a session:
// move the skill toward the observed performance, bounded per session,
// clamped to [0,1].
func UpdateSkill(current, quizPerformance, expectedPerformance float64) float64 {
	adjustment := (quizPerformance - expectedPerformance) * skillAdjustmentRate
	if adjustment > maxSkillAdjustment {
		adjustment = maxSkillAdjustment
	}
	if adjustment < -maxSkillAdjustment {
		adjustment = -maxSkillAdjustment
	}
	return clamp01(current + adjustment)
}
