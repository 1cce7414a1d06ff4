package questions

import (
	"math"

	"github.com/lernquiz/backend/internal/models"
	"github.com/lernquiz/backend/internal/progress"
)

// shortWindow is how many recent outcomes the bias heuristic looks at.
const shortWindow = 3

// TargetDifficulty applies the short-window heuristic: three correct
// answers in a row bias selection toward schwer, three misses toward
// leicht, anything else toward mittel.
func TargetDifficulty(recentOutcomes []bool) models.Difficulty {
	if len(recentOutcomes) < shortWindow {
		return models.DifficultyMittel
	}
	window := recentOutcomes[len(recentOutcomes)-shortWindow:]
	allCorrect, allWrong := true, true
	for _, correct := range window {
		if correct {
			allWrong = false
		} else {
			allCorrect = false
		}
	}
	switch {
	case allCorrect:
		return models.DifficultySchwer
	case allWrong:
		return models.DifficultyLeicht
	default:
		return models.DifficultyMittel
	}
}

// BucketCounts converts advisory shares into per-difficulty counts for a
// session of the given size. Easy and hard round to nearest; medium absorbs
// the remainder so the counts always sum to count.
func BucketCounts(shares progress.DifficultyShares, count int) (easy, medium, hard int) {
	if count <= 0 {
		return 0, 0, 0
	}
	easy = int(math.Round(shares.Easy * float64(count)))
	hard = int(math.Round(shares.Hard * float64(count)))
	medium = count - easy - hard
	if medium < 0 {
		// Rounding overshoot: pull back from the larger of the two.
		if hard >= easy {
			hard += medium
		} else {
			easy += medium
		}
		medium = 0
	}
	return easy, medium, hard
}

// Select assembles a session's question set from the available pool. Each
// difficulty bucket is filled per the shares in pool order; shortfalls are
// topped up from the remaining items regardless of difficulty, preferring
// the short-window target difficulty first. The result is deterministically
// truncated to count. Shuffling is the caller's concern.
func Select(pool []models.Question, shares progress.DifficultyShares, recentOutcomes []bool, count int) []models.Question {
	if count <= 0 || len(pool) == 0 {
		return []models.Question{}
	}

	easyN, mediumN, hardN := BucketCounts(shares, count)
	wanted := map[models.Difficulty]int{
		models.DifficultyLeicht: easyN,
		models.DifficultyMittel: mediumN,
		models.DifficultySchwer: hardN,
	}

	selected := make([]models.Question, 0, count)
	used := make(map[string]bool, count)
	for _, q := range pool {
		if wanted[q.Difficulty] > 0 {
			selected = append(selected, q)
			used[q.ID] = true
			wanted[q.Difficulty]--
		}
	}

	// Top up under-supplied buckets: preferred difficulty first, then
	// whatever is left, in pool order.
	preferred := TargetDifficulty(recentOutcomes)
	for _, q := range pool {
		if len(selected) >= count {
			break
		}
		if !used[q.ID] && q.Difficulty == preferred {
			selected = append(selected, q)
			used[q.ID] = true
		}
	}
	for _, q := range pool {
		if len(selected) >= count {
			break
		}
		if !used[q.ID] {
			selected = append(selected, q)
			used[q.ID] = true
		}
	}

	if len(selected) > count {
		selected = selected[:count]
	}
	return selected
}
