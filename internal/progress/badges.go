package progress

import "github.com/lernquiz/backend/internal/models"

// fastSessionSeconds is the total-duration bound for the speed badge.
const fastSessionSeconds = 300

// BadgeCatalog is the immutable reference data for every unlockable badge.
var BadgeCatalog = []models.BadgeDef{
	{ID: "erstes_quiz", Name: "Erste Schritte", Description: "Dein erstes Quiz abgeschlossen"},
	{ID: "mathe_meister", Name: "Mathe-Meister", Description: "10 Mathematik-Quizze abgeschlossen"},
	{ID: "perfekte_runde", Name: "Perfekte Runde", Description: "Ein Quiz ohne einen einzigen Fehler"},
	{ID: "wochen_serie", Name: "Wochen-Serie", Description: "7 Tage in Folge gelernt"},
	{ID: "blitzrunde", Name: "Blitzrunde", Description: "Ein Quiz in unter 5 Minuten geschafft"},
}

// EvaluateBadges returns the badge ids newly earned by this session, in
// catalog order. Already-owned badges are skipped, so re-running on the
// same state awards nothing. The caller appends the result to the set.
func EvaluateBadges(p *models.Progress, outcome SessionOutcome) []string {
	var earned []string
	award := func(id string, qualifies bool) {
		if qualifies && !p.HasBadge(id) {
			earned = append(earned, id)
		}
	}

	award("erstes_quiz", p.TotalQuizzesCompleted >= 1)
	if sp, ok := p.Subjects[models.SubjectMathematik]; ok && sp != nil {
		award("mathe_meister", sp.QuizzesCompleted >= 10)
	}
	award("perfekte_runde", outcome.Perfect)
	award("wochen_serie", p.LearningStreak.Current >= 7)
	award("blitzrunde", outcome.DurationSeconds > 0 && outcome.DurationSeconds < fastSessionSeconds)

	return earned
}
