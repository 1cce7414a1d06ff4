package progress

import (
	"math"
	"time"

	"github.com/lernquiz/backend/internal/models"
)

// SessionOutcome is the per-session summary the pipeline stages consume.
type SessionOutcome struct {
	Subject         string
	TotalQuestions  int
	CorrectAnswers  int
	PointsEarned    int
	Perfect         bool
	DurationSeconds int
	Expected        float64
}

// Summarize reduces a session's answer results to the outcome the engine
// stages read.
func Summarize(subject string, results []models.AnswerResult, durationSeconds int) SessionOutcome {
	outcome := SessionOutcome{
		Subject:         subject,
		TotalQuestions:  len(results),
		DurationSeconds: durationSeconds,
	}
	difficulties := make([]models.Difficulty, 0, len(results))
	for _, r := range results {
		if r.IsCorrect {
			outcome.CorrectAnswers++
		}
		outcome.PointsEarned += r.PointsAwarded
		difficulties = append(difficulties, r.Difficulty)
	}
	outcome.Perfect = outcome.TotalQuestions > 0 && outcome.CorrectAnswers == outcome.TotalQuestions
	outcome.Expected = ExpectedPerformance(difficulties)
	return outcome
}

// NewSubjectProgress returns a fresh level-1 subject record.
func NewSubjectProgress() *models.SubjectProgress {
	return &models.SubjectProgress{
		TopicsMastered:        []string{},
		TopicsNeedingPractice: []string{},
		Level:                 1,
		XPToNextLevel:         levelThresholds[1],
	}
}

// NewProgress returns an empty aggregate with all five subject records.
func NewProgress() *models.Progress {
	p := &models.Progress{
		Subjects:           make(map[string]*models.SubjectProgress, len(models.AllSubjects)),
		DifficultQuestions: []models.DifficultQuestion{},
		Badges:             []string{},
	}
	for _, subject := range models.AllSubjects {
		p.Subjects[subject] = NewSubjectProgress()
	}
	return p
}

// ApplySessionResult runs the end-of-session pipeline on the aggregate:
// leveling, skill update, struggle tracking, streak, daily challenge, then
// badge evaluation. Each stage reads the previous one's updated state. The aggregate is mutated in place; persisting it is the caller's
// concern. Returns the newly earned badge ids and whether the daily
// challenge completed.
func ApplySessionResult(p *models.Progress, subject string, results []models.AnswerResult, durationSeconds int, now time.Time) ([]string, bool) {
	outcome := Summarize(subject, results, durationSeconds)

	sp := p.Subjects[subject]
	if sp == nil {
		sp = NewSubjectProgress()
		if p.Subjects == nil {
			p.Subjects = make(map[string]*models.SubjectProgress)
		}
		p.Subjects[subject] = sp
	}

	// Lifetime counters. These only ever increase.
	sp.QuizzesCompleted++
	sp.TotalQuestions += outcome.TotalQuestions
	sp.CorrectAnswers += outcome.CorrectAnswers
	if sp.TotalQuestions > 0 {
		sp.AverageScore = int(math.Round(float64(sp.CorrectAnswers) / float64(sp.TotalQuestions) * 100))
	}
	p.TotalQuizzesCompleted++
	p.TotalPoints += outcome.PointsEarned

	// Leveling runs before the skill update so the skill backfill reads the
	// fresh level.
	ApplyLeveling(sp)

	oldSkill := sp.SkillLevel
	if oldSkill == 0 {
		oldSkill = AggregateSkill(sp.AverageScore, sp.Level, sp.QuizzesCompleted)
	}
	performance := 0.0
	if outcome.TotalQuestions > 0 {
		performance = float64(outcome.CorrectAnswers) / float64(outcome.TotalQuestions)
	}
	sp.SkillLevel = UpdateSkill(oldSkill, performance, outcome.Expected)

	updateTopics(sp, results)

	for _, r := range results {
		if r.IsCorrect {
			RecordCorrectAnswer(p, r.QuestionID, now)
		} else {
			RecordWrongAnswer(p, r.QuestionID, now)
		}
	}

	TouchStreak(&p.LearningStreak, now)

	challengeCompleted := AccrueChallenge(p, outcome, now)

	earned := EvaluateBadges(p, outcome)
	for _, id := range earned {
		p.AddBadge(id)
	}

	t := now
	p.LastActivity = &t

	return earned, challengeCompleted
}

// updateTopics moves topic labels between the mastered and needs-practice
// sets from this session's per-topic results. A topic answered at least
// twice with no mistakes counts as mastered; a topic with a majority of
// wrong answers needs practice. The two sets stay disjoint.
func updateTopics(sp *models.SubjectProgress, results []models.AnswerResult) {
	type tally struct{ correct, wrong int }
	topics := make(map[string]*tally)
	for _, r := range results {
		if r.Topic == "" {
			continue
		}
		t := topics[r.Topic]
		if t == nil {
			t = &tally{}
			topics[r.Topic] = t
		}
		if r.IsCorrect {
			t.correct++
		} else {
			t.wrong++
		}
	}

	for topic, t := range topics {
		switch {
		case t.wrong == 0 && t.correct >= 2:
			sp.TopicsMastered = addLabel(sp.TopicsMastered, topic)
			sp.TopicsNeedingPractice = removeLabel(sp.TopicsNeedingPractice, topic)
		case t.wrong > t.correct:
			sp.TopicsNeedingPractice = addLabel(sp.TopicsNeedingPractice, topic)
			sp.TopicsMastered = removeLabel(sp.TopicsMastered, topic)
		}
	}
}

func addLabel(labels []string, label string) []string {
	for _, l := range labels {
		if l == label {
			return labels
		}
	}
	return append(labels, label)
}

func removeLabel(labels []string, label string) []string {
	for i, l := range labels {
		if l == label {
			return append(labels[:i], labels[i+1:]...)
		}
	}
	return labels
}

// Reconcile backfills a loaded document that predates newer fields: missing
// subject records, zeroed level/xp fields, unset skill levels, and nil
// slices. It never touches counters. Safe to run on every load.
func Reconcile(p *models.Progress) {
	if p.Subjects == nil {
		p.Subjects = make(map[string]*models.SubjectProgress, len(models.AllSubjects))
	}
	for _, subject := range models.AllSubjects {
		sp := p.Subjects[subject]
		if sp == nil {
			p.Subjects[subject] = NewSubjectProgress()
			continue
		}
		if sp.TopicsMastered == nil {
			sp.TopicsMastered = []string{}
		}
		if sp.TopicsNeedingPractice == nil {
			sp.TopicsNeedingPractice = []string{}
		}
		if sp.Level == 0 {
			ApplyLeveling(sp)
		}
		if sp.SkillLevel == 0 && sp.QuizzesCompleted > 0 {
			sp.SkillLevel = AggregateSkill(sp.AverageScore, sp.Level, sp.QuizzesCompleted)
		}
	}
	if p.DifficultQuestions == nil {
		p.DifficultQuestions = []models.DifficultQuestion{}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.LearningStreak.Longest < p.LearningStreak.Current {
		p.LearningStreak.Longest = p.LearningStreak.Current
	}
}
