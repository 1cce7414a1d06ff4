package progress

import (
	"math"
	"testing"
	"time"

	"github.com/lernquiz/backend/internal/models"
)

func sessionResults() []models.AnswerResult {
	return []models.AnswerResult{
		{QuestionID: "q1", IsCorrect: true, PointsAwarded: 10, Difficulty: models.DifficultyLeicht, Topic: "addition"},
		{QuestionID: "q2", IsCorrect: true, PointsAwarded: 10, Difficulty: models.DifficultyLeicht, Topic: "addition"},
		{QuestionID: "q3", IsCorrect: true, PointsAwarded: 10, Difficulty: models.DifficultyLeicht, Topic: "subtraktion"},
		{QuestionID: "q4", IsCorrect: true, PointsAwarded: 10, Difficulty: models.DifficultyLeicht, Topic: "subtraktion"},
		{QuestionID: "q5", IsCorrect: false, PointsAwarded: 0, Difficulty: models.DifficultyLeicht, Topic: "geometrie"},
	}
}

func TestSummarize(t *testing.T) {
	outcome := Summarize(models.SubjectMathematik, sessionResults(), 200)
	if outcome.TotalQuestions != 5 || outcome.CorrectAnswers != 4 {
		t.Errorf("questions/correct = %d/%d, want 5/4", outcome.TotalQuestions, outcome.CorrectAnswers)
	}
	if outcome.PointsEarned != 40 {
		t.Errorf("PointsEarned = %d, want 40", outcome.PointsEarned)
	}
	if outcome.Perfect {
		t.Error("4/5 reported as perfect")
	}
	if math.Abs(outcome.Expected-0.85) > 1e-9 {
		t.Errorf("Expected = %f, want 0.85 for an all-easy set", outcome.Expected)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	outcome := Summarize(models.SubjectDeutsch, nil, 0)
	if outcome.Perfect {
		t.Error("empty session reported as perfect")
	}
}

func TestApplySessionResultPipeline(t *testing.T) {
	p := NewProgress()
	now := time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC)

	earned, challengeCompleted := ApplySessionResult(p, models.SubjectMathematik, sessionResults(), 200, now)

	sp := p.Subjects[models.SubjectMathematik]
	if sp.QuizzesCompleted != 1 || sp.TotalQuestions != 5 || sp.CorrectAnswers != 4 {
		t.Errorf("counters = %d/%d/%d, want 1/5/4", sp.QuizzesCompleted, sp.TotalQuestions, sp.CorrectAnswers)
	}
	if sp.AverageScore != 80 {
		t.Errorf("AverageScore = %d, want 80", sp.AverageScore)
	}

	// base XP = 10 + 8 + 8 = 26, inside the level-1 band.
	if sp.Level != 1 || sp.XP != 26 || sp.XPToNextLevel != 100 {
		t.Errorf("leveling = %d/%d/%d, want 1/26/100", sp.Level, sp.XP, sp.XPToNextLevel)
	}

	// Unset skill backfills to the new-learner clamp (0.3), then moves by
	// (0.8 - 0.85) * 0.12.
	wantSkill := 0.3 + (0.8-0.85)*0.12
	if math.Abs(sp.SkillLevel-wantSkill) > 1e-9 {
		t.Errorf("SkillLevel = %f, want %f", sp.SkillLevel, wantSkill)
	}

	if p.TotalQuizzesCompleted != 1 {
		t.Errorf("TotalQuizzesCompleted = %d, want 1", p.TotalQuizzesCompleted)
	}
	if p.TotalPoints != 40 {
		t.Errorf("TotalPoints = %d, want 40", p.TotalPoints)
	}

	// Topics: two flawless answers each count as mastered; the one-answer
	// topic that was missed is majority-wrong.
	if !hasID(sp.TopicsMastered, "addition") || !hasID(sp.TopicsMastered, "subtraktion") {
		t.Errorf("TopicsMastered = %v, want addition and subtraktion", sp.TopicsMastered)
	}
	if !hasID(sp.TopicsNeedingPractice, "geometrie") {
		t.Errorf("TopicsNeedingPractice = %v, want geometrie", sp.TopicsNeedingPractice)
	}

	// The miss is tracked.
	if dq := findTracked(p, "q5"); dq == nil || dq.Attempts != 1 {
		t.Errorf("q5 not tracked after miss: %v", dq)
	}

	if p.LearningStreak.Current != 1 {
		t.Errorf("streak = %d, want 1", p.LearningStreak.Current)
	}

	// Jan 4 is a 5-questions challenge; 4 correct is short of it.
	if challengeCompleted {
		t.Error("challenge reported complete at 4/5")
	}
	if p.DailyChallenge == nil || p.DailyChallenge.Progress != 4 {
		t.Errorf("DailyChallenge = %+v, want progress 4", p.DailyChallenge)
	}

	// First quiz and under 5 minutes.
	if !hasID(earned, "erstes_quiz") || !hasID(earned, "blitzrunde") {
		t.Errorf("earned = %v, want erstes_quiz and blitzrunde", earned)
	}
	for _, id := range earned {
		if !p.HasBadge(id) {
			t.Errorf("earned badge %s not recorded on the aggregate", id)
		}
	}

	if p.LastActivity == nil || !p.LastActivity.Equal(now) {
		t.Errorf("LastActivity = %v, want %v", p.LastActivity, now)
	}
}

func TestApplySessionResultCompletesChallenge(t *testing.T) {
	p := NewProgress()
	now := time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC)

	results := []models.AnswerResult{
		{QuestionID: "a", IsCorrect: true, PointsAwarded: 10},
		{QuestionID: "b", IsCorrect: true, PointsAwarded: 10},
		{QuestionID: "c", IsCorrect: true, PointsAwarded: 10},
		{QuestionID: "d", IsCorrect: true, PointsAwarded: 10},
		{QuestionID: "e", IsCorrect: true, PointsAwarded: 10},
	}
	earned, challengeCompleted := ApplySessionResult(p, models.SubjectLogik, results, 600, now)

	if !challengeCompleted {
		t.Fatal("5 correct on a 5-questions day did not complete the challenge")
	}
	// 50 session points + 50 challenge bonus.
	if p.TotalPoints != 100 {
		t.Errorf("TotalPoints = %d, want 100", p.TotalPoints)
	}
	if !hasID(earned, "perfekte_runde") {
		t.Errorf("earned = %v, want perfekte_runde for a flawless session", earned)
	}
	if hasID(earned, "blitzrunde") {
		t.Error("blitzrunde awarded for a 10-minute session")
	}
}

func TestApplySessionResultUnknownSubject(t *testing.T) {
	p := NewProgress()
	delete(p.Subjects, models.SubjectKunst)

	ApplySessionResult(p, models.SubjectKunst, sessionResults(), 100, time.Now())
	if p.Subjects[models.SubjectKunst] == nil {
		t.Fatal("missing subject record not created")
	}
	if p.Subjects[models.SubjectKunst].QuizzesCompleted != 1 {
		t.Error("created subject record did not absorb the session")
	}
}

func TestReconcileBackfillsLegacyDocument(t *testing.T) {
	// A document written before subjects, leveling and skill existed.
	p := &models.Progress{
		Subjects: map[string]*models.SubjectProgress{
			models.SubjectMathematik: {
				QuizzesCompleted: 8,
				TotalQuestions:   80,
				CorrectAnswers:   60,
				AverageScore:     75,
			},
		},
		LearningStreak: models.LearningStreak{Current: 5, Longest: 3},
	}

	Reconcile(p)

	for _, subject := range models.AllSubjects {
		if p.Subjects[subject] == nil {
			t.Fatalf("subject %s not backfilled", subject)
		}
	}

	sp := p.Subjects[models.SubjectMathematik]
	if sp.Level == 0 {
		t.Error("zero level not recomputed")
	}
	if sp.QuizzesCompleted != 8 || sp.CorrectAnswers != 60 {
		t.Error("counters changed by reconcile")
	}
	if sp.SkillLevel == 0 {
		t.Error("skill not backfilled for an active subject")
	}
	if sp.TopicsMastered == nil || sp.TopicsNeedingPractice == nil {
		t.Error("nil topic slices not initialized")
	}

	if p.DifficultQuestions == nil || p.Badges == nil {
		t.Error("nil collections not initialized")
	}
	if p.LearningStreak.Longest != 5 {
		t.Errorf("Longest = %d, want repaired to 5", p.LearningStreak.Longest)
	}

	// Inactive subjects keep skill at zero rather than inventing one.
	if p.Subjects[models.SubjectKunst].SkillLevel != 0 {
		t.Error("skill invented for a subject with no quizzes")
	}
}
