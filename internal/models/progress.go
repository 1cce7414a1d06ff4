package models

import "time"

// ── Subjects ────────────────────────────────────────────

const (
	SubjectMathematik          = "mathematik"
	SubjectDeutsch             = "deutsch"
	SubjectNaturwissenschaften = "naturwissenschaften"
	SubjectKunst               = "kunst"
	SubjectLogik               = "logik"
)

// AllSubjects lists every subject the progress document tracks. The set is
// fixed; a document always carries a record for each.
var AllSubjects = []string{
	SubjectMathematik,
	SubjectDeutsch,
	SubjectNaturwissenschaften,
	SubjectKunst,
	SubjectLogik,
}

// ValidSubjects is a lookup for request validation.
var ValidSubjects = map[string]bool{
	SubjectMathematik:          true,
	SubjectDeutsch:             true,
	SubjectNaturwissenschaften: true,
	SubjectKunst:               true,
	SubjectLogik:               true,
}

// ── Progress Document ───────────────────────────────────

// SubjectProgress holds the lifetime counters and derived progression state
// for one subject. The counters only ever increase.
type SubjectProgress struct {
	QuizzesCompleted      int      `json:"quizzesCompleted"`
	TotalQuestions        int      `json:"totalQuestions"`
	CorrectAnswers        int      `json:"correctAnswers"`
	AverageScore          int      `json:"averageScore"`
	TopicsMastered        []string `json:"topicsMastered"`
	TopicsNeedingPractice []string `json:"topicsNeedingPractice"`
	Level                 int      `json:"level"`
	XP                    int      `json:"xp"`
	XPToNextLevel         int      `json:"xpToNextLevel"`
	SkillLevel            float64  `json:"skillLevel"`
}

// DifficultQuestion records a question the learner has repeatedly missed.
// Entries are never removed; a correct answer under the mastery rule flips
// Mastered exactly once and the entry stays as history.
type DifficultQuestion struct {
	QuestionID   string     `json:"questionId"`
	Attempts     int        `json:"attempts"`
	FirstAttempt time.Time  `json:"firstAttempt"`
	LastAttempt  time.Time  `json:"lastAttempt"`
	Mastered     bool       `json:"mastered"`
	NextReview   *time.Time `json:"nextReview,omitempty"`
}

// LearningStreak tracks consecutive calendar days with at least one session.
type LearningStreak struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}

type ChallengeType string

const (
	ChallengeQuestions ChallengeType = "questions"
	ChallengePoints    ChallengeType = "points"
	ChallengePerfect   ChallengeType = "perfect"
	ChallengeStreak    ChallengeType = "streak"
)

// DailyChallenge is the single per-day goal. Date is a YYYY-MM-DD string;
// an instance whose date is not today is stale and gets regenerated.
type DailyChallenge struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Type        ChallengeType `json:"type"`
	Target      int           `json:"target"`
	Progress    int           `json:"progress"`
	BonusPoints int           `json:"bonusPoints"`
	Completed   bool          `json:"completed"`
}

// Progress is the root aggregate, persisted as a single document per
// learner. It is loaded, mutated by the session pipeline, and saved as one
// unit.
type Progress struct {
	TotalQuizzesCompleted int                         `json:"totalQuizzesCompleted"`
	TotalPoints           int                         `json:"totalPoints"`
	Subjects              map[string]*SubjectProgress `json:"subjects"`
	DifficultQuestions    []DifficultQuestion         `json:"difficultQuestions"`
	Badges                []string                    `json:"badges"`
	LearningStreak        LearningStreak              `json:"learningStreak"`
	DailyChallenge        *DailyChallenge             `json:"dailyChallenge,omitempty"`
	LastActivity          *time.Time                  `json:"lastActivity,omitempty"`
}

// HasBadge reports whether the badge id is already in the set.
func (p *Progress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// AddBadge inserts a badge id if absent. The badge set is append-only.
func (p *Progress) AddBadge(id string) {
	if !p.HasBadge(id) {
		p.Badges = append(p.Badges, id)
	}
}

// ── Session Types ───────────────────────────────────────

// AnswerResult is one answered question in a completed session. Difficulty
// and topic echo the served question's labels; both may be empty.
type AnswerResult struct {
	QuestionID    string     `json:"questionId"`
	IsCorrect     bool       `json:"isCorrect"`
	PointsAwarded int        `json:"pointsAwarded"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Topic         string     `json:"topic,omitempty"`
}

type CompleteSessionRequest struct {
	Subject         string         `json:"subject"`
	Results         []AnswerResult `json:"results"`
	DurationSeconds int            `json:"durationSeconds,omitempty"`
}

// SessionSummary is returned to the orchestrating caller after a session is
// applied and persisted. NewBadges carries only badges earned by this
// session, for notification purposes.
type SessionSummary struct {
	Progress           *Progress `json:"progress"`
	NewBadges          []string  `json:"newBadges"`
	PointsEarned       int       `json:"pointsEarned"`
	ChallengeCompleted bool      `json:"challengeCompleted"`
}

// ── Badge Catalog ───────────────────────────────────────

// BadgeDef is immutable catalog data for one badge.
type BadgeDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
