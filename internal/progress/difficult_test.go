package progress

import (
	"testing"
	"time"

	"github.com/lernquiz/backend/internal/models"
)

func findTracked(p *models.Progress, questionID string) *models.DifficultQuestion {
	for i := range p.DifficultQuestions {
		if p.DifficultQuestions[i].QuestionID == questionID {
			return &p.DifficultQuestions[i]
		}
	}
	return nil
}

func TestRecordWrongAnswerLifecycle(t *testing.T) {
	p := NewProgress()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// First miss creates the entry.
	RecordWrongAnswer(p, "q1", now)
	dq := findTracked(p, "q1")
	if dq == nil {
		t.Fatal("expected q1 to be tracked after first wrong answer")
	}
	if dq.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", dq.Attempts)
	}
	if dq.NextReview != nil {
		t.Error("NextReview set after one miss, want unset")
	}

	// Second miss increments, still no review.
	RecordWrongAnswer(p, "q1", now.Add(time.Hour))
	if dq.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", dq.Attempts)
	}
	if dq.NextReview != nil {
		t.Error("NextReview set after two misses, want unset")
	}

	// Third miss schedules a review 3 days out.
	third := now.Add(2 * time.Hour)
	RecordWrongAnswer(p, "q1", third)
	if dq.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", dq.Attempts)
	}
	if dq.NextReview == nil {
		t.Fatal("NextReview unset after three misses, want scheduled")
	}
	if !dq.NextReview.Equal(third.Add(3 * 24 * time.Hour)) {
		t.Errorf("NextReview = %v, want %v", dq.NextReview, third.Add(3*24*time.Hour))
	}

	// A later correct answer masters it and clears the review.
	RecordCorrectAnswer(p, "q1", third.Add(time.Hour))
	if !dq.Mastered {
		t.Error("expected mastered after correct answer with 3 attempts")
	}
	if dq.NextReview != nil {
		t.Error("NextReview not cleared on mastery")
	}
}

func TestRecordWrongAnswerSchedulesReviewOnce(t *testing.T) {
	p := NewProgress()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		RecordWrongAnswer(p, "q1", now)
	}
	dq := findTracked(p, "q1")
	first := *dq.NextReview

	// A fourth miss must not push the scheduled review out.
	RecordWrongAnswer(p, "q1", now.Add(48*time.Hour))
	if !dq.NextReview.Equal(first) {
		t.Errorf("NextReview moved from %v to %v on later miss", first, dq.NextReview)
	}
}

func TestCorrectAnswerBelowMasteryGate(t *testing.T) {
	p := NewProgress()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// One miss, then a correct answer: a single prior miss is not enough
	// to graduate.
	RecordWrongAnswer(p, "q1", now)
	RecordCorrectAnswer(p, "q1", now.Add(time.Hour))

	dq := findTracked(p, "q1")
	if dq.Mastered {
		t.Error("mastered with attempts < 2, want still tracked")
	}
	if dq.Attempts != 1 {
		t.Errorf("Attempts = %d, want unchanged 1", dq.Attempts)
	}
}

func TestMasteredIsTerminal(t *testing.T) {
	p := NewProgress()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	RecordWrongAnswer(p, "q1", now)
	RecordWrongAnswer(p, "q1", now)
	RecordCorrectAnswer(p, "q1", now)

	dq := findTracked(p, "q1")
	if !dq.Mastered {
		t.Fatal("expected mastered")
	}

	// Further misses do not reopen the entry.
	RecordWrongAnswer(p, "q1", now.Add(time.Hour))
	if !dq.Mastered || dq.Attempts != 2 || dq.NextReview != nil {
		t.Errorf("mastered entry changed by later miss: %+v", dq)
	}

	// Entries are never deleted.
	if len(p.DifficultQuestions) != 1 {
		t.Errorf("len(DifficultQuestions) = %d, want 1", len(p.DifficultQuestions))
	}
}

func TestRecordCorrectAnswerUntracked(t *testing.T) {
	p := NewProgress()
	RecordCorrectAnswer(p, "never-missed", time.Now())
	if len(p.DifficultQuestions) != 0 {
		t.Error("correct answer on untracked question created an entry")
	}
}

func TestReviewQueue(t *testing.T) {
	p := NewProgress()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// q1: 2 misses, no review scheduled → due (unscheduled counts as due).
	RecordWrongAnswer(p, "q1", now)
	RecordWrongAnswer(p, "q1", now)

	// q2: 3 misses → review scheduled 3 days out, not yet due.
	for i := 0; i < 3; i++ {
		RecordWrongAnswer(p, "q2", now)
	}

	// q3: 4 misses scheduled in the past → due, most-struggled.
	past := now.Add(-10 * 24 * time.Hour)
	for i := 0; i < 4; i++ {
		RecordWrongAnswer(p, "q3", past)
	}

	// q4: mastered → excluded.
	RecordWrongAnswer(p, "q4", now)
	RecordWrongAnswer(p, "q4", now)
	RecordCorrectAnswer(p, "q4", now)

	due := ReviewQueue(p, now, 10)
	if len(due) != 2 {
		t.Fatalf("len(due) = %d, want 2 (q3, q1)", len(due))
	}
	if due[0].QuestionID != "q3" {
		t.Errorf("due[0] = %s, want q3 (most attempts first)", due[0].QuestionID)
	}
	if due[1].QuestionID != "q1" {
		t.Errorf("due[1] = %s, want q1", due[1].QuestionID)
	}

	// Limit truncates.
	due = ReviewQueue(p, now, 1)
	if len(due) != 1 || due[0].QuestionID != "q3" {
		t.Errorf("limited queue = %v, want just q3", due)
	}

	// Once q2's review date passes, it joins the queue.
	due = ReviewQueue(p, now.Add(4*24*time.Hour), 10)
	if len(due) != 3 {
		t.Errorf("len(due) after review date = %d, want 3", len(due))
	}
}
