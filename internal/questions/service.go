package questions

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/lernquiz/backend/internal/generator"
	"github.com/lernquiz/backend/internal/models"
	"github.com/lernquiz/backend/internal/progress"
)

type Service struct {
	store            *Store
	generator        *generator.Generator
	progressService  *progress.Service
	autoGenEnabled   bool
	autoGenMinBucket int
}

func NewService(store *Store, gen *generator.Generator) *Service {
	autoGenEnabled := os.Getenv("AUTO_GEN_ENABLED") == "true"

	// Minimum bank size per subject/difficulty bucket before generation
	// kicks in.
	autoGenMinBucket := 10
	if v := os.Getenv("AUTO_GEN_MIN_BUCKET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			autoGenMinBucket = n
		}
	}

	log.Printf("[questions] autoGen=%v minBucket=%d", autoGenEnabled, autoGenMinBucket)

	return &Service{
		store:            store,
		generator:        gen,
		autoGenEnabled:   autoGenEnabled,
		autoGenMinBucket: autoGenMinBucket,
	}
}

// SetProgressService injects the progress service for skill lookups and the
// review queue. Set once at wiring time.
func (s *Service) SetProgressService(ps *progress.Service) {
	s.progressService = ps
}

// BuildSession assembles a session's question set for a learner: review-due
// struggled questions first, then pool selection driven by the learner's
// difficulty mix and the short-window outcome heuristic.
func (s *Service) BuildSession(userID int64, subject string, recentOutcomes []bool, count int) (*models.SessionQuestionsResponse, error) {
	if count <= 0 {
		count = 10
	}

	shares := s.progressService.SharesForSubject(userID, subject)

	// Review items take priority, but never crowd out fresh material
	// entirely.
	reviewLimit := count / 3
	var reviewQuestions []models.Question
	if reviewLimit > 0 {
		due := s.progressService.GetReviewQueue(userID, reviewLimit)
		ids := make([]string, 0, len(due))
		for _, dq := range due {
			ids = append(ids, dq.QuestionID)
		}
		var err error
		reviewQuestions, err = s.store.GetByIDs(ids)
		if err != nil {
			log.Printf("[questions] review lookup failed for user %d: %v", userID, err)
			reviewQuestions = nil
		}
	}

	pool, err := s.store.ListBySubject(subject)
	if err != nil {
		return nil, fmt.Errorf("build session: %w", err)
	}

	// Exclude review picks from the pool so they are not served twice.
	inReview := make(map[string]bool, len(reviewQuestions))
	for _, q := range reviewQuestions {
		inReview[q.ID] = true
	}
	fresh := make([]models.Question, 0, len(pool))
	for _, q := range pool {
		if !inReview[q.ID] {
			fresh = append(fresh, q)
		}
	}

	remaining := count - len(reviewQuestions)
	selected := Select(fresh, shares, recentOutcomes, remaining)

	questions := append(reviewQuestions, selected...)

	s.maybeGenerate(subject, TargetDifficulty(recentOutcomes))

	return &models.SessionQuestionsResponse{
		Subject:   subject,
		Questions: questions,
		Review:    len(reviewQuestions),
	}, nil
}

// CreateQuestion adds a single question to the bank.
func (s *Service) CreateQuestion(req models.CreateQuestionRequest) (*models.Question, error) {
	if req.Points <= 0 {
		req.Points = 10
	}
	return s.store.CreateQuestion(req)
}

// GenerateQuestions synchronously generates and stores a batch.
func (s *Service) GenerateQuestions(ctx context.Context, req models.GenerateQuestionsRequest) ([]models.Question, error) {
	if req.Count <= 0 {
		req.Count = 5
	}

	generated, err := s.generator.GenerateQuestions(ctx, req.Subject, req.Difficulty, req.Count)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	stored := make([]models.Question, 0, len(generated))
	for _, g := range generated {
		q, err := s.store.CreateQuestion(models.CreateQuestionRequest{
			Subject:     req.Subject,
			Difficulty:  req.Difficulty,
			Topic:       g.Topic,
			Prompt:      g.Prompt,
			Options:     g.Options,
			AnswerIndex: g.AnswerIndex,
			Explanation: g.Explanation,
			Points:      pointsForDifficulty(req.Difficulty),
		})
		if err != nil {
			log.Printf("[questions] store generated question failed: %v", err)
			continue
		}
		stored = append(stored, *q)
	}
	return stored, nil
}

// maybeGenerate tops up a thin subject/difficulty bucket in the background.
func (s *Service) maybeGenerate(subject string, difficulty models.Difficulty) {
	if !s.autoGenEnabled {
		return
	}

	count, err := s.store.CountByDifficulty(subject, difficulty)
	if err != nil || count >= s.autoGenMinBucket {
		return
	}

	log.Printf("[questions] bucket %s/%s low (%d), generating", subject, difficulty, count)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.GenerateQuestions(ctx, models.GenerateQuestionsRequest{
			Subject:    subject,
			Difficulty: difficulty,
			Count:      s.autoGenMinBucket - count,
		}); err != nil {
			log.Printf("[questions] background generation failed: %v", err)
		}
	}()
}

func pointsForDifficulty(d models.Difficulty) int {
	switch d {
	case models.DifficultySchwer:
		return 20
	case models.DifficultyMittel:
		return 15
	default:
		return 10
	}
}
