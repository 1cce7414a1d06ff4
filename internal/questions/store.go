package questions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lernquiz/backend/internal/models"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateQuestion inserts a new bank entry and returns it with its id.
func (s *Store) CreateQuestion(req models.CreateQuestionRequest) (*models.Question, error) {
	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	q := models.Question{
		ID:          uuid.NewString(),
		Subject:     req.Subject,
		Difficulty:  req.Difficulty,
		Topic:       req.Topic,
		Prompt:      req.Prompt,
		Options:     req.Options,
		AnswerIndex: req.AnswerIndex,
		Explanation: req.Explanation,
		Points:      req.Points,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.Exec(
		`INSERT INTO questions (id, subject, difficulty, topic, prompt, options, answer_index, explanation, points, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		q.ID, q.Subject, q.Difficulty, q.Topic, q.Prompt, optionsJSON,
		q.AnswerIndex, q.Explanation, q.Points, q.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &q, nil
}

// ListBySubject returns the subject's pool in stable insertion order, which
// keeps selection deterministic for a given bank state.
func (s *Store) ListBySubject(subject string) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, subject, difficulty, topic, prompt, options, answer_index, explanation, points, created_at
		 FROM questions WHERE subject = $1
		 ORDER BY created_at, id`,
		subject,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// GetByIDs fetches specific questions, returned in the order of ids. Ids
// with no matching row are skipped.
func (s *Store) GetByIDs(ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}

	rows, err := s.db.Query(
		`SELECT id, subject, difficulty, topic, prompt, options, answer_index, explanation, points, created_at
		 FROM questions WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	found, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// CountByDifficulty returns how many bank entries exist for a
// subject/difficulty bucket.
func (s *Store) CountByDifficulty(subject string, difficulty models.Difficulty) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM questions WHERE subject = $1 AND difficulty = $2`,
		subject, difficulty,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var result []models.Question
	for rows.Next() {
		var q models.Question
		var optionsJSON []byte
		if err := rows.Scan(&q.ID, &q.Subject, &q.Difficulty, &q.Topic, &q.Prompt,
			&optionsJSON, &q.AnswerIndex, &q.Explanation, &q.Points, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
		result = append(result, q)
	}
	return result, rows.Err()
}
