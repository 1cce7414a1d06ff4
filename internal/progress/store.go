package progress

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lernquiz/backend/internal/models"
)

// ErrVersionConflict means the document changed between load and save.
// Callers retry the whole load-apply-save cycle.
var ErrVersionConflict = errors.New("progress document version conflict")

// ErrNotFound means no document exists for the learner yet.
var ErrNotFound = errors.New("progress document not found")

// Store persists one progress document per learner, with a version column
// for conditional writes.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the learner's document and the version the caller must pass
// back to Save.
func (s *Store) Load(userID int64) (*models.Progress, int, error) {
	var raw []byte
	var version int
	err := s.db.QueryRow(
		`SELECT doc, version FROM learner_progress WHERE user_id = $1`,
		userID,
	).Scan(&raw, &version)
	if err == sql.ErrNoRows {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load progress: %w", err)
	}

	var p models.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, 0, fmt.Errorf("decode progress: %w", err)
	}
	return &p, version, nil
}

// Save writes the document conditionally on the version read at load time.
// expectedVersion 0 means "no document existed"; the insert then fails with
// ErrVersionConflict if another writer created one in the meantime.
func (s *Store) Save(userID int64, p *models.Progress, expectedVersion int) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	var res sql.Result
	if expectedVersion == 0 {
		res, err = s.db.Exec(
			`INSERT INTO learner_progress (user_id, doc, version)
			 VALUES ($1, $2, 1)
			 ON CONFLICT (user_id) DO NOTHING`,
			userID, raw,
		)
	} else {
		res, err = s.db.Exec(
			`UPDATE learner_progress
			 SET doc = $2, version = version + 1, updated_at = NOW()
			 WHERE user_id = $1 AND version = $3`,
			userID, raw, expectedVersion,
		)
	}
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if rows == 0 {
		return ErrVersionConflict
	}
	return nil
}
