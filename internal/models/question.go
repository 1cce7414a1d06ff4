package models

import "time"

type Difficulty string

const (
	DifficultyLeicht Difficulty = "leicht"
	DifficultyMittel Difficulty = "mittel"
	DifficultySchwer Difficulty = "schwer"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyLeicht: true,
	DifficultyMittel: true,
	DifficultySchwer: true,
}

// Question is one entry in the question bank.
type Question struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Difficulty  Difficulty `json:"difficulty"`
	Topic       string     `json:"topic,omitempty"`
	Prompt      string     `json:"prompt"`
	Options     []string   `json:"options"`
	AnswerIndex int        `json:"answer_index"`
	Explanation string     `json:"explanation,omitempty"`
	Points      int        `json:"points"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ── Request/Response Types ──────────────────────────────

type CreateQuestionRequest struct {
	Subject     string     `json:"subject"`
	Difficulty  Difficulty `json:"difficulty"`
	Topic       string     `json:"topic,omitempty"`
	Prompt      string     `json:"prompt"`
	Options     []string   `json:"options"`
	AnswerIndex int        `json:"answer_index"`
	Explanation string     `json:"explanation,omitempty"`
	Points      int        `json:"points"`
}

type GenerateQuestionsRequest struct {
	Subject    string     `json:"subject"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
}

type SessionQuestionsResponse struct {
	Subject   string     `json:"subject"`
	Questions []Question `json:"questions"`
	Review    int        `json:"review_count"`
}
