package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GeneratedQuestion is one parsed question from an LLM response.
type GeneratedQuestion struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Topic       string   `json:"topic"`
	Explanation string   `json:"explanation"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes and validates an LLM response. Questions that fail
// validation fail the whole batch; a partially-wrong batch is cheaper to
// regenerate than to repair.
func ParseResponse(responseBody string) ([]GeneratedQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var batch []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

func validateBatch(batch []GeneratedQuestion) error {
	if len(batch) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	var errs []string
	for i, q := range batch {
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty prompt", i))
		}
		if len(q.Options) != 4 {
			errs = append(errs, fmt.Sprintf("question %d: expected 4 options, got %d", i, len(q.Options)))
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %d: answer_index %d out of range", i, q.AnswerIndex))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
