package generator

import (
	"errors"
	"strings"
	"testing"
)

const validBatch = `[
	{"prompt": "Was ist 7 + 5?", "options": ["10", "11", "12", "13"], "answer_index": 2, "topic": "addition", "explanation": "7 + 5 = 12."},
	{"prompt": "Was ist 9 - 4?", "options": ["3", "4", "5", "6"], "answer_index": 2, "topic": "subtraktion", "explanation": "9 - 4 = 5."}
]`

func TestParseResponseValid(t *testing.T) {
	batch, err := ParseResponse(validBatch)
	if err != nil {
		t.Fatalf("ParseResponse returned error: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("len = %d, want 2", len(batch))
	}
	if batch[0].Prompt != "Was ist 7 + 5?" || batch[0].AnswerIndex != 2 {
		t.Errorf("first question parsed wrong: %+v", batch[0])
	}
	if batch[1].Topic != "subtraktion" {
		t.Errorf("Topic = %s, want subtraktion", batch[1].Topic)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validBatch + "\n```"
	batch, err := ParseResponse(fenced)
	if err != nil {
		t.Fatalf("fenced response failed to parse: %v", err)
	}
	if len(batch) != 2 {
		t.Errorf("len = %d, want 2", len(batch))
	}

	bareFence := "```\n" + validBatch + "\n```"
	if _, err := ParseResponse(bareFence); err != nil {
		t.Errorf("bare-fenced response failed to parse: %v", err)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	_, err := ParseResponse("Hier sind deine Fragen: [...]")
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Error("JSON decode failure classified as validation error")
	}
}

func TestParseResponseEmptyBatch(t *testing.T) {
	_, err := ParseResponse("[]")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty batch, got %v", err)
	}
}

func TestParseResponseValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"empty prompt",
			`[{"prompt": "  ", "options": ["a", "b", "c", "d"], "answer_index": 0}]`,
			"empty prompt",
		},
		{
			"wrong option count",
			`[{"prompt": "Frage?", "options": ["a", "b"], "answer_index": 0}]`,
			"expected 4 options",
		},
		{
			"answer index out of range",
			`[{"prompt": "Frage?", "options": ["a", "b", "c", "d"], "answer_index": 4}]`,
			"out of range",
		},
		{
			"negative answer index",
			`[{"prompt": "Frage?", "options": ["a", "b", "c", "d"], "answer_index": -1}]`,
			"out of range",
		},
	}

	for _, tt := range tests {
		_, err := ParseResponse(tt.body)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err.Error(), tt.want)
		}
	}
}

func TestParseResponseOneBadQuestionFailsBatch(t *testing.T) {
	body := `[
		{"prompt": "Gültig?", "options": ["a", "b", "c", "d"], "answer_index": 1},
		{"prompt": "", "options": ["a", "b", "c", "d"], "answer_index": 0}
	]`
	if _, err := ParseResponse(body); err == nil {
		t.Error("batch with one invalid question parsed without error")
	}
}
