package questions

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lernquiz/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// GetSessionQuestions serves the question set for a learner's next session.
// Recent outcomes arrive as a comma-separated 0/1 list, newest last.
func (h *Handler) GetSessionQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	subject := mux.Vars(r)["subject"]
	if !models.ValidSubjects[subject] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}

	count := 10
	if v := r.URL.Query().Get("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			count = n
		}
	}

	var recentOutcomes []bool
	if v := r.URL.Query().Get("recent"); v != "" {
		for _, part := range strings.Split(v, ",") {
			recentOutcomes = append(recentOutcomes, part == "1")
		}
	}

	resp, err := h.service.BuildSession(userID, subject, recentOutcomes, count)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build session"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidSubjects[req.Subject] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'leicht', 'mittel', or 'schwer'"})
		return
	}
	if req.Prompt == "" || len(req.Options) < 2 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "prompt and at least two options are required"})
		return
	}
	if req.AnswerIndex < 0 || req.AnswerIndex >= len(req.Options) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "answer_index out of range"})
		return
	}

	q, err := h.service.CreateQuestion(req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create question"})
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidSubjects[req.Subject] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'leicht', 'mittel', or 'schwer'"})
		return
	}

	stored, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate questions"})
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
