package progress

import (
	"encoding/json"
	"net/http"
	"strconv"

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

// ── Progress ────────────────────────────────────────────

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.GetProgress(userID))
}

func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidSubjects[req.Subject] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}
	if len(req.Results) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "results is required"})
		return
	}

	summary, err := h.service.CompleteSession(userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save session"})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ── Daily Challenge ─────────────────────────────────────

func (h *Handler) GetDailyChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.GetDailyChallenge(userID))
}

// ── Review Queue ────────────────────────────────────────

func (h *Handler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	writeJSON(w, http.StatusOK, h.service.GetReviewQueue(userID, limit))
}

// ── Badge Catalog ───────────────────────────────────────

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BadgeCatalog)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
