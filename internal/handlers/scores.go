package handlers

import (
	"net/http"
	"strconv"

	"github.com/greenside/greenside/internal/middleware"
	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/service"
)

// ScoreHandler serves manual score entry and the dashboard queries.
type ScoreHandler struct {
	svc *service.ScoreService
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(svc *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{svc: svc}
}

type scoreRequest struct {
	CourseID string `json:"course_id"`
	Total    int    `json:"total"`
	Date     string `json:"date"`
}

// List handles GET /scores?limit=N.
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a number"})
			return
		}
		limit = parsed
	}

	scores, err := h.svc.List(r.Context(), middleware.GetUserID(r.Context()), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if scores == nil {
		scores = []models.ScoreWithCourse{}
	}
	respondJSON(w, http.StatusOK, scores)
}

// Create handles POST /scores.
func (h *ScoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	score, err := h.svc.Record(r.Context(), middleware.GetUserID(r.Context()), req.CourseID, req.Total, req.Date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, score)
}

// Preview handles POST /scores/preview: the computed handicap for a
// hypothetical score, nothing persisted.
func (h *ScoreHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.Preview(r.Context(), middleware.GetUserID(r.Context()), req.CourseID, req.Total)
	if err != nil {
		respondError(w, err)
		return
	}

	method := "simple"
	if result.ScoreDifferential != nil {
		method = "whs"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"score_differential": result.ScoreDifferential,
		"simple_handicap":    result.SimpleHandicap,
		"method":             method,
	})
}

// Stats handles GET /scores/stats.
func (h *ScoreHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
