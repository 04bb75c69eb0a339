package handlers

import (
	"log/slog"
	"net/http"

	"github.com/greenside/greenside/internal/middleware"
	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/service"
)

// RoundHandler serves the live scorecard.
type RoundHandler struct {
	svc *service.RoundService
}

// NewRoundHandler creates a new RoundHandler.
func NewRoundHandler(svc *service.RoundService) *RoundHandler {
	return &RoundHandler{svc: svc}
}

// ListResumable handles GET /rounds: persisted in-progress rounds the
// user can pick back up.
func (h *RoundHandler) ListResumable(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.svc.ListResumable(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if rounds == nil {
		rounds = []models.ActiveRound{}
	}
	respondJSON(w, http.StatusOK, rounds)
}

// Start handles POST /rounds.
func (h *RoundHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourseID string `json:"course_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.svc.Start(r.Context(), middleware.GetUserID(r.Context()), req.CourseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// Resume handles POST /rounds/resume.
func (h *RoundHandler) Resume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoundID string `json:"round_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.svc.Resume(r.Context(), middleware.GetUserID(r.Context()), req.RoundID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Current handles GET /rounds/current.
func (h *RoundHandler) Current(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Current(middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// EnterStroke handles POST /rounds/current/strokes. A null strokes value
// clears the hole.
func (h *RoundHandler) EnterStroke(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hole    int  `json:"hole"`
		Strokes *int `json:"strokes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.svc.EnterStroke(middleware.GetUserID(r.Context()), req.Hole, req.Strokes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Pause handles POST /rounds/current/pause. The persisted round stays
// resumable.
func (h *RoundHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Pause(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type completeResponse struct {
	*models.Score
	// CleanupFailed is set when the score was saved but the persisted
	// live round could not be removed, so it will still show up in the
	// resumable list until the next cleanup.
	CleanupFailed bool `json:"cleanup_failed,omitempty"`
}

// Complete handles POST /rounds/current/complete.
func (h *RoundHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	// Body is optional; date defaults to today.
	if !decodeBodyOptional(w, r, &req) {
		return
	}

	score, err := h.svc.Complete(r.Context(), middleware.GetUserID(r.Context()), req.Date)
	if err != nil {
		if score == nil {
			respondError(w, err)
			return
		}
		slog.Warn("Round completed with cleanup failure",
			"user_id", middleware.GetUserID(r.Context()),
			"error", err,
		)
		respondJSON(w, http.StatusCreated, completeResponse{Score: score, CleanupFailed: true})
		return
	}
	respondJSON(w, http.StatusCreated, completeResponse{Score: score})
}

// Discard handles DELETE /rounds/current.
func (h *RoundHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Discard(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
