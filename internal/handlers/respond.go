// Package handlers exposes the application over a chi-routed JSON API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/greenside/greenside/internal/auth"
	"github.com/greenside/greenside/internal/round"
	"github.com/greenside/greenside/internal/service"
	"github.com/greenside/greenside/internal/storage"
)

type errorBody struct {
	Error string `json:"error"`
	// HolesRemaining is set on incomplete-round refusals so the client
	// can tell the user exactly how much of the round is left.
	HolesRemaining int `json:"holes_remaining,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError maps service and domain errors onto HTTP statuses. Any
// failure leaves the user's entered data untouched server-side; the body
// always carries a human-readable reason.
func respondError(w http.ResponseWriter, err error) {
	var incomplete *round.IncompleteRoundError
	switch {
	case errors.As(err, &incomplete):
		respondJSON(w, http.StatusConflict, errorBody{
			Error:          incomplete.Error(),
			HolesRemaining: incomplete.Remaining,
		})
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, service.ErrNoLiveRound),
		errors.Is(err, round.ErrNoCourseSelected):
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCourse),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, round.ErrInvalidHole),
		errors.Is(err, round.ErrInvalidStrokes),
		errors.Is(err, round.ErrInvalidDate),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrEmailExists):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	default:
		slog.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}

// decodeBodyOptional tolerates an empty body for endpoints where every
// field has a default. A present but malformed body is still a 400.
func decodeBodyOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
	return false
}
