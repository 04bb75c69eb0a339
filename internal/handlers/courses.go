package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenside/greenside/internal/middleware"
	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/service"
)

// CourseHandler serves course management.
type CourseHandler struct {
	svc *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

type courseRequest struct {
	Name         string   `json:"name"`
	Holes        int      `json:"holes"`
	Par          int      `json:"par"`
	CourseRating *float64 `json:"course_rating"`
	SlopeRating  *int     `json:"slope_rating"`
}

// List handles GET /courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	respondJSON(w, http.StatusOK, courses)
}

// Create handles POST /courses.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	course := &models.Course{
		Name:         req.Name,
		Holes:        req.Holes,
		Par:          req.Par,
		CourseRating: req.CourseRating,
		SlopeRating:  req.SlopeRating,
	}
	if err := h.svc.Create(r.Context(), middleware.GetUserID(r.Context()), course); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, course)
}

// Update handles PUT /courses/{courseID}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	course := &models.Course{
		ID:           chi.URLParam(r, "courseID"),
		Name:         req.Name,
		Holes:        req.Holes,
		Par:          req.Par,
		CourseRating: req.CourseRating,
		SlopeRating:  req.SlopeRating,
	}
	if err := h.svc.Update(r.Context(), middleware.GetUserID(r.Context()), course); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

// Delete handles DELETE /courses/{courseID}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "courseID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
