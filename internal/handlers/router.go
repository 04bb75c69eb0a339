package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenside/greenside/internal/auth"
	"github.com/greenside/greenside/internal/middleware"
	"github.com/greenside/greenside/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth    *service.AuthService
	Courses *service.CourseService
	Scores  *service.ScoreService
	Rounds  *service.RoundService
	JWT     *auth.JWTManager
}

// NewRouter wires all API routes. Everything under /api/v1 except the
// auth endpoints requires a valid bearer token.
func NewRouter(svcs Services) http.Handler {
	authHandler := NewAuthHandler(svcs.Auth)
	courseHandler := NewCourseHandler(svcs.Courses)
	scoreHandler := NewScoreHandler(svcs.Scores)
	roundHandler := NewRoundHandler(svcs.Rounds)

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(svcs.JWT))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", courseHandler.List)
				r.Post("/", courseHandler.Create)
				r.Put("/{courseID}", courseHandler.Update)
				r.Delete("/{courseID}", courseHandler.Delete)
			})

			r.Route("/scores", func(r chi.Router) {
				r.Get("/", scoreHandler.List)
				r.Post("/", scoreHandler.Create)
				r.Post("/preview", scoreHandler.Preview)
				r.Get("/stats", scoreHandler.Stats)
			})

			r.Route("/rounds", func(r chi.Router) {
				r.Get("/", roundHandler.ListResumable)
				r.Post("/", roundHandler.Start)
				r.Post("/resume", roundHandler.Resume)
				r.Get("/current", roundHandler.Current)
				r.Post("/current/strokes", roundHandler.EnterStroke)
				r.Post("/current/pause", roundHandler.Pause)
				r.Post("/current/complete", roundHandler.Complete)
				r.Delete("/current", roundHandler.Discard)
			})
		})
	})

	return r
}
