package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vytor/thaiflash/internal/errors"
)

const requestTimeout = 10 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Post("/games", s.handleStartGame)
		r.Get("/games/{id}", s.handleGetGame)
		r.Delete("/games/{id}", s.handleDiscardGame)
		r.Post("/games/{id}/attempts", s.handleAttempt)
		r.Post("/games/{id}/end", s.handleEndGame)
		r.Get("/games/{id}/result", s.handleGameResult)

		r.Get("/scores", s.handleScores)
		r.Get("/scores/summary", s.handleScoreSummary)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: r.Method + " is not allowed on " + r.URL.Path,
			Status:  http.StatusMethodNotAllowed,
		})
	})
	return r
}
