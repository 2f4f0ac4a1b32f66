package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/thaiflash/internal/errors"
	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/services"
)

type attemptRequest struct {
	Symbol string `json:"symbol" validate:"max=16"`
	Text   string `json:"text" validate:"max=50,nohtml"`
}

// handleStartGame accepts settings either as a JSON body or as query
// parameters, so a configuration can be shared as a link.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var (
		settings models.GameSettings
		err      error
	)
	if r.ContentLength != 0 && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req settingsRequest
		if err = decodeJSON(w, r, &req); err == nil {
			settings, err = req.settings()
		}
	} else {
		settings, err = ParseSettingsQuery(r.URL.Query())
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.GameService.Start(r.Context(), settings)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("game started: id=%s", view.ID)
	w.Header().Set("Location", "/api/games/"+view.ID)
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	view, err := s.GameService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// handleAttempt takes either a chosen option symbol or typed text, never both.
func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log := logger.FromContext(r.Context()).WithField("game_id", id)

	var req attemptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Symbol = strings.TrimSpace(req.Symbol)
	req.Text = strings.TrimSpace(req.Text)

	switch {
	case req.Symbol == "" && req.Text == "":
		handleError(w, r, errors.NewValidationError("symbol", "either symbol or text is required"))
		return
	case req.Symbol != "" && req.Text != "":
		handleError(w, r, errors.NewValidationError("text", "cannot be combined with symbol"))
		return
	}

	var (
		view *services.SessionView
		err  error
	)
	if req.Symbol != "" {
		view, err = s.GameService.Attempt(r.Context(), id, req.Symbol)
	} else {
		view, err = s.GameService.AttemptText(r.Context(), id, req.Text)
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	if view.LastAttempt != nil {
		log.Debug("attempt recorded: correct=%t, points=%d", view.LastAttempt.WasCorrect, view.TotalPoints)
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	view, err := s.GameService.End(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleDiscardGame(w http.ResponseWriter, r *http.Request) {
	if err := s.GameService.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
