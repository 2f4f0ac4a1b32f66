package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/thaiflash/internal/errors"
	"github.com/vytor/thaiflash/internal/models"
)

const sinceLayout = "2006-01-02"

type scoreQuery struct {
	Mode      string `json:"mode" validate:"omitempty,oneof=sequence random"`
	Level     string `json:"level" validate:"omitempty,oneof=easy medium hard"`
	InputMode string `json:"input-mode" validate:"omitempty,oneof=options input"`
	Reason    string `json:"reason" validate:"omitempty,oneof=completed session_limit points_exhausted no_playable_items abandoned"`
	Since     string `json:"since" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `json:"limit" validate:"min=0,max=200"`
	Offset    int    `json:"offset" validate:"min=0"`
}

// parseScoreFilter turns leaderboard query parameters into a filter.
func parseScoreFilter(values url.Values) (models.ResultFilter, error) {
	q := scoreQuery{
		Mode:      values.Get("mode"),
		Level:     values.Get("level"),
		InputMode: values.Get("input-mode"),
		Reason:    values.Get("reason"),
		Since:     values.Get("since"),
	}
	for key, dst := range map[string]*int{"limit": &q.Limit, "offset": &q.Offset} {
		raw := values.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.ResultFilter{}, errors.NewValidationError(key, "must be a whole number")
		}
		*dst = n
	}
	if err := validateStruct(q); err != nil {
		return models.ResultFilter{}, err
	}

	filter := models.ResultFilter{
		OrderingMode: models.OrderingMode(q.Mode),
		Difficulty:   models.Difficulty(q.Level),
		AnswerMode:   models.AnswerMode(q.InputMode),
		FinishReason: q.Reason,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
	if q.Since != "" {
		since, _ := time.Parse(sinceLayout, q.Since)
		filter.Since = &since
	}
	return filter, nil
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	filter, err := parseScoreFilter(r.URL.Query())
	if err != nil {
		handleError(w, r, err)
		return
	}

	board, err := s.ScoreService.Leaderboard(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, board)
}

func (s *Server) handleScoreSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseScoreFilter(r.URL.Query())
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.ScoreService.Summary(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

// handleGameResult returns the archived summary of a finished game.
func (s *Server) handleGameResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.ScoreService.ForSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
