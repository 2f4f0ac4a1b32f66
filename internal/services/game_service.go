package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vytor/thaiflash/internal/alphabet"
	"github.com/vytor/thaiflash/internal/errors"
	"github.com/vytor/thaiflash/internal/game"
	"github.com/vytor/thaiflash/internal/jobs"
	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository"
)

// SessionView is what callers see of a live game.
type SessionView struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	game.State
	Summary game.Summary `json:"summary"`
	// NoPlayableItems distinguishes a game that could not start from one
	// that was played to the end.
	NoPlayableItems bool               `json:"no_playable_items"`
	LastAttempt     *models.StepRecord `json:"last_attempt,omitempty"`
}

// GameService handles the lifecycle of in-memory game sessions
type GameService interface {
	Start(ctx context.Context, settings models.GameSettings) (*SessionView, error)
	Get(ctx context.Context, id string) (*SessionView, error)
	Attempt(ctx context.Context, id string, symbol string) (*SessionView, error)
	AttemptText(ctx context.Context, id string, text string) (*SessionView, error)
	End(ctx context.Context, id string) (*SessionView, error)
	// Discard ends the game if needed and forgets the session.
	Discard(ctx context.Context, id string) error
	// Sweep drops sessions idle for longer than idle and returns how many went.
	Sweep(ctx context.Context, idle time.Duration) (int, error)
}

type gameService struct {
	catalog   []models.AlphabetItem
	sessions  repository.SessionRepository
	queue     jobs.ResultQueue
	newSource func() game.RandomSource
	now       func() time.Time
}

// NewGameService creates a new GameService. queue may be nil when the
// archive is disabled; newSource may be nil to use the default source.
func NewGameService(catalog []models.AlphabetItem, sessions repository.SessionRepository, queue jobs.ResultQueue, newSource func() game.RandomSource) GameService {
	if newSource == nil {
		newSource = game.NewRandomSource
	}
	return &gameService{
		catalog:   catalog,
		sessions:  sessions,
		queue:     queue,
		newSource: newSource,
		now:       time.Now,
	}
}

func (s *gameService) Start(ctx context.Context, settings models.GameSettings) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting game: mode=%s, level=%s, options=%d, types=%v",
		settings.OrderingMode, settings.Difficulty, settings.OptionCount, settings.AllowedTypes)

	if err := game.ValidateSettings(settings); err != nil {
		return nil, settingsError(err)
	}

	engine := game.NewEngine(s.catalog, game.WithRandomSource(s.newSource()))
	engine.StartGame(settings)

	session, err := s.sessions.Create(ctx, engine)
	if err != nil {
		if stderrors.Is(err, repository.ErrSessionLimit) {
			return nil, errors.NewConflictError("too many active games, try again later")
		}
		log.Error("failed to create session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	session.Lock()
	defer session.Unlock()

	if engine.IsFinished() {
		log.Info("game %s finished at start: %s", session.ID, engine.FinishReason())
	} else {
		log.Info("game started: id=%s, playable=%d, active=%d", session.ID, len(engine.CatalogSubset()), s.sessions.Count(ctx))
	}
	return viewOf(session), nil
}

func (s *gameService) Get(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	return viewOf(session), nil
}

func (s *gameService) Attempt(ctx context.Context, id string, symbol string) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("attempt: id=%s, symbol=%q", id, symbol)

	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, errors.NewValidationError("symbol", "is required")
	}
	candidate, ok := alphabet.Find(s.catalog, symbol)
	if !ok {
		return nil, errors.NewValidationError("symbol", "is not a known alphabet symbol")
	}

	return s.play(ctx, id, func(e *game.Engine) { e.AttemptAnswer(candidate) })
}

func (s *gameService) AttemptText(ctx context.Context, id string, text string) (*SessionView, error) {
	logger.FromContext(ctx).Debug("text attempt: id=%s, text=%q", id, text)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.NewValidationError("text", "is required")
	}
	return s.play(ctx, id, func(e *game.Engine) { e.AttemptText(text) })
}

func (s *gameService) play(ctx context.Context, id string, attempt func(*game.Engine)) (*SessionView, error) {
	log := logger.FromContext(ctx)

	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	if !session.Engine.IsRunning() {
		return nil, errors.NewConflictError("game is not running")
	}
	attempt(session.Engine)

	if session.Engine.IsFinished() {
		summary := session.Engine.Summary()
		log.Info("game finished: id=%s, reason=%s, points=%d, correct=%d/%d",
			id, summary.FinishReason, summary.Points, summary.Correct, summary.Attempts)
		s.archive(ctx, session)
	}
	return viewOf(session), nil
}

func (s *gameService) End(ctx context.Context, id string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	wasRunning := session.Engine.IsRunning()
	session.Engine.EndGame()
	if wasRunning {
		log.Info("game ended by player: id=%s, attempts=%d", id, len(session.Engine.History()))
		s.archive(ctx, session)
	}
	return viewOf(session), nil
}

func (s *gameService) Discard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	session, err := s.session(ctx, id)
	if err != nil {
		return err
	}
	session.Lock()
	if session.Engine.IsRunning() {
		session.Engine.EndGame()
		s.archive(ctx, session)
	}
	session.Unlock()

	if err := s.sessions.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("game", id)
		}
		log.Error("failed to delete session %s: %v", id, err)
		return errors.NewInternalError(err)
	}
	log.Info("game discarded: id=%s", id)
	return nil
}

func (s *gameService) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	log := logger.FromContext(ctx)

	removed, err := s.sessions.RemoveIdle(ctx, s.now().Add(-idle))
	if err != nil {
		log.Error("failed to sweep sessions: %v", err)
		return 0, errors.NewInternalError(err)
	}
	for _, session := range removed {
		session.Lock()
		if session.Engine.IsRunning() {
			session.Engine.EndGame()
			s.archive(ctx, session)
		}
		session.Unlock()
	}
	if len(removed) > 0 {
		log.Info("swept %d idle games", len(removed))
	}
	return len(removed), nil
}

func (s *gameService) session(ctx context.Context, id string) (*repository.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("game", id)
		}
		logger.FromContext(ctx).Error("failed to load session %s: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	return session, nil
}

// archive hands a finished or abandoned game to the result queue once.
// Games nobody answered are not worth keeping. The caller holds the lock.
func (s *gameService) archive(ctx context.Context, session *repository.Session) {
	log := logger.FromContext(ctx)
	if s.queue == nil || session.Archived {
		return
	}
	summary := session.Engine.Summary()
	if summary.Attempts == 0 {
		return
	}

	settings := session.Engine.Settings()
	result := models.GameResult{
		SessionID:    session.ID,
		ContentKind:  settings.ContentKind,
		OrderingMode: settings.OrderingMode,
		Difficulty:   settings.Difficulty,
		AnswerMode:   settings.AnswerMode,
		OptionCount:  settings.OptionCount,
		AllowedTypes: settings.AllowedTypes,
		Attempts:     summary.Attempts,
		Correct:      summary.Correct,
		Points:       summary.Points,
		FinishReason: string(summary.FinishReason),
		StartedAt:    session.StartedAt,
		FinishedAt:   s.now(),
	}
	if err := s.queue.EnqueueResult(ctx, result); err != nil {
		log.Warn("failed to enqueue result for %s: %v", session.ID, err)
		return
	}
	session.Archived = true
}

func viewOf(session *repository.Session) *SessionView {
	state := session.Engine.Snapshot()
	view := &SessionView{
		ID:              session.ID,
		StartedAt:       session.StartedAt,
		State:           state,
		Summary:         session.Engine.Summary(),
		NoPlayableItems: state.IsFinished && len(state.History) == 0,
	}
	if n := len(state.History); n > 0 {
		last := state.History[n-1]
		view.LastAttempt = &last
	}
	return view
}

// settingsError converts joined game.FieldErrors into a validation AppError.
func settingsError(err error) *errors.AppError {
	fields := map[string]string{}
	for _, fe := range game.FieldErrors(err) {
		if prev, ok := fields[fe.Field]; ok {
			fields[fe.Field] = prev + "; " + fe.Reason
			continue
		}
		fields[fe.Field] = fe.Reason
	}
	return errors.NewFieldsValidationError(fields, err)
}
