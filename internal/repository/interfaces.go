package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/thaiflash/internal/game"
	"github.com/vytor/thaiflash/internal/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrSessionLimit = errors.New("session limit reached")
)

// Session is a live game held in memory. Lock it before touching Engine.
type Session struct {
	sync.Mutex
	ID        string
	Engine    *game.Engine
	StartedAt time.Time
	UpdatedAt time.Time
	// Archived is set once the game has been handed to the result queue.
	Archived bool
}

// SessionRepository handles live game sessions
type SessionRepository interface {
	// Create registers an already started engine. Only running games count
	// against the session limit.
	Create(ctx context.Context, engine *game.Engine) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) int
	// RemoveIdle drops sessions untouched since cutoff and returns them.
	RemoveIdle(ctx context.Context, cutoff time.Time) ([]*Session, error)
}

// ResultRepository handles the finished-game archive
type ResultRepository interface {
	Insert(ctx context.Context, result models.GameResult) (int64, error)
	GetBySession(ctx context.Context, sessionID string) (*models.GameResult, error)
	List(ctx context.Context, filter models.ResultFilter) ([]models.GameResult, error)
	Count(ctx context.Context, filter models.ResultFilter) (int, error)
	Summary(ctx context.Context, filter models.ResultFilter) (*models.ScoreSummary, error)
}
