package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/thaiflash/internal/game"
	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/repository"
)

type sessionRepository struct {
	mu          sync.RWMutex
	sessions    map[string]*repository.Session
	maxSessions int
	now         func() time.Time
}

// NewSessionRepository creates an in-memory SessionRepository holding at
// most maxSessions running games. When the registry is full, sessions whose
// game is no longer running make room for new ones. A non-positive limit
// means unbounded.
func NewSessionRepository(maxSessions int) repository.SessionRepository {
	return newSessionRepository(maxSessions, time.Now)
}

func newSessionRepository(maxSessions int, now func() time.Time) *sessionRepository {
	return &sessionRepository{
		sessions:    make(map[string]*repository.Session),
		maxSessions: maxSessions,
		now:         now,
	}
}

func (r *sessionRepository) Create(ctx context.Context, engine *game.Engine) (*repository.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		if n := r.evictInactiveLocked(); n > 0 {
			log.Debug("evicted %d inactive sessions", n)
		}
		if len(r.sessions) >= r.maxSessions {
			log.Warn("session limit reached: %d", r.maxSessions)
			return nil, repository.ErrSessionLimit
		}
	}

	now := r.now()
	s := &repository.Session{
		ID:        uuid.NewString(),
		Engine:    engine,
		StartedAt: now,
		UpdatedAt: now,
	}
	r.sessions[s.ID] = s
	log.Debug("session created: id=%s, total=%d", s.ID, len(r.sessions))
	return s, nil
}

// evictInactiveLocked drops sessions whose game is not running. Sessions
// locked by a caller are in use and stay. r.mu must be held.
func (r *sessionRepository) evictInactiveLocked() int {
	evicted := 0
	for id, s := range r.sessions {
		if !s.TryLock() {
			continue
		}
		if s.Engine == nil || !s.Engine.IsRunning() {
			delete(r.sessions, id)
			evicted++
		}
		s.Unlock()
	}
	return evicted
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*repository.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		logger.FromContext(ctx).WithPrefix("session_repo").Debug("session not found: id=%s", id)
		return nil, repository.ErrNotFound
	}
	s.UpdatedAt = r.now()
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	logger.FromContext(ctx).WithPrefix("session_repo").Debug("session deleted: id=%s", id)
	return nil
}

func (r *sessionRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *sessionRepository) RemoveIdle(ctx context.Context, cutoff time.Time) ([]*repository.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []*repository.Session
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(cutoff) {
			removed = append(removed, s)
			delete(r.sessions, id)
		}
	}
	if len(removed) > 0 {
		log.Info("removed %d idle sessions, %d remain", len(removed), len(r.sessions))
	}
	return removed, nil
}
