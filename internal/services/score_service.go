package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/thaiflash/internal/errors"
	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository"
)

// Leaderboard is one page of archived results.
type Leaderboard struct {
	Results []models.GameResult `json:"results"`
	Total   int                 `json:"total"`
}

// ScoreService answers questions about archived games
type ScoreService interface {
	Leaderboard(ctx context.Context, filter models.ResultFilter) (*Leaderboard, error)
	Summary(ctx context.Context, filter models.ResultFilter) (*models.ScoreSummary, error)
	ForSession(ctx context.Context, sessionID string) (*models.GameResult, error)
}

type scoreService struct {
	results repository.ResultRepository
}

// NewScoreService creates a new ScoreService. A nil repository behaves
// like an empty archive.
func NewScoreService(results repository.ResultRepository) ScoreService {
	return &scoreService{results: results}
}

func (s *scoreService) Leaderboard(ctx context.Context, filter models.ResultFilter) (*Leaderboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("leaderboard: mode=%s, level=%s, limit=%d, offset=%d", filter.OrderingMode, filter.Difficulty, filter.Limit, filter.Offset)

	if s.results == nil {
		return &Leaderboard{Results: []models.GameResult{}}, nil
	}

	results, err := s.results.List(ctx, filter)
	if err != nil {
		log.Error("failed to list results: %v", err)
		return nil, errors.NewInternalError(err)
	}
	total, err := s.results.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count results: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &Leaderboard{Results: results, Total: total}, nil
}

func (s *scoreService) Summary(ctx context.Context, filter models.ResultFilter) (*models.ScoreSummary, error) {
	log := logger.FromContext(ctx)

	if s.results == nil {
		return &models.ScoreSummary{}, nil
	}
	summary, err := s.results.Summary(ctx, filter)
	if err != nil {
		log.Error("failed to summarize results: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return summary, nil
}

func (s *scoreService) ForSession(ctx context.Context, sessionID string) (*models.GameResult, error) {
	if s.results == nil {
		return nil, errors.NewNotFoundError("result", sessionID)
	}
	result, err := s.results.GetBySession(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("result", sessionID)
		}
		logger.FromContext(ctx).Error("failed to get result: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return result, nil
}
