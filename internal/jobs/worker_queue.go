package jobs

import (
	"context"

	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository"
	"github.com/vytor/thaiflash/internal/worker"
)

// WorkerQueue implements ResultQueue using a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	results repository.ResultRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, results repository.ResultRepository) ResultQueue {
	return &WorkerQueue{pool: pool, results: results}
}

func (q *WorkerQueue) EnqueueResult(ctx context.Context, result models.GameResult) error {
	logger.FromContext(ctx).Debug("enqueueing result for session %s", result.SessionID)
	return q.pool.Submit(&worker.ArchiveResultJob{
		Results: q.results,
		Result:  result,
	})
}
