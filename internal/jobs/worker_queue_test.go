package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/thaiflash/internal/jobs"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/testutil/mocks"
	"github.com/vytor/thaiflash/internal/worker"
)

func TestWorkerQueue_EnqueueResultArchives(t *testing.T) {
	results := new(mocks.MockResultRepository)
	result := models.GameResult{SessionID: "abc", Attempts: 3, Correct: 2, Points: 6, FinishReason: "completed"}
	results.On("Insert", mock.Anything, result).Return(int64(1), nil).Once()

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	queue := jobs.NewWorkerQueue(pool, results)

	require.NoError(t, queue.EnqueueResult(context.Background(), result))
	pool.Stop()

	results.AssertExpectations(t)
}

func TestWorkerQueue_StoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Stop()
	queue := jobs.NewWorkerQueue(pool, new(mocks.MockResultRepository))

	err := queue.EnqueueResult(context.Background(), models.GameResult{SessionID: "x"})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}
