package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vytor/thaiflash/internal/models"
)

// MockResultQueue is a mock implementation of jobs.ResultQueue
type MockResultQueue struct {
	mock.Mock
}

func (m *MockResultQueue) EnqueueResult(ctx context.Context, result models.GameResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
