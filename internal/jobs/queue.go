package jobs

import (
	"context"

	"github.com/vytor/thaiflash/internal/models"
)

// ResultQueue provides an abstraction for archiving finished games in the background
type ResultQueue interface {
	EnqueueResult(ctx context.Context, result models.GameResult) error
}
