package worker

import (
	"context"

	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository"
)

// ArchiveResultJob stores the summary of a finished game.
type ArchiveResultJob struct {
	Results repository.ResultRepository
	Result  models.GameResult
}

func (j *ArchiveResultJob) Name() string { return "archive_result" }

func (j *ArchiveResultJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"session_id": j.Result.SessionID,
		"reason":     j.Result.FinishReason,
	})

	id, err := j.Results.Insert(ctx, j.Result)
	if err != nil {
		log.Error("failed to archive result: %v", err)
		return err
	}
	log.Info("archived result id=%d: %d/%d correct, %d points", id, j.Result.Correct, j.Result.Attempts, j.Result.Points)
	return nil
}
