package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var resultColumns = []string{
	"id", "session_id", "content_kind", "ordering_mode", "difficulty", "answer_mode",
	"option_count", "allowed_types", "attempts", "correct", "points", "finish_reason",
	"started_at", "finished_at", "created_at",
}

type resultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new ResultRepository implementation
func NewResultRepository(db *sql.DB) repository.ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Insert(ctx context.Context, result models.GameResult) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("inserting result: session=%s, points=%d, reason=%s", result.SessionID, result.Points, result.FinishReason)

	query, args, err := sqlBuilder.Insert("game_results").
		Columns(
			"session_id", "content_kind", "ordering_mode", "difficulty", "answer_mode",
			"option_count", "allowed_types", "attempts", "correct", "points", "finish_reason",
			"started_at", "finished_at",
		).
		Values(
			result.SessionID, result.ContentKind, result.OrderingMode, result.Difficulty, result.AnswerMode,
			result.OptionCount, joinTypes(result.AllowedTypes), result.Attempts, result.Correct, result.Points,
			result.FinishReason, result.StartedAt.UTC(), result.FinishedAt.UTC(),
		).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var id int64
	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		log.Error("failed to insert result: %v", err)
		return 0, err
	}
	log.Debug("result inserted: id=%d", id)
	return id, nil
}

func (r *resultRepository) GetBySession(ctx context.Context, sessionID string) (*models.GameResult, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")

	query, args, err := sqlBuilder.Select(resultColumns...).
		From("game_results").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	res, err := scanResult(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("result not found: session=%s", sessionID)
			return nil, repository.ErrNotFound
		}
		log.Error("failed to get result: %v", err)
		return nil, err
	}
	return res, nil
}

func (r *resultRepository) List(ctx context.Context, filter models.ResultFilter) ([]models.GameResult, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("listing results: mode=%s, level=%s, input=%s, reason=%s",
		filter.OrderingMode, filter.Difficulty, filter.AnswerMode, filter.FinishReason)

	query := applyFilter(sqlBuilder.Select(resultColumns...).From("game_results"), filter).
		OrderBy("points DESC", "finished_at DESC", "id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list results: %v", err)
		return nil, err
	}
	defer rows.Close()

	results := []models.GameResult{}
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			log.Error("failed to scan result row: %v", err)
			return nil, err
		}
		results = append(results, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("listed %d results", len(results))
	return results, nil
}

func (r *resultRepository) Count(ctx context.Context, filter models.ResultFilter) (int, error) {
	query, args, err := applyFilter(sqlBuilder.Select("COUNT(*)").From("game_results"), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).WithPrefix("result_repo").Error("failed to count results: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *resultRepository) Summary(ctx context.Context, filter models.ResultFilter) (*models.ScoreSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")

	query, args, err := applyFilter(sqlBuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(attempts), 0)",
		"COALESCE(SUM(correct), 0)",
		"COALESCE(SUM(points), 0)",
		"COALESCE(MAX(points), 0)",
		"COALESCE(AVG(points), 0)",
	).From("game_results"), filter).ToSql()
	if err != nil {
		return nil, err
	}

	var s models.ScoreSummary
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.Games, &s.Attempts, &s.Correct, &s.TotalPoints, &s.BestPoints, &s.AveragePoints,
	)
	if err != nil {
		log.Error("failed to summarize results: %v", err)
		return nil, err
	}
	if s.Attempts > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Attempts)
	}
	return &s, nil
}

func applyFilter(q squirrel.SelectBuilder, filter models.ResultFilter) squirrel.SelectBuilder {
	if filter.OrderingMode != "" {
		q = q.Where(squirrel.Eq{"ordering_mode": filter.OrderingMode})
	}
	if filter.Difficulty != "" {
		q = q.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.AnswerMode != "" {
		q = q.Where(squirrel.Eq{"answer_mode": filter.AnswerMode})
	}
	if filter.FinishReason != "" {
		q = q.Where(squirrel.Eq{"finish_reason": filter.FinishReason})
	}
	if filter.Since != nil {
		q = q.Where(squirrel.GtOrEq{"finished_at": filter.Since.UTC()})
	}
	return q
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*models.GameResult, error) {
	var (
		res   models.GameResult
		types string
	)
	err := row.Scan(
		&res.ID, &res.SessionID, &res.ContentKind, &res.OrderingMode, &res.Difficulty, &res.AnswerMode,
		&res.OptionCount, &types, &res.Attempts, &res.Correct, &res.Points, &res.FinishReason,
		&res.StartedAt, &res.FinishedAt, &res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.AllowedTypes = splitTypes(types)
	return &res, nil
}

func joinTypes(types []models.AlphabetType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitTypes(s string) []models.AlphabetType {
	if s == "" {
		return []models.AlphabetType{}
	}
	parts := strings.Split(s, ",")
	out := make([]models.AlphabetType, len(parts))
	for i, p := range parts {
		out[i] = models.AlphabetType(p)
	}
	return out
}
