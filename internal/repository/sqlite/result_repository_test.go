package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository"
	"github.com/vytor/thaiflash/internal/repository/sqlite"
	"github.com/vytor/thaiflash/internal/testutil"
)

type ResultRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ResultRepository
	base time.Time
}

func (s *ResultRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewResultRepository(s.db)
	s.base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *ResultRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ResultRepositorySuite) result(session string, mode models.OrderingMode, points int, finishedAfter time.Duration) models.GameResult {
	return models.GameResult{
		SessionID:    session,
		ContentKind:  models.ContentAlphabet,
		OrderingMode: mode,
		Difficulty:   models.DifficultyEasy,
		AnswerMode:   models.AnswerMultipleChoice,
		OptionCount:  3,
		AllowedTypes: []models.AlphabetType{models.AlphabetConsonant, models.AlphabetVowel},
		Attempts:     4,
		Correct:      points / 3,
		Points:       points,
		FinishReason: "completed",
		StartedAt:    s.base,
		FinishedAt:   s.base.Add(finishedAfter),
	}
}

func (s *ResultRepositorySuite) TestInsertAndGetBySession() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, s.result("sess-1", models.ModeSequence, 9, time.Minute))
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	got, err := s.repo.GetBySession(ctx, "sess-1")
	s.Require().NoError(err)
	s.Assert().Equal(id, got.ID)
	s.Assert().Equal(models.ModeSequence, got.OrderingMode)
	s.Assert().Equal(9, got.Points)
	s.Assert().Equal([]models.AlphabetType{models.AlphabetConsonant, models.AlphabetVowel}, got.AllowedTypes)
	s.Assert().True(got.FinishedAt.Equal(s.base.Add(time.Minute)))
	s.Assert().False(got.CreatedAt.IsZero())
}

func (s *ResultRepositorySuite) TestGetBySession_NotFound() {
	got, err := s.repo.GetBySession(context.Background(), "nope")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
	s.Assert().Nil(got)
}

func (s *ResultRepositorySuite) TestInsert_DuplicateSession() {
	ctx := context.Background()
	_, err := s.repo.Insert(ctx, s.result("dup", models.ModeSequence, 3, 0))
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, s.result("dup", models.ModeSequence, 3, 0))
	s.Assert().Error(err)
}

func (s *ResultRepositorySuite) TestList_OrderedByPoints() {
	ctx := context.Background()
	for i, p := range []int{6, 12, 9} {
		_, err := s.repo.Insert(ctx, s.result(string(rune('a'+i)), models.ModeRandom, p, time.Duration(i)*time.Minute))
		s.Require().NoError(err)
	}

	results, err := s.repo.List(ctx, models.ResultFilter{})
	s.Require().NoError(err)
	s.Require().Len(results, 3)
	s.Assert().Equal([]int{12, 9, 6}, []int{results[0].Points, results[1].Points, results[2].Points})
}

func (s *ResultRepositorySuite) TestList_FiltersAndPagination() {
	ctx := context.Background()
	_, err := s.repo.Insert(ctx, s.result("seq-1", models.ModeSequence, 3, time.Minute))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.result("seq-2", models.ModeSequence, 6, 2*time.Hour))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.result("rnd-1", models.ModeRandom, 9, time.Minute))
	s.Require().NoError(err)

	seq, err := s.repo.List(ctx, models.ResultFilter{OrderingMode: models.ModeSequence})
	s.Require().NoError(err)
	s.Assert().Len(seq, 2)

	since := s.base.Add(time.Hour)
	recent, err := s.repo.List(ctx, models.ResultFilter{Since: &since})
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Assert().Equal("seq-2", recent[0].SessionID)

	page, err := s.repo.List(ctx, models.ResultFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Assert().Equal("seq-2", page[0].SessionID)

	n, err := s.repo.Count(ctx, models.ResultFilter{Difficulty: models.DifficultyEasy})
	s.Require().NoError(err)
	s.Assert().Equal(3, n)

	n, err = s.repo.Count(ctx, models.ResultFilter{FinishReason: "points_exhausted"})
	s.Require().NoError(err)
	s.Assert().Equal(0, n)
}

func (s *ResultRepositorySuite) TestList_Empty() {
	results, err := s.repo.List(context.Background(), models.ResultFilter{})
	s.Require().NoError(err)
	s.Assert().NotNil(results)
	s.Assert().Empty(results)
}

func (s *ResultRepositorySuite) TestSummary() {
	ctx := context.Background()
	_, err := s.repo.Insert(ctx, s.result("a", models.ModeSequence, 3, 0))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.result("b", models.ModeSequence, 9, 0))
	s.Require().NoError(err)

	summary, err := s.repo.Summary(ctx, models.ResultFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(2, summary.Games)
	s.Assert().Equal(8, summary.Attempts)
	s.Assert().Equal(4, summary.Correct)
	s.Assert().Equal(12, summary.TotalPoints)
	s.Assert().Equal(9, summary.BestPoints)
	s.Assert().InDelta(6.0, summary.AveragePoints, 0.001)
	s.Assert().InDelta(0.5, summary.Accuracy, 0.001)
}

func (s *ResultRepositorySuite) TestSummary_Empty() {
	summary, err := s.repo.Summary(context.Background(), models.ResultFilter{OrderingMode: models.ModeRandom})
	s.Require().NoError(err)
	s.Assert().Equal(0, summary.Games)
	s.Assert().Equal(0.0, summary.Accuracy)
}

func TestResultRepositorySuite(t *testing.T) {
	suite.Run(t, new(ResultRepositorySuite))
}
