package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vytor/thaiflash/internal/game"
	"github.com/vytor/thaiflash/internal/models"
)

func TestIsCorrect_ComparesSymbolOnly(t *testing.T) {
	prompt := models.AlphabetItem{Symbol: "ก", Type: models.AlphabetConsonant, Transliteration: "gai"}
	step := models.Step{Prompt: prompt}

	assert.True(t, game.IsCorrect(step, models.AlphabetItem{Symbol: "ก"}))
	assert.False(t, game.IsCorrect(step, models.AlphabetItem{Symbol: "ข", Transliteration: "gai"}))
	assert.False(t, game.IsCorrect(models.Step{}, models.AlphabetItem{}))
}

func TestScoringPolicy_Judge(t *testing.T) {
	policy := game.DefaultScoringPolicy()
	c := consonants(3)
	step := models.Step{Prompt: c[0], Options: c, PointsAtStake: 3}

	right := policy.Judge(step, c[0])
	assert.True(t, right.WasCorrect)
	assert.Equal(t, 3, right.PointsAwarded)
	assert.Equal(t, c[0], right.Prompt)

	wrong := policy.Judge(step, c[1])
	assert.False(t, wrong.WasCorrect)
	assert.Equal(t, 0, wrong.PointsAwarded)
	assert.Equal(t, c[1], wrong.Attempted)
}

func TestScoringPolicy_TerminationPriority(t *testing.T) {
	policy := game.DefaultScoringPolicy()
	c := consonants(3)
	correct := models.StepRecord{Step: models.Step{Prompt: c[0], PointsAtStake: 3}, WasCorrect: true, PointsAwarded: 3}
	exhausted := models.StepRecord{Step: models.Step{Prompt: c[0], PointsAtStake: 0}}

	reason, done := policy.Termination(sequenceSettings(3), 2, []models.StepRecord{correct, correct}, correct)
	assert.True(t, done)
	assert.Equal(t, game.FinishCompleted, reason)

	_, done = policy.Termination(sequenceSettings(3), 3, []models.StepRecord{correct}, correct)
	assert.False(t, done)

	history := make([]models.StepRecord, game.RandomModeAttemptCap)
	history[len(history)-1] = exhausted
	reason, done = policy.Termination(randomSettings(3), 10, history, exhausted)
	assert.True(t, done)
	assert.Equal(t, game.FinishSessionLimit, reason, "the cap wins over point exhaustion")

	reason, done = policy.Termination(randomSettings(3), 10, []models.StepRecord{exhausted}, exhausted)
	assert.True(t, done)
	assert.Equal(t, game.FinishPointsExhausted, reason)

	zeroButRight := models.StepRecord{Step: models.Step{Prompt: c[0]}, WasCorrect: true}
	_, done = policy.Termination(randomSettings(3), 10, []models.StepRecord{zeroButRight}, zeroButRight)
	assert.False(t, done, "a correct answer at zero points keeps the game going")
}

func TestScoringPolicy_CustomCap(t *testing.T) {
	policy := game.ScoringPolicy{AttemptCap: 2}
	r := models.StepRecord{Step: models.Step{PointsAtStake: 3}, WasCorrect: true}

	_, done := policy.Termination(randomSettings(3), 10, []models.StepRecord{r}, r)
	assert.False(t, done)
	reason, done := policy.Termination(randomSettings(3), 10, []models.StepRecord{r, r}, r)
	assert.True(t, done)
	assert.Equal(t, game.FinishSessionLimit, reason)
}

func TestTotalPoints(t *testing.T) {
	assert.Equal(t, 0, game.TotalPoints(nil))
	assert.Equal(t, 5, game.TotalPoints([]models.StepRecord{{PointsAwarded: 3}, {PointsAwarded: 0}, {PointsAwarded: 2}}))
}

func TestCorrectAnswerFor(t *testing.T) {
	c := consonants(3)

	item, ok := game.CorrectAnswerFor(&models.Step{Prompt: c[1], Options: c})
	assert.True(t, ok)
	assert.Equal(t, c[1], item)

	_, ok = game.CorrectAnswerFor(nil)
	assert.False(t, ok)

	_, ok = game.CorrectAnswerFor(&models.Step{Options: c})
	assert.False(t, ok, "missing prompt")

	_, ok = game.CorrectAnswerFor(&models.Step{Prompt: c[2], Options: c[:2]})
	assert.False(t, ok, "prompt not among options")
}
