package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/thaiflash/internal/alphabet"
	"github.com/vytor/thaiflash/internal/game"
	"github.com/vytor/thaiflash/internal/models"
)

func newEngine(catalog []models.AlphabetItem, seed uint64) *game.Engine {
	return game.NewEngine(catalog, game.WithRandomSource(game.NewSeededSource(seed)))
}

func TestEngine_NewIsIdle(t *testing.T) {
	e := newEngine(consonants(5), 1)

	assert.Equal(t, game.PhaseIdle, e.Phase())
	assert.False(t, e.IsRunning())
	assert.False(t, e.IsFinished())
	assert.Nil(t, e.CurrentStep())
	assert.Empty(t, e.History())
	assert.Equal(t, game.DefaultSettings(), e.Settings())
}

func TestEngine_SequenceStartsAtFirstItem(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 1)

	e.StartGame(sequenceSettings(3))

	require.True(t, e.IsRunning())
	assert.False(t, e.IsFinished())
	step := e.CurrentStep()
	require.NotNil(t, step)
	assert.Equal(t, catalog[0], step.Prompt)
	assert.Len(t, step.Options, 3)
	assert.Equal(t, 3, step.PointsAtStake, "a fresh step is worth one point per option")
	assert.Equal(t, models.AnswerMultipleChoice, step.AnswerMode)
}

func TestEngine_SequenceCorrectAdvances(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 2)
	e.StartGame(sequenceSettings(3))

	e.AttemptAnswer(catalog[0])

	history := e.History()
	require.Len(t, history, 1)
	assert.True(t, history[0].WasCorrect)
	assert.Equal(t, 3, history[0].PointsAwarded)
	require.NotNil(t, e.CurrentStep())
	assert.Equal(t, catalog[1], e.CurrentStep().Prompt)
}

func TestEngine_SequenceWrongRetriesSamePrompt(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 3)
	e.StartGame(sequenceSettings(3))
	before := e.CurrentStep()

	e.AttemptAnswer(catalog[3])

	history := e.History()
	require.Len(t, history, 1)
	assert.False(t, history[0].WasCorrect)
	assert.Equal(t, 0, history[0].PointsAwarded)
	assert.Equal(t, catalog[3], history[0].Attempted)

	after := e.CurrentStep()
	require.NotNil(t, after)
	assert.Equal(t, catalog[0], after.Prompt)
	assert.Equal(t, before.Options, after.Options, "options stay put on a retry")
	assert.Equal(t, before.PointsAtStake-1, after.PointsAtStake)
}

func TestEngine_SequenceExhaustion(t *testing.T) {
	for _, n := range []int{3, 5, 12, 41} {
		catalog := consonants(n)
		e := newEngine(catalog, uint64(n))
		e.StartGame(sequenceSettings(3))

		for i := 0; i < n; i++ {
			step := e.CurrentStep()
			require.NotNil(t, step, "step %d of %d", i, n)
			assert.Equal(t, catalog[i], step.Prompt)
			e.AttemptAnswer(step.Prompt)
		}

		assert.Len(t, e.History(), n)
		assert.True(t, e.IsFinished())
		assert.False(t, e.IsRunning())
		assert.Nil(t, e.CurrentStep())
		assert.Equal(t, game.FinishCompleted, e.FinishReason())
		assert.Equal(t, 3*n, e.TotalPoints())
	}
}

func TestEngine_SequenceOrdersByOrderField(t *testing.T) {
	catalog := consonants(4)
	catalog[0], catalog[3] = catalog[3], catalog[0]
	e := newEngine(catalog, 4)

	e.StartGame(sequenceSettings(3))

	require.NotNil(t, e.CurrentStep())
	assert.Equal(t, 1, e.CurrentStep().Prompt.Order)
}

func TestEngine_PointExhaustion(t *testing.T) {
	e := newEngine(consonants(5), 5)
	e.StartGame(sequenceSettings(3))

	stakes := []int{}
	for e.IsRunning() {
		step := e.CurrentStep()
		stakes = append(stakes, step.PointsAtStake)
		e.AttemptAnswer(wrongOption(step))
	}

	assert.Equal(t, []int{3, 2, 1, 0}, stakes)
	assert.Len(t, e.History(), 4)
	assert.True(t, e.IsFinished())
	assert.Equal(t, game.FinishPointsExhausted, e.FinishReason())
	assert.Equal(t, 0, e.TotalPoints())
	for _, r := range e.History() {
		assert.GreaterOrEqual(t, r.PointsAtStake, 0)
	}
}

func TestEngine_PointsCarryAcrossSteps(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 6)
	e.StartGame(sequenceSettings(3))

	e.AttemptAnswer(wrongOption(e.CurrentStep()))
	e.AttemptAnswer(catalog[0])

	step := e.CurrentStep()
	require.NotNil(t, step)
	assert.Equal(t, catalog[1], step.Prompt)
	assert.Equal(t, 2, step.PointsAtStake)
	assert.Equal(t, 2, e.TotalPoints())
}

func TestEngine_RandomCap(t *testing.T) {
	e := newEngine(consonants(10), 7)
	e.StartGame(randomSettings(4))

	for i := 0; i < game.RandomModeAttemptCap; i++ {
		step := e.CurrentStep()
		require.NotNil(t, step, "attempt %d", i)
		assert.Equal(t, 4, step.PointsAtStake)
		e.AttemptAnswer(step.Prompt)
	}

	assert.Len(t, e.History(), game.RandomModeAttemptCap)
	assert.True(t, e.IsFinished())
	assert.False(t, e.IsRunning())
	assert.Equal(t, game.FinishSessionLimit, e.FinishReason())
	assert.Equal(t, 4*game.RandomModeAttemptCap, e.TotalPoints())
}

func TestEngine_RandomWrongDecrements(t *testing.T) {
	e := newEngine(consonants(10), 8)
	e.StartGame(randomSettings(3))

	e.AttemptAnswer(wrongOption(e.CurrentStep()))

	require.NotNil(t, e.CurrentStep())
	assert.Equal(t, 2, e.CurrentStep().PointsAtStake)
}

func TestEngine_NoDuplicateOptions(t *testing.T) {
	catalog := alphabet.Default()
	for _, mode := range []models.OrderingMode{models.ModeSequence, models.ModeRandom} {
		for seed := uint64(0); seed < 20; seed++ {
			s := sequenceSettings(4, models.AlphabetConsonant, models.AlphabetVowel, models.AlphabetTone, models.AlphabetOther)
			s.OrderingMode = mode
			e := newEngine(catalog, seed)
			e.StartGame(s)

			for e.IsRunning() {
				step := e.CurrentStep()
				assertValidStep(t, step)
				e.AttemptAnswer(step.Prompt)
			}
		}
	}
}

func assertValidStep(t *testing.T, step *models.Step) {
	t.Helper()
	seen := map[string]bool{}
	matches := 0
	for _, o := range step.Options {
		assert.False(t, seen[o.Symbol], "duplicate option %q", o.Symbol)
		seen[o.Symbol] = true
		assert.Equal(t, step.Prompt.Type, o.Type, "distractors share the prompt's type")
		if o.Symbol == step.Prompt.Symbol {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func TestEngine_EmptyCatalogGuard(t *testing.T) {
	e := newEngine(consonants(5), 9)

	e.StartGame(sequenceSettings(3, models.AlphabetTone))

	assert.False(t, e.IsRunning())
	assert.True(t, e.IsFinished())
	assert.Nil(t, e.CurrentStep())
	assert.Empty(t, e.History())
	assert.Equal(t, game.FinishNoPlayableItems, e.FinishReason())
}

func TestEngine_InsufficientOptionsFinishesAtStart(t *testing.T) {
	catalog := append(consonants(5), items(models.AlphabetTone, 201, 2)...)

	e := newEngine(catalog, 10)
	e.StartGame(sequenceSettings(3, models.AlphabetConsonant, models.AlphabetTone))
	assert.True(t, e.IsFinished(), "sequence mode needs every type to fill the options")
	assert.Empty(t, e.History())

	e.StartGame(randomSettings(3, models.AlphabetConsonant, models.AlphabetTone))
	require.True(t, e.IsRunning(), "random mode draws only from types that can fill the options")
	for i := 0; i < 10 && e.IsRunning(); i++ {
		step := e.CurrentStep()
		assert.Equal(t, models.AlphabetConsonant, step.Prompt.Type)
		e.AttemptAnswer(step.Prompt)
	}
}

func TestEngine_WordContentFinishesImmediately(t *testing.T) {
	e := newEngine(consonants(5), 11)
	s := sequenceSettings(3)
	s.ContentKind = models.ContentWord

	e.StartGame(s)

	assert.True(t, e.IsFinished())
	assert.Empty(t, e.CatalogSubset())
}

func TestEngine_AttemptWithoutStepIsNoop(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 12)

	e.AttemptAnswer(catalog[0])
	assert.Empty(t, e.History())
	assert.Equal(t, game.PhaseIdle, e.Phase())

	e.StartGame(sequenceSettings(3, models.AlphabetVowel))
	e.AttemptAnswer(catalog[0])
	assert.Empty(t, e.History())
	assert.Equal(t, game.PhaseFinished, e.Phase())
}

func TestEngine_StartGameReplacesState(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 13)
	e.StartGame(sequenceSettings(3))
	e.AttemptAnswer(catalog[0])
	e.AttemptAnswer(catalog[1])

	e.StartGame(sequenceSettings(4))

	assert.Empty(t, e.History())
	assert.True(t, e.IsRunning())
	assert.Equal(t, catalog[0], e.CurrentStep().Prompt)
	assert.Equal(t, 4, e.Settings().OptionCount)
	assert.Equal(t, game.FinishNone, e.FinishReason())
}

func TestEngine_EndGameKeepsHistoryAndSettings(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 14)
	settings := sequenceSettings(3)
	e.StartGame(settings)
	e.AttemptAnswer(catalog[0])

	e.EndGame()

	assert.Equal(t, game.PhaseIdle, e.Phase())
	assert.False(t, e.IsRunning())
	assert.False(t, e.IsFinished())
	assert.Nil(t, e.CurrentStep())
	assert.Len(t, e.History(), 1)
	assert.Equal(t, settings, e.Settings())
	assert.Equal(t, game.FinishAbandoned, e.FinishReason())
}

func TestEngine_MixedTypesWithShortType(t *testing.T) {
	settings := sequenceSettings(5, models.AlphabetConsonant, models.AlphabetTone)

	e := newEngine(alphabet.Default(), 3)
	e.StartGame(settings)
	assert.True(t, e.IsFinished())
	assert.Equal(t, game.FinishNoPlayableItems, e.FinishReason())

	e.StartGame(freeText(settings))
	require.True(t, e.IsRunning())
	assert.Len(t, e.CatalogSubset(), 45)
	assert.Len(t, e.CurrentStep().Options, 5)
}

func TestEngine_AttemptText(t *testing.T) {
	catalog := alphabet.Default()
	e := newEngine(catalog, 15)
	s := sequenceSettings(3)
	s.AnswerMode = models.AnswerFreeText
	e.StartGame(s)

	step := e.CurrentStep()
	require.NotNil(t, step)
	assert.Equal(t, "ก", step.Prompt.Symbol)
	assert.Equal(t, models.AnswerFreeText, step.AnswerMode)

	e.AttemptText("  GAW   gai ")
	require.Len(t, e.History(), 1)
	assert.True(t, e.History()[0].WasCorrect)
	assert.Equal(t, alphabet.SortByOrder(e.CatalogSubset())[1], e.CurrentStep().Prompt)

	e.AttemptText("not a letter")
	require.Len(t, e.History(), 2)
	last := e.History()[1]
	assert.False(t, last.WasCorrect)
	assert.Equal(t, "not a letter", last.Attempted.Symbol)
}

func TestEngine_SnapshotIsCopy(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 16)
	e.StartGame(sequenceSettings(3))

	snap := e.Snapshot()
	snap.CurrentStep.Options[0] = models.AlphabetItem{Symbol: "x"}
	snap.Settings.AllowedTypes[0] = models.AlphabetTone

	assert.NotEqual(t, "x", e.CurrentStep().Options[0].Symbol)
	assert.Equal(t, models.AlphabetConsonant, e.Settings().AllowedTypes[0])
	assert.Equal(t, game.PhaseRunning, snap.Phase)
}

func TestEngine_Summary(t *testing.T) {
	catalog := consonants(5)
	e := newEngine(catalog, 17)
	e.StartGame(sequenceSettings(3))
	e.AttemptAnswer(catalog[0])
	e.AttemptAnswer(catalog[4])

	summary := e.Summary()

	assert.Equal(t, 2, summary.Attempts)
	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, 3, summary.Points)
	assert.Equal(t, game.FinishNone, summary.FinishReason)
}

func TestEngine_SeededSourceIsReproducible(t *testing.T) {
	catalog := alphabet.Default()
	run := func() []string {
		e := newEngine(catalog, 42)
		e.StartGame(randomSettings(5, models.AlphabetConsonant, models.AlphabetVowel))
		var prompts []string
		for e.IsRunning() {
			step := e.CurrentStep()
			prompts = append(prompts, step.Prompt.Symbol)
			e.AttemptAnswer(step.Prompt)
		}
		return prompts
	}

	assert.Equal(t, run(), run())
}
