package game

import (
	"errors"
	"fmt"

	"github.com/vytor/thaiflash/internal/alphabet"
	"github.com/vytor/thaiflash/internal/models"
)

var (
	ErrNoPlayableItems     = errors.New("no playable items for the selected alphabet types")
	ErrInsufficientOptions = errors.New("not enough items of one type to build the options")
	ErrSequenceExhausted   = errors.New("sequence exhausted")
)

// StepGenerator produces prompts and their option sets.
type StepGenerator struct {
	rng RandomSource
}

func NewStepGenerator(rng RandomSource) *StepGenerator {
	if rng == nil {
		rng = NewRandomSource()
	}
	return &StepGenerator{rng: rng}
}

// CheckPlayable reports whether subset can feed a whole game under settings.
// Sequence mode visits every item, so every type present must be able to
// fill the option set on its own. Random mode only needs one such type.
// Free-text games never show their options, so any non-empty type will do.
func (g *StepGenerator) CheckPlayable(subset []models.AlphabetItem, settings models.GameSettings) error {
	if len(subset) == 0 {
		return ErrNoPlayableItems
	}
	if settings.OptionCount < MinOptionCount {
		return fmt.Errorf("%w: option count %d", ErrInsufficientOptions, settings.OptionCount)
	}

	need := requiredPerType(settings)
	counts := countByType(subset)
	switch settings.OrderingMode {
	case models.ModeRandom:
		for _, n := range counts {
			if n >= need {
				return nil
			}
		}
		return fmt.Errorf("%w: no type has %d items", ErrInsufficientOptions, need)
	default:
		for t, n := range counts {
			if n < need {
				return fmt.Errorf("%w: %s has %d items, need %d", ErrInsufficientOptions, t, n, need)
			}
		}
		return nil
	}
}

// requiredPerType is how many items of one type a step needs.
func requiredPerType(settings models.GameSettings) int {
	if settings.AnswerMode == models.AnswerFreeText {
		return 1
	}
	return settings.OptionCount
}

// First builds the opening step of a game.
func (g *StepGenerator) First(subset []models.AlphabetItem, settings models.GameSettings) (models.Step, error) {
	if len(subset) == 0 {
		return models.Step{}, ErrNoPlayableItems
	}
	if settings.OrderingMode == models.ModeRandom {
		return g.makeRandomStep(subset, settings, nil, false)
	}
	return g.makeSequenceStep(subset, settings, nil, models.AlphabetItem{}, false)
}

// Next builds the step that follows a judged attempt on current.
func (g *StepGenerator) Next(subset []models.AlphabetItem, settings models.GameSettings, current models.Step, attempted models.AlphabetItem, wasCorrect bool) (models.Step, error) {
	if settings.OrderingMode == models.ModeRandom {
		return g.makeRandomStep(subset, settings, &current, wasCorrect)
	}
	return g.makeSequenceStep(subset, settings, &current, attempted, wasCorrect)
}

func (g *StepGenerator) makeSequenceStep(subset []models.AlphabetItem, settings models.GameSettings, current *models.Step, attempted models.AlphabetItem, wasCorrect bool) (models.Step, error) {
	// A wrong answer keeps the learner on the same prompt for less.
	if current != nil && !wasCorrect {
		retry := current.Clone()
		retry.PointsAtStake = decrement(current.PointsAtStake)
		retry.AnswerMode = settings.AnswerMode
		return retry, nil
	}

	sorted := alphabet.SortByOrder(subset)
	next := 0
	if current != nil {
		next = alphabet.IndexOf(sorted, attempted.Symbol) + 1
		if next == 0 {
			// The attempted item left the subset; restart from its prompt.
			next = alphabet.IndexOf(sorted, current.Prompt.Symbol) + 1
		}
	}
	if next >= len(sorted) {
		return models.Step{}, ErrSequenceExhausted
	}

	target := sorted[next]
	options, err := g.buildOptions(subset, target, settings)
	if err != nil {
		return models.Step{}, err
	}

	points := len(options)
	if current != nil {
		points = current.PointsAtStake
	}
	return models.Step{
		Prompt:        target,
		Options:       options,
		PointsAtStake: points,
		AnswerMode:    settings.AnswerMode,
	}, nil
}

func (g *StepGenerator) makeRandomStep(subset []models.AlphabetItem, settings models.GameSettings, current *models.Step, wasCorrect bool) (models.Step, error) {
	need := requiredPerType(settings)
	counts := countByType(subset)
	candidates := make([]models.AlphabetItem, 0, len(subset))
	for _, it := range subset {
		if counts[it.Type] >= need {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		return models.Step{}, ErrInsufficientOptions
	}

	provisional := candidates[g.rng.IntN(len(candidates))]
	options, err := g.buildOptions(subset, provisional, settings)
	if err != nil {
		return models.Step{}, err
	}
	prompt := options[g.rng.IntN(len(options))]

	points := settings.OptionCount
	if current != nil {
		points = current.PointsAtStake
		if !wasCorrect {
			points = decrement(points)
		}
	}
	return models.Step{
		Prompt:        prompt,
		Options:       options,
		PointsAtStake: points,
		AnswerMode:    settings.AnswerMode,
	}, nil
}

// buildOptions draws OptionCount-1 distractors of the target's type, adds
// the target and shuffles the result. Free-text steps take as many
// distractors as the type has, up to the same count.
func (g *StepGenerator) buildOptions(subset []models.AlphabetItem, target models.AlphabetItem, settings models.GameSettings) ([]models.AlphabetItem, error) {
	pool := make([]models.AlphabetItem, 0, len(subset))
	for _, it := range subset {
		if it.Type == target.Type && it.Symbol != target.Symbol {
			pool = append(pool, it)
		}
	}
	count := settings.OptionCount
	if settings.AnswerMode == models.AnswerFreeText && len(pool) < count-1 {
		count = len(pool) + 1
	}
	if len(pool) < count-1 {
		return nil, fmt.Errorf("%w: %s has %d distractors, need %d", ErrInsufficientOptions, target.Type, len(pool), count-1)
	}

	options := append(pickUnique(g.rng, pool, count-1), target)
	shuffle(g.rng, options)
	return options, nil
}

func countByType(items []models.AlphabetItem) map[models.AlphabetType]int {
	counts := make(map[models.AlphabetType]int)
	for _, it := range items {
		counts[it.Type]++
	}
	return counts
}

func decrement(points int) int {
	if points <= 0 {
		return 0
	}
	return points - 1
}
