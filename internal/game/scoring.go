package game

import "github.com/vytor/thaiflash/internal/models"

// RandomModeAttemptCap bounds how many attempts a random-mode game allows.
const RandomModeAttemptCap = 20

// FinishReason records why a game stopped.
type FinishReason string

const (
	FinishNone            FinishReason = ""
	FinishCompleted       FinishReason = "completed"
	FinishSessionLimit    FinishReason = "session_limit"
	FinishPointsExhausted FinishReason = "points_exhausted"
	FinishNoPlayableItems FinishReason = "no_playable_items"
	FinishAbandoned       FinishReason = "abandoned"
)

// ScoringPolicy judges attempts and decides when a game is over.
type ScoringPolicy struct {
	AttemptCap int
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{AttemptCap: RandomModeAttemptCap}
}

// IsCorrect compares by symbol, never by identity.
func IsCorrect(step models.Step, attempted models.AlphabetItem) bool {
	return step.Prompt.Symbol != "" && step.Prompt.Symbol == attempted.Symbol
}

// Judge turns an attempt into a history record.
func (p ScoringPolicy) Judge(step models.Step, attempted models.AlphabetItem) models.StepRecord {
	correct := IsCorrect(step, attempted)
	awarded := 0
	if correct {
		awarded = step.PointsAtStake
	}
	return models.StepRecord{
		Step:          step.Clone(),
		Attempted:     attempted,
		WasCorrect:    correct,
		PointsAwarded: awarded,
	}
}

// Termination inspects the history after last was appended and reports
// whether the game is over. Checks run in a fixed order so that a final
// correct answer is a completion rather than a cap.
func (p ScoringPolicy) Termination(settings models.GameSettings, subsetSize int, history []models.StepRecord, last models.StepRecord) (FinishReason, bool) {
	if settings.OrderingMode == models.ModeSequence && subsetSize > 0 && CorrectCount(history) >= subsetSize {
		return FinishCompleted, true
	}
	if settings.OrderingMode == models.ModeRandom && p.AttemptCap > 0 && len(history) >= p.AttemptCap {
		return FinishSessionLimit, true
	}
	if !last.WasCorrect && last.PointsAtStake == 0 {
		return FinishPointsExhausted, true
	}
	return FinishNone, false
}

// TotalPoints sums the points awarded across the history.
func TotalPoints(history []models.StepRecord) int {
	total := 0
	for _, r := range history {
		total += r.PointsAwarded
	}
	return total
}

func CorrectCount(history []models.StepRecord) int {
	n := 0
	for _, r := range history {
		if r.WasCorrect {
			n++
		}
	}
	return n
}

// CorrectAnswerFor returns the option matching the step's prompt. The
// boolean is false when there is no step or the options do not contain it.
func CorrectAnswerFor(step *models.Step) (models.AlphabetItem, bool) {
	if step == nil || step.Prompt.Symbol == "" {
		return models.AlphabetItem{}, false
	}
	for _, opt := range step.Options {
		if opt.Symbol == step.Prompt.Symbol {
			return opt, true
		}
	}
	return models.AlphabetItem{}, false
}
