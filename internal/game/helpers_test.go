package game_test

import (
	"fmt"

	"github.com/vytor/thaiflash/internal/models"
)

// consonants returns n consonant items with orders 1..n.
func consonants(n int) []models.AlphabetItem {
	return items(models.AlphabetConsonant, 1, n)
}

func items(t models.AlphabetType, firstOrder, n int) []models.AlphabetItem {
	out := make([]models.AlphabetItem, n)
	for i := range out {
		out[i] = models.AlphabetItem{
			Symbol:          fmt.Sprintf("%s-%d", t, firstOrder+i),
			Type:            t,
			Order:           firstOrder + i,
			Transliteration: fmt.Sprintf("%s %d", t, firstOrder+i),
		}
	}
	return out
}

func sequenceSettings(optionCount int, types ...models.AlphabetType) models.GameSettings {
	if len(types) == 0 {
		types = []models.AlphabetType{models.AlphabetConsonant}
	}
	return models.GameSettings{
		ContentKind:     models.ContentAlphabet,
		OrderingMode:    models.ModeSequence,
		Difficulty:      models.DifficultyEasy,
		DisplayLanguage: models.LanguageNative,
		OptionCount:     optionCount,
		AnswerMode:      models.AnswerMultipleChoice,
		AllowedTypes:    types,
	}
}

func randomSettings(optionCount int, types ...models.AlphabetType) models.GameSettings {
	s := sequenceSettings(optionCount, types...)
	s.OrderingMode = models.ModeRandom
	return s
}

func freeText(s models.GameSettings) models.GameSettings {
	s.AnswerMode = models.AnswerFreeText
	return s
}

// wrongOption picks an option that is not the prompt.
func wrongOption(step *models.Step) models.AlphabetItem {
	for _, o := range step.Options {
		if o.Symbol != step.Prompt.Symbol {
			return o
		}
	}
	panic("step has no distractor")
}
