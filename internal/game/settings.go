package game

import (
	"errors"
	"fmt"

	"github.com/vytor/thaiflash/internal/models"
)

const (
	MinOptionCount = 2
	MaxOptionCount = 10
)

// FieldError names the settings field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// DefaultSettings is what a new player starts with.
func DefaultSettings() models.GameSettings {
	return models.GameSettings{
		ContentKind:     models.ContentAlphabet,
		OrderingMode:    models.ModeSequence,
		Difficulty:      models.DifficultyEasy,
		DisplayLanguage: models.LanguageNative,
		OptionCount:     models.DifficultyEasy.OptionCount(),
		AnswerMode:      models.AnswerMultipleChoice,
		AllowedTypes:    []models.AlphabetType{models.AlphabetConsonant, models.AlphabetVowel},
	}
}

// SettingsOverrides carries the fields a caller wants to change. A nil
// pointer or nil slice keeps the base value.
type SettingsOverrides struct {
	ContentKind     *models.ContentKind
	OrderingMode    *models.OrderingMode
	Difficulty      *models.Difficulty
	DisplayLanguage *models.DisplayLanguage
	OptionCount     *int
	AnswerMode      *models.AnswerMode
	AllowedTypes    []models.AlphabetType
}

// BuildSettings applies o on top of base and validates the result. When
// the difficulty changes and no option count is given, the count follows
// the difficulty. All field errors are returned together.
func BuildSettings(base models.GameSettings, o SettingsOverrides) (models.GameSettings, error) {
	s := base.Clone()

	if o.ContentKind != nil {
		s.ContentKind = *o.ContentKind
	}
	if o.OrderingMode != nil {
		s.OrderingMode = *o.OrderingMode
	}
	if o.Difficulty != nil {
		s.Difficulty = *o.Difficulty
		if o.OptionCount == nil && s.Difficulty.Valid() {
			s.OptionCount = s.Difficulty.OptionCount()
		}
	}
	if o.DisplayLanguage != nil {
		s.DisplayLanguage = *o.DisplayLanguage
	}
	if o.OptionCount != nil {
		s.OptionCount = *o.OptionCount
	}
	if o.AnswerMode != nil {
		s.AnswerMode = *o.AnswerMode
	}
	if o.AllowedTypes != nil {
		s.AllowedTypes = dedupeTypes(o.AllowedTypes)
	}

	if err := ValidateSettings(s); err != nil {
		return base, err
	}
	return s, nil
}

// ValidateSettings checks every field and joins the failures.
func ValidateSettings(s models.GameSettings) error {
	var errs []error
	if !s.ContentKind.Valid() {
		errs = append(errs, &FieldError{Field: "type", Reason: fmt.Sprintf("unknown content kind %q", s.ContentKind)})
	}
	if !s.OrderingMode.Valid() {
		errs = append(errs, &FieldError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s.OrderingMode)})
	}
	if !s.Difficulty.Valid() {
		errs = append(errs, &FieldError{Field: "level", Reason: fmt.Sprintf("unknown level %q", s.Difficulty)})
	}
	if !s.DisplayLanguage.Valid() {
		errs = append(errs, &FieldError{Field: "language-mode", Reason: fmt.Sprintf("unknown language %q", s.DisplayLanguage)})
	}
	if s.OptionCount < MinOptionCount || s.OptionCount > MaxOptionCount {
		errs = append(errs, &FieldError{Field: "number-options", Reason: fmt.Sprintf("must be between %d and %d", MinOptionCount, MaxOptionCount)})
	}
	if !s.AnswerMode.Valid() {
		errs = append(errs, &FieldError{Field: "input-mode", Reason: fmt.Sprintf("unknown input mode %q", s.AnswerMode)})
	}
	if len(s.AllowedTypes) == 0 {
		errs = append(errs, &FieldError{Field: "alphabet-type", Reason: "at least one alphabet type is required"})
	}
	for _, t := range s.AllowedTypes {
		if !t.Valid() {
			errs = append(errs, &FieldError{Field: "alphabet-type", Reason: fmt.Sprintf("unknown alphabet type %q", t)})
		}
	}
	return errors.Join(errs...)
}

// FieldErrors unpacks the FieldErrors inside err.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	var fe *FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}

func dedupeTypes(types []models.AlphabetType) []models.AlphabetType {
	seen := make(map[models.AlphabetType]bool, len(types))
	out := make([]models.AlphabetType, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
