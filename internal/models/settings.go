package models

// ContentKind selects what the game quizzes on.
type ContentKind string

const (
	ContentAlphabet ContentKind = "alphabet"
	ContentWord     ContentKind = "word"
)

func (k ContentKind) Valid() bool {
	return k == ContentAlphabet || k == ContentWord
}

// OrderingMode selects how prompts are chosen.
type OrderingMode string

const (
	ModeSequence OrderingMode = "sequence"
	ModeRandom   OrderingMode = "random"
)

func (m OrderingMode) Valid() bool {
	return m == ModeSequence || m == ModeRandom
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// OptionCount is the number of choices a difficulty implies when the
// caller does not pick one explicitly.
func (d Difficulty) OptionCount() int {
	switch d {
	case DifficultyMedium:
		return 4
	case DifficultyHard:
		return 5
	default:
		return 3
	}
}

// DisplayLanguage controls whether prompts show native script or transliteration.
type DisplayLanguage string

const (
	LanguageNative         DisplayLanguage = "thai"
	LanguageTransliterated DisplayLanguage = "english"
)

func (l DisplayLanguage) Valid() bool {
	return l == LanguageNative || l == LanguageTransliterated
}

type AnswerMode string

const (
	AnswerMultipleChoice AnswerMode = "options"
	AnswerFreeText       AnswerMode = "input"
)

func (m AnswerMode) Valid() bool {
	return m == AnswerMultipleChoice || m == AnswerFreeText
}

// GameSettings is the user-chosen configuration of a game. It is a value type;
// build it with game.BuildSettings so every field is validated.
type GameSettings struct {
	ContentKind     ContentKind     `json:"content_kind"`
	OrderingMode    OrderingMode    `json:"ordering_mode"`
	Difficulty      Difficulty      `json:"difficulty"`
	DisplayLanguage DisplayLanguage `json:"display_language"`
	OptionCount     int             `json:"option_count"`
	AnswerMode      AnswerMode      `json:"answer_mode"`
	AllowedTypes    []AlphabetType  `json:"allowed_types"`
}

// Clone returns a copy that shares no slices with s.
func (s GameSettings) Clone() GameSettings {
	out := s
	out.AllowedTypes = append([]AlphabetType(nil), s.AllowedTypes...)
	return out
}

// Allows reports whether t is one of the allowed types.
func (s GameSettings) Allows(t AlphabetType) bool {
	for _, a := range s.AllowedTypes {
		if a == t {
			return true
		}
	}
	return false
}
