package models

import "strings"

// AlphabetType classifies a catalog entry.
type AlphabetType string

const (
	AlphabetConsonant AlphabetType = "consonant"
	AlphabetVowel     AlphabetType = "vowel"
	AlphabetTone      AlphabetType = "tone"
	AlphabetOther     AlphabetType = "other"
)

// AllAlphabetTypes lists every type in display order.
var AllAlphabetTypes = []AlphabetType{AlphabetConsonant, AlphabetVowel, AlphabetTone, AlphabetOther}

func (t AlphabetType) Valid() bool {
	switch t {
	case AlphabetConsonant, AlphabetVowel, AlphabetTone, AlphabetOther:
		return true
	}
	return false
}

// AlphabetItem is an immutable catalog entry. Symbol is its identity.
type AlphabetItem struct {
	Symbol                string       `json:"symbol" yaml:"symbol"`
	Type                  AlphabetType `json:"type" yaml:"type"`
	Order                 int          `json:"order" yaml:"order"`
	TransliterationPrefix string       `json:"transliteration_prefix,omitempty" yaml:"transliteration_prefix"`
	Transliteration       string       `json:"transliteration,omitempty" yaml:"transliteration"`
	DescriptionPrefix     string       `json:"description_prefix,omitempty" yaml:"description_prefix"`
	Description           string       `json:"description,omitempty" yaml:"description"`
	Meaning               string       `json:"meaning,omitempty" yaml:"meaning"`
	ConsonantClass        string       `json:"consonant_class,omitempty" yaml:"consonant_class"`
	ImageRef              string       `json:"image_ref,omitempty" yaml:"image"`
}

// TransliteratedName joins the transliteration parts, e.g. "gaw gai".
func (a AlphabetItem) TransliteratedName() string {
	return joinNonEmpty(a.TransliterationPrefix, a.Transliteration, " ")
}

// NativeName joins the native description parts, e.g. "กอไก่".
func (a AlphabetItem) NativeName() string {
	return joinNonEmpty(a.DescriptionPrefix, a.Description, "")
}

func joinNonEmpty(a, b, sep string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + sep + b
}
