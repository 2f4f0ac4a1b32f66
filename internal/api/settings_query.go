package api

import (
	"net/url"
	"strconv"

	"github.com/vytor/thaiflash/internal/errors"
	"github.com/vytor/thaiflash/internal/game"
	"github.com/vytor/thaiflash/internal/models"
)

// Query keys for deep-linking a game configuration.
const (
	queryContentKind   = "type"
	queryMode          = "mode"
	queryLevel         = "level"
	queryLanguage      = "language-mode"
	queryOptionCount   = "number-options"
	queryInputMode     = "input-mode"
	queryAlphabetTypes = "alphabet-type"
)

// settingsRequest is the wire shape of a game configuration, shared by the
// JSON body and the query string.
type settingsRequest struct {
	ContentKind   string   `json:"type" validate:"omitempty,oneof=alphabet word"`
	Mode          string   `json:"mode" validate:"omitempty,oneof=sequence random"`
	Level         string   `json:"level" validate:"omitempty,oneof=easy medium hard"`
	LanguageMode  string   `json:"language-mode" validate:"omitempty,oneof=thai english"`
	NumberOptions *int     `json:"number-options" validate:"omitempty,min=2,max=10"`
	InputMode     string   `json:"input-mode" validate:"omitempty,oneof=options input"`
	AlphabetTypes []string `json:"alphabet-type" validate:"omitempty,dive,oneof=consonant vowel tone other"`
}

func (req settingsRequest) overrides() game.SettingsOverrides {
	var o game.SettingsOverrides
	if req.ContentKind != "" {
		k := models.ContentKind(req.ContentKind)
		o.ContentKind = &k
	}
	if req.Mode != "" {
		m := models.OrderingMode(req.Mode)
		o.OrderingMode = &m
	}
	if req.Level != "" {
		d := models.Difficulty(req.Level)
		o.Difficulty = &d
	}
	if req.LanguageMode != "" {
		l := models.DisplayLanguage(req.LanguageMode)
		o.DisplayLanguage = &l
	}
	o.OptionCount = req.NumberOptions
	if req.InputMode != "" {
		a := models.AnswerMode(req.InputMode)
		o.AnswerMode = &a
	}
	if req.AlphabetTypes != nil {
		o.AllowedTypes = make([]models.AlphabetType, len(req.AlphabetTypes))
		for i, t := range req.AlphabetTypes {
			o.AllowedTypes[i] = models.AlphabetType(t)
		}
	}
	return o
}

// settings validates req and applies it on top of the defaults.
func (req settingsRequest) settings() (models.GameSettings, error) {
	if err := validateStruct(req); err != nil {
		return models.GameSettings{}, err
	}
	s, err := game.BuildSettings(game.DefaultSettings(), req.overrides())
	if err != nil {
		fields := map[string]string{}
		for _, fe := range game.FieldErrors(err) {
			fields[fe.Field] = fe.Reason
		}
		return models.GameSettings{}, errors.NewFieldsValidationError(fields, err)
	}
	return s, nil
}

// ParseSettingsQuery builds validated settings from query parameters.
// Missing keys keep their default; alphabet-type may repeat.
func ParseSettingsQuery(values url.Values) (models.GameSettings, error) {
	req := settingsRequest{
		ContentKind:  values.Get(queryContentKind),
		Mode:         values.Get(queryMode),
		Level:        values.Get(queryLevel),
		LanguageMode: values.Get(queryLanguage),
		InputMode:    values.Get(queryInputMode),
	}
	if raw := values.Get(queryOptionCount); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.GameSettings{}, errors.NewValidationError(queryOptionCount, "must be a whole number")
		}
		req.NumberOptions = &n
	}
	if types, ok := values[queryAlphabetTypes]; ok {
		req.AlphabetTypes = types
	}
	return req.settings()
}

// EncodeSettingsQuery is the inverse of ParseSettingsQuery.
func EncodeSettingsQuery(s models.GameSettings) url.Values {
	v := url.Values{}
	v.Set(queryContentKind, string(s.ContentKind))
	v.Set(queryMode, string(s.OrderingMode))
	v.Set(queryLevel, string(s.Difficulty))
	v.Set(queryLanguage, string(s.DisplayLanguage))
	v.Set(queryOptionCount, strconv.Itoa(s.OptionCount))
	v.Set(queryInputMode, string(s.AnswerMode))
	for _, t := range s.AllowedTypes {
		v.Add(queryAlphabetTypes, string(t))
	}
	return v
}
