// Package game implements the flashcard game state machine: step
// generation, scoring and termination for a single session.
package game

import (
	"errors"
	"strings"

	"github.com/vytor/thaiflash/internal/alphabet"
	"github.com/vytor/thaiflash/internal/models"
)

// Phase is the coarse lifecycle position of an Engine.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhaseFinished Phase = "finished"
)

// State is a point-in-time copy of everything an Engine exposes.
type State struct {
	Phase         Phase                 `json:"phase"`
	IsRunning     bool                  `json:"is_running"`
	IsFinished    bool                  `json:"is_finished"`
	CurrentStep   *models.Step          `json:"current_step"`
	History       []models.StepRecord   `json:"history"`
	Settings      models.GameSettings   `json:"settings"`
	CatalogSubset []models.AlphabetItem `json:"-"`
	FinishReason  FinishReason          `json:"finish_reason,omitempty"`
	TotalPoints   int                   `json:"total_points"`
}

// Summary is the score line of a game.
type Summary struct {
	Attempts     int          `json:"attempts"`
	Correct      int          `json:"correct"`
	Points       int          `json:"points"`
	FinishReason FinishReason `json:"finish_reason,omitempty"`
}

// Engine owns the state of exactly one game. It is not safe for
// concurrent use; callers serialize access per session.
type Engine struct {
	catalog []models.AlphabetItem
	gen     *StepGenerator
	policy  ScoringPolicy

	subset   []models.AlphabetItem
	running  bool
	finished bool
	current  *models.Step
	history  []models.StepRecord
	settings models.GameSettings
	reason   FinishReason
}

type Option func(*Engine)

// WithRandomSource replaces the default random source.
func WithRandomSource(rng RandomSource) Option {
	return func(e *Engine) { e.gen = NewStepGenerator(rng) }
}

func WithScoringPolicy(p ScoringPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// NewEngine returns an idle engine over catalog with default settings.
func NewEngine(catalog []models.AlphabetItem, opts ...Option) *Engine {
	e := &Engine{
		catalog:  catalog,
		gen:      NewStepGenerator(nil),
		policy:   DefaultScoringPolicy(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartGame replaces any prior state with a fresh run. A configuration
// that cannot produce a valid step leaves the engine finished with an
// empty history instead of failing.
func (e *Engine) StartGame(settings models.GameSettings) {
	e.settings = settings.Clone()
	e.subset = e.subsetFor(e.settings)
	e.history = nil
	e.current = nil
	e.reason = FinishNone

	if len(e.subset) == 0 {
		e.finish(FinishNoPlayableItems)
		return
	}
	if err := e.gen.CheckPlayable(e.subset, e.settings); err != nil {
		e.finish(FinishNoPlayableItems)
		return
	}
	step, err := e.gen.First(e.subset, e.settings)
	if err != nil {
		e.finish(FinishNoPlayableItems)
		return
	}

	e.current = &step
	e.running = true
	e.finished = false
}

// AttemptAnswer judges candidate against the current step. It does
// nothing when there is no current step.
func (e *Engine) AttemptAnswer(candidate models.AlphabetItem) {
	if e.current == nil {
		return
	}
	e.subset = e.subsetFor(e.settings)

	step := *e.current
	record := e.policy.Judge(step, candidate)
	e.history = append(e.history, record)

	if reason, done := e.policy.Termination(e.settings, len(e.subset), e.history, record); done {
		e.finish(reason)
		return
	}

	next, err := e.gen.Next(e.subset, e.settings, step, candidate, record.WasCorrect)
	switch {
	case err == nil:
		e.current = &next
	case errors.Is(err, ErrSequenceExhausted):
		e.finish(FinishCompleted)
	default:
		e.finish(FinishNoPlayableItems)
	}
}

// AttemptText resolves typed text against the playable items and judges
// it. Text that matches nothing is recorded as an incorrect attempt.
func (e *Engine) AttemptText(text string) {
	if e.current == nil {
		return
	}
	text = strings.TrimSpace(text)
	candidate, ok := alphabet.Lookup(e.subsetFor(e.settings), text)
	if !ok {
		candidate = models.AlphabetItem{Symbol: text, Type: models.AlphabetOther}
	}
	e.AttemptAnswer(candidate)
}

// EndGame returns the engine to idle. Settings and history stay readable
// until the next StartGame.
func (e *Engine) EndGame() {
	if e.running {
		e.reason = FinishAbandoned
	}
	e.running = false
	e.finished = false
	e.current = nil
}

func (e *Engine) finish(reason FinishReason) {
	e.running = false
	e.finished = true
	e.current = nil
	e.reason = reason
}

func (e *Engine) subsetFor(s models.GameSettings) []models.AlphabetItem {
	if s.ContentKind == models.ContentWord {
		return []models.AlphabetItem{}
	}
	return alphabet.FilterByTypes(e.catalog, s.AllowedTypes)
}

func (e *Engine) IsRunning() bool  { return e.running }
func (e *Engine) IsFinished() bool { return e.finished }

// CurrentStep returns a copy of the active step, or nil.
func (e *Engine) CurrentStep() *models.Step {
	if e.current == nil {
		return nil
	}
	step := e.current.Clone()
	return &step
}

func (e *Engine) History() []models.StepRecord {
	out := make([]models.StepRecord, len(e.history))
	for i, r := range e.history {
		r.Step = r.Step.Clone()
		out[i] = r
	}
	return out
}

func (e *Engine) Settings() models.GameSettings { return e.settings.Clone() }

func (e *Engine) CatalogSubset() []models.AlphabetItem {
	return append([]models.AlphabetItem(nil), e.subset...)
}

func (e *Engine) FinishReason() FinishReason { return e.reason }

func (e *Engine) TotalPoints() int { return TotalPoints(e.history) }

func (e *Engine) Phase() Phase {
	switch {
	case e.running:
		return PhaseRunning
	case e.finished:
		return PhaseFinished
	default:
		return PhaseIdle
	}
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() State {
	return State{
		Phase:         e.Phase(),
		IsRunning:     e.running,
		IsFinished:    e.finished,
		CurrentStep:   e.CurrentStep(),
		History:       e.History(),
		Settings:      e.Settings(),
		CatalogSubset: e.CatalogSubset(),
		FinishReason:  e.reason,
		TotalPoints:   e.TotalPoints(),
	}
}

func (e *Engine) Summary() Summary {
	return Summary{
		Attempts:     len(e.history),
		Correct:      CorrectCount(e.history),
		Points:       TotalPoints(e.history),
		FinishReason: e.reason,
	}
}
