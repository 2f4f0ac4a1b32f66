package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vytor/thaiflash/internal/game"
	"github.com/vytor/thaiflash/internal/jobs"
	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository/memory"
	"github.com/vytor/thaiflash/internal/repository/sqlite"
	"github.com/vytor/thaiflash/internal/services"
	"github.com/vytor/thaiflash/internal/worker"
)

var (
	flagMode     string
	flagLevel    string
	flagLanguage string
	flagTypes    []string
	flagOptions  int
	flagInput    string
	flagSeed     uint64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz in the terminal",
	Long: `Play a flashcard quiz. Pick an option by its number, or type the
answer when --input is "input". Type "quit" to stop.

Modes:
  sequence - walk the alphabet in order, a wrong answer repeats the card
  random   - a random card every turn, 20 cards per game

Examples:
  thaiflash play
  thaiflash play --mode random --types consonant --level hard
  thaiflash play --types vowel --input input --language english
  thaiflash play --mode random --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Ordering: sequence or random")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Difficulty: easy, medium or hard")
	playCmd.Flags().StringVar(&flagLanguage, "language", "", "Prompt language: thai or english")
	playCmd.Flags().StringSliceVar(&flagTypes, "types", nil, "Alphabet types: consonant, vowel, tone, other")
	playCmd.Flags().IntVar(&flagOptions, "options", 0, "Number of options per card (2-10)")
	playCmd.Flags().StringVar(&flagInput, "input", "", "Answer mode: options or input")
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
}

// playOverrides maps only the flags the user set.
func playOverrides(cmd *cobra.Command) game.SettingsOverrides {
	var o game.SettingsOverrides
	flags := cmd.Flags()
	if flags.Changed("mode") {
		m := models.OrderingMode(flagMode)
		o.OrderingMode = &m
	}
	if flags.Changed("level") {
		d := models.Difficulty(flagLevel)
		o.Difficulty = &d
	}
	if flags.Changed("language") {
		l := models.DisplayLanguage(flagLanguage)
		o.DisplayLanguage = &l
	}
	if flags.Changed("types") {
		o.AllowedTypes = make([]models.AlphabetType, 0, len(flagTypes))
		for _, t := range flagTypes {
			o.AllowedTypes = append(o.AllowedTypes, models.AlphabetType(strings.TrimSpace(t)))
		}
	}
	if flags.Changed("options") {
		n := flagOptions
		o.OptionCount = &n
	}
	if flags.Changed("input") {
		a := models.AnswerMode(flagInput)
		o.AnswerMode = &a
	}
	return o
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	settings, err := game.BuildSettings(game.DefaultSettings(), playOverrides(cmd))
	if err != nil {
		return fmt.Errorf("invalid game settings: %w", err)
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	var queue jobs.ResultQueue
	database, err := openArchive(cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
		pool := worker.NewPool(1, 1)
		pool.Start(context.Background())
		defer pool.Stop()
		queue = jobs.NewWorkerQueue(pool, sqlite.NewResultRepository(database.DB))
	}

	newSource := game.NewRandomSource
	if flagSeed != 0 {
		newSource = func() game.RandomSource { return game.NewSeededSource(flagSeed) }
	}
	games := services.NewGameService(catalog, memory.NewSessionRepository(1), queue, newSource)

	q := &quiz{games: games, in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}
	view, err := q.run(cmd.Context(), settings)
	if err != nil {
		return err
	}
	log.Debug("play finished: reason=%s, points=%d", view.FinishReason, view.TotalPoints)
	return nil
}

// quiz drives one game over a line-based terminal.
type quiz struct {
	games services.GameService
	in    *bufio.Scanner
	out   io.Writer
}

func (q *quiz) run(ctx context.Context, settings models.GameSettings) (*services.SessionView, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	view, err := q.games.Start(ctx, settings)
	if err != nil {
		return nil, err
	}
	if view.NoPlayableItems {
		fmt.Fprintln(q.out, "Not enough characters for these settings. Try fewer options or more types.")
		return view, nil
	}

	id := view.ID
	for view.IsRunning {
		step := view.CurrentStep
		q.render(step, settings.DisplayLanguage)

		fmt.Fprint(q.out, "> ")
		if !q.in.Scan() {
			view, err = q.games.End(ctx, id)
			if err != nil {
				return nil, err
			}
			break
		}
		line := strings.TrimSpace(q.in.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			view, err = q.games.End(ctx, id)
			if err != nil {
				return nil, err
			}
			break
		}

		next, err := q.answer(ctx, id, step, line)
		if err != nil {
			fmt.Fprintf(q.out, "  %v\n", err)
			continue
		}
		view = next
		q.feedback(view.LastAttempt, settings.OrderingMode, view.IsRunning)
	}

	q.summary(view)
	return view, nil
}

// answer treats a number as an option pick in options mode and anything
// else as typed text.
func (q *quiz) answer(ctx context.Context, id string, step *models.Step, line string) (*services.SessionView, error) {
	if step.AnswerMode == models.AnswerMultipleChoice {
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(step.Options) {
			return q.games.Attempt(ctx, id, step.Options[n-1].Symbol)
		}
	}
	return q.games.AttemptText(ctx, id, line)
}

func (q *quiz) render(step *models.Step, lang models.DisplayLanguage) {
	fmt.Fprintln(q.out)
	fmt.Fprintf(q.out, "  %s   (%d points)\n", promptLabel(step.Prompt, lang), step.PointsAtStake)
	if step.AnswerMode != models.AnswerMultipleChoice {
		return
	}
	for i, opt := range step.Options {
		fmt.Fprintf(q.out, "  %d) %s\n", i+1, optionLabel(opt, lang))
	}
}

// feedback reports the last attempt. A sequence card that is about to be
// retried keeps its answer hidden.
func (q *quiz) feedback(rec *models.StepRecord, mode models.OrderingMode, running bool) {
	if rec == nil {
		return
	}
	if rec.WasCorrect {
		fmt.Fprintf(q.out, "  Correct! +%d\n", rec.PointsAwarded)
		return
	}
	if mode == models.ModeSequence && running {
		fmt.Fprintln(q.out, "  Not quite, try again.")
		return
	}
	fmt.Fprintf(q.out, "  Not quite, that was %s.\n", describe(rec.Prompt))
}

func (q *quiz) summary(view *services.SessionView) {
	s := view.Summary
	fmt.Fprintln(q.out)
	fmt.Fprintf(q.out, "Game over (%s)\n", s.FinishReason)
	fmt.Fprintf(q.out, "  Correct: %d/%d\n", s.Correct, s.Attempts)
	fmt.Fprintf(q.out, "  Points:  %d\n", s.Points)
}

// promptLabel shows the card face: the glyph in native mode, its
// transliterated name otherwise.
func promptLabel(item models.AlphabetItem, lang models.DisplayLanguage) string {
	if lang == models.LanguageTransliterated {
		if name := item.TransliteratedName(); name != "" {
			return name
		}
	}
	return item.Symbol
}

// optionLabel shows the opposite side of the card from the prompt.
func optionLabel(item models.AlphabetItem, lang models.DisplayLanguage) string {
	if lang == models.LanguageTransliterated {
		return item.Symbol
	}
	if name := item.TransliteratedName(); name != "" {
		return name
	}
	return item.Symbol
}

func describe(item models.AlphabetItem) string {
	if name := item.TransliteratedName(); name != "" {
		return fmt.Sprintf("%s (%s)", item.Symbol, name)
	}
	return item.Symbol
}

