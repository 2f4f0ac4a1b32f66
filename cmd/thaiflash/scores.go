package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vytor/thaiflash/internal/models"
	"github.com/vytor/thaiflash/internal/repository/sqlite"
	"github.com/vytor/thaiflash/internal/services"
)

var (
	flagScoresMode  string
	flagScoresLevel string
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show archived results",
	Long: `Display the best archived games, highest points first.

Examples:
  thaiflash scores
  thaiflash scores --mode random --level hard
  thaiflash scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only sequence or random games")
	scoresCmd.Flags().StringVar(&flagScoresLevel, "level", "", "Only easy, medium or hard games")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	filter := models.ResultFilter{
		OrderingMode: models.OrderingMode(flagScoresMode),
		Difficulty:   models.Difficulty(flagScoresLevel),
		Limit:        flagScoresLimit,
	}
	if filter.OrderingMode != "" && !filter.OrderingMode.Valid() {
		return fmt.Errorf("unknown mode %q", flagScoresMode)
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return fmt.Errorf("unknown level %q", flagScoresLevel)
	}

	database, err := openArchive(cfg)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	if database == nil {
		return fmt.Errorf("results archive is disabled, set DB_PATH or --db")
	}
	defer database.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	scores := services.NewScoreService(sqlite.NewResultRepository(database.DB))
	board, err := scores.Leaderboard(ctx, filter)
	if err != nil {
		return err
	}
	summary, err := scores.Summary(ctx, filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores")
	fmt.Fprintln(out)
	if len(board.Results) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'thaiflash play' to set the first score!")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPOINTS\tCORRECT\tMODE\tLEVEL\tREASON\tDATE")
	for i, r := range board.Results {
		fmt.Fprintf(w, "%d\t%d\t%d/%d\t%s\t%s\t%s\t%s\n",
			i+1, r.Points, r.Correct, r.Attempts, r.OrderingMode, r.Difficulty, r.FinishReason,
			r.FinishedAt.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.1f  Accuracy: %.0f%%\n",
		summary.Games, summary.BestPoints, summary.AveragePoints, summary.Accuracy*100)
	return nil
}
