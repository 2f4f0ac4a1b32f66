// thaiflash is a Thai alphabet flashcard game.
//
// Usage:
//
//	thaiflash serve           - Start the HTTP API
//	thaiflash play            - Play a quiz in the terminal
//	thaiflash catalog         - List the alphabet
//	thaiflash scores          - Show archived results
//
// Global flags:
//
//	--log-level <level>    - DEBUG, INFO, WARN or ERROR (default from LOG_LEVEL)
//	--log-format <format>  - pretty or json (default from LOG_FORMAT)
//	--db <path>            - Results database, empty disables the archive (default from DB_PATH)
//	--catalog <path>       - Alternative catalog YAML (default from CATALOG_PATH)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/thaiflash/internal/alphabet"
	"github.com/vytor/thaiflash/internal/config"
	"github.com/vytor/thaiflash/internal/db"
	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/models"
)

var (
	flagLogLevel  string
	flagLogFormat string
	flagDBPath    string
	flagCatalog   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "thaiflash",
	Short: "ThaiFlash - learn the Thai alphabet with flashcards",
	Long: `ThaiFlash quizzes you on Thai consonants, vowels, tone marks and signs.

Available commands:
  serve    - Start the HTTP API
  play     - Play a quiz in the terminal
  catalog  - List the alphabet
  scores   - View archived results

Examples:
  thaiflash serve
  thaiflash play --mode random --types consonant --level medium
  thaiflash catalog --type tone
  thaiflash scores --mode sequence --limit 5`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: pretty or json (overrides LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Results database path (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Catalog YAML path (overrides CATALOG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the environment and applies global flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath = flagCatalog
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogger(cfg config.Config) *logger.Logger {
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithOutput(os.Stderr),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	return log
}

func loadCatalog(cfg config.Config) ([]models.AlphabetItem, error) {
	if cfg.CatalogPath == "" {
		return alphabet.Default(), nil
	}
	return alphabet.Load(cfg.CatalogPath)
}

// openArchive returns nil when the archive is disabled.
func openArchive(cfg config.Config) (*db.DB, error) {
	if !cfg.ArchiveEnabled() {
		return nil, nil
	}
	return db.Open(cfg.DBPath)
}
