package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// defaultConfigPath is used when neither --config nor TRIGRAM_CONFIG is set.
const defaultConfigPath = "./trigram.json"

var (
	configPath string
	logLevel   string

	// cfg and logger are set by the root command before any subcommand runs.
	cfg    *Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "trigram",
	Short:             "Train a trigram word model and generate text from it",
	Long:              "Downloads or reads a body of text, trains an order-3 word model on it, and samples new word sequences.",
	Version:           fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the JSON config file (default $TRIGRAM_CONFIG or "+defaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env, the config file and the logger.
func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load(".env")

	path := configPath
	if path == "" {
		path = os.Getenv("TRIGRAM_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath
	}

	var err error
	cfg, err = LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Server.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger = newLogger(cmd.ErrOrStderr(), level)
	logger.Debug("Configuration loaded", slog.String("path", path))
	return nil
}

// newLogger builds a text logger at the named level, tagged with a fresh run id.
func newLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)})
	return slog.New(handler).With(slog.String("run_id", uuid.New().String()))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
