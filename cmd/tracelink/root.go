package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tracelink/internal/config"
	"tracelink/internal/logging"
	"tracelink/internal/paths"
	"tracelink/internal/version"
)

var (
	// repoFlag is the CLI --repo flag value
	repoFlag string

	// formatFlag is the CLI --format flag value
	formatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "tracelink",
	Short: "tracelink - code-to-test traceability index",
	Long: `tracelink builds a bidirectional traceability index between source symbols
and test artifacts, using explicit inline <tests> markers and naming-convention
inference, and serves symbol/artifact lookups, coverage stats, and link validation
over the built index.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("tracelink version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root to operate on")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human", "Output format: json or human")
}

// resolveRepoRoot turns the --repo flag into an absolute path
func resolveRepoRoot() (string, error) {
	abs, err := filepath.Abs(repoFlag)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repo root: %w", err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return "", fmt.Errorf("repo root %s is not a directory", abs)
	}
	return abs, nil
}

// newLoggerFromConfig builds the operator logger from the loaded config,
// honoring the TRACELINK_LOG_LEVEL override the same way the config
// file sets it. Output goes to stderr and is teed into the repo log
// file so 'tracelink log' can replay past runs.
func newLoggerFromConfig(repoRoot string, cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if env := os.Getenv("TRACELINK_LOG_LEVEL"); env != "" {
		level = env
	}

	var output io.Writer = os.Stderr
	logPath := paths.LogPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			output = io.MultiWriter(os.Stderr, f)
		}
	}

	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(level),
		Output: output,
	})
}

// outputFormat validates and returns the --format flag
func outputFormat() (OutputFormat, error) {
	switch OutputFormat(formatFlag) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatHuman:
		return FormatHuman, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use json or human)", formatFlag)
}
