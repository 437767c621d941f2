package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracelink/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show coverage statistics for the trace index",
	Long: `Prints aggregate coverage over the built index: linked symbol count,
total linked artifacts, average artifacts per symbol, and the breakdown
of edges by origin.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	repoRoot, err := resolveRepoRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLoggerFromConfig(repoRoot, cfg)

	engine, err := loadEngine(repoRoot, cfg, logger)
	if err != nil {
		return err
	}

	resp := &StatsResponse{Stats: engine.Coverage()}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
