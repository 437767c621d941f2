package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracelink/internal/config"
)

var symbolCmd = &cobra.Command{
	Use:   "symbol <name>",
	Short: "List test artifacts linked to a source symbol",
	Long: `Looks up a source symbol by exact name in the forward index and prints
its linked test artifacts.

Examples:
  tracelink symbol Dispatcher
  tracelink symbol IFoo --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbol,
}

func init() {
	rootCmd.AddCommand(symbolCmd)
}

func runSymbol(cmd *cobra.Command, args []string) error {
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

	edges, found := engine.LookupArtifactsForSymbol(args[0])
	resp := &LookupResponse{Query: args[0], Found: found, Edges: edges}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
