package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracelink/internal/config"
)

var artifactCmd = &cobra.Command{
	Use:   "artifact <key>",
	Short: "List source symbols linked to a test artifact",
	Long: `Looks up an artifact key ("Container.Member", or "FileStem.Member" when
the artifact has no container) in the reverse index and prints the source
symbols it exercises.

Examples:
  tracelink artifact DispatcherTests.Send_RoutesToCorrectReceptorAsync
  tracelink artifact FooTests.Foo_Works --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runArtifact,
}

func init() {
	rootCmd.AddCommand(artifactCmd)
}

func runArtifact(cmd *cobra.Command, args []string) error {
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

	edges, found := engine.LookupSymbolsForArtifact(args[0])
	resp := &LookupResponse{Query: args[0], Found: found, Edges: edges}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
