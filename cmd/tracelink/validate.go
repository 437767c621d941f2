package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracelink/internal/config"
	"tracelink/internal/query"
)

var (
	validateTargets string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate link targets against a known-valid target set",
	Long: `Classifies every edge target in the index as valid, broken, or warning.
Documentation targets (*.md) are normalized and checked against the docs
list in the targets manifest. Test artifact targets are checked against
the tests list when present; without one they are reported as warnings,
since no file-existence oracle was supplied.

Examples:
  tracelink validate --targets targets.yaml
  tracelink validate`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateTargets, "targets", "", "YAML manifest of known-valid targets")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	targets := &query.ValidTargets{}
	if validateTargets != "" {
		targets, err = query.LoadTargetsFile(validateTargets)
		if err != nil {
			return err
		}
	}

	resp := &ValidateResponse{Result: engine.ValidateLinks(targets)}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
