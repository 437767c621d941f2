package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tracelink/internal/config"
	"tracelink/internal/export"
	"tracelink/internal/storage"
	"tracelink/internal/trace"
)

var (
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a compressed snapshot bundle",
	Long: `Exports the current index as a zstd-compressed JSON snapshot for
external consumers.

Examples:
  tracelink export
  tracelink export -o dist/trace.json.zst`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", ".tracelink/trace-index.json.zst", "Bundle output path (repo-relative)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	snapshotPath := filepath.Join(repoRoot, filepath.FromSlash(cfg.Snapshot.Path))
	idx, err := trace.LoadSnapshot(snapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if idx == nil {
		db, dbErr := storage.Open(repoRoot, logger)
		if dbErr != nil {
			return fmt.Errorf("failed to open edge store: %w", dbErr)
		}
		defer db.Close()
		idx, err = storage.NewEdgeStore(db).LoadIndex()
		if err != nil {
			return fmt.Errorf("failed to load edges: %w", err)
		}
	}
	if idx == nil {
		return fmt.Errorf("no trace index found; run 'tracelink build' first")
	}

	outPath := filepath.Join(repoRoot, filepath.FromSlash(exportOutput))
	if err := export.SnapshotBundle(outPath, idx, logger); err != nil {
		return err
	}

	resp := &ExportResponse{
		Path:    exportOutput,
		Symbols: len(idx.Forward),
		Edges:   idx.EdgeCount(),
	}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
