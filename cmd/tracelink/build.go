package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"tracelink/internal/config"
	"tracelink/internal/logging"
	"tracelink/internal/paths"
	"tracelink/internal/scan"
	"tracelink/internal/storage"
	"tracelink/internal/trace"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scan the repository and build the trace index",
	Long: `Scans configured source roots for explicit <tests> markers and artifact
roots for convention-named test containers, resolves convention subjects to
source files, and writes the resulting index to the snapshot path and the
edge store.

Examples:
  tracelink build
  tracelink build --repo ../myrepo --format json`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	// A TRACE.toml at the repo root overrides scan roots and suffixes.
	decl, err := scan.LoadDeclaration(repoRoot)
	if err != nil {
		logger.Warn("Ignoring unreadable TRACE.toml", map[string]interface{}{
			"error": err.Error(),
		})
	} else if decl != nil {
		decl.ApplyTo(&cfg.Scan)
		logger.Debug("Applied TRACE.toml scan declaration", nil)
	}

	started := time.Now()

	sourceFiles, err := listRoots(repoRoot, cfg.Scan.SourceRoots, paths.ListOptions{
		Extensions: cfg.Scan.SourceExtensions,
		Exclude:    cfg.Scan.Exclude,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to list source files: %w", err)
	}

	artifactFiles, err := listRoots(repoRoot, cfg.Scan.ArtifactRoots, paths.ListOptions{
		Extensions: cfg.Scan.SourceExtensions,
		Exclude:    cfg.Scan.Exclude,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to list artifact files: %w", err)
	}

	explicit := scan.NewExplicitScanner(repoRoot, cfg.Scan.LookaheadLines, logger).ScanFiles(sourceFiles)
	convention := scan.NewConventionScanner(repoRoot, cfg.Scan.ConventionSuffixes, logger).ScanFiles(artifactFiles)

	resolver := trace.NewResolver(sourceFiles, logger)
	idx := trace.NewBuilder(resolver, logger).Build(explicit, convention, len(sourceFiles), len(artifactFiles))

	snapshotPath := filepath.Join(repoRoot, filepath.FromSlash(cfg.Snapshot.Path))
	if err := trace.SaveSnapshot(snapshotPath, idx); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		return fmt.Errorf("failed to open edge store: %w", err)
	}
	defer db.Close()
	if err := storage.NewEdgeStore(db).SaveIndex(idx); err != nil {
		return fmt.Errorf("failed to persist edges: %w", err)
	}

	resp := &BuildResponse{
		RunID:         idx.Meta.RunID,
		SourceFiles:   idx.Meta.SourceFileCount,
		ArtifactFiles: idx.Meta.ArtifactFileCount,
		Symbols:       idx.Meta.SymbolCount,
		ArtifactKeys:  idx.Meta.ArtifactKeyCount,
		Edges:         idx.EdgeCount(),
		Warnings:      logger.WarnCount(),
		SnapshotPath:  cfg.Snapshot.Path,
		DurationMs:    time.Since(started).Milliseconds(),
	}

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// listRoots lists files under each configured root and returns merged
// repo-relative paths in sorted order. A configured root that does not
// exist is skipped (the defaults carry case variants like tests/Tests);
// an existing but unreadable root aborts the build.
func listRoots(repoRoot string, roots []string, opts paths.ListOptions, logger *logging.Logger) ([]string, error) {
	var all []string
	seen := make(map[string]bool)

	for _, root := range roots {
		dir := filepath.Join(repoRoot, filepath.FromSlash(root))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Debug("Skipping absent scan root", map[string]interface{}{
				"root": root,
			})
			continue
		}

		files, err := paths.ListFiles(dir, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			rel := path.Join(root, f)
			if !seen[rel] {
				seen[rel] = true
				all = append(all, rel)
			}
		}
	}

	sort.Strings(all)
	return all, nil
}
