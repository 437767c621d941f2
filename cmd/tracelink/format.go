package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"tracelink/internal/query"
	"tracelink/internal/trace"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// BuildResponse is the result of a build run
type BuildResponse struct {
	RunID         string `json:"runId"`
	SourceFiles   int    `json:"sourceFiles"`
	ArtifactFiles int    `json:"artifactFiles"`
	Symbols       int    `json:"symbols"`
	ArtifactKeys  int    `json:"artifactKeys"`
	Edges         int    `json:"edges"`
	Warnings      int64  `json:"warnings"`
	SnapshotPath  string `json:"snapshotPath"`
	DurationMs    int64  `json:"durationMs"`
}

// LookupResponse is the result of a symbol or artifact lookup
type LookupResponse struct {
	Query string           `json:"query"`
	Found bool             `json:"found"`
	Edges []trace.LinkEdge `json:"edges,omitempty"`
}

// StatsResponse wraps coverage statistics
type StatsResponse struct {
	Stats query.CoverageStats `json:"stats"`
}

// ValidateResponse wraps a validation pass result
type ValidateResponse struct {
	Result query.ValidationResult `json:"result"`
}

// ExportResponse is the result of an export run
type ExportResponse struct {
	Path    string `json:"path"`
	Symbols int    `json:"symbols"`
	Edges   int    `json:"edges"`
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *BuildResponse:
		return formatBuildHuman(v), nil
	case *LookupResponse:
		return formatLookupHuman(v), nil
	case *StatsResponse:
		return formatStatsHuman(v), nil
	case *ValidateResponse:
		return formatValidateHuman(v), nil
	case *ExportResponse:
		return formatExportHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatBuildHuman(resp *BuildResponse) string {
	var b strings.Builder

	b.WriteString("Trace index built\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString(fmt.Sprintf("  Run:            %s\n", resp.RunID))
	b.WriteString(fmt.Sprintf("  Source files:   %d\n", resp.SourceFiles))
	b.WriteString(fmt.Sprintf("  Artifact files: %d\n", resp.ArtifactFiles))
	b.WriteString(fmt.Sprintf("  Symbols:        %d\n", resp.Symbols))
	b.WriteString(fmt.Sprintf("  Artifact keys:  %d\n", resp.ArtifactKeys))
	b.WriteString(fmt.Sprintf("  Edges:          %d\n", resp.Edges))
	if resp.Warnings > 0 {
		b.WriteString(fmt.Sprintf("  Warnings:       %d (see log)\n", resp.Warnings))
	}
	b.WriteString(fmt.Sprintf("  Snapshot:       %s\n", resp.SnapshotPath))
	b.WriteString(fmt.Sprintf("  Duration:       %dms\n", resp.DurationMs))

	return b.String()
}

func formatLookupHuman(resp *LookupResponse) string {
	if !resp.Found {
		return fmt.Sprintf("No entries for %q\n", resp.Query)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%q: %d linked entries\n", resp.Query, len(resp.Edges)))
	for _, edge := range resp.Edges {
		target := edge.Artifact.File
		if edge.Artifact.Line > 0 {
			target = fmt.Sprintf("%s:%d", target, edge.Artifact.Line)
		}
		source := edge.Source.File
		if edge.Source.Line > 0 {
			source = fmt.Sprintf("%s:%d", source, edge.Source.Line)
		}
		b.WriteString(fmt.Sprintf("  [%s] %s (%s) -> %s %s\n",
			edge.Origin, edge.Source.Symbol, source, target, edge.Artifact.Member))
	}
	return b.String()
}

func formatStatsHuman(resp *StatsResponse) string {
	var b strings.Builder
	s := resp.Stats

	b.WriteString("Coverage\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString(fmt.Sprintf("  Symbols with links:   %d\n", s.TotalSymbols))
	b.WriteString(fmt.Sprintf("  Linked artifacts:     %d\n", s.TotalArtifacts))
	b.WriteString(fmt.Sprintf("  Artifacts per symbol: %.2f\n", s.AvgArtifactsPerSymbol))
	b.WriteString("  By origin:\n")
	for _, origin := range []string{"Explicit", "Convention"} {
		b.WriteString(fmt.Sprintf("    %-11s %d\n", origin+":", s.OriginBreakdown[origin]))
	}
	return b.String()
}

func formatValidateHuman(resp *ValidateResponse) string {
	var b strings.Builder
	r := resp.Result

	b.WriteString(fmt.Sprintf("Validation: %d valid, %d broken, %d warnings\n",
		r.ValidCount, r.BrokenCount, r.WarningCount))
	for _, d := range r.Details {
		if d.Status == "valid" {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-7s %s -> %s", d.Status, d.Symbol, d.Target))
		if d.Reason != "" {
			b.WriteString(" (" + d.Reason + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatExportHuman(resp *ExportResponse) string {
	return fmt.Sprintf("Exported %d symbols (%d edges) to %s\n",
		resp.Symbols, resp.Edges, resp.Path)
}
