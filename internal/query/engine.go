// Package query provides the read side of the traceability index: symbol
// and artifact lookups, coverage statistics, and link validation.
package query

import (
	"tracelink/internal/logging"
	"tracelink/internal/scan"
	"tracelink/internal/trace"
)

// Engine answers queries against the store's current index snapshot.
// Lookups are plain map reads; the snapshot is immutable, so concurrent
// callers need no locking.
type Engine struct {
	store  *trace.Store
	logger *logging.Logger
}

// NewEngine creates a query engine over the given store
func NewEngine(store *trace.Store, logger *logging.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// CoverageStats summarizes how much of the indexed symbol surface has
// linked test artifacts
type CoverageStats struct {
	TotalSymbols          int            `json:"totalSymbols"`
	TotalArtifacts        int            `json:"totalArtifacts"`
	AvgArtifactsPerSymbol float64        `json:"avgArtifactsPerSymbol"`
	OriginBreakdown       map[string]int `json:"originBreakdown"`
}

// LookupArtifactsForSymbol returns the edges recorded for a source
// symbol. A miss is a normal result, reported through ok, not an error.
func (e *Engine) LookupArtifactsForSymbol(symbol string) ([]trace.LinkEdge, bool) {
	idx := e.store.Current()
	if idx == nil {
		return nil, false
	}
	edges, ok := idx.Forward[symbol]
	return edges, ok
}

// LookupSymbolsForArtifact returns the edges recorded for an artifact
// key ("Container.Member", falling back to the artifact filename stem)
func (e *Engine) LookupSymbolsForArtifact(artifactKey string) ([]trace.LinkEdge, bool) {
	idx := e.store.Current()
	if idx == nil {
		return nil, false
	}
	edges, ok := idx.Reverse[artifactKey]
	return edges, ok
}

// Coverage computes aggregate statistics over the current index.
// The average is defined as 0 when no symbols are indexed.
func (e *Engine) Coverage() CoverageStats {
	stats := CoverageStats{
		OriginBreakdown: map[string]int{
			string(scan.OriginExplicit):   0,
			string(scan.OriginConvention): 0,
		},
	}

	idx := e.store.Current()
	if idx == nil {
		return stats
	}

	stats.TotalSymbols = len(idx.Forward)
	for _, edges := range idx.Forward {
		stats.TotalArtifacts += len(edges)
		for _, edge := range edges {
			stats.OriginBreakdown[string(edge.Origin)]++
		}
	}
	if stats.TotalSymbols > 0 {
		stats.AvgArtifactsPerSymbol = float64(stats.TotalArtifacts) / float64(stats.TotalSymbols)
	}

	return stats
}
