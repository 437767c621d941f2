// Package trace builds and holds the bidirectional traceability index:
// forward (symbol → artifacts) and reverse (artifact → symbols). An index
// is built once per generation run and never mutated after publication.
package trace

import (
	"time"

	"tracelink/internal/paths"
	"tracelink/internal/scan"
)

// SourceRef identifies a code-level symbol.
type SourceRef struct {
	File   string          `json:"file"`
	Line   int             `json:"line,omitempty"`
	Symbol string          `json:"symbol"`
	Kind   scan.SymbolKind `json:"kind,omitempty"`
}

// ArtifactRef identifies a test method or documentation location.
type ArtifactRef struct {
	File      string `json:"file"`
	Member    string `json:"member"`
	Container string `json:"container,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// LinkEdge is the atomic fact recorded: one symbol↔artifact link with its
// provenance.
type LinkEdge struct {
	Source   SourceRef   `json:"source"`
	Artifact ArtifactRef `json:"artifact"`
	Origin   scan.Origin `json:"origin"`
}

// Metadata summarizes one generation run.
type Metadata struct {
	RunID             string    `json:"runId"`
	GeneratedAt       time.Time `json:"generatedAt"`
	SourceFileCount   int       `json:"sourceFileCount"`
	ArtifactFileCount int       `json:"artifactFileCount"`
	SymbolCount       int       `json:"symbolCount"`
	ArtifactKeyCount  int       `json:"artifactKeyCount"`
}

// Index is the built traceability index. Consumers treat it as read-only;
// rebuilds produce a fresh instance swapped in via Store.
type Index struct {
	Forward map[string][]LinkEdge `json:"forward"`
	Reverse map[string][]LinkEdge `json:"reverse"`
	Meta    Metadata              `json:"metadata"`

	// edges preserves global first-discovered insertion order for
	// persistence; per-key order inside Forward/Reverse is what queries see.
	edges []LinkEdge
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Forward: make(map[string][]LinkEdge),
		Reverse: make(map[string][]LinkEdge),
	}
}

// ArtifactKey computes the stable composite key for an artifact:
// (container, falling back to the artifact filename stem) + "." + member.
// Keys are case-sensitive exact-match strings.
func ArtifactKey(a ArtifactRef) string {
	container := a.Container
	if container == "" {
		container = paths.Stem(a.File)
	}
	return container + "." + a.Member
}

// Insert appends edge to both directions, skipping a list when it already
// holds an edge with the same artifact (file, member). Explicit candidates
// are inserted before Convention ones, so on cross-scanner rediscovery the
// Explicit edge wins.
func (idx *Index) Insert(edge LinkEdge) {
	key := ArtifactKey(edge.Artifact)

	insertedForward := false
	if !containsArtifact(idx.Forward[edge.Source.Symbol], edge.Artifact) {
		idx.Forward[edge.Source.Symbol] = append(idx.Forward[edge.Source.Symbol], edge)
		insertedForward = true
	}

	insertedReverse := false
	if !containsArtifact(idx.Reverse[key], edge.Artifact) {
		idx.Reverse[key] = append(idx.Reverse[key], edge)
		insertedReverse = true
	}

	if insertedForward || insertedReverse {
		idx.edges = append(idx.edges, edge)
	}
}

// Edges returns all inserted edges in global first-discovered order.
func (idx *Index) Edges() []LinkEdge {
	return idx.edges
}

// EdgeCount returns the total number of forward edges.
func (idx *Index) EdgeCount() int {
	n := 0
	for _, edges := range idx.Forward {
		n += len(edges)
	}
	return n
}

func containsArtifact(edges []LinkEdge, a ArtifactRef) bool {
	for _, e := range edges {
		if e.Artifact.File == a.File && e.Artifact.Member == a.Member {
			return true
		}
	}
	return false
}
