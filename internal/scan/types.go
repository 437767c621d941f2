// Package scan extracts raw link candidates from source and test trees.
// It is pure text scanning: regex over line windows, no AST, no compiler
// toolchain. Candidates are transient; the trace package turns them into
// the long-lived index.
package scan

// Origin tags where a link candidate came from.
type Origin string

const (
	// OriginExplicit marks links declared via an inline <tests> marker.
	OriginExplicit Origin = "Explicit"
	// OriginConvention marks links inferred from test naming conventions.
	OriginConvention Origin = "Convention"
)

// SymbolKind classifies a matched declaration.
type SymbolKind string

const (
	KindInterface SymbolKind = "Interface"
	KindClass     SymbolKind = "Class"
	KindStruct    SymbolKind = "Struct"
	KindRecord    SymbolKind = "Record"
	KindEnum      SymbolKind = "Enum"
	KindMethod    SymbolKind = "Method"
	KindProperty  SymbolKind = "Property"
)

// RawCandidate is one potential link discovered by a scanner, before
// resolution. Discarded once the index is built.
type RawCandidate struct {
	Origin Origin

	// Source side. Convention candidates carry only the inferred subject;
	// the resolver fills in the file.
	SourceSymbol string
	SourceType   SymbolKind
	SourceFile   string
	SourceLine   int // 1-based, 0 when unknown

	// Artifact side.
	ArtifactFile      string
	ArtifactMember    string
	ArtifactContainer string
	ArtifactLine      int // 1-based, 0 when unknown
}
