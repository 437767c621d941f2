package trace

import (
	"time"

	"github.com/google/uuid"

	"tracelink/internal/logging"
	"tracelink/internal/scan"
)

// Builder merges resolved candidates into an Index. It is the sole
// stateful stage of a build pass; the scanners and resolver are pure with
// respect to the index.
type Builder struct {
	resolver *Resolver
	logger   *logging.Logger
}

// NewBuilder creates a builder over the given resolver.
func NewBuilder(resolver *Resolver, logger *logging.Logger) *Builder {
	return &Builder{
		resolver: resolver,
		logger:   logger,
	}
}

// Build merges candidates into a fresh index. Explicit candidates are
// processed first so their edges sort ahead of Convention edges whenever
// both exist for a symbol. Convention candidates whose subject does not
// resolve are dropped.
func (b *Builder) Build(explicit, convention []scan.RawCandidate, sourceFileCount, artifactFileCount int) *Index {
	idx := NewIndex()

	for _, c := range explicit {
		idx.Insert(LinkEdge{
			Source: SourceRef{
				File:   c.SourceFile,
				Line:   c.SourceLine,
				Symbol: c.SourceSymbol,
				Kind:   c.SourceType,
			},
			Artifact: ArtifactRef{
				File:      c.ArtifactFile,
				Member:    c.ArtifactMember,
				Container: c.ArtifactContainer,
			},
			Origin: scan.OriginExplicit,
		})
	}

	dropped := 0
	for _, c := range convention {
		sourceFile, ok := b.resolver.Resolve(c.SourceSymbol)
		if !ok {
			dropped++
			continue
		}

		idx.Insert(LinkEdge{
			Source: SourceRef{
				File:   sourceFile,
				Symbol: c.SourceSymbol,
			},
			Artifact: ArtifactRef{
				File:      c.ArtifactFile,
				Member:    c.ArtifactMember,
				Container: c.ArtifactContainer,
				Line:      c.ArtifactLine,
			},
			Origin: scan.OriginConvention,
		})
	}

	if dropped > 0 {
		b.logger.Debug("Dropped unresolvable convention candidates", map[string]interface{}{
			"count": dropped,
		})
	}

	idx.Meta = Metadata{
		RunID:             uuid.New().String(),
		GeneratedAt:       time.Now().UTC(),
		SourceFileCount:   sourceFileCount,
		ArtifactFileCount: artifactFileCount,
		SymbolCount:       len(idx.Forward),
		ArtifactKeyCount:  len(idx.Reverse),
	}

	return idx
}
