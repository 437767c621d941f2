package trace

import (
	"sort"
	"strings"

	"tracelink/internal/logging"
	"tracelink/internal/paths"
)

// Resolver maps an inferred convention subject to zero-or-one source file.
// The predicate is a single OR over three name conditions — exact stem,
// "I"-prefixed stem, stem containing the subject — and the first file in
// traversal order satisfying any of them wins. No scoring. The input list
// is sorted once up front so "first" is deterministic.
type Resolver struct {
	files   []string
	stems   []string
	stemPos map[string]int
	logger  *logging.Logger
}

// NewResolver builds the filename index over the supplied source files.
func NewResolver(sourceFiles []string, logger *logging.Logger) *Resolver {
	files := append([]string(nil), sourceFiles...)
	sort.Strings(files)

	stems := make([]string, len(files))
	stemPos := make(map[string]int, len(files))
	for i, f := range files {
		stems[i] = paths.Stem(f)
		if _, seen := stemPos[stems[i]]; !seen {
			stemPos[stems[i]] = i
		}
	}

	return &Resolver{
		files:   files,
		stems:   stems,
		stemPos: stemPos,
		logger:  logger,
	}
}

// Resolve returns the first matching source file for subject, or false.
// Zero matches are expected and tolerated; the caller drops the candidate.
func (r *Resolver) Resolve(subject string) (string, bool) {
	if subject == "" {
		return "", false
	}

	// Exact-stem positions come from the index; the substring scan only has
	// to run up to the earliest exact hit.
	best := -1
	if i, ok := r.stemPos[subject]; ok {
		best = i
	}
	if i, ok := r.stemPos["I"+subject]; ok && (best < 0 || i < best) {
		best = i
	}

	limit := len(r.stems)
	if best >= 0 {
		limit = best
	}
	for i := 0; i < limit; i++ {
		if strings.Contains(r.stems[i], subject) {
			best = i
			break
		}
	}

	if best < 0 {
		r.logger.Debug("Convention subject did not resolve", map[string]interface{}{
			"subject": subject,
		})
		return "", false
	}
	return r.files[best], true
}

// FileCount returns the size of the filename index.
func (r *Resolver) FileCount() int {
	return len(r.files)
}
