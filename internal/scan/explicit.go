package scan

import (
	"os"
	"regexp"
	"strings"

	"tracelink/internal/logging"
	"tracelink/internal/paths"
)

// Marker payload: ARTIFACT_FILE:ARTIFACT_MEMBER, exactly two parts.
var testsMarkerPattern = regexp.MustCompile(`<tests>([^<]*)</tests>`)

// ExplicitScanner finds inline <tests> markers and pairs each with the
// nearest following declaration.
type ExplicitScanner struct {
	repoRoot  string
	lookahead int
	logger    *logging.Logger
}

// NewExplicitScanner creates an explicit marker scanner.
// lookahead is the declaration search window after a marker line.
func NewExplicitScanner(repoRoot string, lookahead int, logger *logging.Logger) *ExplicitScanner {
	return &ExplicitScanner{
		repoRoot:  repoRoot,
		lookahead: lookahead,
		logger:    logger,
	}
}

// ScanFiles scans the given repo-relative files in order. Malformed
// markers and unresolvable symbols are warned and skipped; a failure on
// one file never aborts the rest.
func (s *ExplicitScanner) ScanFiles(files []string) []RawCandidate {
	var candidates []RawCandidate
	for _, file := range files {
		candidates = append(candidates, s.scanFile(file)...)
	}
	return candidates
}

func (s *ExplicitScanner) scanFile(relPath string) []RawCandidate {
	data, err := os.ReadFile(paths.JoinRepoPath(s.repoRoot, relPath))
	if err != nil {
		s.logger.Warn("Skipping unreadable source file", map[string]interface{}{
			"file":  relPath,
			"error": err.Error(),
		})
		return nil
	}

	lines := strings.Split(string(data), "\n")

	var candidates []RawCandidate
	for i, line := range lines {
		for _, m := range testsMarkerPattern.FindAllStringSubmatch(line, -1) {
			payload := strings.TrimSpace(m[1])
			parts := strings.Split(payload, ":")
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				s.logger.Warn("Malformed tests marker", map[string]interface{}{
					"file":    relPath,
					"line":    i + 1,
					"payload": payload,
				})
				continue
			}

			decl, declIdx, ok := ExtractDeclaration(lines, i+1, s.lookahead)
			if !ok {
				s.logger.Warn("No declaration found after tests marker", map[string]interface{}{
					"file": relPath,
					"line": i + 1,
				})
				continue
			}

			candidates = append(candidates, RawCandidate{
				Origin:         OriginExplicit,
				SourceSymbol:   decl.Name,
				SourceType:     decl.Kind,
				SourceFile:     relPath,
				SourceLine:     declIdx + 1,
				ArtifactFile:   paths.NormalizePath(strings.TrimSpace(parts[0])),
				ArtifactMember: strings.TrimSpace(parts[1]),
			})
		}
	}
	return candidates
}
