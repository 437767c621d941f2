package scan

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	"tracelink/internal/logging"
	"tracelink/internal/paths"
)

var (
	// Container: a class declaration; only containers whose name carries a
	// recognized suffix make the file a test file.
	containerPattern = regexp.MustCompile(`(?m)^\s*(?:(?:public|private|protected|internal|static|sealed|abstract|partial)\s+)*class\s+([A-Za-z_]\w*)`)

	// Member: a test-indicator attribute, optional further attributes, then
	// a method signature. Matched against whole file content because the
	// attribute and signature may span lines.
	testMemberPattern = regexp.MustCompile(`\[(?:Test|Fact|Theory|TestMethod|TestCase)[^\]]*\]\s*(?:\[[^\]]*\]\s*)*(?:(?:public|private|protected|internal|static|async|virtual|override)\s+)*[A-Za-z_][\w.<>\[\],?]*\s+([A-Za-z_]\w*)\s*\(`)
)

// ConventionScanner derives link candidates from test naming conventions:
// container "FooTests" implies subject "Foo".
type ConventionScanner struct {
	repoRoot string
	suffixes []string
	logger   *logging.Logger
}

// NewConventionScanner creates a convention scanner. suffixes are checked
// in order, so put longer suffixes first.
func NewConventionScanner(repoRoot string, suffixes []string, logger *logging.Logger) *ConventionScanner {
	return &ConventionScanner{
		repoRoot: repoRoot,
		suffixes: suffixes,
		logger:   logger,
	}
}

// ScanFiles scans the given repo-relative artifact files in order.
func (s *ConventionScanner) ScanFiles(files []string) []RawCandidate {
	var candidates []RawCandidate
	for _, file := range files {
		candidates = append(candidates, s.scanFile(file)...)
	}
	return candidates
}

func (s *ConventionScanner) scanFile(relPath string) []RawCandidate {
	data, err := os.ReadFile(paths.JoinRepoPath(s.repoRoot, relPath))
	if err != nil {
		s.logger.Warn("Skipping unreadable artifact file", map[string]interface{}{
			"file":  relPath,
			"error": err.Error(),
		})
		return nil
	}

	container, subject, ok := s.findContainer(data)
	if !ok {
		// Not a test file by definition.
		return nil
	}

	var candidates []RawCandidate
	for _, idx := range testMemberPattern.FindAllSubmatchIndex(data, -1) {
		member := string(data[idx[2]:idx[3]])
		// 1-based line of the match start; the attribute and signature may
		// span lines, so count newlines instead of rescanning per line.
		line := 1 + bytes.Count(data[:idx[0]], []byte("\n"))

		candidates = append(candidates, RawCandidate{
			Origin:            OriginConvention,
			SourceSymbol:      subject,
			ArtifactFile:      relPath,
			ArtifactMember:    member,
			ArtifactContainer: container,
			ArtifactLine:      line,
		})
	}
	return candidates
}

// findContainer returns the first container declaration whose name ends in
// a recognized suffix, plus the suffix-stripped subject.
func (s *ConventionScanner) findContainer(data []byte) (container, subject string, ok bool) {
	for _, m := range containerPattern.FindAllSubmatch(data, -1) {
		name := string(m[1])
		for _, suffix := range s.suffixes {
			if strings.HasSuffix(name, suffix) {
				stripped := strings.TrimSuffix(name, suffix)
				if stripped == "" {
					continue
				}
				return name, stripped, true
			}
		}
	}
	return "", "", false
}
