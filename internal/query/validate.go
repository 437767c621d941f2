package query

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidTargets is the caller-supplied oracle of known-good link targets.
// Docs holds normalized documentation targets. Tests holds artifact file
// paths; when nil, no file-existence oracle was supplied and test edges
// are classified as warnings instead of hard pass/fail.
type ValidTargets struct {
	Docs  map[string]bool
	Tests map[string]bool
}

// targetsFile is the YAML shape of a validate targets manifest
type targetsFile struct {
	Docs  []string `yaml:"docs"`
	Tests []string `yaml:"tests"`
}

// ValidationDetail records the classification of a single edge target
type ValidationDetail struct {
	Symbol string `json:"symbol"`
	Target string `json:"target"`
	Status string `json:"status"` // valid | broken | warning
	Reason string `json:"reason,omitempty"`
}

// ValidationResult aggregates a validation pass over the index
type ValidationResult struct {
	ValidCount   int                `json:"validCount"`
	BrokenCount  int                `json:"brokenCount"`
	WarningCount int                `json:"warningCount"`
	Details      []ValidationDetail `json:"details"`
}

// versionPrefixPattern matches leading version segments like "v1.2/" or
// "v2/" in documentation targets
var versionPrefixPattern = regexp.MustCompile(`^v\d+(?:\.\d+)*/`)

// NormalizeDocTarget strips version-prefix path segments and a trailing
// ".md" so doc targets compare equal across doc-site layouts
func NormalizeDocTarget(target string) string {
	for versionPrefixPattern.MatchString(target) {
		target = versionPrefixPattern.ReplaceAllString(target, "")
	}
	return strings.TrimSuffix(target, ".md")
}

// LoadTargetsFile reads a YAML manifest of known-valid targets.
// Doc entries are normalized on load.
func LoadTargetsFile(path string) (*ValidTargets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	var tf targetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse targets file: %w", err)
	}

	targets := &ValidTargets{Docs: make(map[string]bool)}
	for _, d := range tf.Docs {
		targets.Docs[NormalizeDocTarget(d)] = true
	}
	if tf.Tests != nil {
		targets.Tests = make(map[string]bool, len(tf.Tests))
		for _, t := range tf.Tests {
			targets.Tests[t] = true
		}
	}
	return targets, nil
}

// ValidateLinks classifies every edge target in the current index
// against the supplied valid-target sets. Targets ending in ".md" are
// documentation links checked against Docs; all other targets are test
// artifacts checked against Tests when an oracle is present, otherwise
// reported as warnings. A mismatch becomes a structured broken detail,
// never an error.
func (e *Engine) ValidateLinks(targets *ValidTargets) ValidationResult {
	result := ValidationResult{Details: []ValidationDetail{}}

	idx := e.store.Current()
	if idx == nil {
		return result
	}

	symbols := make([]string, 0, len(idx.Forward))
	for symbol := range idx.Forward {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		for _, edge := range idx.Forward[symbol] {
			target := edge.Artifact.File
			detail := ValidationDetail{Symbol: symbol, Target: target}

			switch {
			case strings.HasSuffix(target, ".md"):
				if targets != nil && targets.Docs[NormalizeDocTarget(target)] {
					detail.Status = "valid"
				} else {
					detail.Status = "broken"
					detail.Reason = "doc target not in valid-target set"
				}
			case targets != nil && targets.Tests != nil:
				if targets.Tests[target] {
					detail.Status = "valid"
				} else {
					detail.Status = "broken"
					detail.Reason = "test artifact not in valid-target set"
				}
			default:
				detail.Status = "warning"
				detail.Reason = "no existence oracle supplied for test artifacts"
			}

			switch detail.Status {
			case "valid":
				result.ValidCount++
			case "broken":
				result.BrokenCount++
			default:
				result.WarningCount++
			}
			result.Details = append(result.Details, detail)
		}
	}

	return result
}
