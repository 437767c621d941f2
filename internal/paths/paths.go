// Package paths provides path canonicalization and the file listing
// service consumed by the scanners. Scanners never walk the tree
// themselves; they operate on ordered path lists produced here.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CanonicalizePath converts an absolute path to a repo-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to repo root
// - Converts backslashes to forward slashes
func CanonicalizePath(absolutePath string, repoRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	repoRootResolved, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			repoRootResolved = repoRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(repoRootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// NormalizePath normalizes a path by converting backslashes to forward slashes
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// JoinRepoPath joins a repo root with a canonical path
func JoinRepoPath(repoRoot string, canonicalPath string) string {
	normalizedPath := strings.ReplaceAll(canonicalPath, "\\", "/")
	parts := strings.Split(normalizedPath, "/")
	return filepath.Join(append([]string{repoRoot}, parts...)...)
}

// Stem returns the filename without directory or extension.
// "src/IDispatcher.cs" -> "IDispatcher"
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LogPath returns the operator log file path under the repo root.
func LogPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".tracelink", "logs", "tracelink.log")
}

// ListOptions controls file listing.
type ListOptions struct {
	// Extensions filters files by extension (with leading dot). Empty means all.
	Extensions []string

	// Exclude lists directory names skipped during traversal.
	// Dot-directories are always skipped.
	Exclude []string
}

// ListFiles walks root and returns repo-relative file paths in sorted order.
// Sorting makes downstream first-match resolution deterministic.
// An unreadable root is the only fatal condition; unreadable subtrees are
// skipped.
func ListFiles(root string, opts ListOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("listing %s: not a directory", root)
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable entries, keep walking
		}

		if info.IsDir() {
			name := info.Name()
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			for _, ex := range opts.Exclude {
				if name == ex {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if len(opts.Extensions) > 0 {
			ext := strings.ToLower(filepath.Ext(path))
			matched := false
			for _, want := range opts.Extensions {
				if ext == strings.ToLower(want) {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
