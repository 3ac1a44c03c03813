// Package batch — file filtering rules.
// Provides helpers to decide which files in a tree are worth converting
// and to normalize paths for deduplication.
package batch

import (
	"path/filepath"
	"strings"
)

// convertibleExtensions are the file extensions batch mode picks up.
var convertibleExtensions = map[string]bool{
	".html":  true,
	".htm":   true,
	".xhtml": true,
}

// skippedDirs are directory names never descended into.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// IsConvertible checks if a path points to a document batch mode should
// convert.
func IsConvertible(path string) bool {
	return convertibleExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSkippedDir checks if a directory should be pruned from the walk.
// Hidden directories (dot-prefixed) are skipped too.
func IsSkippedDir(name string) bool {
	if skippedDirs[name] {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// NormalizePath makes a path absolute and clean for deduplication.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
