// Package batch provides input discovery for --all mode.
// It walks a directory tree collecting convertible documents, keeping
// traversal logic separate from the conversion pipeline.
package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// DiscoverAll finds every convertible file under root. Results come back
// sorted for stable processing order. A root that is itself a file is
// returned as a single-element list if convertible.
func DiscoverAll(root string) ([]string, error) {
	queue := NewQueue()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal for the batch.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && IsSkippedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsConvertible(path) {
			queue.Add(NormalizePath(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	paths := queue.All()
	sort.Strings(paths)
	return paths, nil
}
