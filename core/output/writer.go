// Package output handles file naming and writing for mailpipe outputs.
// In single-file mode the output name is derived from the input filename.
// In batch mode, outputs mirror the input tree's directory structure.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes output for single-file mode.
// Filename: input basename with the renderer's extension
// (e.g. newsletter.html → newsletter.md). Stdin input becomes stdin.ext.
func (w *Writer) WriteOnly(inputPath string, data []byte, ext string) (string, error) {
	name := baseName(inputPath)
	path := filepath.Join(w.OutputDir, name+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes output for batch mode, mirroring the input tree.
// Example: root=inbox, input=inbox/2024/mail.html → <out>/2024/mail.md
func (w *Writer) WriteAll(root, inputPath string, data []byte, ext string) (string, error) {
	rel, err := filepath.Rel(root, inputPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		// Input outside the root, or the root is the file itself:
		// fall back to a flat name.
		rel = filepath.Base(inputPath)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	fullPath := filepath.Join(w.OutputDir, rel+ext)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", filepath.Dir(fullPath), err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// baseName strips the directory and extension from an input path,
// mapping stdin ("-") to a usable name.
func baseName(inputPath string) string {
	if inputPath == "-" {
		return "stdin"
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
