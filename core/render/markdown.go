// Package render provides output renderers for the mailpipe pipeline.
// This file implements the Markdown renderer, which is a simple passthrough
// since normalized Markdown is already the canonical pipeline format.
package render

import (
	"github.com/gaurav-prasanna/mailpipe/core"
)

// MarkdownRenderer writes Markdown as-is, with a trailing newline so the
// file ends cleanly.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes.
func (r *MarkdownRenderer) Render(markdown string, meta core.DocMetadata) ([]byte, error) {
	if markdown == "" {
		return []byte{}, nil
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
