// Package input implements document acquisition for the CLI.
// It reads raw markup from a file path (or stdin via "-") and sniffs
// whether the content is actually HTML, so the caller can pass non-HTML
// documents through untouched instead of mangling them.
package input

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/mailpipe/core"
)

// maxDocumentSize guards against accidentally feeding a multi-gigabyte
// file through several full-text regex passes.
const maxDocumentSize = 32 << 20 // 32 MiB

// htmlTagPattern matches common HTML tags for content sniffing.
var htmlTagPattern = regexp.MustCompile(`(?i)<\s*(p|div|span|a|br|img|table|h[1-6]|ul|ol|li|strong|em|b|i|code|pre|blockquote|iframe|body)[^>]*>`)

// Reader loads raw documents from disk or stdin.
type Reader struct {
	stdin io.Reader
}

// New creates a Reader. Stdin is read when the path is "-".
func New() *Reader {
	return &Reader{stdin: os.Stdin}
}

// Read loads the document at path and returns it with HTML sniffing
// applied. A path of "-" reads stdin.
func (r *Reader) Read(path string) (*core.RawDocument, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(io.LimitReader(r.stdin, maxDocumentSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return nil, fmt.Errorf("reading %s: %w", path, statErr)
		}
		if info.Size() > maxDocumentSize {
			return nil, fmt.Errorf("%s is %d bytes, above the %d byte limit", path, info.Size(), maxDocumentSize)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("stdin input above the %d byte limit", maxDocumentSize)
	}

	content := string(data)
	return &core.RawDocument{
		Path:   path,
		HTML:   content,
		IsHTML: IsHTML(content),
	}, nil
}

// IsHTML reports whether content appears to contain HTML markup.
func IsHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}
