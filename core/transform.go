package core

import (
	"github.com/gaurav-prasanna/mailpipe/core/markdown"
	"github.com/gaurav-prasanna/mailpipe/core/media"
	"github.com/gaurav-prasanna/mailpipe/core/normalize"
)

// The pipeline stages hold no per-call state, so single shared instances
// serve all callers without locking.
var (
	preprocessor = media.New()
	converter    = markdown.New()
	normalizer   = normalize.New()
)

// Transform converts an HTML document body into compact Markdown:
// media-URL and spacing-run rescue, then HTML→Markdown conversion, then
// text cleanup.
//
// It never fails past its boundary. Empty input is returned unchanged,
// and any conversion error or panic yields the original input verbatim:
// not losing the caller's data outranks always producing Markdown.
func Transform(html string) (out string) {
	if html == "" {
		return html
	}

	defer func() {
		if r := recover(); r != nil {
			out = html
		}
	}()

	rescued := preprocessor.Preprocess(html)
	rescued = normalize.FlattenSpacingRuns(rescued)

	converted, err := converter.Convert(rescued)
	if err != nil {
		return html
	}

	return normalizer.Normalize(converted)
}
