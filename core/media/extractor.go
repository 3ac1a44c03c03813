// Package media rescues source URLs from embedded-media elements before
// Markdown conversion. The converter drops <iframe>, <object>, <embed>,
// <video>, and <audio> subtrees entirely, so this stage rewrites each of
// them into a plain paragraph holding only the element's address, which
// survives conversion as ordinary text.
//
// The rewrite is a raw string transform on purpose: it runs before any
// parsing, and input it does not recognize must come out byte-identical,
// which a parse/serialize round trip cannot guarantee for malformed markup.
package media

import (
	"fmt"
	"regexp"
)

// mediaTag pairs a tag name with its address attribute
// (src for iframe/embed/video/audio, data for object).
type mediaTag struct {
	tag    string
	attr   string
	paired *regexp.Regexp // <tag ...>...</tag>
	single *regexp.Regexp // <tag .../> or bare void usage
}

// mediaTags is evaluated in order; paired forms are rewritten before
// self-closing forms so an opening tag is never consumed away from its
// closing tag.
var mediaTags = buildMediaTags()

func buildMediaTags() []mediaTag {
	specs := []struct{ tag, attr string }{
		{"iframe", "src"},
		{"object", "data"},
		{"embed", "src"},
		{"video", "src"},
		{"audio", "src"},
	}

	tags := make([]mediaTag, 0, len(specs))
	for _, s := range specs {
		// The address attribute may appear anywhere in the tag, in either
		// quote style, but must be quoted and non-empty. A leading \s keeps
		// look-alikes such as data-src from matching.
		attrPat := fmt.Sprintf(`[^>]*\s%s\s*=\s*(?:"([^"]+)"|'([^']+)')[^>]*`, s.attr)
		tags = append(tags, mediaTag{
			tag:    s.tag,
			attr:   s.attr,
			paired: regexp.MustCompile(fmt.Sprintf(`(?is)<%s\b%s>.*?</%s\s*>`, s.tag, attrPat, s.tag)),
			single: regexp.MustCompile(fmt.Sprintf(`(?is)<%s\b%s/?>`, s.tag, attrPat)),
		})
	}
	return tags
}

// Extractor rewrites media elements into URL paragraphs.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Preprocess replaces every recognizable media element with <p>URL</p>.
// Elements without an address attribute, and anything else it does not
// match, pass through untouched. It never fails.
func (e *Extractor) Preprocess(html string) string {
	for _, mt := range mediaTags {
		// Exactly one of the two capture groups is non-empty, depending on
		// which quote style matched.
		html = mt.paired.ReplaceAllString(html, "<p>$1$2</p>")
		html = mt.single.ReplaceAllString(html, "<p>$1$2</p>")
	}
	return html
}
