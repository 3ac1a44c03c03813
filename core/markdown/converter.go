// Package markdown converts HTML into compact Markdown.
// It configures html-to-markdown with rules tuned for email bodies headed
// to a language model: images vanish (which also covers tracking pixels),
// forced line breaks stay single newlines, and self-describing links are
// emitted as bare URLs instead of redundant bracket syntax.
package markdown

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// suppressedTags are removed with their entire subtree. Their rendered
// text, if any, is machine-generated noise, not authored content.
// nav, footer, aside, and form are deliberately kept: in email they often
// carry genuine authored text.
var suppressedTags = []string{"script", "style", "noscript", "template", "canvas", "svg"}

// HTMLConverter converts HTML to Markdown using a shared rule set.
// The underlying converter is immutable after construction and safe for
// concurrent use.
type HTMLConverter struct {
	conv *md.Converter
}

// New creates an HTMLConverter with the mailpipe rule set.
func New() *HTMLConverter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		CodeBlockStyle:   "fenced",
		Fence:            "```",
		BulletListMarker: "-",
		// No backslash-escaping of Markdown punctuation in text: escapes
		// cost tokens, and re-running the pipeline over its own output
		// must not mangle the syntax the first run produced.
		EscapeMode: "disabled",
	})

	conv.Remove(suppressedTags...)

	// Rules are tried in registration order, first match wins.
	conv.AddRules(
		md.Rule{
			Filter:      []string{"img"},
			Replacement: dropImage,
		},
		md.Rule{
			Filter:      []string{"br"},
			Replacement: singleNewline,
		},
		md.Rule{
			Filter:      []string{"a"},
			Replacement: compactLink,
		},
	)

	return &HTMLConverter{conv: conv}
}

// Convert turns HTML into Markdown. The output still needs the normalize
// stage: blank elements and pass-through wrappers can leave stray
// whitespace behind.
func (c *HTMLConverter) Convert(html string) (string, error) {
	return c.conv.ConvertString(html)
}

// dropImage renders every image to nothing. Inline images carry no value
// for a text consumer, and this also subsumes tracking-pixel removal
// without any dimension check.
func dropImage(content string, selec *goquery.Selection, opt *md.Options) *string {
	return md.String("")
}

// singleNewline renders a forced break as one newline instead of a
// paragraph-sized gap.
func singleNewline(content string, selec *goquery.Selection, opt *md.Options) *string {
	return md.String("\n")
}

// compactLink emits a bare URL when the link text already says the same
// thing as the destination, and plain [text](url) otherwise. Titles are
// never emitted.
func compactLink(content string, selec *goquery.Selection, opt *md.Options) *string {
	href, ok := selec.Attr("href")
	if !ok {
		return md.String(content)
	}

	text := strings.TrimSpace(content)
	if text == "" {
		return md.String("")
	}

	bare := strings.TrimPrefix(strings.TrimPrefix(href, "https://"), "http://")
	if text == href || text == bare {
		return md.String(href)
	}

	return md.String("[" + text + "](" + href + ")")
}
