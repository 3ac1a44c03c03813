// Package render — JSON renderer.
// Builds the structured JSON report from normalized Markdown and document
// metadata: plain text, heading-delimited sections, link inventory, and
// structural counts. Useful for checking what a conversion kept and what
// it saved.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/mailpipe/core"
)

// JSONRenderer produces a structured JSON report from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts Markdown and metadata into the report structure.
func (r *JSONRenderer) Render(markdown string, meta core.DocMetadata) ([]byte, error) {
	meta.OutputBytes = len(markdown)

	headings := extractHeadings(markdown)
	doc := core.DocJSON{
		Metadata: meta,
		Content: core.DocContent{
			Text:     stripMarkdown(markdown),
			Markdown: markdown,
			Sections: buildSections(markdown, headings),
		},
		Structure: core.DocStructure{
			Headings:   headings,
			Links:      extractLinks(markdown),
			CodeBlocks: strings.Count(markdown, "```") / 2,
			Tables:     len(tableRowPattern.FindAllString(markdown, -1)),
			Lists:      len(listItemPattern.FindAllString(markdown, -1)),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- Markdown parsing helpers ---

var (
	headingPattern = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	// linkPattern matches Markdown links [text](url); bare URLs are
	// already self-describing and are not inventoried separately.
	linkPattern     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	tableRowPattern = regexp.MustCompile(`(?m)^\|[-:| ]+\|$`)
	listItemPattern = regexp.MustCompile(`(?m)^[\s]*[-*]\s|^[\s]*\d+\.\s`)
	emphasisPattern = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	inlinePattern   = regexp.MustCompile("`([^`]+)`")
)

func extractHeadings(md string) []core.Heading {
	matches := headingPattern.FindAllStringSubmatch(md, -1)
	headings := make([]core.Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, core.Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

func extractLinks(md string) []core.Link {
	matches := linkPattern.FindAllStringSubmatch(md, -1)
	links := make([]core.Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, core.Link{
			Text: m[1],
			Href: m[2],
		})
	}
	return links
}

// buildSections splits the Markdown into heading-delimited sections.
func buildSections(md string, headings []core.Heading) []core.Section {
	if len(headings) == 0 {
		return nil
	}

	sections := make([]core.Section, 0, len(headings))
	headingIdx := 0

	var current *core.Section
	var body []string

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(body, "\n"))
			sections = append(sections, *current)
		}
	}

	for _, line := range strings.Split(md, "\n") {
		if headingPattern.MatchString(line) && headingIdx < len(headings) {
			flush()
			current = &core.Section{
				Heading: headings[headingIdx].Text,
				Level:   headings[headingIdx].Level,
			}
			body = nil
			headingIdx++
		} else if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// stripMarkdown removes common Markdown formatting to produce plain text.
func stripMarkdown(md string) string {
	text := headingPattern.ReplaceAllString(md, "$2")
	text = emphasisPattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "```", "")
	text = inlinePattern.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
