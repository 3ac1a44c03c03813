package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mailpipe/core"
)

const sampleMarkdown = `# Monthly update

Intro paragraph with a [report](https://example.com/report).

## Numbers

- revenue up
- costs down

` + "```\ntotals = sum(rows)\n```"

func TestJSONRenderer_Render(t *testing.T) {
	r := NewJSONRenderer()
	meta := core.DocMetadata{
		Source:     "inbox/update.html",
		Title:      "Monthly update",
		InputBytes: 2048,
	}

	data, err := r.Render(sampleMarkdown, meta)
	require.NoError(t, err)

	var doc core.DocJSON
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "inbox/update.html", doc.Metadata.Source)
	assert.Equal(t, 2048, doc.Metadata.InputBytes)
	assert.Equal(t, len(sampleMarkdown), doc.Metadata.OutputBytes)

	require.Len(t, doc.Structure.Headings, 2)
	assert.Equal(t, core.Heading{Level: 1, Text: "Monthly update"}, doc.Structure.Headings[0])
	assert.Equal(t, core.Heading{Level: 2, Text: "Numbers"}, doc.Structure.Headings[1])

	require.Len(t, doc.Structure.Links, 1)
	assert.Equal(t, "report", doc.Structure.Links[0].Text)
	assert.Equal(t, "https://example.com/report", doc.Structure.Links[0].Href)

	assert.Equal(t, 1, doc.Structure.CodeBlocks)
	assert.Equal(t, 2, doc.Structure.Lists)

	require.Len(t, doc.Content.Sections, 2)
	assert.Equal(t, "Monthly update", doc.Content.Sections[0].Heading)
	assert.Contains(t, doc.Content.Sections[0].Text, "Intro paragraph")
	assert.Contains(t, doc.Content.Text, "report")
	assert.NotContains(t, doc.Content.Text, "](")
}

func TestJSONRenderer_NoHeadings(t *testing.T) {
	r := NewJSONRenderer()

	data, err := r.Render("just a short note", core.DocMetadata{})
	require.NoError(t, err)

	var doc core.DocJSON
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Nil(t, doc.Content.Sections)
	assert.Equal(t, "just a short note", doc.Content.Text)
}

func TestMarkdownRenderer_Render(t *testing.T) {
	r := NewMarkdownRenderer()

	out, err := r.Render("# Hi", core.DocMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "# Hi\n", string(out))

	out, err = r.Render("", core.DocMetadata{})
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Equal(t, ".md", r.Extension())
}
