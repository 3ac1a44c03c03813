package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	require.NotNil(t, New())
}

func TestUnwrapRedirects(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "wrapped link decodes to destination",
			input:    "See https://nam04.safelinks.protection.outlook.com/?url=https%3A%2F%2Fexample.com%2Fdocs&data=05%7C01&reserved=0 for details",
			expected: "See https://example.com/docs for details",
		},
		{
			name:     "wrapped link inside markdown syntax",
			input:    "[docs](https://eur01.safelinks.protection.outlook.com/?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3D1&reserved=0)",
			expected: "[docs](https://example.com/a?b=1)",
		},
		{
			name:     "malformed percent encoding is left untouched",
			input:    "https://nam04.safelinks.protection.outlook.com/?url=https%ZZbroken&reserved=0",
			expected: "https://nam04.safelinks.protection.outlook.com/?url=https%ZZbroken&reserved=0",
		},
		{
			name:     "plus signs survive decoding",
			input:    "https://nam04.safelinks.protection.outlook.com/?url=https%3A%2F%2Fexample.com%2Fa%2Bb",
			expected: "https://example.com/a+b",
		},
		{
			name:     "ordinary URLs are not touched",
			input:    "https://example.com/?url=https%3A%2F%2Felsewhere.com",
			expected: "https://example.com/?url=https%3A%2F%2Felsewhere.com",
		},
		{
			name:     "two wrapped links in one line",
			input:    "a https://x.safelinks.protection.outlook.com/?url=https%3A%2F%2Fone.example b https://y.safelinks.protection.outlook.com/?url=https%3A%2F%2Ftwo.example c",
			expected: "a https://one.example b https://two.example c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnwrapRedirects(tt.input))
		})
	}
}

func TestStripInvisible(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"zero-width space", "a​b", "ab"},
		{"zero-width joiner and non-joiner", "a‍‌b", "ab"},
		{"byte order mark", "\uFEFFhello", "hello"},
		{"soft hyphen", "hy­phen", "hyphen"},
		{"directional marks", "a‎‏‪‬b", "ab"},
		{"word joiner", "a⁠b", "ab"},
		{"combining grapheme joiner", "a͏b", "ab"},
		{"visible text untouched", "déjà vu — naïve", "déjà vu — naïve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripInvisible(tt.input))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ascii space runs collapse",
			input:    "a     b",
			expected: "a b",
		},
		{
			name:     "tabs collapse with spaces",
			input:    "a \t \t b",
			expected: "a b",
		},
		{
			name:     "non-breaking spaces collapse",
			input:    "a   b",
			expected: "a b",
		},
		{
			name:     "mixed unicode space runs collapse together",
			input:    "a     　b",
			expected: "a b",
		},
		{
			name:     "em space pathological run",
			input:    "a" + strings.Repeat(" ", 150) + "b",
			expected: "a b",
		},
		{
			name:     "blank lines collapse to at most one",
			input:    "one\n\n\n\n\ntwo",
			expected: "one\n\ntwo",
		},
		{
			name:     "paragraphs stay separate",
			input:    "one\n\ntwo",
			expected: "one\n\ntwo",
		},
		{
			name:     "lines are trimmed",
			input:    "  hello  \n\t world\t",
			expected: "hello\nworld",
		},
		{
			name:     "leading and trailing blank lines removed",
			input:    "\n\n\nbody\n\n\n",
			expected: "body",
		},
		{
			name:     "whitespace only becomes empty",
			input:    "  \t\n   \n\n",
			expected: "",
		},
		{
			name:     "ideographic space unified",
			input:    "你　　好",
			expected: "你 好",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseWhitespace(tt.input))
		})
	}
}

func TestFlattenSpacingRuns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "entity run becomes marker",
			input:    "a" + strings.Repeat("&nbsp;", 150) + "b",
			expected: "ab",
		},
		{
			name:     "numeric entity run becomes marker",
			input:    "a" + strings.Repeat("&#160;", 120) + "b",
			expected: "ab",
		},
		{
			name:     "literal non-breaking space run becomes marker",
			input:    "a" + strings.Repeat(" ", 150) + "b",
			expected: "ab",
		},
		{
			name:     "mixed entities and spaces count as one run",
			input:    "a" + strings.Repeat("&nbsp; ", 60) + "b",
			expected: "ab",
		},
		{
			name:     "run between block tags",
			input:    "<p>a</p>" + strings.Repeat("&nbsp;", 150) + "<p>b</p>",
			expected: "<p>a</p><p>b</p>",
		},
		{
			name:     "short runs are left for the converter",
			input:    "a&nbsp;&nbsp;&nbsp;b",
			expected: "a&nbsp;&nbsp;&nbsp;b",
		},
		{
			name:     "ordinary markup untouched",
			input:    "<p>hello world</p>",
			expected: "<p>hello world</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FlattenSpacingRuns(tt.input))
		})
	}
}

func TestCollapseWhitespace_SpacingRunMarker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "marker becomes a space",
			input:    "ab",
			expected: "a b",
		},
		{
			name:     "marker absorbs surrounding whitespace",
			input:    "a\n\n\n\nb",
			expected: "a b",
		},
		{
			name:     "consecutive markers collapse together",
			input:    "a   b",
			expected: "a b",
		},
		{
			name:     "marker at text boundary trims away",
			input:    "hello",
			expected: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseWhitespace(tt.input))
		})
	}
}

func TestNormalize_PassOrdering(t *testing.T) {
	// A wrapped link padded with invisible characters and exotic spaces
	// exercises all three passes in sequence.
	n := New()
	input := "Click​ here:  https://nam04.safelinks.protection.outlook.com/?url=https%3A%2F%2Fexample.com&reserved=0   now"

	out := n.Normalize(input)

	assert.Equal(t, "Click here: https://example.com now", out)
}

func TestNormalize_Properties(t *testing.T) {
	inputs := []string{
		"plain text",
		"a ​ b\n\n\n\nc",
		strings.Repeat(" ", 500) + "x" + strings.Repeat(" ", 300),
		"one\ntwo\n\n\nthree \t four",
	}

	n := New()
	for _, in := range inputs {
		out := n.Normalize(in)

		assert.NotContains(t, out, "  ", "no run of two or more spaces")
		assert.NotContains(t, out, "\n\n\n", "no run of three or more newlines")
		assert.NotContains(t, out, " ")
		assert.NotContains(t, out, " ")
		assert.NotContains(t, out, "​")

		// Idempotence: a second pass changes nothing.
		assert.Equal(t, out, n.Normalize(out))
	}
}
