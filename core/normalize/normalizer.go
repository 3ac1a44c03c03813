// Package normalize repairs artifacts the Markdown conversion leaves
// behind in email bodies: tracking-wrapped links, invisible formatting
// characters, and runs of exotic Unicode whitespace that a naive \s
// collapse never sees.
//
// Every pass is a pure string transform; passes compose by strict
// sequential application.
package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// spacingRunMarker stands in for a pathological spacing run while the
// text passes through the Markdown converter. The converter collapses or
// discards whitespace-only text wholesale, so the run has to be rescued
// in the raw markup and carried through as something the converter keeps.
// Private-use codepoint; CollapseWhitespace turns it, and any whitespace
// around it, into a single space.
const spacingRunMarker = "\uE000"

// Pre-compiled patterns shared across calls.
var (
	// Pathological spacing runs as they appear in raw markup: hundreds
	// of consecutive &nbsp; entities or space characters, the common
	// email-signature artifact.
	rawSpacingRunPattern = regexp.MustCompile(`(?i)(?:&nbsp;|&#160;|&#xa0;|[\s\p{Zs}]){100,}`)

	markerRunPattern = regexp.MustCompile(`\s*(?:` + spacingRunMarker + `\s*)+`)

	// Outlook Safe Links wrap the real destination in a url= query
	// parameter on a *.safelinks.protection.outlook.com host.
	safeLinkPattern = regexp.MustCompile(`https?://[A-Za-z0-9.-]*safelinks\.protection\.outlook\.com/[^\s<>()\[\]]*[?&]url=([^&\s<>()\[\]]+)[^\s<>()\[\]]*`)

	// Unicode format characters (category Cf: zero-width joiners,
	// directional marks, BOM, word joiner, soft hyphen, ...) plus
	// U+034F COMBINING GRAPHEME JOINER, which is invisible but
	// classified as a combining mark rather than a format character.
	invisiblePattern = regexp.MustCompile("[\\p{Cf}͏]")

	// Pathological whitespace runs, a common email-signature artifact:
	// hundreds of consecutive spacing characters collapse to one space.
	longRunPattern = regexp.MustCompile(`\s{100,}`)

	spaceRunPattern  = regexp.MustCompile(`[ \t]+`)
	twoSpacesPattern = regexp.MustCompile(` {2,}`)
)

// TextNormalizer applies the post-conversion cleanup passes.
type TextNormalizer struct{}

// New creates a TextNormalizer.
func New() *TextNormalizer {
	return &TextNormalizer{}
}

// Normalize runs the passes in their required order:
// unwrap redirects, strip invisibles, collapse whitespace.
func (n *TextNormalizer) Normalize(text string) string {
	text = UnwrapRedirects(text)
	text = StripInvisible(text)
	return CollapseWhitespace(text)
}

// FlattenSpacingRuns replaces pathological spacing runs in raw markup
// with spacingRunMarker. It runs before conversion: a run of &nbsp;
// entities sitting between two block elements becomes a whitespace-only
// text node that the converter throws away, taking the word separation
// with it. The marker is ordinary text, so the converter keeps it, and
// CollapseWhitespace resolves it to a single space afterwards.
func FlattenSpacingRuns(html string) string {
	return rawSpacingRunPattern.ReplaceAllString(html, spacingRunMarker)
}

// UnwrapRedirects replaces every Safe-Links-wrapped URL with its decoded
// destination. It operates on plain text, so wrapped links are unwrapped
// whether or not they sit inside []() syntax. A destination that fails
// percent-decoding leaves the original matched text untouched.
func UnwrapRedirects(text string) string {
	return safeLinkPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := safeLinkPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		// PathUnescape rather than QueryUnescape: a literal + in the
		// destination must survive the round trip.
		dest, err := url.PathUnescape(groups[1])
		if err != nil {
			return match
		}
		return dest
	})
}

// StripInvisible removes every format-category character and the
// combining grapheme joiner. Removal is unconditional: nothing about the
// character alone distinguishes intentional use from copy-paste debris.
func StripInvisible(text string) string {
	return invisiblePattern.ReplaceAllString(text, "")
}

// CollapseWhitespace unifies all Unicode space separators into ASCII
// spaces and collapses the result. Unification must happen before any
// collapsing, or mixed runs of different space characters will not
// collapse together.
func CollapseWhitespace(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, text)

	// Markers planted by FlattenSpacingRuns absorb surrounding
	// whitespace: the collapsed run separates words, never paragraphs.
	text = markerRunPattern.ReplaceAllString(text, " ")

	text = longRunPattern.ReplaceAllString(text, " ")

	// Per-line: collapse space/tab runs, trim the ends.
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimSpace(spaceRunPattern.ReplaceAllString(line, " "))
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	// Joining can make spaces adjacent that per-line processing could
	// not see, so one more collapse over the assembled text.
	text = strings.Join(out, "\n")
	text = twoSpacesPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
