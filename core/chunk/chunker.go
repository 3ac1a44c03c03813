// Package chunk splits normalized Markdown into token-sized chunks for
// embedding. It packs whole paragraphs until the budget is hit, splitting
// inside a paragraph only when a single paragraph exceeds the budget on
// its own. A simple whitespace tokenizer (words ≈ tokens) is good enough
// for sizing.
package chunk

import "strings"

const defaultChunkSize = 512

// Chunker splits text into token-budgeted chunks along paragraph
// boundaries.
type Chunker struct {
	ChunkSize int // number of tokens (words) per chunk
}

// New creates a Chunker with the given chunk size, defaulting to 512.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits the input text into chunks of at most ChunkSize words.
func (c *Chunker) Chunk(text string) []string {
	var chunks []string
	var current []string
	count := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current = nil
			count = 0
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		// Oversized paragraph: flush what we have and hard-split it.
		if len(words) > c.ChunkSize {
			flush()
			for i := 0; i < len(words); i += c.ChunkSize {
				end := min(i+c.ChunkSize, len(words))
				chunks = append(chunks, strings.Join(words[i:end], " "))
			}
			continue
		}

		if count+len(words) > c.ChunkSize {
			flush()
		}
		current = append(current, strings.Join(words, " "))
		count += len(words)
	}
	flush()

	return chunks
}
