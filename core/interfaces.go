// Package core defines the pipeline interfaces for mailpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

// RawDocument holds the raw markup and source metadata from the reader.
type RawDocument struct {
	Path   string
	HTML   string
	IsHTML bool
}

// DocMetadata holds metadata about a converted document.
type DocMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	InputBytes  int    `json:"input_bytes"`
	OutputBytes int    `json:"output_bytes"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocContent holds the text and structured content of a document.
type DocContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// DocStructure holds structural metadata parsed from the content.
type DocStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// DocJSON is the complete JSON output for a single document.
type DocJSON struct {
	Metadata  DocMetadata  `json:"metadata"`
	Content   DocContent   `json:"content"`
	Structure DocStructure `json:"structure"`
}

// Preprocessor rewrites raw markup before conversion. It must never fail:
// input it cannot handle passes through untouched.
type Preprocessor interface {
	Preprocess(html string) string
}

// Converter turns markup into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// Normalizer applies pure text-to-text cleanup passes to converted Markdown.
type Normalizer interface {
	Normalize(text string) string
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta DocMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
