// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// read → transform → render → write.
//
// It handles flag validation, renderer selection, and the --only / --all
// modes. Non-HTML inputs pass through the transform untouched so that
// documents whose markup must be preserved verbatim stay intact.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/gaurav-prasanna/mailpipe/batch"
	"github.com/gaurav-prasanna/mailpipe/core"
	"github.com/gaurav-prasanna/mailpipe/core/input"
	"github.com/gaurav-prasanna/mailpipe/core/output"
	"github.com/gaurav-prasanna/mailpipe/core/render"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagOnly       bool
	flagAll        bool
	flagPDF        bool
	flagMarkdown   bool
	flagJSON       bool
	flagEmbeddings bool
	flagStdout     bool
	flagModel      string
	flagChunkSize  int
	flagEndpoint   string
	flagOutputDir  string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file|dir|->",
	Short: "Convert an HTML document to the specified output format",
	Long: `Convert reads an HTML email or document body, rescues media URLs,
converts it to compact Markdown, normalizes the text, and renders the
specified output format (Markdown, JSON, PDF, or Embeddings).

Examples:
  mailpipe convert newsletter.html --markdown
  mailpipe convert newsletter.html --json --output_dir ./out
  cat body.html | mailpipe convert - --markdown --stdout
  mailpipe convert ./inbox --all --markdown
  mailpipe convert newsletter.html --embeddings --model nomic-embed-text`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagOnly, "only", false, "Convert only the given file (default)")
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert all documents under the given directory")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Output embeddings")

	// Embedding-specific flags.
	convertCmd.Flags().StringVar(&flagModel, "model", "", "Embedding model (required with --embeddings)")
	convertCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 512, "Token chunk size for embeddings")
	convertCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Embedding API endpoint (default: local Ollama)")

	// Destination.
	convertCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print output to stdout instead of writing a file")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	target := args[0]

	if err := validateFlags(); err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	reader := input.New()

	if flagAll {
		return runAll(target, reader, renderer)
	}
	return runOnly(target, reader, renderer)
}

// runOnly processes a single document through the pipeline.
func runOnly(path string, reader *input.Reader, renderer core.Renderer) error {
	data, err := processDocument(path, reader, renderer)
	if err != nil {
		return err
	}

	if flagStdout {
		_, err = os.Stdout.Write(data)
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	out, err := writer.WriteOnly(path, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", out)
	return nil
}

// runAll discovers all convertible files under root and processes each.
func runAll(root string, reader *input.Reader, renderer core.Renderer) error {
	fmt.Fprintf(os.Stdout, "Discovering documents under %s...\n", root)

	paths, err := batch.DiscoverAll(root)
	if err != nil {
		return fmt.Errorf("discovering documents: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d documents to process\n", len(paths))

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	normalRoot := batch.NormalizePath(root)

	var errCount int
	for i, path := range paths {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(paths), path)

		data, err := processDocument(path, reader, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		out, err := writer.WriteAll(normalRoot, path, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", out)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d documents failed\n", errCount, len(paths))
	}
	return nil
}

// processDocument runs a single document through the full pipeline.
func processDocument(path string, reader *input.Reader, renderer core.Renderer) ([]byte, error) {
	doc, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	// Non-HTML content is preserved verbatim; the transform is only for
	// markup.
	markdown := doc.HTML
	if doc.IsHTML {
		markdown = core.Transform(doc.HTML)
	}

	meta := buildMetadata(doc, markdown)

	data, err := renderer.Render(markdown, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// buildMetadata constructs DocMetadata from the raw document and its
// converted Markdown.
func buildMetadata(doc *core.RawDocument, markdown string) core.DocMetadata {
	return core.DocMetadata{
		Source:      doc.Path,
		Title:       extractTitle(doc.HTML),
		InputBytes:  len(doc.HTML),
		OutputBytes: len(markdown),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// extractTitle pulls the <title> content from raw HTML, if any.
func extractTitle(html string) string {
	start := findTag(html, "<title>")
	if start == -1 {
		return ""
	}
	end := findTag(html, "</title>")
	if end == -1 {
		return ""
	}
	end -= len("</title>")
	if end <= start {
		return ""
	}
	return html[start:end]
}

// findTag returns the index immediately after the given tag string.
func findTag(html, tag string) int {
	for i := 0; i <= len(html)-len(tag); i++ {
		if html[i:i+len(tag)] == tag {
			return i + len(tag)
		}
	}
	return -1
}

// validateFlags checks that exactly one output format is chosen and that
// the mode and destination flags are coherent.
func validateFlags() error {
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON, flagEmbeddings} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, --json, or --embeddings")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagEmbeddings && flagModel == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}

	if flagStdout && flagAll {
		return fmt.Errorf("--stdout only applies to single-document mode")
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagEmbeddings:
		return render.NewEmbeddingsRenderer(flagModel, flagChunkSize, flagEndpoint), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
