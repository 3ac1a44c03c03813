// Package cmd implements the CLI commands for mailpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mailpipe",
	Short: "mailpipe — convert HTML email bodies into compact Markdown",
	Long: `mailpipe is a deterministic conversion pipeline that turns HTML email and
document bodies into token-efficient Markdown, JSON, PDF, or Embeddings.

Usage:
  mailpipe convert <file|dir|-> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
