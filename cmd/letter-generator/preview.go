// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squarer/letter-generator/internal/letter"
	"github.com/squarer/letter-generator/internal/reflow"
	"github.com/squarer/letter-generator/internal/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview [letter file]",
	Short: "Print the reflowed grid of a letter without writing a document",
	Long: `Preview reflows the letter body exactly as generate does and prints each
page of the character grid, followed by a summary of characters, lines,
pages, and cells left on the last page. "-" reads the letter from stdin.

The letter is not validated, so drafts with missing parties can be checked.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, generationFlags); err != nil {
		return err
	}
	opts := render.OptionsFromConfig(loadConfig().Generation)

	data, err := readLetter(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	layout := render.NewLayout(opts.Columns, opts.Rows)
	pages := letter.Paginate(data.Content, opts)
	w := cmd.OutOrStdout()
	if err := reflow.WriteGrid(w, pages, layout.Columns, layout.Rows); err != nil {
		return err
	}

	s := reflow.Summarize(data.Content, layout.Columns, layout.Rows)
	fmt.Fprintf(w, "\n%d characters, %d lines, %d page(s), %d cells left on the last page\n",
		s.Characters, s.Lines, s.Pages, s.CellsLeft)
	fmt.Fprintf(w, "senders: %d, recipients: %d, cc-recipients: %d\n",
		len(data.Senders), len(data.Recipients), len(data.CCRecipients))
	return nil
}

func init() {
	addGenerationFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)
}
