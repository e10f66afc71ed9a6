// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squarer/letter-generator/internal/container"
	"github.com/squarer/letter-generator/internal/convert"
	"github.com/squarer/letter-generator/internal/form"
	"github.com/squarer/letter-generator/internal/letter"
	"github.com/squarer/letter-generator/internal/render"
	"github.com/squarer/letter-generator/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [letter files...]",
	Short: "Generate certified letter forms as .docx",
	Long: `Generate reads letter files (.yaml, .yml, or .json; "-" reads YAML or
JSON from stdin), checks them, and writes one Word document per letter.

With a single letter, -o names the output file; a directory output gets the
configured file name (存證信函.docx). With several letters, documents are
written to --output-dir, named after each letter file, and generated
concurrently (--jobs).

--sender-id, --recipient-id, and --cc-id append parties from the address
book to a single letter. --pdf also converts each document to PDF through
the configured LibreOffice container image.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, generationFlags); err != nil {
		return err
	}
	cfg := loadConfig()
	opts := render.OptionsFromConfig(cfg.Generation)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	var outputs []string
	if len(args) == 1 {
		out, err := generateSingle(ctx, cmd, args[0], cfg, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "generated: %s\n", out)
		outputs = []string{out}
	} else {
		if hasPartyIDs(cmd) {
			return fmt.Errorf("--sender-id, --recipient-id, and --cc-id apply to a single letter")
		}
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			return fmt.Errorf("-o applies to a single letter; use --output-dir for several")
		}
		for _, a := range args {
			if a == "-" {
				return fmt.Errorf("stdin (-) can only be used with a single letter")
			}
		}
		jobs := letter.JobsFor(args, cfg.Generation.OutputDir)
		result := letter.GenerateBatch(ctx, jobs, opts, cfg.Generation.Jobs, w)
		for _, out := range result.Outputs {
			if out != "" {
				outputs = append(outputs, out)
			}
		}
		if result.HasFailures() {
			if err := maybeConvert(ctx, cmd, outputs, cfg, w); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return fmt.Errorf("%d letter(s) failed", result.Failed)
		}
	}

	return maybeConvert(ctx, cmd, outputs, cfg, w)
}

func generateSingle(ctx context.Context, cmd *cobra.Command, path string, cfg types.Config, opts render.Options) (string, error) {
	data, err := readLetter(cmd.InOrStdin(), path)
	if err != nil {
		return "", err
	}
	if hasPartyIDs(cmd) {
		if data, err = appendAddressBookParties(ctx, cmd, data); err != nil {
			return "", err
		}
	}
	if err := form.Validate(data); err != nil {
		return "", err
	}

	payload, err := letter.Generate(ctx, data, opts)
	if err != nil {
		return "", err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.Generation.OutputDir
		if path != "-" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			output = filepath.Join(output, base+".docx")
		}
	}
	return letter.SaveAs(output, cfg.Generation.FileName, payload)
}

// readLetter loads path, or stdin when path is "-".
func readLetter(stdin io.Reader, path string) (types.LetterData, error) {
	if path == "-" {
		return letter.Read(stdin)
	}
	return letter.Load(path)
}

var partyIDFlags = []struct {
	flag     string
	category types.Category
}{
	{"sender-id", types.CategorySender},
	{"recipient-id", types.CategoryRecipient},
	{"cc-id", types.CategoryCC},
}

func hasPartyIDs(cmd *cobra.Command) bool {
	for _, f := range partyIDFlags {
		if ids, _ := cmd.Flags().GetStringSlice(f.flag); len(ids) > 0 {
			return true
		}
	}
	return false
}

func appendAddressBookParties(ctx context.Context, cmd *cobra.Command, data types.LetterData) (types.LetterData, error) {
	store, err := openAddressBook(cmd)
	if err != nil {
		return data, err
	}
	defer store.Close()

	for _, f := range partyIDFlags {
		ids, _ := cmd.Flags().GetStringSlice(f.flag)
		if len(ids) == 0 {
			continue
		}
		parties, err := store.Parties(ctx, ids)
		if err != nil {
			return data, fmt.Errorf("--%s: %w", f.flag, err)
		}
		switch f.category {
		case types.CategorySender:
			data.Senders = append(data.Senders, parties...)
		case types.CategoryRecipient:
			data.Recipients = append(data.Recipients, parties...)
		case types.CategoryCC:
			data.CCRecipients = append(data.CCRecipients, parties...)
		}
	}
	return data, nil
}

func maybeConvert(ctx context.Context, cmd *cobra.Command, docs []string, cfg types.Config, w io.Writer) error {
	if pdf, _ := cmd.Flags().GetBool("pdf"); !pdf || len(docs) == 0 {
		return nil
	}
	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	if image, _ := cmd.Flags().GetString("pdf-image"); image != "" {
		cfg.Conversion.Image = image
	}
	conv, err := convert.NewPDFConverter(rt, cfg.Conversion.Image)
	if err != nil {
		return err
	}
	result := convert.ConvertBatch(ctx, conv, docs, true, w)
	if result.HasFailures() {
		return fmt.Errorf("%d PDF conversion(s) failed", result.Failed)
	}
	return nil
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "output file or directory for a single letter")
	generateCmd.Flags().String("output-dir", "", "output directory (default: config generation.output_dir or .)")
	generateCmd.Flags().Int("jobs", 0, "letters generated concurrently in batch mode (default 4)")
	addGenerationFlags(generateCmd)
	generateCmd.Flags().StringSlice("sender-id", nil, "append address book parties as senders")
	generateCmd.Flags().StringSlice("recipient-id", nil, "append address book parties as recipients")
	generateCmd.Flags().StringSlice("cc-id", nil, "append address book parties as cc-recipients")
	generateCmd.Flags().String("data-dir", "", "address book directory (default: config address_book.data_dir)")
	generateCmd.Flags().Bool("pdf", false, "also convert each document to PDF")
	generateCmd.Flags().String("pdf-image", "", "container image for PDF conversion (default: config conversion.image)")

	rootCmd.AddCommand(generateCmd)
}
