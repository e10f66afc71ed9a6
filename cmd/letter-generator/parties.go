// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/squarer/letter-generator/internal/addressbook"
	"github.com/squarer/letter-generator/pkg/types"
)

var partiesCmd = &cobra.Command{
	Use:   "parties",
	Short: "Manage the address book of senders and recipients",
	Long: `Parties manages a local SQLite address book of senders, recipients, and
cc-recipients. Stored parties can be added to a letter with generate
--sender-id, --recipient-id, and --cc-id.`,
}

// --- add subcommand ---

var partiesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a party",
	Args:  cobra.NoArgs,
	RunE:  runPartiesAdd,
}

func runPartiesAdd(cmd *cobra.Command, args []string) error {
	category, err := categoryFlag(cmd, true)
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	address, _ := cmd.Flags().GetString("address")

	store, err := openAddressBook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Save(cmd.Context(), addressbook.Entry{
		Party:    types.Party{ID: id, Name: name, Address: address},
		Category: category,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved: %s %s (%s)\n", e.ID, e.Name, e.Category.Label())
	return nil
}

// --- list and search subcommands ---

var partiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored parties",
	Args:  cobra.NoArgs,
	RunE:  runPartiesList,
}

func runPartiesList(cmd *cobra.Command, args []string) error {
	category, err := categoryFlag(cmd, false)
	if err != nil {
		return err
	}
	store, err := openAddressBook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), category)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatEntries(cmd.OutOrStdout(), entries, jsonOutput)
}

var partiesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search parties by name or address",
	Long: `Search matches a substring of a party's name or address. Queries of three
or more characters use the full-text trigram index and are ranked by
relevance; shorter queries scan the table.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPartiesSearch,
}

func runPartiesSearch(cmd *cobra.Command, args []string) error {
	category, err := categoryFlag(cmd, false)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openAddressBook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Search(cmd.Context(), addressbook.SearchOptions{
		Query:      strings.Join(args, " "),
		Category:   category,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatEntries(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatEntries(w io.Writer, entries []addressbook.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []addressbook.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No parties found.")
		return nil
	}

	fmt.Fprintf(w, "%s  %s  %s  %s\n", pad("ID", 36), pad("Category", 10), pad("Name", 20), "Address")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			pad(e.ID, 36), pad(e.Category.Label(), 10), pad(truncate(e.Name, 20), 20), e.Address)
	}
	fmt.Fprintf(w, "\n%d parties\n", len(entries))
	return nil
}

// pad right-pads s with spaces to the given display width; CJK characters
// count as two columns.
func pad(s string, width int) string {
	if n := uniseg.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncate shortens s to at most width display columns.
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-3 {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String() + "..."
}

// --- remove subcommand ---

var partiesRemoveCmd = &cobra.Command{
	Use:   "remove [ids...]",
	Short: "Remove parties by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPartiesRemove,
}

func runPartiesRemove(cmd *cobra.Command, args []string) error {
	store, err := openAddressBook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	failed := 0
	for _, id := range args {
		if err := store.Delete(cmd.Context(), id); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed:  %s (%v)\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed: %s\n", id)
	}
	if failed > 0 {
		return fmt.Errorf("%d part(ies) not removed", failed)
	}
	return nil
}

// --- import and export subcommands ---

var partiesImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import parties from a spreadsheet or an export file",
	Long: `Import reads parties from an .xlsx spreadsheet or from a YAML/JSON file
written by export.

Spreadsheets need a header row with a name column (姓名 or name) and an
address column (地址, 詳細地址, or address). An optional category column
(類別 or category) holds sender/recipient/cc or the form labels; rows
without it use --category. Rows missing a name or an address are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPartiesImport,
}

func runPartiesImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	store, err := openAddressBook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var summary addressbook.ImportSummary
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		category, err := categoryFlag(cmd, true)
		if err != nil {
			return err
		}
		sheet, _ := cmd.Flags().GetString("sheet")
		summary, err = store.ImportSpreadsheet(cmd.Context(), path, sheet, category, cmd.OutOrStdout())
		if err != nil {
			return err
		}
	case ".yaml", ".yml", ".json":
		summary, err = store.ImportYAML(cmd.Context(), path, cmd.OutOrStdout())
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported import file %s: expected .xlsx, .yaml, .yml, or .json", path)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d row(s) failed to import", summary.Failed)
	}
	return nil
}

var partiesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the address book to YAML, JSON, or a spreadsheet",
	Long: `Export writes every stored party (or one --category) as YAML or JSON to
stdout or -o, or as an .xlsx spreadsheet (-o required) that import reads
back.`,
	Args: cobra.NoArgs,
	RunE: runPartiesExport,
}

func runPartiesExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	category, err := categoryFlag(cmd, false)
	if err != nil {
		return err
	}
	if format == "" {
		format = exportFormatOf(output)
	}

	store, err := openAddressBook(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if format == "xlsx" {
		if output == "" {
			return fmt.Errorf("xlsx export requires -o")
		}
		if err := store.ExportSpreadsheet(cmd.Context(), output, category); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
		return nil
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml":
		err = store.ExportYAML(cmd.Context(), w, category)
	case "json":
		err = store.ExportJSON(cmd.Context(), w, category)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json, or xlsx", format)
	}
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
	}
	return nil
}

func exportFormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".xlsx":
		return "xlsx"
	}
	return "yaml"
}

// --- shared helpers ---

func categoryFlag(cmd *cobra.Command, required bool) (types.Category, error) {
	v, _ := cmd.Flags().GetString("category")
	if v == "" {
		if required {
			return "", fmt.Errorf("--category is required (sender, recipient, or cc)")
		}
		return "", nil
	}
	return types.ParseCategory(v)
}

func init() {
	partiesCmd.PersistentFlags().String("data-dir", "", "address book directory (default: config address_book.data_dir)")
	partiesCmd.PersistentFlags().Int("max-results", 0, "default maximum search results (default 20)")

	partiesAddCmd.Flags().String("category", "", "sender, recipient, or cc")
	partiesAddCmd.Flags().String("name", "", "party name")
	partiesAddCmd.Flags().String("address", "", "full postal address")
	partiesAddCmd.Flags().String("id", "", "update the party with this ID instead of creating one")

	partiesListCmd.Flags().String("category", "", "only list sender, recipient, or cc")
	partiesListCmd.Flags().Bool("json", false, "output as JSON")

	partiesSearchCmd.Flags().String("category", "", "only search sender, recipient, or cc")
	partiesSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	partiesSearchCmd.Flags().Bool("json", false, "output as JSON")

	partiesImportCmd.Flags().String("category", "recipient", "category for spreadsheet rows without one")
	partiesImportCmd.Flags().String("sheet", "", "spreadsheet sheet name (default: first sheet)")

	partiesExportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	partiesExportCmd.Flags().String("format", "", "yaml, json, or xlsx (default: from -o extension, else yaml)")
	partiesExportCmd.Flags().String("category", "", "only export sender, recipient, or cc")

	partiesCmd.AddCommand(partiesAddCmd)
	partiesCmd.AddCommand(partiesListCmd)
	partiesCmd.AddCommand(partiesSearchCmd)
	partiesCmd.AddCommand(partiesRemoveCmd)
	partiesCmd.AddCommand(partiesImportCmd)
	partiesCmd.AddCommand(partiesExportCmd)

	rootCmd.AddCommand(partiesCmd)
}
