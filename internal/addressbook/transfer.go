// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package addressbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/squarer/letter-generator/pkg/types"
)

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Skipped  int
	Failed   int
}

// Total returns the number of rows processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Skipped + s.Failed
}

// Header cells recognized in spreadsheets, compared case-insensitively.
var (
	nameHeaders     = []string{"姓名", "名稱", "name"}
	addressHeaders  = []string{"詳細地址", "地址", "address"}
	categoryHeaders = []string{"類別", "category"}
)

// sheetColumns locates the columns of a party table.
type sheetColumns struct {
	header   int
	name     int
	address  int
	category int
}

// ImportSpreadsheet reads parties from an .xlsx file. The first row that
// has both a name and an address header starts the table; a category
// column is optional and otherwise every row goes to category. Rows missing
// a name or address are skipped. sheet defaults to the first sheet.
func (s *Store) ImportSpreadsheet(ctx context.Context, path, sheet string, category types.Category, w io.Writer) (ImportSummary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return ImportSummary{}, fmt.Errorf("spreadsheet %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	cols, ok := findColumns(rows)
	if !ok {
		return ImportSummary{}, fmt.Errorf("sheet %s: no header row with name and address columns", sheet)
	}

	var summary ImportSummary
	for i := cols.header + 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		row := rows[i]
		rowNum := i + 1
		name := cell(row, cols.name)
		address := cell(row, cols.address)
		if name == "" && address == "" {
			continue
		}
		if name == "" || address == "" {
			fmt.Fprintf(w, "skipped: row %d (missing name or address)\n", rowNum)
			summary.Skipped++
			continue
		}

		c := category
		if raw := cell(row, cols.category); raw != "" {
			parsed, err := parseCategoryCell(raw)
			if err != nil {
				fmt.Fprintf(w, "failed:  row %d (%v)\n", rowNum, err)
				summary.Failed++
				continue
			}
			c = parsed
		}

		e, err := s.Save(ctx, Entry{Party: types.Party{Name: name, Address: address}, Category: c})
		if err != nil {
			fmt.Fprintf(w, "failed:  row %d (%v)\n", rowNum, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "imported: %s (%s)\n", e.Name, e.Category)
		summary.Imported++
	}

	fmt.Fprintf(w, "\nimported: %d, skipped: %d, failed: %d\n",
		summary.Imported, summary.Skipped, summary.Failed)
	return summary, nil
}

func findColumns(rows [][]string) (sheetColumns, bool) {
	for i, row := range rows {
		cols := sheetColumns{header: i, name: -1, address: -1, category: -1}
		for j, v := range row {
			switch {
			case cols.name < 0 && matchHeader(v, nameHeaders):
				cols.name = j
			case cols.address < 0 && matchHeader(v, addressHeaders):
				cols.address = j
			case cols.category < 0 && matchHeader(v, categoryHeaders):
				cols.category = j
			}
		}
		if cols.name >= 0 && cols.address >= 0 {
			return cols, true
		}
	}
	return sheetColumns{}, false
}

func matchHeader(v string, names []string) bool {
	v = strings.TrimSpace(v)
	for _, n := range names {
		if strings.EqualFold(v, n) {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseCategoryCell accepts the canonical names and the form labels.
func parseCategoryCell(v string) (types.Category, error) {
	for _, c := range types.Categories {
		if v == c.Label() {
			return c, nil
		}
	}
	return types.ParseCategory(strings.ToLower(v))
}

// ExportSpreadsheet writes entries in category (all when empty) to an .xlsx
// file that ImportSpreadsheet reads back.
func (s *Store) ExportSpreadsheet(ctx context.Context, path string, category types.Category) error {
	entries, err := s.List(ctx, category)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &[]any{"類別", "姓名", "地址"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, ref, &[]any{e.Category.Label(), e.Name, e.Address}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving spreadsheet: %w", err)
	}
	return nil
}

// ImportYAML reads entries written by ExportYAML (or ExportJSON, which YAML
// accepts) and saves them, keeping their IDs.
func (s *Store) ImportYAML(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return ImportSummary{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var summary ImportSummary
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		saved, err := s.Save(ctx, e)
		if err != nil {
			fmt.Fprintf(w, "failed:  entry %d (%v)\n", i+1, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "imported: %s (%s)\n", saved.Name, saved.Category)
		summary.Imported++
	}

	fmt.Fprintf(w, "\nimported: %d, skipped: %d, failed: %d\n",
		summary.Imported, summary.Skipped, summary.Failed)
	return summary, nil
}

// ExportYAML writes entries in category (all when empty) as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, category types.Category) error {
	entries, err := s.exportEntries(ctx, category)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes entries in category (all when empty) as a JSON array.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, category types.Category) error {
	entries, err := s.exportEntries(ctx, category)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (s *Store) exportEntries(ctx context.Context, category types.Category) ([]Entry, error) {
	entries, err := s.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
