// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reflow

import (
	"fmt"
	"io"
	"strings"
)

// Summary describes how content fills the grid.
type Summary struct {
	Characters int `json:"characters" yaml:"characters"`
	Lines      int `json:"lines" yaml:"lines"`
	Pages      int `json:"pages" yaml:"pages"`
	// CellsLeft is the number of unused cells on the last page, counting
	// the blank tail of every line and the rows after the last line.
	CellsLeft int `json:"cells_left" yaml:"cells_left"`
}

// Summarize reflows content and counts characters, lines, pages, and the
// free cells remaining on the last page.
func Summarize(content string, columns, rows int) Summary {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}

	pages := Reflow(content, columns, rows)
	var s Summary
	for _, p := range pages {
		s.Lines += len(p)
		for _, l := range p {
			s.Characters += len(l)
		}
	}
	s.Pages = len(pages)

	last := pages[len(pages)-1]
	used := 0
	for _, l := range last {
		used += len(l)
	}
	s.CellsLeft = columns*rows - used
	return s
}

// WriteGrid prints pages as a plain-text grid: a header row of column
// numbers, then one row per grid line with a row label. Blank cells print as
// a full-width space so columns stay aligned for CJK text.
func WriteGrid(w io.Writer, pages []Page, columns, rows int) error {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}

	for i, page := range pages {
		if _, err := fmt.Fprintf(w, "-- page %d/%d --\n", i+1, len(pages)); err != nil {
			return err
		}
		var b strings.Builder
		b.WriteString("    ")
		for c := 1; c <= columns; c++ {
			fmt.Fprintf(&b, "%-2d", c%100)
		}
		b.WriteByte('\n')
		for r := 0; r < rows; r++ {
			fmt.Fprintf(&b, "%3d ", r+1)
			var line Line
			if r < len(page) {
				line = page[r]
			}
			for c := 0; c < columns; c++ {
				if c < len(line) {
					b.WriteString(line[c])
				} else {
					b.WriteString("　")
				}
			}
			b.WriteByte('\n')
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
