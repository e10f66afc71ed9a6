// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strconv"

	"golang.org/x/text/width"

	"github.com/squarer/letter-generator/internal/docx"
	"github.com/squarer/letter-generator/internal/reflow"
)

// grid is the character table: a header row of column numbers, then one
// row per grid line, each starting with its ordinal label. Missing lines
// and the tail of short lines are blank cells.
func (r *renderer) grid(page reflow.Page) *docx.Table {
	l := r.layout

	widths := make([]int, 0, l.Columns+1)
	widths = append(widths, labelColumnWidth)
	for c := 0; c < l.Columns; c++ {
		widths = append(widths, l.CellWidth)
	}

	head := make([]docx.TableCell, 0, l.Columns+1)
	head = append(head, r.cell(labelColumnWidth, docx.VAlignCenter,
		r.centered("格", 14, false),
		r.centered("行", 14, false),
	))
	for c := 1; c <= l.Columns; c++ {
		head = append(head, r.cell(l.CellWidth, docx.VAlignCenter, r.centered(strconv.Itoa(c), 14, false)))
	}

	rows := make([]docx.TableRow, 0, l.Rows+1)
	rows = append(rows, docx.TableRow{Height: headerRowHeight, HeightRule: docx.HeightExact, Cells: head})

	for i := 0; i < l.Rows; i++ {
		var chars reflow.Line
		if i < len(page) {
			chars = page[i]
		}
		cells := make([]docx.TableCell, 0, l.Columns+1)
		cells = append(cells, r.cell(labelColumnWidth, docx.VAlignCenter, r.centered(RowLabel(i+1), 18, false)))
		for c := 0; c < l.Columns; c++ {
			ch := ""
			if c < len(chars) {
				ch = chars[c]
				if r.widen {
					ch = width.Widen.String(ch)
				}
			}
			cells = append(cells, r.cell(l.CellWidth, docx.VAlignCenter, r.centered(ch, 24, false)))
		}
		rows = append(rows, docx.TableRow{Height: rowHeight, HeightRule: docx.HeightAtLeast, Cells: cells})
	}

	return &docx.Table{
		Width:        l.GridWidth,
		Fixed:        true,
		ColumnWidths: widths,
		Rows:         rows,
	}
}
