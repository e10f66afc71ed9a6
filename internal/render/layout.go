// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/squarer/letter-generator/internal/docx"
	"github.com/squarer/letter-generator/internal/reflow"
)

// Page geometry in twips: A4 portrait with roughly 1cm top and bottom
// margins and 1.2cm side margins.
const (
	marginTop    = 567
	marginBottom = 567
	marginLeft   = 680
	marginRight  = 680

	// labelColumnWidth is reserved for the row-label column of the grid.
	labelColumnWidth = 480
	// headerRowHeight is the exact height of the column-number row.
	headerRowHeight = 340
	// rowHeight is the minimum height of a content row (about 0.8cm).
	rowHeight = 454

	// Grid dimensions accepted by NewLayout.
	maxColumns = 40
	maxRows    = 30
)

// Layout is the integer geometry shared by every block on a page.
type Layout struct {
	Page      docx.PageSetup
	Columns   int
	Rows      int
	CellWidth int
	// GridWidth is the width of the grid table; the header and footer
	// tables use the same width.
	GridWidth int
}

// NewLayout computes the grid geometry for the given dimensions. The
// printable width left after the row-label column is split evenly over the
// content columns with floor division so layouts are reproducible.
// Dimensions outside 1..40 columns and 1..30 rows fall back to the form
// defaults.
func NewLayout(columns, rows int) Layout {
	if columns <= 0 || columns > maxColumns {
		columns = reflow.DefaultColumns
	}
	if rows <= 0 || rows > maxRows {
		rows = reflow.DefaultRows
	}

	page := docx.PageSetup{
		Size:        docx.A4,
		Orientation: docx.Portrait,
		Margins:     docx.Margins{Top: marginTop, Bottom: marginBottom, Left: marginLeft, Right: marginRight},
	}
	cell := (page.PrintableWidth() - labelColumnWidth) / columns
	return Layout{
		Page:      page,
		Columns:   columns,
		Rows:      rows,
		CellWidth: cell,
		GridWidth: labelColumnWidth + cell*columns,
	}
}

// percent returns floor(GridWidth * p / 100).
func (l Layout) percent(p int) int {
	return l.GridWidth * p / 100
}

var rowDigits = []string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// RowLabel returns the Chinese ordinal printed in front of grid row n
// (1-based): 一 through 十, then 十一, 十二, ... 二十, 二十一 and so on.
func RowLabel(n int) string {
	if n <= 0 {
		return ""
	}
	if n < 10 {
		return rowDigits[n]
	}
	var b strings.Builder
	if tens := n / 10; tens > 1 {
		b.WriteString(rowDigits[tens%10])
	}
	b.WriteString("十")
	b.WriteString(rowDigits[n%10])
	return b.String()
}
