// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx builds WordprocessingML (.docx) documents from a small block
// model: a document is a list of sections, each with its own page setup and
// an ordered list of paragraphs and tables. Measurements are in twentieths
// of a point (twips, "dxa") and font sizes in half-points, matching the
// units of the file format.
package docx

// Orientation is the page orientation of a section.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// PaperSize is a named physical paper size in twips.
type PaperSize struct {
	Name   string
	Width  int
	Height int
}

var (
	A4     = PaperSize{Name: "A4", Width: 11906, Height: 16838}    // 210mm x 297mm
	Letter = PaperSize{Name: "Letter", Width: 12240, Height: 15840} // 8.5" x 11"
)

// Margins are the page margins of a section in twips.
type Margins struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// PageSetup describes the physical page of a section.
type PageSetup struct {
	Size        PaperSize
	Orientation Orientation
	Margins     Margins
}

// PrintableWidth returns the page width left between the side margins.
func (p PageSetup) PrintableWidth() int {
	w := p.Size.Width
	if p.Orientation == Landscape {
		w = p.Size.Height
	}
	return w - p.Margins.Left - p.Margins.Right
}

// Document is an ordered list of sections.
type Document struct {
	// Title is stored in the package's core properties.
	Title    string
	Sections []Section
}

// Section is a run of blocks that share one page setup. Each section starts
// on a new page.
type Section struct {
	Page   PageSetup
	Blocks []Block
}

// Block is a body-level element: *Paragraph or *Table.
type Block interface {
	isBlock()
}

// Alignment is the horizontal alignment of a paragraph.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Spacing controls the space around and between lines of a paragraph, in
// twips. Line is measured in 240ths of a line (240 = single spacing).
type Spacing struct {
	Before int
	After  int
	Line   int
}

// Paragraph is a block of runs.
type Paragraph struct {
	Align   Alignment
	Spacing Spacing
	Runs    []Run
}

func (*Paragraph) isBlock() {}

// Run is a span of text with uniform formatting.
type Run struct {
	Text string
	Font string
	// Size is in half-points (24 = 12pt). Zero keeps the document default.
	Size int
	Bold bool
}

// PlainText returns the concatenated text of the paragraph's runs.
func (p *Paragraph) PlainText() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// HeightRule says how a table row's height is applied.
type HeightRule string

const (
	HeightAuto    HeightRule = "auto"
	HeightAtLeast HeightRule = "atLeast"
	HeightExact   HeightRule = "exact"
)

// VerticalAlign is the vertical alignment of content in a table cell.
type VerticalAlign string

const (
	VAlignTop    VerticalAlign = "top"
	VAlignCenter VerticalAlign = "center"
	VAlignBottom VerticalAlign = "bottom"
)

// Border is one edge of a cell border.
type Border struct {
	// Style is a ST_Border value such as "single" or "nil".
	Style string
	// Size is in eighths of a point.
	Size  int
	Color string
}

// SingleBorder is a thin black line.
var SingleBorder = Border{Style: "single", Size: 1, Color: "000000"}

// Borders holds the four edges of a cell.
type Borders struct {
	Top    Border
	Bottom Border
	Left   Border
	Right  Border
}

// AllBorders returns Borders with b on every edge.
func AllBorders(b Border) *Borders {
	return &Borders{Top: b, Bottom: b, Left: b, Right: b}
}

// Table is a grid of cells. When ColumnWidths is empty the grid is derived
// from the cell widths of every row, and cells spanning several derived
// columns get the matching span.
type Table struct {
	// Width is the total table width in twips.
	Width        int
	Fixed        bool
	ColumnWidths []int
	Rows         []TableRow
}

func (*Table) isBlock() {}

// TableRow is one row of a table.
type TableRow struct {
	// Height is in twips; zero leaves the height to the content.
	Height     int
	HeightRule HeightRule
	Cells      []TableCell
}

// TableCell is one cell of a table row.
type TableCell struct {
	Width      int
	Borders    *Borders
	VAlign     VerticalAlign
	GridSpan   int
	Shading    string
	Paragraphs []*Paragraph
}

// Text returns the plain text of every paragraph in the cell, joined by
// newlines.
func (c TableCell) Text() string {
	var s string
	for i, p := range c.Paragraphs {
		if i > 0 {
			s += "\n"
		}
		s += p.PlainText()
	}
	return s
}
