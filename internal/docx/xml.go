// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"sort"
	"strconv"
)

// XML namespaces used by the main document part.
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// The structs below mirror the WordprocessingML elements the block model
// needs. Prefixed names ("w:p") are written literally; the root element
// declares the prefixes. Child field order follows the schema sequences.

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNSW  string   `xml:"xmlns:w,attr"`
	XMLNSR  string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Content []any
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlOnOff struct{}

type xmlParagraph struct {
	XMLName xml.Name        `xml:"w:p"`
	Props   *xmlParagraphPr `xml:"w:pPr,omitempty"`
	Runs    []xmlRun        `xml:"w:r"`
}

type xmlParagraphPr struct {
	Spacing *xmlSpacing `xml:"w:spacing,omitempty"`
	Jc      *xmlVal     `xml:"w:jc,omitempty"`
	SectPr  *xmlSectPr  `xml:"w:sectPr,omitempty"`
}

type xmlSpacing struct {
	Before   int    `xml:"w:before,attr"`
	After    int    `xml:"w:after,attr"`
	Line     int    `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type xmlRun struct {
	Props *xmlRunPr `xml:"w:rPr,omitempty"`
	Text  xmlText   `xml:"w:t"`
}

type xmlRunPr struct {
	Fonts *xmlFonts `xml:"w:rFonts,omitempty"`
	Bold  *xmlOnOff `xml:"w:b,omitempty"`
	BoldC *xmlOnOff `xml:"w:bCs,omitempty"`
	Size  *xmlVal   `xml:"w:sz,omitempty"`
	SizeC *xmlVal   `xml:"w:szCs,omitempty"`
}

type xmlFonts struct {
	ASCII    string `xml:"w:ascii,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
	EastAsia string `xml:"w:eastAsia,attr"`
	CS       string `xml:"w:cs,attr"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlTable struct {
	XMLName xml.Name   `xml:"w:tbl"`
	Props   xmlTablePr `xml:"w:tblPr"`
	Grid    xmlGrid    `xml:"w:tblGrid"`
	Rows    []xmlRow   `xml:"w:tr"`
}

type xmlTablePr struct {
	Width  xmlWidth `xml:"w:tblW"`
	Layout *xmlType `xml:"w:tblLayout,omitempty"`
}

type xmlWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xmlType struct {
	Type string `xml:"w:type,attr"`
}

type xmlGrid struct {
	Cols []xmlGridCol `xml:"w:gridCol"`
}

type xmlGridCol struct {
	W int `xml:"w:w,attr"`
}

type xmlRow struct {
	Props *xmlRowPr `xml:"w:trPr,omitempty"`
	Cells []xmlCell `xml:"w:tc"`
}

type xmlRowPr struct {
	Height xmlHeight `xml:"w:trHeight"`
}

type xmlHeight struct {
	Val  int    `xml:"w:val,attr"`
	Rule string `xml:"w:hRule,attr"`
}

type xmlCell struct {
	Props      xmlCellPr      `xml:"w:tcPr"`
	Paragraphs []xmlParagraph `xml:"w:p"`
}

type xmlCellPr struct {
	Width    xmlWidth    `xml:"w:tcW"`
	GridSpan *xmlVal     `xml:"w:gridSpan,omitempty"`
	Borders  *xmlBorders `xml:"w:tcBorders,omitempty"`
	Shading  *xmlShading `xml:"w:shd,omitempty"`
	VAlign   *xmlVal     `xml:"w:vAlign,omitempty"`
}

type xmlBorders struct {
	Top    xmlBorder `xml:"w:top"`
	Left   xmlBorder `xml:"w:left"`
	Bottom xmlBorder `xml:"w:bottom"`
	Right  xmlBorder `xml:"w:right"`
}

type xmlBorder struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type xmlShading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

type xmlSectPr struct {
	XMLName xml.Name `xml:"w:sectPr"`
	Type    xmlVal   `xml:"w:type"`
	PgSz    xmlPgSz  `xml:"w:pgSz"`
	PgMar   xmlPgMar `xml:"w:pgMar"`
}

type xmlPgSz struct {
	W      int    `xml:"w:w,attr"`
	H      int    `xml:"w:h,attr"`
	Orient string `xml:"w:orient,attr"`
}

type xmlPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// buildDocument converts the block model into the document part. Every
// section but the last ends with a paragraph carrying its section
// properties; the last section's properties close the body.
func buildDocument(doc *Document) *xmlDocument {
	out := &xmlDocument{XMLNSW: nsW, XMLNSR: nsR}
	for i, sec := range doc.Sections {
		for _, b := range sec.Blocks {
			switch b := b.(type) {
			case *Paragraph:
				out.Body.Content = append(out.Body.Content, buildParagraph(b))
			case *Table:
				out.Body.Content = append(out.Body.Content, buildTable(b))
			}
		}
		sp := buildSectPr(sec.Page)
		if i < len(doc.Sections)-1 {
			out.Body.Content = append(out.Body.Content, &xmlParagraph{
				Props: &xmlParagraphPr{SectPr: sp},
			})
		} else {
			out.Body.Content = append(out.Body.Content, sp)
		}
	}
	return out
}

func buildSectPr(p PageSetup) *xmlSectPr {
	orient := p.Orientation
	if orient == "" {
		orient = Portrait
	}
	w, h := p.Size.Width, p.Size.Height
	if orient == Landscape {
		w, h = h, w
	}
	return &xmlSectPr{
		Type:  xmlVal{Val: "nextPage"},
		PgSz:  xmlPgSz{W: w, H: h, Orient: string(orient)},
		PgMar: xmlPgMar{Top: p.Margins.Top, Right: p.Margins.Right, Bottom: p.Margins.Bottom, Left: p.Margins.Left},
	}
}

func buildParagraph(p *Paragraph) *xmlParagraph {
	out := &xmlParagraph{}
	props := &xmlParagraphPr{}
	if p.Spacing != (Spacing{}) {
		props.Spacing = &xmlSpacing{Before: p.Spacing.Before, After: p.Spacing.After, Line: p.Spacing.Line}
		if p.Spacing.Line > 0 {
			props.Spacing.LineRule = "auto"
		}
	}
	if p.Align != "" {
		props.Jc = &xmlVal{Val: string(p.Align)}
	}
	if props.Spacing != nil || props.Jc != nil {
		out.Props = props
	}
	for _, r := range p.Runs {
		out.Runs = append(out.Runs, buildRun(r))
	}
	return out
}

func buildRun(r Run) xmlRun {
	out := xmlRun{Text: xmlText{Space: "preserve", Value: r.Text}}
	props := &xmlRunPr{}
	set := false
	if r.Font != "" {
		props.Fonts = &xmlFonts{ASCII: r.Font, HAnsi: r.Font, EastAsia: r.Font, CS: r.Font}
		set = true
	}
	if r.Bold {
		props.Bold, props.BoldC = &xmlOnOff{}, &xmlOnOff{}
		set = true
	}
	if r.Size > 0 {
		v := strconv.Itoa(r.Size)
		props.Size, props.SizeC = &xmlVal{Val: v}, &xmlVal{Val: v}
		set = true
	}
	if set {
		out.Props = props
	}
	return out
}

func buildTable(t *Table) *xmlTable {
	cols, spans := tableGrid(t)

	width := t.Width
	if width == 0 {
		for _, c := range cols {
			width += c
		}
	}

	out := &xmlTable{Props: xmlTablePr{Width: xmlWidth{W: width, Type: "dxa"}}}
	if t.Fixed {
		out.Props.Layout = &xmlType{Type: "fixed"}
	}
	for _, c := range cols {
		out.Grid.Cols = append(out.Grid.Cols, xmlGridCol{W: c})
	}

	for ri, row := range t.Rows {
		xr := xmlRow{}
		if row.Height > 0 {
			rule := row.HeightRule
			if rule == "" {
				rule = HeightAtLeast
			}
			xr.Props = &xmlRowPr{Height: xmlHeight{Val: row.Height, Rule: string(rule)}}
		}
		for ci, cell := range row.Cells {
			xr.Cells = append(xr.Cells, buildCell(cell, spans[ri][ci]))
		}
		out.Rows = append(out.Rows, xr)
	}
	return out
}

func buildCell(c TableCell, span int) xmlCell {
	out := xmlCell{Props: xmlCellPr{Width: xmlWidth{W: c.Width, Type: "dxa"}}}
	if span > 1 {
		out.Props.GridSpan = &xmlVal{Val: strconv.Itoa(span)}
	}
	if c.Borders != nil {
		out.Props.Borders = &xmlBorders{
			Top:    buildBorder(c.Borders.Top),
			Left:   buildBorder(c.Borders.Left),
			Bottom: buildBorder(c.Borders.Bottom),
			Right:  buildBorder(c.Borders.Right),
		}
	}
	if c.Shading != "" {
		out.Props.Shading = &xmlShading{Val: "clear", Color: "auto", Fill: c.Shading}
	}
	if c.VAlign != "" {
		out.Props.VAlign = &xmlVal{Val: string(c.VAlign)}
	}
	for _, p := range c.Paragraphs {
		out.Paragraphs = append(out.Paragraphs, *buildParagraph(p))
	}
	// A cell must end with a paragraph.
	if len(out.Paragraphs) == 0 {
		out.Paragraphs = []xmlParagraph{{}}
	}
	return out
}

func buildBorder(b Border) xmlBorder {
	if b.Style == "" {
		return xmlBorder{Val: "nil", Color: "auto"}
	}
	color := b.Color
	if color == "" {
		color = "auto"
	}
	return xmlBorder{Val: b.Style, Size: b.Size, Color: color}
}

// tableGrid returns the grid column widths of t and the grid span of every
// cell. Explicit column widths are used as given; otherwise the grid is cut
// at every cell edge found in any row.
func tableGrid(t *Table) ([]int, [][]int) {
	spans := make([][]int, len(t.Rows))

	if len(t.ColumnWidths) > 0 {
		for ri, row := range t.Rows {
			spans[ri] = make([]int, len(row.Cells))
			for ci, cell := range row.Cells {
				spans[ri][ci] = max(cell.GridSpan, 1)
			}
		}
		return t.ColumnWidths, spans
	}

	edgeSet := map[int]bool{0: true}
	for _, row := range t.Rows {
		x := 0
		for _, cell := range row.Cells {
			x += cell.Width
			edgeSet[x] = true
		}
	}
	edges := make([]int, 0, len(edgeSet))
	for e := range edgeSet {
		edges = append(edges, e)
	}
	sort.Ints(edges)

	cols := make([]int, 0, len(edges)-1)
	for i := 1; i < len(edges); i++ {
		cols = append(cols, edges[i]-edges[i-1])
	}

	for ri, row := range t.Rows {
		spans[ri] = make([]int, len(row.Cells))
		x := 0
		for ci, cell := range row.Cells {
			start, end := x, x+cell.Width
			n := 0
			for _, e := range edges {
				if e > start && e <= end {
					n++
				}
			}
			spans[ri][ci] = max(n, 1)
			x = end
		}
	}
	return cols, spans
}
