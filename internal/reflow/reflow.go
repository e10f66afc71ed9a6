// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reflow lays free text out on the fixed character grid of the
// certified-letter form: paragraphs are cut into rows of a fixed number of
// cells and rows are grouped into pages.
package reflow

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// DefaultColumns is the number of character cells per grid row.
	DefaultColumns = 20
	// DefaultRows is the number of grid rows per page.
	DefaultRows = 10
)

// Line is one grid row: at most columns user-perceived characters, each a
// grapheme cluster occupying exactly one cell.
type Line []string

// String joins the line's characters.
func (l Line) String() string {
	return strings.Join(l, "")
}

// Page is one grid's worth of lines, at most rows long.
type Page []Line

// newlines folds CRLF and lone CR into LF before paragraphs are split.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Reflow splits content into pages of at most rows lines, each line holding
// at most columns characters. Every paragraph starts on a fresh line and an
// empty paragraph keeps one blank line. The result always has at least one
// page. Non-positive dimensions fall back to the form defaults.
func Reflow(content string, columns, rows int) []Page {
	return Paginate(Lines(content, columns), rows)
}

// Lines segments content on newlines and chunks each paragraph into lines of
// at most columns characters.
func Lines(content string, columns int) []Line {
	if columns <= 0 {
		columns = DefaultColumns
	}

	var lines []Line
	for _, para := range Paragraphs(content) {
		chars := Characters(para)
		if len(chars) == 0 {
			lines = append(lines, Line{})
			continue
		}
		for i := 0; i < len(chars); i += columns {
			end := min(i+columns, len(chars))
			lines = append(lines, Line(chars[i:end:end]))
		}
	}
	return lines
}

// Paginate groups lines into pages of at most rows lines. With no lines it
// returns a single empty page so a document always has one sheet.
func Paginate(lines []Line, rows int) []Page {
	if rows <= 0 {
		rows = DefaultRows
	}

	var pages []Page
	for i := 0; i < len(lines); i += rows {
		end := min(i+rows, len(lines))
		pages = append(pages, Page(lines[i:end:end]))
	}
	if len(pages) == 0 {
		return []Page{{}}
	}
	return pages
}

// Paragraphs splits content on newline markers (LF, CRLF, or CR), keeping
// empty paragraphs.
func Paragraphs(content string) []string {
	return strings.Split(newlines.Replace(content), "\n")
}

// Characters decomposes s into grapheme clusters.
func Characters(s string) []string {
	var chars []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		chars = append(chars, g.Str())
	}
	return chars
}
