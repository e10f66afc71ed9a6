// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays a reflowed letter out as the post office certified
// letter form (郵局存證信函用紙). Every page repeats the full form: title,
// party header, character grid, fee and notes footer, and the perforation
// stamp marker.
package render

import (
	"golang.org/x/text/width"

	"github.com/squarer/letter-generator/internal/docx"
	"github.com/squarer/letter-generator/internal/reflow"
	"github.com/squarer/letter-generator/pkg/types"
)

// DefaultFont is the regular script typeface the form is printed in.
const DefaultFont = "標楷體"

// DocumentTitle is stored in the document properties.
const DocumentTitle = "郵局存證信函"

// Options configures rendering.
type Options struct {
	// Font is used for every run (default DefaultFont).
	Font string
	// Columns and Rows are the grid dimensions (default 20 x 10).
	Columns int
	Rows    int
	// WidenASCII folds half-width characters in the grid and party fields
	// to their full-width forms.
	WidenASCII bool
}

// DefaultOptions returns the options of the official form.
func DefaultOptions() Options {
	return Options{
		Font:    DefaultFont,
		Columns: reflow.DefaultColumns,
		Rows:    reflow.DefaultRows,
	}
}

// OptionsFromConfig builds Options from the generation config, keeping
// defaults for unset fields.
func OptionsFromConfig(cfg types.GenerationConfig) Options {
	opts := DefaultOptions()
	if cfg.Font != "" {
		opts.Font = cfg.Font
	}
	if cfg.Columns > 0 {
		opts.Columns = cfg.Columns
	}
	if cfg.Rows > 0 {
		opts.Rows = cfg.Rows
	}
	opts.WidenASCII = cfg.WidenASCII
	return opts
}

// Render builds one section per page. Pages are usually the output of
// reflow.Reflow with the same dimensions as opts; lines longer than the grid
// are truncated and pages with more lines than rows are cut at the last row.
// An empty page list still yields one blank form.
func Render(data types.LetterData, pages []reflow.Page, opts Options) *docx.Document {
	r := newRenderer(opts)
	if len(pages) == 0 {
		pages = []reflow.Page{{}}
	}
	if r.widen {
		data = widenLetter(data)
	}

	doc := &docx.Document{Title: DocumentTitle}
	for _, page := range pages {
		doc.Sections = append(doc.Sections, docx.Section{
			Page: r.layout.Page,
			Blocks: []docx.Block{
				r.title(),
				r.header(data),
				r.para(docx.AlignLeft, 40, r.text("", 20, false)),
				r.grid(page),
				r.footer(),
				r.stamp(),
			},
		})
	}
	return doc
}

// renderer carries the resolved options through the block builders.
type renderer struct {
	layout Layout
	font   string
	widen  bool
}

func newRenderer(opts Options) *renderer {
	font := opts.Font
	if font == "" {
		font = DefaultFont
	}
	return &renderer{
		layout: NewLayout(opts.Columns, opts.Rows),
		font:   font,
		widen:  opts.WidenASCII,
	}
}

var borders = docx.AllBorders(docx.SingleBorder)

func (r *renderer) text(s string, size int, bold bool) docx.Run {
	return docx.Run{Text: s, Font: r.font, Size: size, Bold: bold}
}

func (r *renderer) para(align docx.Alignment, after int, runs ...docx.Run) *docx.Paragraph {
	return &docx.Paragraph{
		Align:   align,
		Spacing: docx.Spacing{Before: 0, After: after, Line: 276},
		Runs:    runs,
	}
}

// line is a left-aligned single-run paragraph.
func (r *renderer) line(s string, size int) *docx.Paragraph {
	return r.para(docx.AlignLeft, 0, r.text(s, size, false))
}

// centered is a centered single-run paragraph.
func (r *renderer) centered(s string, size int, bold bool) *docx.Paragraph {
	return r.para(docx.AlignCenter, 0, r.text(s, size, bold))
}

func (r *renderer) cell(width int, valign docx.VerticalAlign, paras ...*docx.Paragraph) docx.TableCell {
	return docx.TableCell{
		Width:      width,
		Borders:    borders,
		VAlign:     valign,
		Paragraphs: paras,
	}
}

func (r *renderer) title() *docx.Paragraph {
	return r.para(docx.AlignCenter, 120, r.text("郵 局 存 證 信 函 用 紙", 32, true))
}

func (r *renderer) stamp() *docx.Paragraph {
	return r.para(docx.AlignCenter, 0,
		r.text("　　　　　　（騎縫郵戳）　　　　　　　　　　　　　　（騎縫郵戳）", 16, false))
}

func widenLetter(d types.LetterData) types.LetterData {
	out := types.LetterData{Content: d.Content}
	out.Senders = widenParties(d.Senders)
	out.Recipients = widenParties(d.Recipients)
	out.CCRecipients = widenParties(d.CCRecipients)
	return out
}

func widenParties(ps []types.Party) []types.Party {
	if ps == nil {
		return nil
	}
	out := make([]types.Party, len(ps))
	for i, p := range ps {
		out[i] = types.Party{ID: p.ID, Name: width.Widen.String(p.Name), Address: width.Widen.String(p.Address)}
	}
	return out
}
