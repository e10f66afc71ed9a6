// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "github.com/squarer/letter-generator/internal/docx"

// Fee block of the footer: page count, copies, and fees are filled in by
// the post office.
var feeLines = []string{
	"本存證信函共　　　頁，正本　　　份，存證費　　　　元，",
	"　　　　　　　　　副本　　　份，存證費　　　　元，",
	"　　　　　　　　　附件　　　張，存證費　　　　元，",
	"　　　　　　　　　加具正本　份，存證費　　　　元，",
	"　　　　　　　　　加具副本　份，存證費　　　　元，合計　　　　元。",
}

var noteLines = []string{
	"一、存證信函需送交郵局辦理證明手續後始有效，自交寄之日起由郵局保存之",
	"　　副本，於三年期滿後銷燬之。",
	"二、在　頁　行第　格下塗改增刪　字",
	"　　　　　　　　　　　　　　　　　　　寄件人印章，但塗改增刪）",
	"　　　　　　　　　　　　　　　　　　　每頁至多不得逾二十字。",
	"三、每件一式三份，用不脫色筆或打字機複寫，或書寫後複印、影印，每格限",
	"　　書一字，色澤明顯、字跡端正。",
}

// footer is the static three-row block under the grid: fees and the stamp
// area, the post office certification row, and the notes.
func (r *renderer) footer() *docx.Table {
	total := r.layout.GridWidth
	leftW := r.layout.percent(72)
	rightW := total - leftW

	fees := make([]*docx.Paragraph, 0, len(feeLines))
	for _, s := range feeLines {
		fees = append(fees, r.line(s, 16))
	}
	row1 := docx.TableRow{Cells: []docx.TableCell{
		r.cell(leftW, docx.VAlignCenter, fees...),
		r.cell(rightW, docx.VAlignCenter,
			r.line("", 20),
			r.line("", 20),
			r.centered("黏　　　貼", 20, true),
		),
	}}

	midW := r.layout.percent(15)
	proofW := r.layout.percent(45)
	clerkW := leftW - proofW - midW
	row2 := docx.TableRow{Cells: []docx.TableCell{
		r.cell(proofW, docx.VAlignCenter,
			r.line("　經　　　郵局　正", 16),
			r.line("　年　月　日證明副本內容完全相同", 16),
		),
		r.cell(midW, docx.VAlignCenter, r.centered("郵戳", 16, false)),
		r.cell(clerkW, docx.VAlignCenter,
			r.centered("經辦員", 16, false),
			r.centered("主　管", 16, false),
		),
		r.cell(rightW, docx.VAlignCenter,
			r.centered("郵　票　或", 16, false),
			r.centered("郵　資　券", 16, false),
		),
	}}

	notes := make([]*docx.Paragraph, 0, len(noteLines))
	for i, s := range noteLines {
		if i == 2 {
			// The amendment note carries the instruction in a second run.
			notes = append(notes, r.para(docx.AlignLeft, 0,
				r.text(s, 14, false),
				r.text("　", 14, false),
				r.text("（如有修改應填註本欄並蓋用", 14, false),
			))
			continue
		}
		notes = append(notes, r.line(s, 14))
	}
	noteLabelW := r.layout.percent(8)
	noteW := total - noteLabelW - rightW
	row3 := docx.TableRow{Cells: []docx.TableCell{
		r.cell(noteLabelW, docx.VAlignCenter,
			r.centered("備", 20, true),
			r.line("", 20),
			r.centered("註", 20, true),
		),
		r.cell(noteW, docx.VAlignCenter, notes...),
		r.cell(rightW, docx.VAlignCenter, r.centered("處", 20, true)),
	}}

	return &docx.Table{
		Width: total,
		Fixed: true,
		Rows:  []docx.TableRow{row1, row2, row3},
	}
}
