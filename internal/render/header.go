// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"

	"github.com/squarer/letter-generator/internal/docx"
	"github.com/squarer/letter-generator/pkg/types"
)

// partyOrdinals number the three party blocks of the header.
var partyOrdinals = map[types.Category]string{
	types.CategorySender:    "一、",
	types.CategoryRecipient: "二、",
	types.CategoryCC:        "三、",
}

const (
	senderNotice = "〈寄件人如為機關、團體、學校、公司、商號請加蓋單位圖章及法定代理人簽名或蓋章〉"
	overflowNote = "（本欄姓名、地址不敷填寫時，請另紙聯記）"
)

// header is the two-column block above the grid: office fields on the
// left, the three party blocks on the right. A category with no parties
// still prints its label and blank fields so the header keeps its shape.
func (r *renderer) header(data types.LetterData) *docx.Table {
	leftW := r.layout.percent(28)
	rightW := r.layout.GridWidth - leftW

	left := []*docx.Paragraph{
		r.centered("副　本", 18, false),
		r.centered("郵　局", 22, true),
		r.centered("正　本", 18, false),
		r.line("", 18),
		r.para(docx.AlignCenter, 0,
			r.text("存證信函第", 18, false),
			r.text("　　　　", 18, false),
			r.text("號", 18, false),
		),
	}

	right := []*docx.Paragraph{r.line(senderNotice, 14)}
	for _, c := range types.Categories {
		right = append(right, r.partyBlock(c, data.Parties(c))...)
	}
	right = append(right, r.centered(overflowNote, 14, false))

	return &docx.Table{
		Width:        r.layout.GridWidth,
		Fixed:        true,
		ColumnWidths: []int{leftW, rightW},
		Rows: []docx.TableRow{{
			Cells: []docx.TableCell{
				r.cell(leftW, docx.VAlignCenter, left...),
				r.cell(rightW, docx.VAlignTop, right...),
			},
		}},
	}
}

// partyBlock prints the numbered label and the name/address lines of one
// category. Names are numbered only when the category has several parties.
func (r *renderer) partyBlock(c types.Category, parties []types.Party) []*docx.Paragraph {
	out := []*docx.Paragraph{r.line(partyOrdinals[c]+c.Label(), 18)}
	switch len(parties) {
	case 0:
		out = append(out,
			r.line("　　姓名：", 18),
			r.line("　　詳細地址：", 18),
		)
	case 1:
		out = append(out,
			r.line("　　姓名："+parties[0].Name, 18),
			r.line("　　詳細地址："+parties[0].Address, 18),
		)
	default:
		for i, p := range parties {
			out = append(out,
				r.line(fmt.Sprintf("　　姓名%d：%s", i+1, p.Name), 18),
				r.line("　　詳細地址："+p.Address, 18),
			)
		}
	}
	return out
}
