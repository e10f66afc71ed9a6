// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reflow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleContents covers the inputs every property test runs against.
var sampleContents = []string{
	"",
	" ",
	"\n",
	"\n\n\n",
	"hello",
	strings.Repeat("a", 199),
	strings.Repeat("a", 200),
	strings.Repeat("a", 201),
	strings.Repeat("存證信函", 60),
	"第一段\n\n第三段" + strings.Repeat("字", 45),
	"line one\r\nline two\rline three",
	"été 👍🏽 🇹🇼 家",
	strings.Repeat("x\n", 25),
}

func TestReflowAlwaysReturnsAPage(t *testing.T) {
	for _, content := range sampleContents {
		pages := Reflow(content, DefaultColumns, DefaultRows)
		assert.NotEmpty(t, pages, "content %q", content)
	}
}

func TestReflowBounds(t *testing.T) {
	for _, content := range sampleContents {
		for _, page := range Reflow(content, DefaultColumns, DefaultRows) {
			assert.LessOrEqual(t, len(page), DefaultRows, "content %q", content)
			for _, line := range page {
				assert.LessOrEqual(t, len(line), DefaultColumns, "content %q", content)
			}
		}
	}
}

func TestReflowFullPagesExceptLast(t *testing.T) {
	for _, content := range sampleContents {
		pages := Reflow(content, DefaultColumns, DefaultRows)
		for i, page := range pages[:len(pages)-1] {
			assert.Len(t, page, DefaultRows, "page %d of %q", i, content)
		}
	}
}

func TestReflowRoundTrip(t *testing.T) {
	for _, content := range sampleContents {
		var flat []Line
		for _, page := range Reflow(content, DefaultColumns, DefaultRows) {
			flat = append(flat, page...)
		}

		// Re-assemble each paragraph from the lines it produced.
		idx := 0
		for _, para := range Paragraphs(content) {
			chars := Characters(para)
			n := max(1, (len(chars)+DefaultColumns-1)/DefaultColumns)
			require.LessOrEqual(t, idx+n, len(flat), "content %q", content)

			var got []string
			for _, l := range flat[idx : idx+n] {
				got = append(got, l...)
			}
			assert.Equal(t, strings.Join(chars, ""), strings.Join(got, ""), "paragraph %q", para)
			idx += n
		}
		assert.Equal(t, len(flat), idx, "content %q has extra lines", content)
	}
}

func TestReflowIdempotent(t *testing.T) {
	for _, content := range sampleContents {
		assert.Equal(t,
			Reflow(content, DefaultColumns, DefaultRows),
			Reflow(content, DefaultColumns, DefaultRows),
		)
	}
}

func TestReflowBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantPages int
		check     func(t *testing.T, pages []Page)
	}{
		{
			name:      "empty content is one page with one empty line",
			content:   "",
			wantPages: 1,
			check: func(t *testing.T, pages []Page) {
				require.Len(t, pages[0], 1)
				assert.Empty(t, pages[0][0])
			},
		},
		{
			name:      "exactly one full page",
			content:   strings.Repeat("字", DefaultColumns*DefaultRows),
			wantPages: 1,
			check: func(t *testing.T, pages []Page) {
				require.Len(t, pages[0], DefaultRows)
				for _, l := range pages[0] {
					assert.Len(t, l, DefaultColumns)
				}
			},
		},
		{
			name:      "one character of overflow",
			content:   strings.Repeat("字", DefaultColumns*DefaultRows+1),
			wantPages: 2,
			check: func(t *testing.T, pages []Page) {
				require.Len(t, pages[1], 1)
				assert.Equal(t, Line{"字"}, pages[1][0])
			},
		},
		{
			name:      "only newlines",
			content:   "\n\n",
			wantPages: 1,
			check: func(t *testing.T, pages []Page) {
				assert.Equal(t, Page{{}, {}, {}}, pages[0])
			},
		},
		{
			name:      "paragraph never joins a partial line",
			content:   "abc\ndef",
			wantPages: 1,
			check: func(t *testing.T, pages []Page) {
				assert.Equal(t, Page{{"a", "b", "c"}, {"d", "e", "f"}}, pages[0])
			},
		},
		{
			name:      "eleven paragraphs spill onto a second page",
			content:   strings.Repeat("x\n", 10) + "y",
			wantPages: 2,
			check: func(t *testing.T, pages []Page) {
				assert.Equal(t, Page{{"y"}}, pages[1])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := Reflow(tt.content, DefaultColumns, DefaultRows)
			require.Len(t, pages, tt.wantPages)
			tt.check(t, pages)
		})
	}
}

func TestReflowGraphemeClusters(t *testing.T) {
	pages := Reflow("é👍🏽🇹🇼家", 2, 10)
	require.Len(t, pages, 1)
	assert.Equal(t, Page{
		{"é", "👍🏽"},
		{"🇹🇼", "家"},
	}, pages[0])
}

func TestReflowLineEndings(t *testing.T) {
	pages := Reflow("a\r\nb\rc\nd", DefaultColumns, DefaultRows)
	assert.Equal(t, Page{{"a"}, {"b"}, {"c"}, {"d"}}, pages[0])
}

func TestReflowDefaultsForInvalidDimensions(t *testing.T) {
	content := strings.Repeat("a", 45)
	assert.Equal(t,
		Reflow(content, DefaultColumns, DefaultRows),
		Reflow(content, 0, -1),
	)
}

func TestPaginateEmpty(t *testing.T) {
	pages := Paginate(nil, DefaultRows)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0])
}

func TestLinesDoNotAlias(t *testing.T) {
	lines := Lines(strings.Repeat("a", 40), DefaultColumns)
	require.Len(t, lines, 2)
	lines[0] = append(lines[0], "z")
	assert.Equal(t, "a", lines[1][0])
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Summary
	}{
		{
			name:    "empty",
			content: "",
			want:    Summary{Characters: 0, Lines: 1, Pages: 1, CellsLeft: 200},
		},
		{
			name:    "hello",
			content: "hello",
			want:    Summary{Characters: 5, Lines: 1, Pages: 1, CellsLeft: 195},
		},
		{
			name:    "two pages",
			content: strings.Repeat("字", 205),
			want:    Summary{Characters: 205, Lines: 11, Pages: 2, CellsLeft: 195},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.content, DefaultColumns, DefaultRows))
		})
	}
}

func TestWriteGrid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, Reflow("hi", 3, 2), 3, 2))

	want := "-- page 1/1 --\n" +
		"    1 2 3 \n" +
		"  1 hi　\n" +
		"  2 　　　\n"
	assert.Equal(t, want, buf.String())
}
