// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package letter

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarer/letter-generator/internal/docx"
	"github.com/squarer/letter-generator/internal/form"
	"github.com/squarer/letter-generator/internal/render"
	"github.com/squarer/letter-generator/internal/schemas"
	"github.com/squarer/letter-generator/pkg/types"
)

func helloLetter() types.LetterData {
	return types.LetterData{
		Senders:      []types.Party{{Name: "A", Address: "X"}},
		Recipients:   []types.Party{{Name: "B", Address: "Y"}},
		CCRecipients: []types.Party{},
		Content:      "hello",
	}
}

const helloYAML = `senders:
  - name: A
    address: X
recipients:
  - name: B
    address: Y
content: hello
`

func documentXML(t *testing.T, payload []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestGenerateHello(t *testing.T) {
	payload, err := Generate(context.Background(), helloLetter(), render.DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	xml := documentXML(t, payload)
	assert.Equal(t, 1, strings.Count(xml, "<w:sectPr>"), "one page, one section")
	assert.Contains(t, xml, "姓名：A")
	assert.Contains(t, xml, "詳細地址：Y")
	for _, ch := range []string{">h<", ">e<", ">l<", ">o<"} {
		assert.Contains(t, xml, ch)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(context.Background(), helloLetter(), render.DefaultOptions())
	require.NoError(t, err)
	b, err := Generate(context.Background(), helloLetter(), render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	payload, err := Generate(ctx, helloLetter(), render.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, payload)
}

func TestGenerateSerializerFailure(t *testing.T) {
	boom := errors.New("disk full")
	orig := serialize
	serialize = func(*docx.Document) ([]byte, error) { return nil, boom }
	t.Cleanup(func() { serialize = orig })

	payload, err := Generate(context.Background(), helloLetter(), render.DefaultOptions())
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, boom)
	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, boom, ge.Cause)
}

func TestPaginateUsesLayoutDimensions(t *testing.T) {
	opts := render.DefaultOptions()
	opts.Columns, opts.Rows = 0, -1
	pages := Paginate(strings.Repeat("字", 201), opts)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 10)
	assert.Len(t, pages[0][0], 20)
	assert.Len(t, pages[1], 1)
}

func TestBuildOneSectionPerPage(t *testing.T) {
	data := helloLetter()
	data.Content = strings.Repeat("字", 450)
	doc := Build(data, render.DefaultOptions())
	assert.Len(t, doc.Sections, 3)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		got, err := Load(writeFile(t, dir, "hello.yaml", helloYAML))
		require.NoError(t, err)
		assert.Equal(t, helloLetter(), got)
	})

	t.Run("json", func(t *testing.T) {
		p := writeFile(t, dir, "hello.json", `{
  "senders": [{"name": "A", "address": "X"}],
  "recipients": [{"name": "B", "address": "Y"}],
  "cc_recipients": null,
  "content": "hello"
}`)
		got, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, helloLetter(), got)
	})

	t.Run("schema violation", func(t *testing.T) {
		p := writeFile(t, dir, "bad.yaml", "senders: []\nrecipients: nope\ncontent: hi\n")
		_, err := Load(p)
		var ve *schemas.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, err.Error(), "bad.yaml")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, dir, "hello.txt", helloYAML))
		assert.ErrorContains(t, err, "unsupported letter file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestReadAcceptsJSON(t *testing.T) {
	got, err := Read(strings.NewReader(`{"senders":[{"name":"A","address":"X"}],"recipients":[{"name":"B","address":"Y"}],"content":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, helloLetter(), got)
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, helloLetter(), f))
			got, err := Decode(buf.Bytes(), f)
			require.NoError(t, err)
			assert.Equal(t, helloLetter(), got)
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	t.Run("nested file", func(t *testing.T) {
		want := filepath.Join(dir, "a", "b", "out.docx")
		got, err := Save(want, []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.FileExists(t, want)
	})

	t.Run("existing directory", func(t *testing.T) {
		got, err := Save(dir, []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, DefaultFileName), got)
		assert.FileExists(t, got)
	})

	t.Run("trailing separator", func(t *testing.T) {
		target := filepath.Join(dir, "new") + string(filepath.Separator)
		got, err := Save(target, []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "new", DefaultFileName), got)
	})
}

func TestGenerateBatch(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	inputs := []string{
		writeFile(t, in, "one.yaml", helloYAML),
		writeFile(t, in, "two.yaml", strings.Replace(helloYAML, "hello", "world", 1)),
		writeFile(t, in, "blank.yaml", strings.Replace(helloYAML, "content: hello", `content: "   "`, 1)),
		writeFile(t, in, "broken.yaml", "senders: [\n"),
	}

	var buf bytes.Buffer
	result := GenerateBatch(context.Background(), JobsFor(inputs, out), render.DefaultOptions(), 2, &buf)

	assert.Equal(t, 2, result.Generated)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())
	assert.Equal(t, filepath.Join(out, "one.docx"), result.Outputs[0])
	assert.Equal(t, filepath.Join(out, "two.docx"), result.Outputs[1])
	assert.Empty(t, result.Outputs[2])
	assert.FileExists(t, filepath.Join(out, "one.docx"))
	assert.NoFileExists(t, filepath.Join(out, "blank.docx"))

	log := buf.String()
	assert.Contains(t, log, "generated: "+inputs[0])
	assert.Contains(t, log, "failed:    "+inputs[2])
	assert.Contains(t, log, form.MsgContentRequired)
	assert.Contains(t, log, "Batch summary: 2 generated, 2 failed (total: 4)")
}

func TestGenerateBatchMatchesSingle(t *testing.T) {
	in := t.TempDir()
	p := writeFile(t, in, "hello.yaml", helloYAML)
	result := GenerateBatch(context.Background(), JobsFor([]string{p}, t.TempDir()), render.DefaultOptions(), 0, io.Discard)
	require.Equal(t, 1, result.Generated)

	got, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	want, err := Generate(context.Background(), helloLetter(), render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, path, file, want string
	}{
		{"empty path", "", "", DefaultFileName},
		{"empty path custom name", "", "a.docx", "a.docx"},
		{"file path", filepath.Join(dir, "x.docx"), "a.docx", filepath.Join(dir, "x.docx")},
		{"directory", dir, "", filepath.Join(dir, DefaultFileName)},
		{"directory custom name", dir, "a.docx", filepath.Join(dir, "a.docx")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.path, tt.file))
		})
	}
}
