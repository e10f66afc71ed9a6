// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package letter turns letter data into a finished .docx: it reflows the
// body, renders the form pages, and serializes the document. It also reads
// letter files and writes the result to disk.
package letter

import (
	"context"

	"github.com/squarer/letter-generator/internal/docx"
	"github.com/squarer/letter-generator/internal/reflow"
	"github.com/squarer/letter-generator/internal/render"
	"github.com/squarer/letter-generator/pkg/types"
)

// serialize encodes the rendered document. Tests replace it to simulate
// encoder failures.
var serialize = docx.Serialize

// Paginate reflows the letter body with the grid dimensions render will
// use for opts.
func Paginate(content string, opts render.Options) []reflow.Page {
	l := render.NewLayout(opts.Columns, opts.Rows)
	return reflow.Reflow(content, l.Columns, l.Rows)
}

// Build reflows and renders a letter without serializing it.
func Build(data types.LetterData, opts render.Options) *docx.Document {
	return render.Render(data, Paginate(data.Content, opts), opts)
}

// Generate produces the .docx bytes for data. It does not validate data;
// callers run form.Validate first. A context cancelled before serialization
// returns ctx.Err() and no output. Serialization failures are returned as
// *GenerationError.
func Generate(ctx context.Context, data types.LetterData, opts render.Options) ([]byte, error) {
	doc := Build(data, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := serialize(doc)
	if err != nil {
		return nil, &GenerationError{Cause: err}
	}
	return out, nil
}
