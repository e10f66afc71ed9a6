// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/squarer/letter-generator/internal/container"
)

// DefaultImage reads a .docx on stdin and writes a PDF on stdout. It is
// built from build/docx2pdf.
const DefaultImage = "letter-generator/docx2pdf:latest"

var pdfMagic = []byte("%PDF-")

// PDFConverter converts documents by piping them through a LibreOffice
// container image on a container.Runtime.
type PDFConverter struct {
	runtime container.Runtime
	image   string
}

// NewPDFConverter checks that image exists in rt. An empty image uses
// DefaultImage.
func NewPDFConverter(rt container.Runtime, image string) (*PDFConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("PDF image not available in %s: %w", rt.Name(), err)
	}
	return &PDFConverter{runtime: rt, image: image}, nil
}

// Convert pipes docx through the container and returns the PDF.
func (p *PDFConverter) Convert(ctx context.Context, docx []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := p.runtime.Run(ctx, p.image, bytes.NewReader(docx), &out); err != nil {
		return nil, fmt.Errorf("converting with %s: %w", p.image, err)
	}
	if !bytes.HasPrefix(out.Bytes(), pdfMagic) {
		return nil, fmt.Errorf("%s did not produce a PDF (%d bytes)", p.image, out.Len())
	}
	return out.Bytes(), nil
}
