// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns generated .docx letters into PDF with pluggable
// backends. The default backend runs LibreOffice inside a container.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Converter transforms a .docx payload into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, docx []byte) ([]byte, error)
}

// Status is the outcome of converting one file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// PDFPath returns the PDF written next to docxPath.
func PDFPath(docxPath string) string {
	return strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf"
}

// ConvertFile converts the document at docxPath and writes the PDF next to
// it. A PDF newer than the document is left alone unless force is set.
func ConvertFile(ctx context.Context, c Converter, docxPath string, force bool, w io.Writer) Status {
	pdfPath := PDFPath(docxPath)
	name := filepath.Base(docxPath)

	src, err := os.Stat(docxPath)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return StatusFailed
	}
	if !force {
		if dst, err := os.Stat(pdfPath); err == nil && !dst.ModTime().Before(src.ModTime()) {
			fmt.Fprintf(w, "skipped:   %s (PDF is up to date)\n", name)
			return StatusSkipped
		}
	}

	data, err := os.ReadFile(docxPath)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return StatusFailed
	}

	pdf, err := c.Convert(ctx, data)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return StatusFailed
	}

	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", name, filepath.Base(pdfPath))
	return StatusConverted
}

// ConvertBatch converts each document in turn, printing per-file status to
// w and returning a summary. Conversion stops early when ctx is cancelled.
func ConvertBatch(ctx context.Context, c Converter, docxPaths []string, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range docxPaths {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(p), ctx.Err())
			result.Failed++
			continue
		}
		switch ConvertFile(ctx, c, p, force, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nPDF summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
