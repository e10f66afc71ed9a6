// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package letter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/squarer/letter-generator/internal/form"
	"github.com/squarer/letter-generator/internal/render"
)

// Job is one letter file to generate.
type Job struct {
	Input  string
	Output string
}

// JobsFor maps letter files to .docx outputs in outDir, named after the input.
func JobsFor(inputs []string, outDir string) []Job {
	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		jobs[i] = Job{Input: in, Output: filepath.Join(outDir, base+".docx")}
	}
	return jobs
}

// BatchResult holds the outcome of a batch generation run.
type BatchResult struct {
	Generated int
	Failed    int
	// Outputs lists the written documents in job order; failed jobs are "".
	Outputs []string
}

// Total returns the number of letters processed.
func (r BatchResult) Total() int {
	return r.Generated + r.Failed
}

// HasFailures reports whether any letter failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// GenerateBatch loads, validates, generates and saves each job with at most
// concurrency letters in flight. A failing letter is reported and counted;
// it does not stop the others.
func GenerateBatch(ctx context.Context, jobs []Job, opts render.Options, concurrency int, w io.Writer) BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}
	result := BatchResult{Outputs: make([]string, len(jobs))}

	var mu sync.Mutex
	report := func(i int, out string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", jobs[i].Input, err)
			return
		}
		result.Generated++
		result.Outputs[i] = out
		fmt.Fprintf(w, "generated: %s -> %s\n", jobs[i].Input, out)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range jobs {
		g.Go(func() error {
			out, err := GenerateFile(gctx, jobs[i], opts)
			report(i, out, err)
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintf(w, "\nBatch summary: %d generated, %d failed (total: %d)\n",
		result.Generated, result.Failed, result.Total())
	return result
}

// GenerateFile runs one job end to end and returns the written path.
func GenerateFile(ctx context.Context, job Job, opts render.Options) (string, error) {
	data, err := Load(job.Input)
	if err != nil {
		return "", err
	}
	if err := form.Validate(data); err != nil {
		return "", err
	}
	payload, err := Generate(ctx, data, opts)
	if err != nil {
		return "", err
	}
	return Save(job.Output, payload)
}
