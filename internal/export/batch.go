// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/notes-press/internal/render"
	"github.com/pdiddy/notes-press/pkg/types"
)

// OutputSuffix is appended to the input file's stem to derive the batch
// output name.
const OutputSuffix = "_converted"

// OpenFunc opens a document for reading. Injected so tests and callers can
// substitute fakes for the MuPDF-backed implementation.
type OpenFunc func(path string) (render.Document, error)

// defaultOpen opens documents through go-fitz.
func defaultOpen(path string) (render.Document, error) {
	return render.Open(path)
}

// BatchOptions configures a batch run. The embedded export Options apply to
// every entry.
type BatchOptions struct {
	Options

	// Open opens each input document. Defaults to the MuPDF reader.
	Open OpenFunc

	// OutputDir places outputs in a fixed directory instead of next to
	// each input.
	OutputDir string
}

// Entry is one input file's outcome. Entries are independent: a failure
// never prevents subsequent entries from running.
type Entry struct {
	Input  string
	Output string
	Status types.JobStatus
	Pages  int
	Err    error
}

// BatchResult holds the ordered per-entry outcomes of a batch run.
type BatchResult struct {
	Entries   []Entry
	Succeeded int
	Failed    int
	Cancelled int
}

// Total returns the number of inputs processed or skipped.
func (r BatchResult) Total() int {
	return len(r.Entries)
}

// HasFailures reports whether any entry failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputName derives the output path for an input file by appending the
// fixed suffix before the extension: notes.pdf becomes notes_converted.pdf.
// A non-empty dir overrides the input's directory.
func OutputName(input, dir string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, stem+OutputSuffix+ext)
}

// Batch runs one export per input document over all pages with a shared
// settings snapshot. An unreadable document or failed export is recorded
// and the batch moves on; cancellation marks the remaining entries
// cancelled and stops.
func Batch(ctx context.Context, inputs []string, s types.Settings, opts BatchOptions, w io.Writer) BatchResult {
	if opts.Open == nil {
		opts.Open = defaultOpen
	}

	var result BatchResult
	for n, input := range inputs {
		if ctx.Err() != nil {
			for _, rest := range inputs[n:] {
				result.Entries = append(result.Entries, Entry{
					Input:  rest,
					Status: types.JobCancelled,
					Err:    ErrCancelled,
				})
				result.Cancelled++
			}
			break
		}

		entry := Entry{Input: input, Output: OutputName(input, opts.OutputDir)}

		doc, err := opts.Open(input)
		if err != nil {
			entry.Status = types.JobFailed
			entry.Err = err
			result.Entries = append(result.Entries, entry)
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(input), err)
			continue
		}

		res, err := Export(ctx, doc, nil, s, entry.Output, opts.Options, w)
		doc.Close()

		switch {
		case err != nil && errors.Is(err, ErrCancelled):
			entry.Status = types.JobCancelled
			entry.Err = err
			result.Cancelled++
			fmt.Fprintf(w, "cancelled: %s\n", filepath.Base(input))
		case err != nil:
			entry.Status = types.JobFailed
			entry.Err = err
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(input), err)
		default:
			entry.Status = types.JobSucceeded
			entry.Pages = res.Written
			result.Succeeded++
			if failed := len(res.Failures()); failed > 0 {
				fmt.Fprintf(w, "converted: %s (%d pages, %d skipped after errors)\n",
					filepath.Base(input), res.Written, failed)
			} else {
				fmt.Fprintf(w, "converted: %s (%d pages)\n", filepath.Base(input), res.Written)
			}
		}
		result.Entries = append(result.Entries, entry)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Succeeded, result.Failed, result.Total())
	return result
}
