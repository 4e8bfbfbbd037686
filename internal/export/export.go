// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export orchestrates the page pipeline: render, enhance, assemble.
// An export isolates per-page failures, a batch isolates per-document
// failures, and both report ordered monotonic progress.
// Implements: prd003-export.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/notes-press/internal/enhance"
	"github.com/pdiddy/notes-press/internal/pagerange"
	"github.com/pdiddy/notes-press/internal/render"
	"github.com/pdiddy/notes-press/pkg/types"
)

// Options configures a single export job.
type Options struct {
	// Quality is the JPEG quality for output pages (default 85).
	Quality int

	// KeepPartialOnCancel commits the pages completed before cancellation
	// instead of discarding them. The job still ends cancelled.
	KeepPartialOnCancel bool

	// Writer assembles the output document. Defaults to PDFWriter.
	Writer Writer

	// Progress receives (completed, total) notifications between pages.
	Progress types.ProgressFunc
}

// PageResult is one page's processing attempt. It is created pending when
// the job begins and resolved exactly once.
type PageResult struct {
	// Index is the zero-based page index in the source document.
	Index int

	// Status is pending until the page resolves.
	Status types.JobStatus

	// Err holds the failure reason; it wraps ErrRender or ErrEnhance.
	Err error
}

// Result is the outcome of one export job.
type Result struct {
	// JobID uniquely identifies this run.
	JobID string

	// OutputPath is where the assembled document was (or would have been)
	// written.
	OutputPath string

	// Status is the job's terminal state.
	Status types.JobStatus

	// Pages holds one entry per requested page, in range order.
	Pages []PageResult

	// Written is the number of pages assembled into the output.
	Written int

	Started  time.Time
	Finished time.Time
}

// Failures returns the pages that failed, in range order.
func (r *Result) Failures() []PageResult {
	var failed []PageResult
	for _, p := range r.Pages {
		if p.Status == types.JobFailed {
			failed = append(failed, p)
		}
	}
	return failed
}

// progressEmitter guarantees the notification stream is monotonically
// non-decreasing regardless of caller behavior.
type progressEmitter struct {
	fn   types.ProgressFunc
	last int
}

func (e *progressEmitter) emit(completed, total int) {
	if e.fn == nil {
		return
	}
	if completed < e.last {
		completed = e.last
	}
	e.last = completed
	e.fn(types.Progress{Completed: completed, Total: total})
}

// Pages runs render and enhance over the selected range and returns the
// surviving bitmaps in page order alongside the job record. A per-page
// failure is recorded and the next index proceeds; only cancellation stops
// the loop early. The settings value is the job's immutable snapshot.
func Pages(ctx context.Context, doc render.Document, pages pagerange.PageRange, s types.Settings, opts Options, w io.Writer) ([]image.Image, *Result) {
	if pages == nil {
		pages = make(pagerange.PageRange, doc.PageCount())
		for i := range pages {
			pages[i] = i
		}
	}

	res := &Result{
		JobID:   uuid.NewString(),
		Status:  types.JobPending,
		Pages:   make([]PageResult, len(pages)),
		Started: time.Now().UTC(),
	}
	for i, idx := range pages {
		res.Pages[i] = PageResult{Index: idx, Status: types.JobPending}
	}

	emitter := &progressEmitter{fn: opts.Progress}
	emitter.emit(0, len(pages))

	var bitmaps []image.Image
	for i, idx := range pages {
		// Cancellation is checked between pages, never mid-page.
		if ctx.Err() != nil {
			res.Status = types.JobCancelled
			res.Finished = time.Now().UTC()
			return bitmaps, res
		}

		img, err := render.Page(doc, idx)
		if err != nil {
			res.Pages[i].Status = types.JobFailed
			res.Pages[i].Err = fmt.Errorf("%w: %v", ErrRender, err)
			fmt.Fprintf(w, "failed: page %d (%v)\n", idx+1, err)
			emitter.emit(i+1, len(pages))
			continue
		}

		out, err := enhance.Apply(img, s)
		if err != nil {
			res.Pages[i].Status = types.JobFailed
			res.Pages[i].Err = fmt.Errorf("%w: %v", ErrEnhance, err)
			fmt.Fprintf(w, "failed: page %d (%v)\n", idx+1, err)
			emitter.emit(i+1, len(pages))
			continue
		}

		res.Pages[i].Status = types.JobSucceeded
		bitmaps = append(bitmaps, out)
		emitter.emit(i+1, len(pages))
	}

	res.Finished = time.Now().UTC()
	return bitmaps, res
}

// Export converts the selected pages of doc and writes the assembled
// raster-page document to outPath. Per-page failures are recorded in the
// result and do not abort the job; the job fails outright only when every
// page fails, the output cannot be written, or the context is cancelled.
func Export(ctx context.Context, doc render.Document, pages pagerange.PageRange, s types.Settings, outPath string, opts Options, w io.Writer) (*Result, error) {
	if opts.Writer == nil {
		opts.Writer = PDFWriter{}
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}

	bitmaps, res := Pages(ctx, doc, pages, s, opts, w)
	res.OutputPath = outPath

	if res.Status == types.JobCancelled {
		if opts.KeepPartialOnCancel && len(bitmaps) > 0 {
			if err := opts.Writer.Write(outPath, bitmaps, opts.Quality); err != nil {
				return res, fmt.Errorf("%w: %v", ErrOutputWrite, err)
			}
			res.Written = len(bitmaps)
		}
		return res, fmt.Errorf("after %d of %d pages: %w", len(bitmaps), len(res.Pages), ErrCancelled)
	}

	if len(bitmaps) == 0 {
		res.Status = types.JobFailed
		var reasons []error
		for _, p := range res.Failures() {
			reasons = append(reasons, fmt.Errorf("page %d: %v", p.Index+1, p.Err))
		}
		return res, fmt.Errorf("%w: %v", ErrAllPagesFailed, errors.Join(reasons...))
	}

	if err := opts.Writer.Write(outPath, bitmaps, opts.Quality); err != nil {
		res.Status = types.JobFailed
		return res, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	res.Written = len(bitmaps)
	res.Status = types.JobSucceeded
	res.Finished = time.Now().UTC()
	return res, nil
}
