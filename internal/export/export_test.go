// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/notes-press/internal/pagerange"
	"github.com/pdiddy/notes-press/internal/render"
	"github.com/pdiddy/notes-press/pkg/types"
)

// fakeDoc implements render.Document with configurable per-page failures.
type fakeDoc struct {
	pages     int
	failPages map[int]bool
	closed    bool
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) PageSize(index int) (float64, float64, error) {
	return 595, 842, nil
}

func (d *fakeDoc) Render(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= d.pages {
		return nil, render.ErrPageOutOfRange
	}
	if d.failPages[index] {
		return nil, fmt.Errorf("damaged page stream")
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(index)
	}
	return img, nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

// fakeWriter records writes and creates a marker file so callers can check
// output existence.
type fakeWriter struct {
	writes []int // pages per write
	err    error
}

func (f *fakeWriter) Write(path string, pages []image.Image, quality int) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, len(pages))
	return os.WriteFile(path, []byte("pdf"), 0o644)
}

func defaultTestSettings() types.Settings {
	return types.Settings{Contrast: 1.2, Brightness: 1.0, Sharpness: 1.0, Grayscale: true, Invert: true}
}

func TestExport_AllPages(t *testing.T) {
	doc := &fakeDoc{pages: 5}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	var log bytes.Buffer
	res, err := Export(context.Background(), doc, nil, defaultTestSettings(), out, Options{Writer: fw}, &log)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != types.JobSucceeded {
		t.Errorf("status = %q, want succeeded", res.Status)
	}
	if res.Written != 5 {
		t.Errorf("written = %d, want 5", res.Written)
	}
	if res.JobID == "" {
		t.Error("job should carry an ID")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output should exist: %v", err)
	}
}

func TestExport_PageFailureIsIsolated(t *testing.T) {
	doc := &fakeDoc{pages: 5, failPages: map[int]bool{2: true}}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	var log bytes.Buffer
	res, err := Export(context.Background(), doc, nil, defaultTestSettings(), out, Options{Writer: fw}, &log)
	if err != nil {
		t.Fatal(err)
	}

	if res.Written != 4 {
		t.Errorf("written = %d, want 4", res.Written)
	}
	failures := res.Failures()
	if len(failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(failures))
	}
	if failures[0].Index != 2 {
		t.Errorf("failed index = %d, want 2", failures[0].Index)
	}
	if !errors.Is(failures[0].Err, ErrRender) {
		t.Errorf("failure should wrap ErrRender, got %v", failures[0].Err)
	}

	// Surviving pages resolve succeeded in order.
	for _, i := range []int{0, 1, 3, 4} {
		if res.Pages[i].Status != types.JobSucceeded {
			t.Errorf("page %d status = %q, want succeeded", i, res.Pages[i].Status)
		}
	}
}

func TestExport_SelectedRange(t *testing.T) {
	doc := &fakeDoc{pages: 15}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	pages, err := pagerange.Parse("1-3,6,9-12", 15)
	if err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	res, err := Export(context.Background(), doc, pages, defaultTestSettings(), out, Options{Writer: fw}, &log)
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 8 {
		t.Errorf("written = %d, want 8", res.Written)
	}
}

func TestExport_AllPagesFailed(t *testing.T) {
	doc := &fakeDoc{pages: 3, failPages: map[int]bool{0: true, 1: true, 2: true}}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	var log bytes.Buffer
	res, err := Export(context.Background(), doc, nil, defaultTestSettings(), out, Options{Writer: fw}, &log)
	if !errors.Is(err, ErrAllPagesFailed) {
		t.Fatalf("err = %v, want ErrAllPagesFailed", err)
	}
	if res.Status != types.JobFailed {
		t.Errorf("status = %q, want failed", res.Status)
	}
	if len(fw.writes) != 0 {
		t.Error("nothing should be written when every page fails")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("no output file should exist")
	}
}

func TestExport_InvalidSettingsFailPerPage(t *testing.T) {
	doc := &fakeDoc{pages: 2}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	bad := types.Settings{Contrast: 99, Brightness: 1.0, Sharpness: 1.0}
	var log bytes.Buffer
	res, err := Export(context.Background(), doc, nil, bad, out, Options{Writer: fw}, &log)
	if !errors.Is(err, ErrAllPagesFailed) {
		t.Fatalf("err = %v, want ErrAllPagesFailed", err)
	}
	for _, p := range res.Pages {
		if !errors.Is(p.Err, ErrEnhance) {
			t.Errorf("page %d err = %v, want ErrEnhance", p.Index, p.Err)
		}
	}
}

func TestExport_OutputWriteFailure(t *testing.T) {
	doc := &fakeDoc{pages: 2}
	fw := &fakeWriter{err: fmt.Errorf("disk full")}
	out := filepath.Join(t.TempDir(), "out.pdf")

	var log bytes.Buffer
	_, err := Export(context.Background(), doc, nil, defaultTestSettings(), out, Options{Writer: fw}, &log)
	if !errors.Is(err, ErrOutputWrite) {
		t.Fatalf("err = %v, want ErrOutputWrite", err)
	}
}

func TestExport_ProgressMonotonic(t *testing.T) {
	doc := &fakeDoc{pages: 10, failPages: map[int]bool{3: true, 7: true}}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	var events []types.Progress
	opts := Options{
		Writer: fw,
		Progress: func(p types.Progress) {
			events = append(events, p)
		},
	}

	var log bytes.Buffer
	if _, err := Export(context.Background(), doc, nil, defaultTestSettings(), out, opts, &log); err != nil {
		t.Fatal(err)
	}

	if len(events) == 0 {
		t.Fatal("no progress events delivered")
	}
	prev := -1
	for _, e := range events {
		if e.Total != 10 {
			t.Errorf("total = %d, want 10", e.Total)
		}
		if e.Completed < prev {
			t.Errorf("progress went backwards: %d after %d", e.Completed, prev)
		}
		prev = e.Completed
	}
	last := events[len(events)-1]
	if last.Completed != 10 {
		t.Errorf("final completed = %d, want 10", last.Completed)
	}
}

func TestExport_CancelledDiscardsByDefault(t *testing.T) {
	doc := &fakeDoc{pages: 5}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := false
	opts := Options{
		Writer: fw,
		Progress: func(p types.Progress) {
			if p.Completed >= 2 && !cancelled {
				cancelled = true
				cancel()
			}
		},
	}

	var log bytes.Buffer
	res, err := Export(ctx, doc, nil, defaultTestSettings(), out, opts, &log)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if res.Status != types.JobCancelled {
		t.Errorf("status = %q, want cancelled", res.Status)
	}
	if res.Written != 0 {
		t.Errorf("written = %d, want 0 (discard by default)", res.Written)
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("cancelled job should leave no output")
	}
}

func TestExport_CancelledKeepsPartialWhenAsked(t *testing.T) {
	doc := &fakeDoc{pages: 5}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := false
	opts := Options{
		Writer:              fw,
		KeepPartialOnCancel: true,
		Progress: func(p types.Progress) {
			if p.Completed >= 2 && !cancelled {
				cancelled = true
				cancel()
			}
		},
	}

	var log bytes.Buffer
	res, err := Export(ctx, doc, nil, defaultTestSettings(), out, opts, &log)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if res.Written != 2 {
		t.Errorf("written = %d, want 2", res.Written)
	}
	if _, statErr := os.Stat(out); statErr != nil {
		t.Errorf("partial output should exist: %v", statErr)
	}
}

func TestExport_SnapshotSettingsUnaffectedByCallerMutation(t *testing.T) {
	doc := &fakeDoc{pages: 3}
	fw := &fakeWriter{}
	out := filepath.Join(t.TempDir(), "out.pdf")

	s := defaultTestSettings()
	var log bytes.Buffer
	res, err := Export(context.Background(), doc, nil, s, out, Options{Writer: fw}, &log)
	if err != nil {
		t.Fatal(err)
	}
	// Settings is passed by value; mutating the caller's copy afterwards
	// cannot have influenced the job.
	s.Contrast = 99
	if res.Written != 3 {
		t.Errorf("written = %d, want 3", res.Written)
	}
}
