// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"fmt"
	"image"
	"testing"
)

// fakeDocument implements Document without a PDF behind it.
type fakeDocument struct {
	pages    int
	renders  int
	failPage int // index that fails to render; -1 for none
}

func newFakeDocument(pages int) *fakeDocument {
	return &fakeDocument{pages: pages, failPage: -1}
}

func (d *fakeDocument) PageCount() int { return d.pages }

func (d *fakeDocument) PageSize(index int) (float64, float64, error) {
	if index < 0 || index >= d.pages {
		return 0, 0, ErrPageOutOfRange
	}
	return 595, 842, nil
}

func (d *fakeDocument) Render(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= d.pages {
		return nil, ErrPageOutOfRange
	}
	if index == d.failPage {
		return nil, fmt.Errorf("damaged page stream")
	}
	d.renders++
	// Page pixel size scales with density, like a real rasterizer.
	w := 595 * dpi / 72
	h := 842 * dpi / 72
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

func (d *fakeDocument) Close() error { return nil }

func TestPage_RendersAtFixedDensity(t *testing.T) {
	doc := newFakeDocument(3)
	img, err := Page(doc, 1)
	if err != nil {
		t.Fatal(err)
	}
	wantW := 595 * DPI / 72
	if img.Bounds().Dx() != wantW {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), wantW)
	}
}

func TestPage_OutOfRange(t *testing.T) {
	doc := newFakeDocument(3)
	for _, idx := range []int{-1, 3, 10} {
		_, err := Page(doc, idx)
		if !errors.Is(err, ErrPageOutOfRange) {
			t.Errorf("index %d: err = %v, want ErrPageOutOfRange", idx, err)
		}
	}
	if doc.renders != 0 {
		t.Errorf("out-of-range requests should not touch the document, rendered %d", doc.renders)
	}
}

func TestPage_Repeatable(t *testing.T) {
	doc := newFakeDocument(2)
	a, err := Page(doc, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Page(doc, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bounds() != b.Bounds() {
		t.Errorf("repeat render differs: %v vs %v", a.Bounds(), b.Bounds())
	}
}
