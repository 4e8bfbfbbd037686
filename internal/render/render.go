// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes document pages into bitmaps at a fixed density.
// The Document abstraction keeps the PDF container internals out of the
// pipeline; the pipeline only needs page count, page size, and
// page-to-bitmap rendering.
// Implements: prd003-export (rendering stage).
package render

import (
	"errors"
	"fmt"
	"image"
)

// DPI is the fixed rasterization density. Pages are rendered at this scale
// regardless of their native point size; it is deliberately not
// user-configurable.
const DPI = 200

// ErrDocumentUnreadable reports an input file that is missing or not a
// readable PDF. Fatal to that document only.
var ErrDocumentUnreadable = errors.New("document unreadable")

// ErrPageOutOfRange reports a render request for a page index at or past
// the document's page count.
var ErrPageOutOfRange = errors.New("page index out of range")

// Document is a read-only page source. A Document is exclusively owned by
// whichever task is currently reading pages from it; implementations are
// not required to tolerate concurrent renders.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the page's native size in PDF points.
	PageSize(index int) (w, h float64, err error)

	// Render rasterizes the page at the given density. Rendering is
	// deterministic: the same page and density yield identical bitmaps.
	Render(index int, dpi int) (image.Image, error)

	// Close releases the underlying document resources.
	Close() error
}

// Page rasterizes one page of doc at the fixed density, checking bounds
// before touching the document.
func Page(doc Document, index int) (image.Image, error) {
	if index < 0 || index >= doc.PageCount() {
		return nil, fmt.Errorf("page %d of %d: %w", index+1, doc.PageCount(), ErrPageOutOfRange)
	}
	img, err := doc.Render(index, DPI)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", index+1, err)
	}
	return img, nil
}
