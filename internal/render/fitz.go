// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzDocument renders pages through MuPDF. It implements Document.
type FitzDocument struct {
	doc  *fitz.Document
	path string
}

// Open loads the PDF at path. Errors wrap ErrDocumentUnreadable so a batch
// can classify them without knowing about MuPDF.
func Open(path string) (*FitzDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, path, err)
	}
	if doc.NumPage() == 0 {
		doc.Close()
		return nil, fmt.Errorf("%w: %s: no pages", ErrDocumentUnreadable, path)
	}
	return &FitzDocument{doc: doc, path: path}, nil
}

// Path returns the file path the document was opened from.
func (d *FitzDocument) Path() string {
	return d.path
}

// PageCount returns the number of pages.
func (d *FitzDocument) PageCount() int {
	return d.doc.NumPage()
}

// PageSize returns the page's native size in points.
func (d *FitzDocument) PageSize(index int) (w, h float64, err error) {
	if index < 0 || index >= d.doc.NumPage() {
		return 0, 0, fmt.Errorf("page %d: %w", index+1, ErrPageOutOfRange)
	}
	bounds, err := d.doc.Bound(index)
	if err != nil {
		return 0, 0, fmt.Errorf("page %d bounds: %w", index+1, err)
	}
	return float64(bounds.Dx()), float64(bounds.Dy()), nil
}

// Render rasterizes one page at the given density.
func (d *FitzDocument) Render(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= d.doc.NumPage() {
		return nil, fmt.Errorf("page %d: %w", index+1, ErrPageOutOfRange)
	}
	img, err := d.doc.ImageDPI(index, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rasterizing page %d: %v", index+1, err)
	}
	return img, nil
}

// Close releases the MuPDF document.
func (d *FitzDocument) Close() error {
	return d.doc.Close()
}
