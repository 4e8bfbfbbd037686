// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/notes-press/internal/render"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 85

// Writer assembles an ordered bitmap sequence into an output document.
type Writer interface {
	// Write encodes pages in order into a new document at path. The file
	// must only appear at path once the full sequence has been written.
	Write(path string, pages []image.Image, quality int) error
}

// PDFWriter writes raster-page PDFs: each output page is one full-page
// JPEG-compressed image, no embedded text.
type PDFWriter struct{}

// Write implements Writer. The document is assembled in a temporary file
// next to path and renamed into place on success, so a failed export never
// leaves a half-written output.
func (PDFWriter) Write(path string, pages []image.Image, quality int) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to write")
	}
	if quality <= 0 {
		quality = DefaultQuality
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           pageSizePt(pages[0]),
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for i, page := range pages {
		size := pageSizePt(page)
		pdf.AddPageFormat("P", size)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, page, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encoding page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page-%d", i+1)
		opts := fpdf.ImageOptions{ImageType: "JPEG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, 0, 0, size.Wd, size.Ht, false, opts, 0, "")
		if pdf.Err() {
			return fmt.Errorf("placing page %d: %v", i+1, pdf.Error())
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp := path + ".partial"
	if err := pdf.OutputFileAndClose(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming output into place: %w", err)
	}
	return nil
}

// pageSizePt converts a bitmap's pixel dimensions at the fixed render
// density back to PDF points.
func pageSizePt(img image.Image) fpdf.SizeType {
	b := img.Bounds()
	return fpdf.SizeType{
		Wd: float64(b.Dx()) * 72 / render.DPI,
		Ht: float64(b.Dy()) * 72 / render.DPI,
	}
}
