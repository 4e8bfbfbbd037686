// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose builds compact n-up sheets: several processed pages laid
// out on one output page, for printing dense reference copies.
// Implements: prd004-layout.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/pdiddy/notes-press/internal/render"
	"github.com/pdiddy/notes-press/pkg/types"
)

// mmToPx converts millimeters to pixels at the given density.
func mmToPx(mm float64, dpi int) int {
	return int(mm * float64(dpi) / 25.4)
}

// sheetGeometry is the pixel layout of one compact sheet.
type sheetGeometry struct {
	sheetW, sheetH int
	cols, rows     int
	cellW, cellH   int
	outerPx        int
	innerPx        int
}

// geometry resolves the layout options into pixel measurements at the
// fixed render density.
func geometry(cfg types.LayoutConfig) (sheetGeometry, error) {
	cols, rows, err := cfg.Grid.Dimensions()
	if err != nil {
		return sheetGeometry{}, err
	}
	wMM, hMM, err := cfg.Paper.SizeMM()
	if err != nil {
		return sheetGeometry{}, err
	}

	g := sheetGeometry{
		cols:    cols,
		rows:    rows,
		sheetW:  mmToPx(wMM, render.DPI),
		sheetH:  mmToPx(hMM, render.DPI),
		outerPx: mmToPx(cfg.OuterMarginMM, render.DPI),
		innerPx: mmToPx(cfg.InnerGapMM, render.DPI),
	}

	usableW := g.sheetW - g.outerPx*2 - g.innerPx*(cols-1)
	usableH := g.sheetH - g.outerPx*2 - g.innerPx*(rows-1)
	g.cellW = max(50, usableW/cols)
	g.cellH = max(50, usableH/rows)
	return g, nil
}

// CellsPerSheet returns how many pages fit on one sheet of the layout.
func CellsPerSheet(cfg types.LayoutConfig) (int, error) {
	cols, rows, err := cfg.Grid.Dimensions()
	if err != nil {
		return 0, err
	}
	return cols * rows, nil
}

// Sheets lays the page bitmaps out on white sheets per the layout options,
// in order. Cells preserve each page's aspect ratio and are centered in
// their slot. Landscape sheets are composed portrait and rotated as a
// whole so cell order is preserved on paper.
func Sheets(pages []image.Image, cfg types.LayoutConfig) ([]image.Image, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("layout: no pages to place")
	}

	g, err := geometry(cfg)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	perSheet := g.cols * g.rows
	sheetCount := (len(pages) + perSheet - 1) / perSheet
	sheets := make([]image.Image, 0, sheetCount)

	for s := 0; s < sheetCount; s++ {
		sheet := image.NewRGBA(image.Rect(0, 0, g.sheetW, g.sheetH))
		draw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, draw.Src)

		for cell := 0; cell < perSheet; cell++ {
			pageIdx := s*perSheet + cell
			if pageIdx >= len(pages) {
				break
			}

			var r, c int
			if cfg.Direction == types.TopToBottom {
				c = cell / g.rows
				r = cell % g.rows
			} else {
				r = cell / g.cols
				c = cell % g.cols
			}

			x := g.outerPx + c*(g.cellW+g.innerPx)
			y := g.outerPx + r*(g.cellH+g.innerPx)

			thumb := fitInto(pages[pageIdx], g.cellW, g.cellH)
			tw, th := thumb.Bounds().Dx(), thumb.Bounds().Dy()
			dst := image.Rect(
				x+(g.cellW-tw)/2,
				y+(g.cellH-th)/2,
				x+(g.cellW-tw)/2+tw,
				y+(g.cellH-th)/2+th,
			)
			draw.Draw(sheet, dst, thumb, thumb.Bounds().Min, draw.Src)

			if cfg.WithBorder {
				drawBorder(sheet, image.Rect(x, y, x+g.cellW, y+g.cellH))
			}
		}

		if cfg.Orientation == types.Landscape {
			sheets = append(sheets, rotate270(sheet))
		} else {
			sheets = append(sheets, sheet)
		}
	}

	return sheets, nil
}

// drawBorder outlines rect with a one-pixel black frame.
func drawBorder(img *image.RGBA, rect image.Rectangle) {
	black := color.RGBA{A: 255}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetRGBA(x, rect.Min.Y, black)
		img.SetRGBA(x, rect.Max.Y-1, black)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetRGBA(rect.Min.X, y, black)
		img.SetRGBA(rect.Max.X-1, y, black)
	}
}

// rotate270 rotates a sheet 270 degrees clockwise for landscape output.
func rotate270(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(y, w-1-x, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// fitInto scales img down to fit the cell, preserving aspect ratio. Images
// already smaller than the cell are left at their size.
func fitInto(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	tw := max(1, int(float64(w)*scale))
	th := max(1, int(float64(h)*scale))
	return resize(img, tw, th)
}

// resize box-samples img to the target size. Pages are photographic-free
// raster renders, so area averaging keeps text strokes readable without a
// filtering library.
func resize(img image.Image, tw, th int) *image.RGBA {
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))

	for y := 0; y < th; y++ {
		sy0 := y * sh / th
		sy1 := max(sy0+1, (y+1)*sh/th)
		for x := 0; x < tw; x++ {
			sx0 := x * sw / tw
			sx1 := max(sx0+1, (x+1)*sw/tw)

			var rSum, gSum, bSum, aSum, n uint32
			for sy := sy0; sy < sy1; sy++ {
				for sx := sx0; sx < sx1; sx++ {
					r, g, bl, a := img.At(b.Min.X+sx, b.Min.Y+sy).RGBA()
					rSum += r >> 8
					gSum += g >> 8
					bSum += bl >> 8
					aSum += a >> 8
					n++
				}
			}
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(rSum / n),
				G: uint8(gSum / n),
				B: uint8(bSum / n),
				A: uint8(aSum / n),
			})
		}
	}
	return dst
}
