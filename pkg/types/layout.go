// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Grid selects how many page cells a compact sheet holds.
type Grid string

const (
	Grid2x2 Grid = "2x2"
	Grid3x1 Grid = "3x1"
	Grid3x2 Grid = "3x2"
)

// Dimensions returns the cell columns and rows for the grid.
func (g Grid) Dimensions() (cols, rows int, err error) {
	switch g {
	case Grid2x2:
		return 2, 2, nil
	case Grid3x1:
		return 1, 3, nil
	case Grid3x2:
		return 2, 3, nil
	}
	return 0, 0, fmt.Errorf("unknown grid %q", string(g))
}

// Paper identifies a physical sheet size.
type Paper string

const (
	PaperA4     Paper = "A4"
	PaperLetter Paper = "Letter"
)

// SizeMM returns the paper dimensions in millimeters, portrait orientation.
func (p Paper) SizeMM() (w, h float64, err error) {
	switch p {
	case PaperA4:
		return 210.0, 297.0, nil
	case PaperLetter:
		return 216.0, 279.0, nil
	}
	return 0, 0, fmt.Errorf("unknown paper size %q", string(p))
}

// Orientation selects portrait or landscape sheets. Landscape sheets are
// composed portrait and rotated as a whole so the reading order survives.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ReadingDirection selects how cells fill a compact sheet.
type ReadingDirection string

const (
	LeftToRight ReadingDirection = "left-to-right"
	TopToBottom ReadingDirection = "top-to-bottom"
)

// LayoutConfig holds the compact layout maker options.
type LayoutConfig struct {
	// Grid is the cell arrangement per sheet: 2x2, 3x1, or 3x2.
	Grid Grid `json:"grid" yaml:"grid"`

	// Paper is the output sheet size: A4 or Letter.
	Paper Paper `json:"paper" yaml:"paper"`

	// Orientation is portrait or landscape.
	Orientation Orientation `json:"orientation" yaml:"orientation"`

	// WithBorder draws a one-pixel outline around each cell.
	WithBorder bool `json:"with_border" yaml:"with_border"`

	// OuterMarginMM is the margin between the sheet edge and the cell area.
	OuterMarginMM float64 `json:"outer_margin_mm" yaml:"outer_margin_mm"`

	// InnerGapMM is the gap between adjacent cells.
	InnerGapMM float64 `json:"inner_gap_mm" yaml:"inner_gap_mm"`

	// Direction orders cells left-to-right (row major) or top-to-bottom
	// (column major).
	Direction ReadingDirection `json:"reading_direction" yaml:"reading_direction"`
}

// DefaultLayout returns the compact layout defaults.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Grid:          Grid2x2,
		Paper:         PaperA4,
		Orientation:   Portrait,
		OuterMarginMM: 5.0,
		InnerGapMM:    2.0,
		Direction:     LeftToRight,
	}
}

// Validate checks the layout options against their supported values.
func (c LayoutConfig) Validate() error {
	if _, _, err := c.Grid.Dimensions(); err != nil {
		return err
	}
	if _, _, err := c.Paper.SizeMM(); err != nil {
		return err
	}
	switch c.Orientation {
	case Portrait, Landscape:
	default:
		return fmt.Errorf("unknown orientation %q", string(c.Orientation))
	}
	switch c.Direction {
	case LeftToRight, TopToBottom:
	default:
		return fmt.Errorf("unknown reading direction %q", string(c.Direction))
	}
	if c.OuterMarginMM < 0 || c.InnerGapMM < 0 {
		return fmt.Errorf("margins must not be negative")
	}
	return nil
}
