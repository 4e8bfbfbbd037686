// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the notes-press pipeline.
// Implements: prd001-enhancement (Settings);
//
//	prd003-export (JobStatus, Progress);
//	prd004-layout (LayoutConfig).
package types

import "fmt"

// Enhancement factor bounds. The GUI sliders in earlier versions of this
// tool ranged 0.5-3.0; the documented contract is wider.
const (
	MinFactor = 0.1
	MaxFactor = 3.0
)

// Settings is an immutable snapshot of the image-enhancement parameters
// applied to every rendered page. A job takes its own copy at creation time;
// adjusting settings mid-run never affects an in-flight job.
//
// The zero-adjustment configuration (all factors 1.0, grayscale and invert
// off) is the identity transform.
type Settings struct {
	// Contrast scales each pixel's distance from mid-scale. 1.0 is neutral.
	Contrast float64 `json:"contrast" yaml:"contrast"`

	// Brightness scales each pixel value directly. 1.0 is neutral.
	Brightness float64 `json:"brightness" yaml:"brightness"`

	// Sharpness blends an unsharp mask with the original. 1.0 is neutral,
	// 0.0 is the fully blurred baseline, >1.0 amplifies edge contrast.
	Sharpness float64 `json:"sharpness" yaml:"sharpness"`

	// Grayscale collapses color to a single luminance channel before the
	// contrast and brightness stages.
	Grayscale bool `json:"grayscale" yaml:"grayscale"`

	// Invert complements every channel against full scale. It is the point
	// of this tool and defaults to on, but it is a pipeline decision rather
	// than part of the persisted settings shape.
	Invert bool `json:"-" yaml:"-"`
}

// DefaultSettings returns the documented defaults used when a settings file
// is missing or omits keys. Inversion is on: that is what the tool is for.
func DefaultSettings() Settings {
	return Settings{
		Contrast:   1.0,
		Brightness: 1.0,
		Sharpness:  1.0,
		Grayscale:  false,
		Invert:     true,
	}
}

// Validate checks that every factor is within the supported range.
func (s Settings) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"contrast", s.Contrast},
		{"brightness", s.Brightness},
		{"sharpness", s.Sharpness},
	} {
		if f.value < MinFactor || f.value > MaxFactor {
			return fmt.Errorf("%s %.2f out of range [%.1f, %.1f]", f.name, f.value, MinFactor, MaxFactor)
		}
	}
	return nil
}
