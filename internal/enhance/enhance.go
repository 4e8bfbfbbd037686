// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enhance implements the pure pixel-transform pipeline applied to
// rendered pages: invert, grayscale, contrast, brightness, sharpness.
// Implements: prd001-enhancement.
//
// Stage order is fixed because the stages commute imperfectly: inversion
// happens on the raw render, grayscale collapses color before the intensity
// stages, and sharpening runs last on the adjusted image. Every stage clamps
// to the 8-bit range and returns a new bitmap; no stage mutates its input,
// so a preview can re-run from the original without accumulated drift.
package enhance

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/pdiddy/notes-press/pkg/types"
)

const (
	// fullScale is the full-scale value of an 8-bit channel.
	fullScale = 255
	// midpoint is the fixed contrast pivot for 8-bit channels.
	midpoint = 127.5
)

// Apply runs the full enhancement pipeline on img with the given settings
// and returns a new bitmap. The result is *image.Gray when s.Grayscale is
// set and *image.RGBA otherwise. Settings outside the documented factor
// range fail before any pixel work.
func Apply(img image.Image, s types.Settings) (image.Image, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("enhancement settings: %w", err)
	}

	out := normalize(img)
	if s.Invert {
		out = Invert(out)
	}
	if s.Grayscale {
		out = Grayscale(out)
	}
	out = Contrast(out, s.Contrast)
	out = Brightness(out, s.Brightness)
	out = Sharpen(out, s.Sharpness)
	return out, nil
}

// Invert complements every color channel against full scale. Alpha is
// untouched.
func Invert(img image.Image) image.Image {
	return mapChannels(img, func(v uint8) uint8 {
		return fullScale - v
	})
}

// Grayscale collapses color to a single luminance channel using the
// ITU-R 601-2 weights (the same combination PIL's "L" mode uses). A bitmap
// that is already grayscale is copied unchanged.
func Grayscale(img image.Image) *image.Gray {
	if src, ok := img.(*image.Gray); ok {
		return copyGray(src)
	}

	src := toRGBA(img)
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := src.PixOffset(x, y)
			r := int(src.Pix[i])
			g := int(src.Pix[i+1])
			bl := int(src.Pix[i+2])
			l := (299*r + 587*g + 114*bl + 500) / 1000
			dst.Pix[dst.PixOffset(x, y)] = uint8(l)
		}
	}
	return dst
}

// Contrast scales each channel's distance from the fixed midpoint by
// factor, clamping to the valid range. Factor 1.0 is the identity.
func Contrast(img image.Image, factor float64) image.Image {
	return mapChannels(img, func(v uint8) uint8 {
		return clamp(midpoint + (float64(v)-midpoint)*factor)
	})
}

// Brightness scales each channel value directly by factor, clamping to the
// valid range. Factor 1.0 is the identity.
func Brightness(img image.Image, factor float64) image.Image {
	return mapChannels(img, func(v uint8) uint8 {
		return clamp(float64(v) * factor)
	})
}

// Sharpen blends the image with a blurred baseline: factor 0.0 yields the
// blur, 1.0 the original, and larger factors amplify edge contrast
// (an unsharp mask). The baseline uses a fixed 3x3 Gaussian-like kernel.
func Sharpen(img image.Image, factor float64) image.Image {
	if factor == 1.0 {
		return mapChannels(img, func(v uint8) uint8 { return v })
	}

	switch src := img.(type) {
	case *image.Gray:
		src = copyGray(src)
		blurred := blurGray(src)
		dst := image.NewGray(src.Bounds())
		for i := range src.Pix {
			dst.Pix[i] = blend(src.Pix[i], blurred[i], factor)
		}
		return dst
	case *image.RGBA:
		src = toRGBA(src)
		blurred := blurRGBA(src)
		dst := image.NewRGBA(src.Bounds())
		for i := 0; i < len(src.Pix); i += 4 {
			dst.Pix[i] = blend(src.Pix[i], blurred[i], factor)
			dst.Pix[i+1] = blend(src.Pix[i+1], blurred[i+1], factor)
			dst.Pix[i+2] = blend(src.Pix[i+2], blurred[i+2], factor)
			dst.Pix[i+3] = src.Pix[i+3]
		}
		return dst
	default:
		return Sharpen(toRGBA(img), factor)
	}
}

// blend moves v away from the blurred baseline by factor and clamps.
func blend(v, blurred uint8, factor float64) uint8 {
	bf := float64(blurred)
	return clamp(bf + (float64(v)-bf)*factor)
}

// blurKernel is the fixed smoothing kernel defining the sharpness baseline.
var blurKernel = [3][3]int{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

const blurKernelSum = 16

// blurGray convolves a grayscale bitmap with blurKernel, replicating edge
// pixels, and returns the raw blurred plane.
func blurGray(src *image.Gray) []uint8 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]uint8, len(src.Pix))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sx := clampInt(x+kx, 0, w-1)
					sy := clampInt(y+ky, 0, h-1)
					sum += blurKernel[ky+1][kx+1] * int(src.Pix[sy*src.Stride+sx])
				}
			}
			out[y*src.Stride+x] = uint8((sum + blurKernelSum/2) / blurKernelSum)
		}
	}
	return out
}

// blurRGBA convolves the color channels of an RGBA bitmap with blurKernel,
// replicating edge pixels. Alpha positions are left zero; callers keep the
// source alpha.
func blurRGBA(src *image.RGBA) []uint8 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]uint8, len(src.Pix))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				sum := 0
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						sx := clampInt(x+kx, 0, w-1)
						sy := clampInt(y+ky, 0, h-1)
						sum += blurKernel[ky+1][kx+1] * int(src.Pix[sy*src.Stride+sx*4+c])
					}
				}
				out[y*src.Stride+x*4+c] = uint8((sum + blurKernelSum/2) / blurKernelSum)
			}
		}
	}
	return out
}

// mapChannels applies fn to every color channel, returning a new bitmap of
// the same color mode. Alpha channels pass through unchanged.
func mapChannels(img image.Image, fn func(v uint8) uint8) image.Image {
	switch src := img.(type) {
	case *image.Gray:
		dst := copyGray(src)
		for i := range dst.Pix {
			dst.Pix[i] = fn(dst.Pix[i])
		}
		return dst
	case *image.RGBA:
		dst := toRGBA(src)
		for i := 0; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = fn(dst.Pix[i])
			dst.Pix[i+1] = fn(dst.Pix[i+1])
			dst.Pix[i+2] = fn(dst.Pix[i+2])
		}
		return dst
	default:
		return mapChannels(toRGBA(img), fn)
	}
}

// normalize copies img into one of the two supported pixel layouts so the
// caller's bitmap is never aliased by later stages.
func normalize(img image.Image) image.Image {
	if src, ok := img.(*image.Gray); ok {
		return copyGray(src)
	}
	return toRGBA(img)
}

// copyGray returns a fresh grayscale bitmap with a canonical stride.
func copyGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		copy(dst.Pix[di:di+b.Dx()], src.Pix[si:si+b.Dx()])
	}
	return dst
}

// toRGBA converts any image to a fresh RGBA bitmap anchored at its own
// bounds.
func toRGBA(img image.Image) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// clamp rounds f and clamps it to the 8-bit channel range.
func clamp(f float64) uint8 {
	r := math.Round(f)
	if r < 0 {
		return 0
	}
	if r > fullScale {
		return fullScale
	}
	return uint8(r)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
