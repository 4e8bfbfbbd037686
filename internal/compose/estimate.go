// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// estimateSampleCount is how many pages the size estimator compresses.
const estimateSampleCount = 3

// estimateOverhead pads the raw JPEG byte count for container overhead.
const estimateOverhead = 1.15

// EstimateSize predicts the output file size in bytes for totalPages pages
// at the given JPEG quality, by compressing up to three sample pages spread
// across the document and extrapolating. It is an estimate, not a bound.
func EstimateSize(samples []image.Image, totalPages, quality int) (int64, error) {
	if len(samples) == 0 || totalPages <= 0 {
		return 0, fmt.Errorf("estimate: no pages to sample")
	}
	if quality <= 0 || quality > 100 {
		return 0, fmt.Errorf("estimate: quality %d out of range", quality)
	}

	count := min(estimateSampleCount, len(samples))
	var total int64
	for i := 0; i < count; i++ {
		sample := samples[i*len(samples)/count]
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, sample, &jpeg.Options{Quality: quality}); err != nil {
			return 0, fmt.Errorf("estimate: encoding sample: %w", err)
		}
		total += int64(buf.Len())
	}

	avg := float64(total) / float64(count)
	return int64(avg * float64(totalPages) * estimateOverhead), nil
}
