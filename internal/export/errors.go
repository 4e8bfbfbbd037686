// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import "errors"

// Error kinds surfaced in job and batch results. Per-page errors wrap
// ErrRender or ErrEnhance and never abort sibling pages; per-document
// errors never abort sibling batch entries.
var (
	// ErrRender marks a per-page rasterization failure.
	ErrRender = errors.New("render failure")

	// ErrEnhance marks a per-page transform failure, including invalid
	// settings values.
	ErrEnhance = errors.New("enhancement failure")

	// ErrAllPagesFailed marks an export whose page range was valid but
	// produced no output pages.
	ErrAllPagesFailed = errors.New("no pages could be processed")

	// ErrOutputWrite marks a failure assembling or writing the output
	// document. Fatal to that document's export only.
	ErrOutputWrite = errors.New("output write failure")

	// ErrCancelled marks a job stopped by its context between pages.
	ErrCancelled = errors.New("job cancelled")
)
