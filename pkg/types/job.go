// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// JobStatus is the terminal state of an export job or batch entry.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Progress is one notification from a running job. Completed counts page
// attempts (including failed pages) and never decreases; the final
// notification of an uncancelled job is (Total, Total).
type Progress struct {
	Completed int
	Total     int
}

// ProgressFunc receives ordered progress notifications from a job. A nil
// ProgressFunc disables reporting. Implementations must not block for long;
// the job calls them synchronously between pages.
type ProgressFunc func(p Progress)
