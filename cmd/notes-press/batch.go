// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-press/internal/export"
	"github.com/pdiddy/notes-press/internal/history"
	"github.com/pdiddy/notes-press/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch [inputs...]",
	Short: "Convert many PDFs, isolating per-document failures",
	Long: `Batch converts each input PDF (or every PDF in a directory given with
--dir) with the same enhancement settings. Documents are independent: an
unreadable or failing input is reported and skipped, and the remaining
inputs still convert. Outputs are named <stem>_converted.pdf.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("dir", "", "convert every .pdf in this directory instead of listing inputs")
	batchCmd.Flags().String("output-dir", "", "write outputs here instead of next to each input")
	addEnhanceFlags(batchCmd)

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputs := args

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		found, err := listPDFs(dir)
		if err != nil {
			return err
		}
		inputs = append(inputs, found...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("provide input PDFs or --dir")
	}

	s, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}

	quality, _ := cmd.Flags().GetInt("quality")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	opts := export.BatchOptions{
		Options:   export.Options{Quality: quality},
		OutputDir: outputDir,
	}

	ctx, stop := signalContext()
	defer stop()

	started := time.Now().UTC()
	result := export.Batch(ctx, inputs, s, opts, os.Stdout)

	recordJob(history.Record{
		JobID:        uuid.NewString(),
		Kind:         "batch",
		Input:        strings.Join(inputs, ", "),
		Output:       outputDir,
		Status:       batchStatus(result),
		PagesWritten: pagesWritten(result),
		PagesFailed:  result.Failed,
		Error:        batchError(result),
		Started:      started,
		Finished:     time.Now().UTC(),
	})

	if result.Cancelled > 0 {
		return fmt.Errorf("batch interrupted: %d document(s) not converted", result.Cancelled)
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

// listPDFs returns the .pdf files directly in dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			inputs = append(inputs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(inputs)

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no .pdf files in %s", dir)
	}
	return inputs, nil
}

func batchStatus(r export.BatchResult) types.JobStatus {
	switch {
	case r.Cancelled > 0:
		return types.JobCancelled
	case r.Failed > 0:
		return types.JobFailed
	default:
		return types.JobSucceeded
	}
}

func pagesWritten(r export.BatchResult) int {
	var total int
	for _, e := range r.Entries {
		if e.Status == types.JobSucceeded {
			total += e.Pages
		}
	}
	return total
}

func batchError(r export.BatchResult) string {
	var parts []string
	for _, e := range r.Entries {
		if e.Err != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", e.Input, e.Err))
		}
	}
	return strings.Join(parts, "; ")
}
