// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-press/internal/export"
	"github.com/pdiddy/notes-press/internal/history"
	"github.com/pdiddy/notes-press/internal/pagerange"
	"github.com/pdiddy/notes-press/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.pdf]",
	Short: "Convert one PDF into an enhanced inverted copy",
	Long: `Convert renders each selected page of the input PDF, applies the
enhancement pipeline (invert, grayscale, contrast, brightness, sharpness),
and assembles the results into a new raster PDF. Pages that fail to process
are skipped; the job fails only when no page survives.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output path (default: <input>_converted.pdf)")
	convertCmd.Flags().String("pages", "", `page selection, e.g. "1-3,6,9-12" (default: all pages)`)
	convertCmd.Flags().Bool("keep-partial", false, "keep pages completed before an interrupt instead of discarding")
	convertCmd.Flags().Bool("no-progress", false, "suppress the progress bar")
	addEnhanceFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	s, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}

	doc, err := render.Open(input)
	if err != nil {
		return err
	}
	defer doc.Close()

	rangeSpec, _ := cmd.Flags().GetString("pages")
	pages, err := pagerange.Parse(rangeSpec, doc.PageCount())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = export.OutputName(input, "")
	}

	quality, _ := cmd.Flags().GetInt("quality")
	keepPartial, _ := cmd.Flags().GetBool("keep-partial")
	opts := export.Options{
		Quality:             quality,
		KeepPartialOnCancel: keepPartial,
	}
	if noBar, _ := cmd.Flags().GetBool("no-progress"); !noBar {
		opts.Progress = pageBar(len(pages))
	}

	ctx, stop := signalContext()
	defer stop()

	result, err := export.Export(ctx, doc, pages, s, output, opts, os.Stdout)
	recordJob(history.Record{
		JobID:        result.JobID,
		Kind:         "convert",
		Input:        input,
		Output:       result.OutputPath,
		Status:       result.Status,
		PagesWritten: result.Written,
		PagesFailed:  len(result.Failures()),
		Error:        errText(err),
		Started:      result.Started,
		Finished:     result.Finished,
	})
	if err != nil {
		return err
	}

	if failed := result.Failures(); len(failed) > 0 {
		fmt.Fprintf(os.Stdout, "Converted %s -> %s (%d pages, %d skipped)\n",
			input, result.OutputPath, result.Written, len(failed))
	} else {
		fmt.Fprintf(os.Stdout, "Converted %s -> %s (%d pages)\n",
			input, result.OutputPath, result.Written)
	}
	return nil
}

// errText flattens an error for history storage.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
