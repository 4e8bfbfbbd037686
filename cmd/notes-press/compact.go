// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-press/internal/compose"
	"github.com/pdiddy/notes-press/internal/export"
	"github.com/pdiddy/notes-press/internal/history"
	"github.com/pdiddy/notes-press/internal/pagerange"
	"github.com/pdiddy/notes-press/internal/render"
	"github.com/pdiddy/notes-press/pkg/types"
)

var compactCmd = &cobra.Command{
	Use:   "compact [input.pdf]",
	Short: "Lay enhanced pages out n-up on compact sheets",
	Long: `Compact runs the enhancement pipeline and then places several pages on
each output sheet (2x2, 3x1, or 3x2) for dense reference printouts. Use
--estimate to predict the output size without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompact,
}

func init() {
	compactCmd.Flags().StringP("output", "o", "", "output path (default: <input>_compact.pdf)")
	compactCmd.Flags().String("pages", "", `page selection, e.g. "1-3,6,9-12" (default: all pages)`)
	compactCmd.Flags().String("grid", string(types.Grid2x2), "cells per sheet: 2x2, 3x1, or 3x2")
	compactCmd.Flags().String("paper", string(types.PaperA4), "sheet size: A4 or Letter")
	compactCmd.Flags().Bool("landscape", false, "landscape sheets instead of portrait")
	compactCmd.Flags().Bool("border", false, "draw a border around each cell")
	compactCmd.Flags().String("direction", string(types.LeftToRight), "cell fill order: left-to-right or top-to-bottom")
	compactCmd.Flags().Bool("estimate", false, "print the estimated output size and exit without writing")
	compactCmd.Flags().Bool("no-progress", false, "suppress the progress bar")
	addEnhanceFlags(compactCmd)

	rootCmd.AddCommand(compactCmd)
}

func layoutFromFlags(cmd *cobra.Command) (types.LayoutConfig, error) {
	cfg := types.DefaultLayout()

	grid, _ := cmd.Flags().GetString("grid")
	cfg.Grid = types.Grid(grid)

	paper, _ := cmd.Flags().GetString("paper")
	cfg.Paper = types.Paper(paper)

	if landscape, _ := cmd.Flags().GetBool("landscape"); landscape {
		cfg.Orientation = types.Landscape
	}
	cfg.WithBorder, _ = cmd.Flags().GetBool("border")

	direction, _ := cmd.Flags().GetString("direction")
	cfg.Direction = types.ReadingDirection(direction)

	return cfg, cfg.Validate()
}

func runCompact(cmd *cobra.Command, args []string) error {
	input := args[0]

	s, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}
	layout, err := layoutFromFlags(cmd)
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

	quality, _ := cmd.Flags().GetInt("quality")
	opts := export.Options{Quality: quality}
	if noBar, _ := cmd.Flags().GetBool("no-progress"); !noBar {
		opts.Progress = pageBar(len(pages))
	}

	ctx, stop := signalContext()
	defer stop()

	bitmaps, result := export.Pages(ctx, doc, pages, s, opts, os.Stdout)
	if result.Status == types.JobCancelled {
		return fmt.Errorf("interrupted after %d of %d pages", len(bitmaps), len(pages))
	}
	if len(bitmaps) == 0 {
		return fmt.Errorf("no pages survived processing")
	}

	sheets, err := compose.Sheets(bitmaps, layout)
	if err != nil {
		return err
	}

	if estimate, _ := cmd.Flags().GetBool("estimate"); estimate {
		size, err := compose.EstimateSize(sheets, len(sheets), quality)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Estimated output: %d sheets, ~%.1f MB\n",
			len(sheets), float64(size)/(1024*1024))
		return nil
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "_compact" + ext
	}

	writer := export.PDFWriter{}
	if err := writer.Write(output, sheets, quality); err != nil {
		return err
	}

	recordJob(history.Record{
		JobID:        result.JobID,
		Kind:         "compact",
		Input:        input,
		Output:       output,
		Status:       types.JobSucceeded,
		PagesWritten: len(bitmaps),
		PagesFailed:  len(result.Failures()),
		Started:      result.Started,
		Finished:     result.Finished,
	})

	fmt.Fprintf(os.Stdout, "Composed %s -> %s (%d pages on %d sheets)\n",
		input, output, len(bitmaps), len(sheets))
	return nil
}
