// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-press/internal/export"
	"github.com/pdiddy/notes-press/internal/history"
	"github.com/pdiddy/notes-press/internal/settings"
	"github.com/pdiddy/notes-press/pkg/types"
)

// addEnhanceFlags registers the enhancement flags shared by convert, batch,
// and compact. Precedence is preset, then settings file, then flags.
func addEnhanceFlags(cmd *cobra.Command) {
	cmd.Flags().String("settings", "", "enhancement settings file (JSON)")
	cmd.Flags().String("preset", "", "named preset: builtin or from the preset library")
	cmd.Flags().Float64("contrast", 0, "contrast factor override (0.1 to 3.0)")
	cmd.Flags().Float64("brightness", 0, "brightness factor override (0.1 to 3.0)")
	cmd.Flags().Float64("sharpness", 0, "sharpness factor override (0.1 to 3.0)")
	cmd.Flags().Bool("color", false, "keep color instead of converting to grayscale")
	cmd.Flags().Int("quality", export.DefaultQuality, "JPEG quality for output pages (1-100)")
}

// settingsFromFlags resolves the effective enhancement settings for a run.
func settingsFromFlags(cmd *cobra.Command) (types.Settings, error) {
	s := types.DefaultSettings()

	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		presets, err := settings.LoadPresets(presetsPath())
		if err != nil {
			return s, err
		}
		p, ok := presets[name]
		if !ok {
			return s, fmt.Errorf("unknown preset %q (try: notes-press preset list)", name)
		}
		s = p
	} else {
		// No preset: load the settings file, or the persisted one from
		// the data directory. A missing file yields the defaults.
		path, _ := cmd.Flags().GetString("settings")
		if path == "" {
			path = settingsPath()
		}
		loaded, err := settings.Load(path)
		if err != nil {
			return s, err
		}
		s = loaded
	}

	if cmd.Flags().Changed("contrast") {
		s.Contrast, _ = cmd.Flags().GetFloat64("contrast")
	}
	if cmd.Flags().Changed("brightness") {
		s.Brightness, _ = cmd.Flags().GetFloat64("brightness")
	}
	if cmd.Flags().Changed("sharpness") {
		s.Sharpness, _ = cmd.Flags().GetFloat64("sharpness")
	}
	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetBool("color")
		s.Grayscale = !color
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// presetsPath is the user preset library inside the data directory.
func presetsPath() string {
	return filepath.Join(dataDir(), settings.DefaultPresetsFile)
}

// pageBar returns a progress callback drawing a terminal bar on stderr.
func pageBar(total int) types.ProgressFunc {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return func(p types.Progress) {
		_ = bar.Set(p.Completed)
	}
}

// recordJob appends one job outcome to the history database. History is
// best-effort: a storage failure warns but never fails the conversion.
func recordJob(rec history.Record) {
	store, err := history.NewStore(dataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
	}
}
