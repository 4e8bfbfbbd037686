// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-press/internal/settings"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage enhancement presets (list, show, save)",
	Long: `Preset manages named enhancement settings. Builtin presets cover the
common cases (print-clear, dark-notes-fix, read-on-screen); saved presets
live in the preset library under the data directory and shadow builtins of
the same name.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := settings.LoadPresets(presetsPath())
		if err != nil {
			return err
		}
		for _, name := range settings.PresetNames(presets) {
			fmt.Println(name)
		}
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a preset's settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := settings.LoadPresets(presetsPath())
		if err != nil {
			return err
		}
		s, ok := presets[args[0]]
		if !ok {
			return fmt.Errorf("unknown preset %q", args[0])
		}

		mode := "grayscale"
		if !s.Grayscale {
			mode = "color"
		}
		fmt.Fprintf(os.Stdout, "%s:\n  contrast:   %.2f\n  brightness: %.2f\n  sharpness:  %.2f\n  mode:       %s\n",
			args[0], s.Contrast, s.Brightness, s.Sharpness, mode)
		return nil
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the given enhancement flags as a named preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := settings.SavePreset(presetsPath(), args[0], s); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved preset %q to %s\n", args[0], presetsPath())
		return nil
	},
}

func init() {
	addEnhanceFlags(presetSaveCmd)

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetSaveCmd)

	rootCmd.AddCommand(presetCmd)
}
