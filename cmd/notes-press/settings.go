// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-press/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or save the persisted enhancement settings",
	Long: `Settings manages the persisted defaults applied when a conversion is
run without a preset or an explicit settings file.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective persisted settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(settingsPath())
		if err != nil {
			return err
		}

		mode := "grayscale"
		if !s.Grayscale {
			mode = "color"
		}
		fmt.Fprintf(os.Stdout, "contrast:   %.2f\nbrightness: %.2f\nsharpness:  %.2f\nmode:       %s\n",
			s.Contrast, s.Brightness, s.Sharpness, mode)
		return nil
	},
}

var settingsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the given enhancement flags as the new defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := settings.Save(settingsPath(), s); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved settings to %s\n", settingsPath())
		return nil
	},
}

// settingsPath is the persisted settings file inside the data directory.
func settingsPath() string {
	return filepath.Join(dataDir(), settings.DefaultFile)
}

func init() {
	addEnhanceFlags(settingsSaveCmd)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSaveCmd)

	rootCmd.AddCommand(settingsCmd)
}
