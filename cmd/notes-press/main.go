// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notes-press CLI.
// Implements: prd001-enhancement, prd002-selection, prd003-export,
// prd004-layout, prd005-settings (CLI surface).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the notes-press CLI.
var rootCmd = &cobra.Command{
	Use:   "notes-press",
	Short: "Turn scanned notes into crisp inverted print PDFs",
	Long: `notes-press re-renders PDF documents of handwritten or scanned notes as
high-contrast raster PDFs: colors inverted for dark-background sources,
optional grayscale, and adjustable contrast, brightness, and sharpness.

Each operation is a subcommand: convert for a single document, batch for
directories of documents, and compact for n-up sheets that place several
pages on one printout. Enhancement settings come from presets, a settings
file, or flags, in increasing order of precedence.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notes-press.yaml or ~/.config/notes-press/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for history and presets (default: ~/.local/share/notes-press)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notes-press")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notes-press"))
		}
	}

	viper.SetEnvPrefix("NOTES_PRESS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataDir resolves where history and user presets live: the --data-dir
// flag, then the config file, then ~/.local/share/notes-press.
func dataDir() string {
	if dir, _ := rootCmd.PersistentFlags().GetString("data-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notes-press"
	}
	return filepath.Join(home, ".local", "share", "notes-press")
}

// signalContext returns a context cancelled on the first interrupt, so a
// Ctrl-C ends the current job between pages instead of killing it mid-write.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
