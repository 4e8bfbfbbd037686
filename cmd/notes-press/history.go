// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-press/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversion jobs",
	Long: `History lists recent conversion jobs from the local job database,
newest first: what was converted, where the output went, and how the
job ended.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum jobs to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(dataDir())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No conversions recorded yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-16s  %-8s  %-30s  %-10s  %6s  %s\n",
		"When", "Kind", "Input", "Status", "Pages", "Output")
	for _, r := range records {
		input := filepath.Base(r.Input)
		if len(input) > 30 {
			input = input[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-16s  %-8s  %-30s  %-10s  %6d  %s\n",
			r.Started.Local().Format("2006-01-02 15:04"), r.Kind, input,
			string(r.Status), r.PagesWritten, r.Output)
	}
	return nil
}
