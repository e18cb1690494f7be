package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/inkpad/inkpad"
	"github.com/inkpad/inkpad/pkg/collection"
)

var (
	listJSON  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes, most recently active first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}

		all, _, err := app.Notes.Refresh(context.Background())
		if err != nil {
			exitOnSessionExpired(err)
			fmt.Fprintf(os.Stderr, "Error listing notes: %v\n", err)
			os.Exit(1)
		}

		// Filter
		var filtered []inkpad.Note
		for _, note := range all {
			if listMatch != "" {
				ok, err := doublestar.Match(listMatch, note.Title)
				if err != nil {
					fatal("Invalid --match pattern", err)
				}
				if !ok {
					continue
				}
			}
			filtered = append(filtered, note)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		now := time.Now()
		for _, note := range filtered {
			label := ""
			if ts, ok := note.LatestActivity(); ok {
				label = collection.FormatRelative(ts, now)
			}
			fmt.Printf("%-6d %-40s %s\n", note.ID, note.Title, label)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Filter notes by title glob (doublestar syntax)")
}
