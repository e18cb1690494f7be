package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}

		_, stats, err := app.Notes.Refresh(context.Background())
		if err != nil {
			exitOnSessionExpired(err)
			fmt.Fprintf(os.Stderr, "Error loading notes: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Notes:         %d\n", stats.Total)
		fmt.Printf("This week:     %d\n", stats.ThisWeek)
		fmt.Printf("Last activity: %s", stats.LastActivityLabel)
		if stats.LastActivityExact != "" {
			fmt.Printf(" (%s)", stats.LastActivityExact)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
