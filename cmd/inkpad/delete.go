package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal("Invalid note id", err)
		}

		app, err := newApp()
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}

		if err := app.Notes.Delete(context.Background(), id); err != nil {
			exitOnSessionExpired(err)
			fmt.Fprintf(os.Stderr, "Error deleting note: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Deleted note %d.\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
