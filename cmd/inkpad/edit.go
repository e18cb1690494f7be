package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkpad/inkpad"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a note's title and content",
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

		note, err := app.Notes.Update(context.Background(), id, inkpad.Draft{
			Title:   editTitle,
			Content: editContent,
		})
		if err != nil {
			exitOnSessionExpired(err)
			fmt.Fprintf(os.Stderr, "Error updating note: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Updated note %d: %s\n", note.ID, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.MarkFlagRequired("title")
}
