package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpad/inkpad"
)

var (
	createTitle   string
	createContent string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}

		note, err := app.Notes.Create(context.Background(), inkpad.Draft{
			Title:   createTitle,
			Content: createContent,
		})
		if err != nil {
			exitOnSessionExpired(err)
			fmt.Fprintf(os.Stderr, "Error creating note: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Created note %d: %s\n", note.ID, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Note title")
	createCmd.Flags().StringVarP(&createContent, "content", "c", "", "Note content")
	createCmd.MarkFlagRequired("title")
}
