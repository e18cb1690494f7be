package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long:  `Report who is signed in according to the shared session record. Makes no network call.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}

		id := app.Sessions.Current()
		if id == nil {
			fmt.Println("Not signed in.")
			return
		}
		if id.FullName != "" {
			fmt.Printf("%s <%s>\n", id.FullName, id.Email)
			return
		}
		fmt.Println(id.Email)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
