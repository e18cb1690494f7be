package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out locally",
	Long:  `Clear the shared session record. This is local-only: the service expires its own session cookie independently.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}

		app.Sessions.Logout()
		fmt.Println("Signed out.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
