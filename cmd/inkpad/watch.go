package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow session changes from other inkpad processes",
	Long: `Watch the shared session record and report every change until
interrupted. Sign in or out from another terminal to see the signal
arrive here without any network call.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := app.Start(ctx); err != nil {
			fatal("Failed to start session watcher", err)
		}
		defer app.Close(context.Background())

		token, events := app.Sessions.Subscribe()
		defer app.Sessions.Unsubscribe(token)

		fmt.Println("Watching session changes. Press Ctrl+C to stop.")
		for {
			select {
			case <-ctx.Done():
				fmt.Println("Stopped.")
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Identity == nil {
					fmt.Println("Session ended: signed out.")
				} else {
					fmt.Printf("Session changed: signed in as %s.\n", ev.Identity.Email)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
