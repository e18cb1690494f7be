package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpad/inkpad"
)

var (
	verbose  bool
	baseURL  string
	stateDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inkpad",
	Short: "A command-line client for the Inkpad note service",
	Long: `Inkpad talks to a personal note service: sign in once, then create,
list, edit and delete notes. Session state is shared across every inkpad
process on this machine through a single state directory.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Note service address (overrides config)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Session state directory (overrides config)")
}

// newApp assembles the client from config and flag overrides.
func newApp() (*inkpad.App, error) {
	cfg, err := inkpad.LoadConfig()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}

	return inkpad.New(cfg.BaseURL, cfg.StateDir, inkpad.WithLogger(slog.Default()))
}

// exitOnSessionExpired prints the uniform session message and exits when
// a note operation collapsed to the session-expired condition.
func exitOnSessionExpired(err error) {
	var apiErr *inkpad.APIError
	if errors.Is(err, inkpad.ErrSessionExpired) && errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, apiErr.Message)
		os.Exit(1)
	}
}
