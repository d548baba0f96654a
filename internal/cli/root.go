package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	client    *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quizctl",
		Short: "CLI tool for the quizroom server",
		Long: `quizctl inspects a running quizroom server.

It can check server health, fetch a room's broadcast view, dump the full
engine state, and follow a room's update stream live over websocket.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client = NewClient(serverURL)
		},
		SilenceUsage: true,
	}

	defaultServer := os.Getenv("QUIZROOM_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:4000"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "Server URL (env: QUIZROOM_SERVER)")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
