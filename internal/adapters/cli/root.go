// Package cli implements the warehouse client: a cobra command tree that
// publishes commands to the controller over the broker and waits for the
// response on the client's own queue.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	userID     string
	configPath string
	timeout    time.Duration
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "warehouse-client",
		Short: "Warehouse client - submit and track orders",
		Long: `Warehouse client publishes commands to the controller through the
message broker and prints the controller's response.

Examples:
  warehouse-client --user alice sign-up
  warehouse-client --user alice sign-in
  warehouse-client --user alice request pen paper
  warehouse-client --user alice cancel 8400ae2e-98be-4ce3-9ab1-8545e0926acd
  warehouse-client --user alice view
  warehouse-client --user alice listen`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&userID, "user", "",
		"User id the commands act for")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/warehouse)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second,
		"How long to wait for the controller's response")
	_ = rootCmd.MarkPersistentFlagRequired("user")

	rootCmd.AddCommand(NewSignUpCommand())
	rootCmd.AddCommand(NewSignInCommand())
	rootCmd.AddCommand(NewSignOutCommand())
	rootCmd.AddCommand(NewRequestCommand())
	rootCmd.AddCommand(NewCancelCommand())
	rootCmd.AddCommand(NewViewCommand())
	rootCmd.AddCommand(NewListenCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
