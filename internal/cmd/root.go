package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	apiURLFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gatherly",
	Short: "Discover and manage community events from your terminal",
	Long: `gatherly is a terminal client for the Gatherly community events platform.
It lets you browse, search and filter upcoming events, like and save the
ones you care about, and publish your own events for approval.

Run 'gatherly browse' for the interactive UI, or use the subcommands for
scripting and quick one-off actions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
}
