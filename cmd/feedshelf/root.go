package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"feedshelf/internal/observability/metrics"
)

// NewRootCmd creates the root command for feedshelf.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedshelf",
		Short: "Manage feed subscriptions stored as OPML",
		Long: `feedshelf manages RSS and Atom subscriptions grouped into folders.

Subscriptions live in an OPML file that any feed reader can import. Feeds
outside any folder belong to the default folder and are written at the top
level of the document.

Configuration is read from $XDG_CONFIG_HOME/feedshelf/config.yaml (or --config)
and FEEDSHELF_* environment variables.`,
		Version:            getVersion(),
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPostRunE: writeMetrics,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().String("config", "", "Configuration file (default $XDG_CONFIG_HOME/feedshelf/config.yaml)")
	cmd.PersistentFlags().StringP("file", "f", "", "OPML subscription file (overrides configuration)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("metrics-textfile", "", "Write Prometheus metrics to this file after the command")

	// Add subcommands
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewFolderCmd())
	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewDBCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// writeMetrics dumps the metrics registry when --metrics-textfile is set.
func writeMetrics(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("metrics-textfile")
	if err != nil || path == "" {
		return err
	}
	if err := metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// Execute runs the root command, canceling on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
