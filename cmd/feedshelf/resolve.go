package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Name unnamed feeds after their titles",
		Long: `Fetch every unnamed feed and use the title it declares as its name.

Feeds that cannot be fetched stay unnamed and are reported in the log.
Concurrency, timeout and request rate come from the resolve section of the
configuration.`,
		Args: cobra.NoArgs,
		RunE: runResolveCmd,
	}
}

func runResolveCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)
	if err := a.load(ctx); err != nil {
		return err
	}
	a.attachResolver()

	named, err := a.svc.ResolveNames(ctx, a.manager)
	if err != nil {
		return err
	}
	if named > 0 {
		if err := a.save(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Named %d feed(s)\n", named)
	return nil
}
