package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDBCmd creates the db command group.
func NewDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Mirror subscriptions into a database",
		Long: `Copy subscriptions between the OPML file and the configured database.

The database driver and location come from the database section of the
configuration (sqlite by default, or postgres). Tables are created on first
use.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Replace the database contents with the OPML file",
		Args:  cobra.NoArgs,
		RunE:  runDBPushCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Replace the OPML file with the database contents",
		Args:  cobra.NoArgs,
		RunE:  runDBPullCmd,
	})

	return cmd
}

func runDBPushCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)
	if err := a.load(ctx); err != nil {
		return err
	}

	closeDB, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	if err := a.svc.Push(ctx, a.manager); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d feed(s) in %d folder(s)\n",
		a.manager.SourceCount(), len(a.manager.Folders()))
	return nil
}

func runDBPullCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)

	closeDB, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	if err := a.svc.Pull(ctx, a.manager); err != nil {
		return err
	}
	if err := a.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d feed(s) in %d folder(s)\n",
		a.manager.SourceCount(), len(a.manager.Folders()))
	return nil
}
