package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"feedshelf/internal/usecase/subscription"
)

// NewFolderCmd creates the folder command group.
func NewFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create an empty folder",
		Args:  cobra.ExactArgs(1),
		RunE:  runFolderAddCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a folder and all of its feeds",
		Args:  cobra.ExactArgs(1),
		RunE:  runFolderDeleteCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List folders with their feed counts",
		Args:  cobra.NoArgs,
		RunE:  runFolderListCmd,
	})

	return cmd
}

func runFolderAddCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)
	if err := a.load(ctx); err != nil {
		return err
	}

	if _, err := subscription.CreateFolder(a.manager, args[0]); err != nil {
		return err
	}
	if err := a.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created folder %s\n", args[0])
	return nil
}

func runFolderDeleteCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)
	if err := a.load(ctx); err != nil {
		return err
	}

	if err := a.manager.DeleteFolder(args[0]); err != nil {
		return err
	}
	if err := a.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder %s\n", args[0])
	return nil
}

func runFolderListCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.load(a.context(cmd)); err != nil {
		return err
	}

	var rows [][]string
	for _, f := range a.manager.Folders() {
		rows = append(rows, []string{a.folderLabel(f), strconv.Itoa(f.Len())})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Folder", "Feeds"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
	return nil
}
