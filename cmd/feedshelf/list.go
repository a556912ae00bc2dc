package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"feedshelf/internal/domain/entity"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [folder]",
		Short: "List subscriptions",
		Long: `List subscriptions grouped by folder.

The index column is the position inside the folder, as accepted by
"feedshelf remove --index".

Examples:
  # List every subscription
  feedshelf list

  # List only the Tech folder
  feedshelf list Tech`,
		Args: cobra.MaximumNArgs(1),
		RunE: runListCmd,
	}
	return cmd
}

func runListCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)
	if err := a.load(ctx); err != nil {
		return err
	}

	folders := a.manager.Folders()
	if len(args) == 1 {
		f, ok := a.manager.GetFolder(args[0])
		if !ok {
			return &entity.NotFoundError{Entity: "folder", Key: args[0]}
		}
		folders = []*entity.Folder{f}
	}

	var rows [][]string
	for _, f := range folders {
		for i, src := range f.Sources {
			rows = append(rows, []string{a.folderLabel(f), strconv.Itoa(i), src.Name, src.URL})
		}
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No subscriptions.")
		return nil
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Folder", "#", "Name", "URL"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}
