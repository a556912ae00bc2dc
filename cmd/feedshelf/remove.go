package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedshelf/internal/usecase/subscription"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Unsubscribe from a feed",
		Long: `Remove a feed from a folder by name or by index.

When several feeds share a name, the first one is removed.

Examples:
  feedshelf remove "Go Blog" --folder Tech
  feedshelf remove --folder Tech --index 0`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRemoveCmd,
	}

	cmd.Flags().String("folder", "", "Folder holding the feed (default folder when empty)")
	cmd.Flags().IntP("index", "i", -1, "Position of the feed inside the folder")

	return cmd
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	folder, err := cmd.Flags().GetString("folder")
	if err != nil {
		return err
	}
	byIndex := cmd.Flags().Changed("index")
	if byIndex == (len(args) == 1) {
		return fmt.Errorf("give either a feed name or --index")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)
	if err := a.load(ctx); err != nil {
		return err
	}

	if byIndex {
		index, err := cmd.Flags().GetInt("index")
		if err != nil {
			return err
		}
		err = subscription.RemoveSourceAt(a.manager, folder, index)
		if err != nil {
			return err
		}
	} else if err := subscription.RemoveSource(a.manager, folder, args[0]); err != nil {
		return err
	}

	if err := a.save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
	return nil
}
