package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedshelf/internal/usecase/subscription"
)

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Subscribe to a feed",
		Long: `Add a feed to a folder, creating the folder when needed.

Without --name the feed stays unnamed until "feedshelf resolve" looks up its
title; it is written to the OPML file under its URL meanwhile.

Examples:
  feedshelf add https://go.dev/blog/feed.atom --name "Go Blog" --folder Tech
  feedshelf add https://lwn.net/headlines/rss`,
		Args: cobra.ExactArgs(1),
		RunE: runAddCmd,
	}

	cmd.Flags().StringP("name", "n", "", "Display name of the feed")
	cmd.Flags().String("folder", "", "Target folder (default folder when empty)")

	return cmd
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	folder, err := cmd.Flags().GetString("folder")
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := a.context(cmd)
	if err := a.load(ctx); err != nil {
		return err
	}

	src, err := subscription.AddSource(a.manager, subscription.AddSourceInput{
		Folder: folder,
		URL:    args[0],
		Name:   name,
	})
	if err != nil {
		return err
	}
	if err := a.save(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", src.URL, src.FolderName)
	return nil
}
