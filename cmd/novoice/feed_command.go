package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFeedCommand() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse the feed anonymously",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			app.session.Initialize(ctx)
			for i := 0; i < pages; i++ {
				if err := app.feed.FetchNext(ctx); err != nil {
					return err
				}
				if !app.feed.Snapshot().HasMore {
					break
				}
			}

			snap := app.feed.Snapshot()
			fmt.Fprintln(cmd.OutOrStdout(), renderFeedTable(snap.Posts))
			if snap.HasMore {
				fmt.Fprintln(cmd.OutOrStdout(), "More posts available; raise --pages to fetch them.")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 2, "Number of feed pages to fetch")
	return cmd
}
