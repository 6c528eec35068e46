package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/novoice/internal/model"
	"github.com/dtroode/novoice/internal/state"
)

// newDemoCommand scripts one end-to-end pass over every state machine:
// magic-link login, feed pagination, publish, optimistic like, follow, and
// a short playback.
func newDemoCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted end-to-end session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			app.session.Initialize(ctx)

			fmt.Fprintf(out, "Requesting magic link for %s...\n", email)
			if err := app.session.RequestMagicLink(ctx, email); err != nil {
				return err
			}
			code := app.session.Snapshot().DebugCode
			fmt.Fprintf(out, "Developer code: %s\n", code)
			if err := app.session.ConfirmMagicLink(ctx, code); err != nil {
				return err
			}
			session := app.session.Snapshot()
			fmt.Fprintf(out, "Signed in as %s (%s)\n\n", session.User.Name, session.User.Email)

			for i := 0; i < 2; i++ {
				if err := app.feed.FetchNext(ctx); err != nil {
					return err
				}
			}
			fmt.Fprintln(out, renderFeedTable(app.feed.Snapshot().Posts))

			fmt.Fprintln(out, "Publishing a post...")
			target, err := app.backend.RequestUploadURL(ctx)
			if err != nil {
				return err
			}
			userID, _ := app.session.ViewerID()
			post, err := app.backend.PublishPost(ctx, userID, model.CreatePostInput{
				Title:    "Hello from the developer console",
				AudioURI: target.FileURL,
				Duration: 12,
			})
			if err != nil {
				return err
			}
			app.feed.AddPost(post)
			fmt.Fprintf(out, "Published %q\n", post.Title)

			if err := app.feed.ToggleLike(ctx, post.ID); err != nil {
				return err
			}
			fmt.Fprintln(out, "Liked the new post.")

			if err := app.session.ToggleFollow(ctx, "user-ava@novoice.dev"); err != nil {
				return err
			}
			fmt.Fprintf(out, "Now following %d creators.\n\n", len(app.session.Snapshot().Following))

			fmt.Fprintf(out, "Playing %q for a moment...\n", post.Title)
			if err := app.player.SetTrack(ctx, post); err != nil {
				return err
			}
			time.Sleep(time.Second)
			printPlayback(cmd, app.player.Snapshot())
			app.player.Reset()

			app.session.Logout(ctx)
			fmt.Fprintln(out, "Logged out.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "you@example.com", "Email to sign in with")
	return cmd
}

func printPlayback(cmd *cobra.Command, snap state.PlayerSnapshot) {
	if snap.Track == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing playing.")
		return
	}
	position := int(snap.PositionMillis / 1000)
	duration := int(snap.DurationMillis / 1000)
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %d:%02d / %d:%02d\n",
		snap.Track.Title, position/60, position%60, duration/60, duration%60)
}
