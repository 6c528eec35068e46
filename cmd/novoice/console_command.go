package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtroode/novoice/internal/model"
	"github.com/dtroode/novoice/internal/state"
)

func newConsoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive prompt over the state machines",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			app.session.Initialize(cmd.Context())
			defer app.player.Reset()

			fmt.Fprintln(cmd.OutOrStdout(), `Novoice console. Type "help" for commands, "quit" to exit.`)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(cmd.OutOrStdout(), "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" || line == "exit" {
					return nil
				}
				runConsoleCommand(cmd, app, line)
			}
		},
	}
}

func runConsoleCommand(cmd *cobra.Command, app *app, line string) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	fail := func(err error) {
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}

	switch name {
	case "help":
		fmt.Fprintln(out, `Commands:
  login <email>     request a magic link
  code <code>       confirm the magic link
  logout            sign out
  whoami            show session state
  feed              show loaded posts
  next              fetch the next feed page
  refresh           reload the feed from the top
  like <n>          toggle like on the n-th listed post
  follow <user-id>  toggle follow
  publish <title>   record and publish a post
  play <n>          play the n-th listed post
  pause             toggle play/pause
  seek <0..1>       seek to a fraction of the track
  stop              stop playback
  quit              exit`)
	case "login":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: login <email>")
			return
		}
		if err := app.session.RequestMagicLink(ctx, args[0]); err != nil {
			fail(err)
			return
		}
		fmt.Fprintf(out, "Code sent to %s (developer code: %s)\n", args[0], app.session.Snapshot().DebugCode)
	case "code":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: code <code>")
			return
		}
		if err := app.session.ConfirmMagicLink(ctx, args[0]); err != nil {
			fail(err)
			return
		}
		snap := app.session.Snapshot()
		if snap.Status == state.StatusAuthenticated {
			fmt.Fprintf(out, "Signed in as %s\n", snap.User.Email)
		} else {
			fmt.Fprintln(out, snap.Err)
		}
	case "logout":
		app.session.Logout(ctx)
		fmt.Fprintln(out, "Signed out.")
	case "whoami":
		snap := app.session.Snapshot()
		fmt.Fprintf(out, "status: %s\n", snap.Status)
		if snap.User != nil {
			fmt.Fprintf(out, "user: %s (%s), %d followers, following %d\n",
				snap.User.Name, snap.User.Email, snap.User.Followers, snap.User.Following)
		}
		if snap.Err != "" {
			fmt.Fprintf(out, "last error: %s\n", snap.Err)
		}
	case "feed":
		fmt.Fprintln(out, renderFeedTable(app.feed.Snapshot().Posts))
	case "next":
		fail(app.feed.FetchNext(ctx))
	case "refresh":
		fail(app.feed.Refresh(ctx))
	case "like":
		post, ok := pickPost(cmd, app, args)
		if !ok {
			return
		}
		fail(app.feed.ToggleLike(ctx, post.ID))
	case "follow":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: follow <user-id>")
			return
		}
		fail(app.session.ToggleFollow(ctx, args[0]))
	case "publish":
		if len(args) == 0 {
			fmt.Fprintln(out, "usage: publish <title>")
			return
		}
		userID, ok := app.session.ViewerID()
		if !ok {
			fmt.Fprintln(out, "sign in first")
			return
		}
		target, err := app.backend.RequestUploadURL(ctx)
		if err != nil {
			fail(err)
			return
		}
		post, err := app.backend.PublishPost(ctx, userID, model.CreatePostInput{
			Title:    strings.Join(args, " "),
			AudioURI: target.FileURL,
			Duration: 12,
		})
		if err != nil {
			fail(err)
			return
		}
		app.feed.AddPost(post)
		fmt.Fprintf(out, "Published %q\n", post.Title)
	case "play":
		post, ok := pickPost(cmd, app, args)
		if !ok {
			return
		}
		fail(app.player.SetTrack(ctx, post))
	case "pause":
		fail(app.player.TogglePlay(ctx))
	case "seek":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: seek <0..1>")
			return
		}
		fraction, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Fprintln(out, "usage: seek <0..1>")
			return
		}
		fail(app.player.Seek(ctx, fraction))
	case "stop":
		app.player.Reset()
	default:
		fmt.Fprintf(out, "unknown command %q; try \"help\"\n", name)
	}
}

// pickPost resolves a 1-based index argument against the loaded feed.
func pickPost(cmd *cobra.Command, app *app, args []string) (model.Post, bool) {
	out := cmd.OutOrStdout()
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: <command> <n>")
		return model.Post{}, false
	}
	n, err := strconv.Atoi(args[0])
	posts := app.feed.Snapshot().Posts
	if err != nil || n < 1 || n > len(posts) {
		fmt.Fprintf(out, "pick a post between 1 and %d\n", len(posts))
		return model.Post{}, false
	}
	return posts[n-1], true
}
