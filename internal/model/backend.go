package model

import "context"

// LoginResult is returned on successful magic-link confirmation.
type LoginResult struct {
	Token string
	User  User
}

// FollowResult carries both updated sides of a follow toggle plus the
// actor's full following map.
type FollowResult struct {
	Actor          User
	Target         User
	ActorFollowing map[string]bool
}

// Backend is the single data-access surface for the client state machines.
// Every operation simulates network latency and returns defensive snapshots;
// internal state is never aliased by a return value. Implementations present
// each call as atomic.
type Backend interface {
	// RequestMagicLink ensures the user exists and issues a fresh 6-digit
	// code, superseding any prior pending link for the email. The code is
	// returned for developer-mode display only.
	RequestMagicLink(ctx context.Context, email string) (code string, err error)

	// ConfirmMagicLink consumes the pending link and mints a session token.
	ConfirmMagicLink(ctx context.Context, email, code string) (LoginResult, error)

	// RestoreSession resolves a previously minted token back to its user.
	RestoreSession(ctx context.Context, token string) (User, error)

	// FetchFeed returns the 1-indexed page of the feed, newest-first, with
	// Liked derived for the viewer (always false when viewerID is empty).
	FetchFeed(ctx context.Context, page, pageSize int, viewerID string) (FeedPage, error)

	// UpdateProfile merges a partial edit and returns the full snapshot.
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (User, error)

	// RequestUploadURL returns a synthetic upload/file URL pair.
	RequestUploadURL(ctx context.Context) (UploadTarget, error)

	// PublishPost prepends a new post to the feed.
	PublishPost(ctx context.Context, authorID string, input CreatePostInput) (Post, error)

	// ToggleFollow flips the actor→target follow edge, auto-creating an
	// unknown target as a suggested creator.
	ToggleFollow(ctx context.Context, actorID, targetID string) (FollowResult, error)

	// ToggleLike flips the viewer's membership in the post's like set and
	// reports the resulting state. An empty userID uses the shared
	// anonymous bucket.
	ToggleLike(ctx context.Context, userID, postID string) (liked bool, err error)

	// Following reads the actor's following map without a simulated round
	// trip. Used to resolve the initial map at login.
	Following(userID string) map[string]bool
}
