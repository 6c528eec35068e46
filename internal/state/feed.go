package state

import (
	"context"
	"sync"

	"github.com/dtroode/novoice/internal/logger"
	"github.com/dtroode/novoice/internal/model"
)

// ViewerSource reports the current viewer, if any. The session machine
// implements it.
type ViewerSource interface {
	ViewerID() (string, bool)
}

// FeedSnapshot is a read-only copy of the feed state.
type FeedSnapshot struct {
	Posts   []model.Post
	Page    int
	HasMore bool
	Loading bool
	Err     string
}

// Feed drives feed pagination and the optimistic like toggle. The loading
// flag serializes conflicting fetches: a fetch issued while one is in
// flight is coalesced into a no-op.
type Feed struct {
	mu      sync.Mutex
	backend model.Backend
	viewer  ViewerSource
	logger  *logger.Logger

	pageSize int
	posts    []model.Post
	page     int
	hasMore  bool
	loading  bool
	errMsg   string
}

// NewFeed constructs the feed machine with nothing loaded yet.
func NewFeed(backend model.Backend, viewer ViewerSource, pageSize int, log *logger.Logger) *Feed {
	return &Feed{
		backend:  backend,
		viewer:   viewer,
		logger:   log.WithComponent("feed"),
		pageSize: pageSize,
		hasMore:  true,
	}
}

// FetchNext loads the next page and appends it. No-op while a fetch is in
// flight or when the feed is exhausted. On failure no partial page is
// applied; posts and page stay unchanged.
func (f *Feed) FetchNext(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	f.errMsg = ""
	nextPage := f.page + 1
	f.mu.Unlock()

	viewerID, _ := f.viewer.ViewerID()
	page, err := f.backend.FetchFeed(ctx, nextPage, f.pageSize, viewerID)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.errMsg = err.Error()
		return err
	}
	f.posts = append(f.posts, page.Posts...)
	f.page = nextPage
	f.hasMore = page.HasMore
	return nil
}

// Refresh clears the loaded pages and re-fetches the first one.
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.page = 0
	f.posts = nil
	f.hasMore = true
	f.mu.Unlock()

	return f.FetchNext(ctx)
}

// AddPost prepends a locally known post, typically right after a successful
// publish. Purely a local merge; the backend already has the post.
func (f *Feed) AddPost(post model.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]model.Post{post.Clone()}, f.posts...)
}

// ToggleLike applies the like optimistically: the local flag flips before
// the backend round trip, reconciles to the authoritative value on success,
// and rolls back to the pre-toggle value on failure.
func (f *Feed) ToggleLike(ctx context.Context, postID string) error {
	viewerID, _ := f.viewer.ViewerID()

	f.mu.Lock()
	previous, known := f.setLiked(postID, func(liked bool) bool { return !liked })
	f.mu.Unlock()

	liked, err := f.backend.ToggleLike(ctx, viewerID, postID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		if known {
			f.setLiked(postID, func(bool) bool { return previous })
		}
		f.logger.Debug("like rolled back", "post_id", postID, "error", err.Error())
		return err
	}
	f.setLiked(postID, func(bool) bool { return liked })
	return nil
}

// ReplaceUserPosts rewrites every post authored by the user, propagating a
// profile edit onto the embedded author snapshots.
func (f *Feed) ReplaceUserPosts(userID string, updater func(model.Post) model.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, post := range f.posts {
		if post.Author.ID == userID {
			f.posts[i] = updater(post.Clone())
		}
	}
}

// Snapshot returns an independent copy of the feed state.
func (f *Feed) Snapshot() FeedSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := FeedSnapshot{
		Page:    f.page,
		HasMore: f.hasMore,
		Loading: f.loading,
		Err:     f.errMsg,
		Posts:   make([]model.Post, 0, len(f.posts)),
	}
	for _, post := range f.posts {
		snap.Posts = append(snap.Posts, post.Clone())
	}
	return snap
}

// setLiked applies fn to the named post's liked flag and reports the prior
// value. Caller must hold f.mu.
func (f *Feed) setLiked(postID string, fn func(bool) bool) (previous bool, known bool) {
	for i := range f.posts {
		if f.posts[i].ID == postID {
			previous = f.posts[i].Liked
			f.posts[i].Liked = fn(previous)
			return previous, true
		}
	}
	return false, false
}
