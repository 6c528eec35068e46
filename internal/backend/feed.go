package backend

import "github.com/dtroode/novoice/internal/model"

// feedStore keeps the ordered post collection, newest-first. The Backend
// serializes all access and clones posts before they leave the package.
type feedStore struct {
	posts []model.Post
}

func newFeedStore() *feedStore {
	return &feedStore{}
}

// prepend inserts a freshly published post at the head of the feed.
func (f *feedStore) prepend(post model.Post) {
	f.posts = append([]model.Post{post}, f.posts...)
}

// append adds a post at the tail. Used only while seeding, where posts are
// generated in newest-first order already.
func (f *feedStore) append(post model.Post) {
	f.posts = append(f.posts, post)
}

// page returns the stored posts for the 1-indexed page plus whether more
// pages follow. Returned elements still alias store memory; the Backend
// clones them.
func (f *feedStore) page(page, pageSize int) ([]model.Post, bool) {
	start := (page - 1) * pageSize
	if start >= len(f.posts) {
		return nil, false
	}
	end := start + pageSize
	if end > len(f.posts) {
		end = len(f.posts)
	}
	return f.posts[start:end], end < len(f.posts)
}

func (f *feedStore) len() int {
	return len(f.posts)
}
