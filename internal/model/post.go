package model

import "time"

// Post represents a published voice post. Author is an embedded snapshot,
// not a live reference; profile edits are propagated by rewriting it.
type Post struct {
	ID        string
	Title     string
	Author    User
	CreatedAt time.Time
	AudioURI  string
	Waveform  []float64
	Duration  int // seconds
	Liked     bool
}

// Clone returns a deep copy so callers can never alias stored state.
func (p Post) Clone() Post {
	out := p
	if p.Waveform != nil {
		out.Waveform = make([]float64, len(p.Waveform))
		copy(out.Waveform, p.Waveform)
	}
	out.Author = p.Author.Clone()
	return out
}

// CreatePostInput contains parameters to publish a post. A zero Duration
// means unknown; a nil Waveform is filled in by the backend.
type CreatePostInput struct {
	Title    string
	AudioURI string
	Duration int
	Waveform []float64
}

// FeedPage is one slice of the feed, newest-first.
type FeedPage struct {
	Posts   []Post
	HasMore bool
}

// UploadTarget is a synthetic upload destination. Nothing is stored behind
// these URLs; the file URL is what a published post references.
type UploadTarget struct {
	UploadURL string
	FileURL   string
}
