package model

import "context"

// PlaybackStatus is the engine's own notion of playback truth, pushed to the
// player through the status callback.
type PlaybackStatus struct {
	PositionMillis int64
	DurationMillis int64
	IsPlaying      bool
}

// AudioHandle is one loaded track. At most one handle is kept live by the
// player; Release must be safe to call more than once.
type AudioHandle interface {
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Seek(ctx context.Context, positionMillis int64) error
	Release() error

	// SetStatusFunc registers the periodic playback-status callback. The
	// callback stops firing after Release.
	SetStatusFunc(fn func(PlaybackStatus))
}

// AudioEngine loads audio tracks for playback.
type AudioEngine interface {
	Load(ctx context.Context, uri string) (AudioHandle, error)
}
