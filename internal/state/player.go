package state

import (
	"context"
	"sync"

	"github.com/dtroode/novoice/internal/logger"
	"github.com/dtroode/novoice/internal/model"
)

// Track identifies what the player is currently loaded with.
type Track struct {
	ID       string
	Title    string
	URI      string
	Duration int // seconds
}

// PlayerSnapshot is a read-only copy of the player state.
type PlayerSnapshot struct {
	Track          *Track
	IsPlaying      bool
	PositionMillis int64
	DurationMillis int64
}

// Player drives single-active-track playback. At most one engine handle is
// live at any time; loading a new track releases the previous handle first,
// regardless of whether the new load succeeds. Position, duration, and the
// playing flag mirror the engine's own status callbacks.
type Player struct {
	mu     sync.Mutex
	engine model.AudioEngine
	logger *logger.Logger

	track          *Track
	handle         model.AudioHandle
	isPlaying      bool
	positionMillis int64
	durationMillis int64
}

// NewPlayer constructs the player machine in the empty state.
func NewPlayer(engine model.AudioEngine, log *logger.Logger) *Player {
	return &Player{engine: engine, logger: log.WithComponent("player")}
}

// SetTrack loads and immediately plays the post's audio. A previously live
// handle is released before the load. On load or play failure the
// half-initialized handle is released and the player resets to empty.
func (p *Player) SetTrack(ctx context.Context, post model.Post) error {
	p.releaseCurrent()

	handle, err := p.engine.Load(ctx, post.AudioURI)
	if err != nil {
		if handle != nil {
			_ = handle.Release()
		}
		p.logger.Error("failed to load audio track", "uri", post.AudioURI, "error", err.Error())
		p.clear()
		return err
	}

	handle.SetStatusFunc(p.onStatus)

	if err := handle.Play(ctx); err != nil {
		_ = handle.Release()
		p.logger.Error("failed to start playback", "uri", post.AudioURI, "error", err.Error())
		p.clear()
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.track = &Track{ID: post.ID, Title: post.Title, URI: post.AudioURI, Duration: post.Duration}
	p.handle = handle
	p.isPlaying = true
	p.positionMillis = 0
	p.durationMillis = int64(post.Duration) * 1000
	return nil
}

// TogglePlay pauses when playing and resumes when paused. No-op without a
// live handle; the playing flag itself comes from engine callbacks.
func (p *Player) TogglePlay(ctx context.Context) error {
	p.mu.Lock()
	handle := p.handle
	playing := p.isPlaying
	p.mu.Unlock()

	if handle == nil {
		return nil
	}
	if playing {
		return handle.Pause(ctx)
	}
	return handle.Play(ctx)
}

// Seek moves playback to the given fraction of the track duration. The
// fraction is expected in [0,1] and is not clamped here. No-op without a
// handle or with zero duration.
func (p *Player) Seek(ctx context.Context, fraction float64) error {
	p.mu.Lock()
	handle := p.handle
	duration := p.durationMillis
	p.mu.Unlock()

	if handle == nil || duration == 0 {
		return nil
	}
	return handle.Seek(ctx, int64(fraction*float64(duration)))
}

// Reset releases the live handle, if any, and clears all fields.
func (p *Player) Reset() {
	p.releaseCurrent()
	p.clear()
}

// Snapshot returns an independent copy of the player state.
func (p *Player) Snapshot() PlayerSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := PlayerSnapshot{
		IsPlaying:      p.isPlaying,
		PositionMillis: p.positionMillis,
		DurationMillis: p.durationMillis,
	}
	if p.track != nil {
		track := *p.track
		snap.Track = &track
	}
	return snap
}

// onStatus mirrors the engine's playback truth into the player state.
// Callbacks arriving after the handle was swapped out are dropped.
func (p *Player) onStatus(status model.PlaybackStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	p.positionMillis = status.PositionMillis
	if status.DurationMillis > 0 {
		p.durationMillis = status.DurationMillis
	}
	p.isPlaying = status.IsPlaying
}

// releaseCurrent detaches and releases the live handle, if any.
func (p *Player) releaseCurrent() {
	p.mu.Lock()
	handle := p.handle
	p.handle = nil
	p.mu.Unlock()

	if handle != nil {
		if err := handle.Release(); err != nil {
			p.logger.Debug("failed to release audio handle", "error", err.Error())
		}
	}
}

func (p *Player) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.track = nil
	p.handle = nil
	p.isPlaying = false
	p.positionMillis = 0
	p.durationMillis = 0
}
