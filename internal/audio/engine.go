// Package audio provides a simulated playback engine. Like the backend's
// simulated network, it stands in for a real audio stack: tracks "play" on
// a wall-clock ticker and report progress through status callbacks.
package audio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dtroode/novoice/internal/model"
)

const (
	defaultTick        = 250 * time.Millisecond
	defaultTrackLength = 30 * time.Second
)

// Engine simulates audio playback.
type Engine struct {
	tick        time.Duration
	trackLength time.Duration
}

var _ model.AudioEngine = (*Engine)(nil)

// NewEngine creates a simulated engine. Zero durations select the defaults
// (250ms status interval, 30s track length).
func NewEngine(tick, trackLength time.Duration) *Engine {
	if tick <= 0 {
		tick = defaultTick
	}
	if trackLength <= 0 {
		trackLength = defaultTrackLength
	}
	return &Engine{tick: tick, trackLength: trackLength}
}

// Load prepares a track for playback. The handle starts paused at zero.
func (e *Engine) Load(ctx context.Context, uri string) (model.AudioHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if uri == "" {
		return nil, errors.New("empty audio uri")
	}

	h := &handle{
		duration: e.trackLength,
		done:     make(chan struct{}),
	}
	go h.run(e.tick)
	return h, nil
}

type handle struct {
	mu       sync.Mutex
	duration time.Duration
	position time.Duration
	playing  bool
	released bool
	statusFn func(model.PlaybackStatus)
	done     chan struct{}
}

func (h *handle) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.mu.Lock()
			if !h.playing {
				h.mu.Unlock()
				continue
			}
			h.position += tick
			if h.position >= h.duration {
				h.position = h.duration
				h.playing = false
			}
			fn, status := h.statusFn, h.status()
			h.mu.Unlock()
			if fn != nil {
				fn(status)
			}
		}
	}
}

func (h *handle) Play(ctx context.Context) error {
	return h.transition(ctx, true)
}

func (h *handle) Pause(ctx context.Context) error {
	return h.transition(ctx, false)
}

func (h *handle) Seek(_ context.Context, positionMillis int64) error {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return errors.New("handle released")
	}
	position := time.Duration(positionMillis) * time.Millisecond
	if position < 0 {
		position = 0
	}
	if position > h.duration {
		position = h.duration
	}
	h.position = position
	fn, status := h.statusFn, h.status()
	h.mu.Unlock()

	if fn != nil {
		fn(status)
	}
	return nil
}

// Release stops the ticker goroutine and silences callbacks. Safe to call
// more than once.
func (h *handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return nil
	}
	h.released = true
	h.playing = false
	h.statusFn = nil
	close(h.done)
	return nil
}

func (h *handle) SetStatusFunc(fn func(model.PlaybackStatus)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.statusFn = fn
}

func (h *handle) transition(ctx context.Context, playing bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return errors.New("handle released")
	}
	h.playing = playing
	fn, status := h.statusFn, h.status()
	h.mu.Unlock()

	if fn != nil {
		fn(status)
	}
	return nil
}

// status builds the callback payload. Caller must hold h.mu.
func (h *handle) status() model.PlaybackStatus {
	return model.PlaybackStatus{
		PositionMillis: h.position.Milliseconds(),
		DurationMillis: h.duration.Milliseconds(),
		IsPlaying:      h.playing,
	}
}
