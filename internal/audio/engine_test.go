package audio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/novoice/internal/model"
)

type statusRecorder struct {
	mu   sync.Mutex
	last model.PlaybackStatus
	seen int
}

func (r *statusRecorder) record(status model.PlaybackStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = status
	r.seen++
}

func (r *statusRecorder) snapshot() (model.PlaybackStatus, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.seen
}

func TestEngine_Load_EmptyURI(t *testing.T) {
	e := NewEngine(0, 0)

	_, err := e.Load(context.Background(), "")
	require.Error(t, err)
}

func TestEngine_PlaybackAdvancesPosition(t *testing.T) {
	e := NewEngine(5*time.Millisecond, time.Second)
	ctx := context.Background()

	h, err := e.Load(ctx, "a://x")
	require.NoError(t, err)
	defer h.Release()

	rec := &statusRecorder{}
	h.SetStatusFunc(rec.record)
	require.NoError(t, h.Play(ctx))

	require.Eventually(t, func() bool {
		status, _ := rec.snapshot()
		return status.PositionMillis > 0 && status.IsPlaying
	}, time.Second, 5*time.Millisecond)
}

func TestEngine_PauseStopsStatusProgress(t *testing.T) {
	e := NewEngine(5*time.Millisecond, time.Second)
	ctx := context.Background()

	h, err := e.Load(ctx, "a://x")
	require.NoError(t, err)
	defer h.Release()

	rec := &statusRecorder{}
	h.SetStatusFunc(rec.record)
	require.NoError(t, h.Play(ctx))
	require.NoError(t, h.Pause(ctx))

	status, _ := rec.snapshot()
	assert.False(t, status.IsPlaying)
}

func TestEngine_SeekClamps(t *testing.T) {
	e := NewEngine(time.Hour, time.Second)
	ctx := context.Background()

	h, err := e.Load(ctx, "a://x")
	require.NoError(t, err)
	defer h.Release()

	rec := &statusRecorder{}
	h.SetStatusFunc(rec.record)

	require.NoError(t, h.Seek(ctx, 5000))
	status, _ := rec.snapshot()
	assert.Equal(t, int64(1000), status.PositionMillis)

	require.NoError(t, h.Seek(ctx, -100))
	status, _ = rec.snapshot()
	assert.Equal(t, int64(0), status.PositionMillis)
}

func TestEngine_ReleaseSilencesCallbacksAndIsIdempotent(t *testing.T) {
	e := NewEngine(5*time.Millisecond, time.Second)
	ctx := context.Background()

	h, err := e.Load(ctx, "a://x")
	require.NoError(t, err)

	rec := &statusRecorder{}
	h.SetStatusFunc(rec.record)
	require.NoError(t, h.Play(ctx))

	require.NoError(t, h.Release())
	require.NoError(t, h.Release())

	_, seenAtRelease := rec.snapshot()
	time.Sleep(30 * time.Millisecond)
	_, seenAfter := rec.snapshot()
	assert.Equal(t, seenAtRelease, seenAfter)

	require.Error(t, h.Play(ctx))
}
