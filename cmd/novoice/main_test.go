package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "-", formatDuration(0))
	assert.Equal(t, "0:59", formatDuration(59))
	assert.Equal(t, "1:05", formatDuration(65))
	assert.Equal(t, "12:00", formatDuration(720))
}

func TestFeedCommand_RendersSeededFeed(t *testing.T) {
	t.Setenv("BACKEND_LATENCY_SCALE", "0")
	t.Setenv("BACKEND_SEED", "true")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"feed", "--pages", "1"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Community drop 1")
	assert.Contains(t, out.String(), "More posts available")
}

func TestConsoleCommand_LoginAndBrowse(t *testing.T) {
	t.Setenv("BACKEND_LATENCY_SCALE", "0")
	t.Setenv("BACKEND_SEED", "true")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader("login sasha@example.com\nnext\nfeed\nwhoami\nquit\n"))
	root.SetArgs([]string{"console"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "developer code:")
	assert.Contains(t, out.String(), "Community drop 1")
	assert.Contains(t, out.String(), "status: awaiting-link")
}
