package backend

import (
	"fmt"
	"time"

	"github.com/dtroode/novoice/internal/model"
)

const sampleAudio = "https://github.com/SergLam/Audio-Sample-files/raw/master/sample.wav"

var demoEmails = []string{
	"ava@novoice.dev",
	"ben@novoice.dev",
	"cody@novoice.dev",
	"devin@novoice.dev",
	"emerald@novoice.dev",
}

// seedDemoData populates demo creators and a backlog of posts so a fresh
// process has something to browse. Posts are generated newest-first at
// 12-minute intervals.
func (b *Backend) seedDemoData() {
	for i, email := range demoEmails {
		user := b.identity.ensure(email, fmt.Sprintf("Creator %d", i+1))
		user.Followers = b.rng.Intn(5000)
		user.Following = b.rng.Intn(1000)
	}

	now := b.now()
	for i := 0; i < 25; i++ {
		author := b.identity.ensure(demoEmails[i%len(demoEmails)], "")
		b.feed.append(seedPost(i, author.Clone(), now, b.randomWaveform()))
	}

	b.logger.Debug("seeded demo data", "users", len(demoEmails), "posts", b.feed.len())
}

func seedPost(i int, author model.User, now time.Time, waveform []float64) model.Post {
	return model.Post{
		ID:        fmt.Sprintf("seed-post-%d", i),
		Title:     fmt.Sprintf("Community drop %d", i+1),
		Author:    author,
		CreatedAt: now.Add(-time.Duration(i) * 12 * time.Minute),
		AudioURI:  sampleAudio,
		Waveform:  waveform,
		Duration:  60 + i%15,
	}
}
