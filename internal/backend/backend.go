// Package backend implements the in-process simulated server: identity,
// social graph, and feed stores behind a single async façade. Every
// operation incurs an artificial delay so callers must handle in-flight
// state, and every returned value is a defensive snapshot.
package backend

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/novoice/internal/logger"
	"github.com/dtroode/novoice/internal/model"
)

// Base latencies per operation, scaled by Config.LatencyScale.
const (
	delayRequestMagicLink = 400 * time.Millisecond
	delayConfirmMagicLink = 350 * time.Millisecond
	delayRestoreSession   = 250 * time.Millisecond
	delayFetchFeed        = 500 * time.Millisecond
	delayUpdateProfile    = 300 * time.Millisecond
	delayRequestUpload    = 200 * time.Millisecond
	delayPublishPost      = 400 * time.Millisecond
	delayToggleFollow     = 150 * time.Millisecond
	delayToggleLike       = 120 * time.Millisecond
)

// Config contains backend construction parameters.
type Config struct {
	// LatencyScale multiplies the per-operation base delay. Zero disables
	// the simulated latency, which tests rely on.
	LatencyScale float64
	// Seed populates demo creators and posts at construction.
	Seed bool
}

// Backend is the sole data-access surface for the client state machines.
// One mutex guards the three stores, so each operation is atomic to callers
// and no interleaved multi-step transaction can be observed.
type Backend struct {
	mu       sync.Mutex
	identity *identityStore
	graph    *socialGraph
	feed     *feedStore

	tokens model.TokenManager
	logger *logger.Logger

	latencyScale float64
	rng          *rand.Rand
	now          func() time.Time
}

var _ model.Backend = (*Backend)(nil)

// New constructs the backend with its stores and optional seed data.
func New(cfg Config, tokens model.TokenManager, log *logger.Logger) *Backend {
	b := &Backend{
		identity:     newIdentityStore(),
		graph:        newSocialGraph(),
		feed:         newFeedStore(),
		tokens:       tokens,
		logger:       log.WithComponent("backend"),
		latencyScale: cfg.LatencyScale,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
	if cfg.Seed {
		b.seedDemoData()
	}
	return b
}

// RequestMagicLink ensures the user exists and issues a fresh code,
// superseding any prior pending link for the email. The code is returned
// for developer-mode display only.
func (b *Backend) RequestMagicLink(ctx context.Context, email string) (string, error) {
	if err := b.simulate(ctx, delayRequestMagicLink); err != nil {
		return "", err
	}
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("provide a valid email address: %w", model.ErrValidation)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.identity.ensure(email, "")

	tok, err := b.tokens.Mint(email)
	if err != nil {
		b.logger.Error("failed to mint session token", "email", email, "error", err.Error())
		return "", fmt.Errorf("failed to mint session token: %w", err)
	}

	link := magicLink{
		Email: email,
		Code:  fmt.Sprintf("%06d", 100000+b.rng.Intn(900000)),
		Token: tok,
	}
	b.identity.putLink(link)

	b.logger.Debug("magic link issued", "email", email)
	return link.Code, nil
}

// ConfirmMagicLink consumes the pending link and binds its token. A wrong
// code leaves the pending record in place so the user can retry.
func (b *Backend) ConfirmMagicLink(ctx context.Context, email, code string) (model.LoginResult, error) {
	if err := b.simulate(ctx, delayConfirmMagicLink); err != nil {
		return model.LoginResult{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	link, ok := b.identity.peekLink(email)
	if !ok {
		return model.LoginResult{}, fmt.Errorf("magic link expired, request a new one: %w", model.ErrNotFound)
	}
	if link.Code != code {
		return model.LoginResult{}, fmt.Errorf("invalid verification code: %w", model.ErrValidation)
	}

	b.identity.consumeLink(email)
	b.identity.bindToken(link.Token, email)

	user := b.identity.ensure(email, "").Clone()
	b.logger.Info("magic link confirmed", "email", email)
	return model.LoginResult{Token: link.Token, User: user}, nil
}

// RestoreSession resolves a previously minted token to its user. Tokens
// that fail signature or expiry validation are revoked and reported as
// unknown.
func (b *Backend) RestoreSession(ctx context.Context, token string) (model.User, error) {
	if err := b.simulate(ctx, delayRestoreSession); err != nil {
		return model.User{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	email, ok := b.identity.resolveToken(token)
	if !ok {
		return model.User{}, fmt.Errorf("session expired: %w", model.ErrNotFound)
	}
	if _, err := b.tokens.Parse(token); err != nil {
		b.identity.revokeToken(token)
		return model.User{}, fmt.Errorf("session expired: %w", model.ErrNotFound)
	}

	return b.identity.ensure(email, "").Clone(), nil
}

// FetchFeed returns the 1-indexed page of the feed, newest-first. The
// embedded author is re-resolved from the identity store and Liked is
// derived from the like sets for the viewer at read time.
func (b *Backend) FetchFeed(ctx context.Context, page, pageSize int, viewerID string) (model.FeedPage, error) {
	if err := b.simulate(ctx, delayFetchFeed); err != nil {
		return model.FeedPage{}, err
	}
	if page < 1 || pageSize < 1 {
		return model.FeedPage{}, fmt.Errorf("page and page size must be positive: %w", model.ErrValidation)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	stored, hasMore := b.feed.page(page, pageSize)
	posts := make([]model.Post, 0, len(stored))
	for _, post := range stored {
		snapshot := post.Clone()
		snapshot.Author = b.identity.ensure(post.Author.Email, "").Clone()
		snapshot.Liked = b.graph.liked(post.ID, viewerID)
		posts = append(posts, snapshot)
	}

	return model.FeedPage{Posts: posts, HasMore: hasMore}, nil
}

// UpdateProfile merges a partial edit into the user record and returns the
// full updated snapshot.
func (b *Backend) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (model.User, error) {
	if err := b.simulate(ctx, delayUpdateProfile); err != nil {
		return model.User{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := b.identity.byID(userID)
	if user == nil {
		return model.User{}, fmt.Errorf("user not found: %w", model.ErrNotFound)
	}
	update.Apply(user)

	b.logger.Debug("profile updated", "user_id", userID)
	return user.Clone(), nil
}

// RequestUploadURL returns a synthetic upload destination. Nothing is
// stored behind these URLs.
func (b *Backend) RequestUploadURL(ctx context.Context) (model.UploadTarget, error) {
	if err := b.simulate(ctx, delayRequestUpload); err != nil {
		return model.UploadTarget{}, err
	}

	id := uuid.NewString()
	return model.UploadTarget{
		UploadURL: "mock://novoice/uploads/" + id,
		FileURL:   "https://cdn.novoice.app/audio/" + id + ".m4a",
	}, nil
}

// PublishPost prepends a new post to the feed, generating waveform samples
// when the input omits them.
func (b *Backend) PublishPost(ctx context.Context, authorID string, input model.CreatePostInput) (model.Post, error) {
	if err := b.simulate(ctx, delayPublishPost); err != nil {
		return model.Post{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	author := b.identity.byID(authorID)
	if author == nil {
		return model.Post{}, fmt.Errorf("author not found: %w", model.ErrNotFound)
	}

	waveform := input.Waveform
	if waveform == nil {
		waveform = b.randomWaveform()
	}

	post := model.Post{
		ID:        "user-post-" + uuid.NewString(),
		Title:     input.Title,
		Author:    author.Clone(),
		CreatedAt: b.now(),
		AudioURI:  input.AudioURI,
		Duration:  input.Duration,
		Waveform:  waveform,
	}
	b.feed.prepend(post.Clone())

	b.logger.Info("post published", "post_id", post.ID, "author_id", authorID)
	return post, nil
}

// ToggleFollow flips the actor→target edge atomically on both sides and
// recomputes counts from set sizes. An unknown target is created as a
// suggested creator.
func (b *Backend) ToggleFollow(ctx context.Context, actorID, targetID string) (model.FollowResult, error) {
	if err := b.simulate(ctx, delayToggleFollow); err != nil {
		return model.FollowResult{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	actor := b.identity.byID(actorID)
	if actor == nil {
		return model.FollowResult{}, fmt.Errorf("user not found: %w", model.ErrNotFound)
	}

	target := b.identity.byID(targetID)
	if target == nil {
		target = &model.User{
			ID:    targetID,
			Email: targetID + "@novoice.dev",
			Name:  suggestedName(targetID),
			Bio:   "Novoice creator",
		}
		b.identity.put(target)
	}

	b.graph.toggleFollow(actorID, targetID)
	actor.Following = b.graph.followingCount(actorID)
	target.Followers = b.graph.followerCount(targetID)

	return model.FollowResult{
		Actor:          actor.Clone(),
		Target:         target.Clone(),
		ActorFollowing: b.graph.followingMap(actorID),
	}, nil
}

// ToggleLike flips the viewer's membership in the post's like set. Unknown
// posts get an empty set implicitly, so the toggle never fails.
func (b *Backend) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if err := b.simulate(ctx, delayToggleLike); err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.graph.toggleLike(userID, postID), nil
}

// Following reads the actor's following map without a simulated round trip.
func (b *Backend) Following(userID string) map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.graph.followingMap(userID)
}

// simulate models network latency and honors cancellation. A non-positive
// scaled delay returns immediately.
func (b *Backend) simulate(ctx context.Context, base time.Duration) error {
	delay := time.Duration(float64(base) * b.latencyScale)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// randomWaveform generates amplitude samples the way recordings without
// client-side analysis get them. Caller must hold b.mu.
func (b *Backend) randomWaveform() []float64 {
	samples := make([]float64, 30)
	for i := range samples {
		samples[i] = float64(int(b.rng.Float64()*100)) / 100
	}
	return samples
}

// suggestedName derives a display name from a suggested-creator id, e.g.
// "indie-radio" → "Indie Radio".
func suggestedName(id string) string {
	chunks := strings.Split(id, "-")
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk == "" {
			continue
		}
		parts = append(parts, strings.ToUpper(chunk[:1])+chunk[1:])
	}
	return strings.Join(parts, " ")
}
