// Package mocks contains testify mocks for the interfaces consumed by the
// client state machines.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/novoice/internal/model"
)

// Backend is a mock implementation of model.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) RequestMagicLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *Backend) ConfirmMagicLink(ctx context.Context, email, code string) (model.LoginResult, error) {
	args := m.Called(ctx, email, code)
	return args.Get(0).(model.LoginResult), args.Error(1)
}

func (m *Backend) RestoreSession(ctx context.Context, token string) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Backend) FetchFeed(ctx context.Context, page, pageSize int, viewerID string) (model.FeedPage, error) {
	args := m.Called(ctx, page, pageSize, viewerID)
	return args.Get(0).(model.FeedPage), args.Error(1)
}

func (m *Backend) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (model.User, error) {
	args := m.Called(ctx, userID, update)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Backend) RequestUploadURL(ctx context.Context) (model.UploadTarget, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.UploadTarget), args.Error(1)
}

func (m *Backend) PublishPost(ctx context.Context, authorID string, input model.CreatePostInput) (model.Post, error) {
	args := m.Called(ctx, authorID, input)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *Backend) ToggleFollow(ctx context.Context, actorID, targetID string) (model.FollowResult, error) {
	args := m.Called(ctx, actorID, targetID)
	return args.Get(0).(model.FollowResult), args.Error(1)
}

func (m *Backend) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *Backend) Following(userID string) map[string]bool {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]bool)
}
