package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/novoice/internal/model"
)

// AudioEngine is a mock implementation of model.AudioEngine.
type AudioEngine struct {
	mock.Mock
}

func (m *AudioEngine) Load(ctx context.Context, uri string) (model.AudioHandle, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.AudioHandle), args.Error(1)
}

// AudioHandle is a mock implementation of model.AudioHandle.
type AudioHandle struct {
	mock.Mock
}

func (m *AudioHandle) Play(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *AudioHandle) Pause(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *AudioHandle) Seek(ctx context.Context, positionMillis int64) error {
	args := m.Called(ctx, positionMillis)
	return args.Error(0)
}

func (m *AudioHandle) Release() error {
	args := m.Called()
	return args.Error(0)
}

func (m *AudioHandle) SetStatusFunc(fn func(model.PlaybackStatus)) {
	m.Called(fn)
}
