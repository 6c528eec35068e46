// Package secret provides SecretStore implementations for the session
// token: an in-memory store for tests and short-lived processes, and a
// file-backed store for the CLI.
package secret

import (
	"context"
	"sync"

	"github.com/dtroode/novoice/internal/model"
)

// Memory is an in-process SecretStore.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

var _ model.SecretStore = (*Memory)(nil)

// NewMemory creates an empty in-memory secret store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the stored value, or an empty string when the key is missing.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
