package main

import (
	"fmt"

	"github.com/dtroode/novoice/internal/audio"
	"github.com/dtroode/novoice/internal/backend"
	"github.com/dtroode/novoice/internal/config"
	"github.com/dtroode/novoice/internal/logger"
	"github.com/dtroode/novoice/internal/model"
	"github.com/dtroode/novoice/internal/secret"
	"github.com/dtroode/novoice/internal/state"
	"github.com/dtroode/novoice/internal/token"
)

// app wires one in-process backend to the three client state machines.
// State lives only for the invocation; the secret store may outlive it when
// a vault path is configured.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	backend *backend.Backend
	session *state.Session
	feed    *state.Feed
	player  *state.Player
}

func newApp() (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	b := backend.New(backend.Config{
		LatencyScale: cfg.Backend.LatencyScale,
		Seed:         cfg.Backend.Seed,
	}, token.NewJWT(cfg.JWT.Secret), log)

	var vault model.SecretStore
	if cfg.Vault.Path != "" {
		vault = secret.NewFile(cfg.Vault.Path)
	} else {
		vault = secret.NewMemory()
	}

	session := state.NewSession(b, vault, log)
	return &app{
		cfg:     cfg,
		log:     log,
		backend: b,
		session: session,
		feed:    state.NewFeed(b, session, cfg.Backend.PageSize, log),
		player:  state.NewPlayer(audio.NewEngine(0, 0), log),
	}, nil
}
