// Copyright (C) 2025 Zero-X Project
//
// This file is part of agent-trust-go.
//
// agent-trust-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// agent-trust-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with agent-trust-go.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zero-x-project/agent-trust-go/pkg/manifest"
	"github.com/zero-x-project/agent-trust-go/pkg/truststore"
	"github.com/zero-x-project/agent-trust-go/pkg/verifier"
)

// Engine is a configured, initialized verifier together with the
// resources it owns.
type Engine struct {
	// Verifier is ready for use; Initialize has already completed.
	Verifier verifier.Verifier

	// TrustStore is the underlying store, exposed for direct management.
	TrustStore *truststore.TrustStore

	// Logger is the engine's configured logger.
	Logger *slog.Logger

	watcher *truststore.Watcher
	closers []func() error
}

// Close releases everything the engine owns (watchers, database handles).
func (e *Engine) Close() error {
	var firstErr error
	if e.watcher != nil {
		if err := e.watcher.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, closeFn := range e.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewEngine builds and initializes a verification engine from
// configuration.
func NewEngine(ctx context.Context, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := NewLogger(cfg.Logging)
	engine := &Engine{Logger: logger}

	var storage truststore.Storage
	var fileStorage *truststore.FileStorage
	switch cfg.TrustStore.Backend {
	case BackendFile:
		fileStorage = truststore.NewFileStorage(cfg.TrustStore.Path)
		storage = fileStorage
	case BackendSQLite:
		sqliteStorage, err := truststore.OpenSQLiteStorage(cfg.TrustStore.Path)
		if err != nil {
			return nil, err
		}
		engine.closers = append(engine.closers, sqliteStorage.Close)
		storage = sqliteStorage
	}

	trust := truststore.New(storage, truststore.WithLogger(logger))
	if err := trust.Initialize(ctx); err != nil {
		engine.Close()
		return nil, err
	}
	engine.TrustStore = trust

	if cfg.TrustStore.Watch && fileStorage != nil {
		watcher, err := truststore.NewWatcher(trust, fileStorage, logger)
		if err != nil {
			engine.Close()
			return nil, err
		}
		watcher.Start(ctx)
		engine.watcher = watcher
	}

	policy := verifier.SelfAttestManifestFlag
	if cfg.Policy.SelfAttested == PolicyNever {
		policy = verifier.SelfAttestNever
	}

	engine.Verifier = verifier.NewDefaultVerifier(
		manifest.NewFileStore(cfg.Manifests.Dir),
		trust,
		verifier.WithSelfAttestPolicy(policy),
		verifier.WithStorageTimeout(time.Duration(cfg.Storage.Timeout)),
		verifier.WithLogger(logger),
	)
	return engine, nil
}

// NewLogger builds a slog.Logger from logging configuration.
func NewLogger(cfg LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
