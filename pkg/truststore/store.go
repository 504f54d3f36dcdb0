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

package truststore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNotInitialized is returned when the store is used before Initialize
// has completed. This is a programmer error, not a trust outcome.
var ErrNotInitialized = errors.New("truststore: not initialized (call Initialize first)")

// Storage is the persistence boundary for the trusted key set. The trust
// store is the only writer of the persisted representation.
type Storage interface {
	// ReadAll returns every persisted key in order.
	ReadAll(ctx context.Context) ([]string, error)

	// WriteAll durably replaces the persisted key set.
	WriteAll(ctx context.Context, keys []string) error
}

// TrustStore is the deduplicated, order-preserving set of trusted public
// keys. Mutations are serialized and persisted before they return, so the
// in-memory set never diverges from storage beyond a single in-flight
// mutation. Reads may run concurrently with each other.
type TrustStore struct {
	storage Storage
	logger  *slog.Logger

	mu          sync.RWMutex
	keys        []string
	index       map[string]struct{}
	initialized bool
}

// Option configures a TrustStore.
type Option func(*TrustStore)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *TrustStore) {
		s.logger = logger
	}
}

// New creates a trust store backed by the given storage. Initialize must
// be called before any other method.
func New(storage Storage, opts ...Option) *TrustStore {
	s := &TrustStore{
		storage: storage,
		logger:  slog.Default(),
		index:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted key set. It is idempotent: once the
// store is loaded, subsequent calls return immediately.
func (s *TrustStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.loadLocked(ctx); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Reload re-reads the persisted key set, discarding in-memory state.
// Useful when the underlying storage was modified externally.
func (s *TrustStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	return s.loadLocked(ctx)
}

func (s *TrustStore) loadLocked(ctx context.Context) error {
	persisted, err := s.storage.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("truststore: load persisted keys: %w", err)
	}

	keys := make([]string, 0, len(persisted))
	index := make(map[string]struct{}, len(persisted))
	for _, key := range persisted {
		if key == "" {
			continue
		}
		if _, dup := index[key]; dup {
			s.logger.Warn("dropping duplicate trusted key from storage", "key", key)
			continue
		}
		index[key] = struct{}{}
		keys = append(keys, key)
	}

	s.keys = keys
	s.index = index
	return nil
}

// Add inserts a key into the trusted set and persists the result before
// returning. Adding a key that is already present is a successful no-op.
func (s *TrustStore) Add(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("truststore: cannot trust an empty key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	if _, present := s.index[key]; present {
		return nil
	}

	updated := append(append([]string{}, s.keys...), key)
	if err := s.storage.WriteAll(ctx, updated); err != nil {
		return fmt.Errorf("truststore: persist trusted keys: %w", err)
	}

	s.keys = updated
	s.index[key] = struct{}{}
	return nil
}

// Remove deletes a key from the trusted set and persists the result
// before returning. Removing an absent key is a successful no-op.
func (s *TrustStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	if _, present := s.index[key]; !present {
		return nil
	}

	updated := make([]string, 0, len(s.keys)-1)
	for _, k := range s.keys {
		if k != key {
			updated = append(updated, k)
		}
	}
	if err := s.storage.WriteAll(ctx, updated); err != nil {
		return fmt.Errorf("truststore: persist trusted keys: %w", err)
	}

	s.keys = updated
	delete(s.index, key)
	return nil
}

// List returns a copy of the trusted key set in insertion order.
func (s *TrustStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out, nil
}

// Contains reports whether a key is trusted.
func (s *TrustStore) Contains(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return false, ErrNotInitialized
	}
	_, present := s.index[key]
	return present, nil
}
