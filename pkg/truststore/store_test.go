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
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStorage is an in-process Storage for tests.
type memoryStorage struct {
	mu       sync.Mutex
	keys     []string
	readErr  error
	writeErr error
	writes   int
}

func (m *memoryStorage) ReadAll(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out, nil
}

func (m *memoryStorage) WriteAll(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.keys = make([]string, len(keys))
	copy(m.keys, keys)
	return nil
}

func newInitializedStore(t *testing.T, storage Storage) *TrustStore {
	t.Helper()
	store := New(storage)
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func TestTrustStore_RequiresInitialize(t *testing.T) {
	store := New(&memoryStorage{})
	ctx := context.Background()

	_, err := store.List()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, store.Add(ctx, "k"), ErrNotInitialized)
	assert.ErrorIs(t, store.Remove(ctx, "k"), ErrNotInitialized)
	_, err = store.Contains("k")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestTrustStore_InitializeIdempotent(t *testing.T) {
	storage := &memoryStorage{keys: []string{"a"}}
	store := newInitializedStore(t, storage)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "b"))

	// A second Initialize must not reset in-memory state.
	require.NoError(t, store.Initialize(ctx))
	keys, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestTrustStore_AddRemoveList(t *testing.T) {
	storage := &memoryStorage{}
	store := newInitializedStore(t, storage)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "key-1"))
	require.NoError(t, store.Add(ctx, "key-2"))

	keys, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"key-1", "key-2"}, keys)

	ok, err := store.Contains("key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Remove(ctx, "key-1"))
	keys, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"key-2"}, keys)

	ok, err = store.Contains("key-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTrustStore_AddIdempotent(t *testing.T) {
	storage := &memoryStorage{}
	store := newInitializedStore(t, storage)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "key-1"))
	writesAfterFirst := storage.writes

	require.NoError(t, store.Add(ctx, "key-1"))

	keys, err := store.List()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	// A duplicate add leaves storage untouched.
	assert.Equal(t, writesAfterFirst, storage.writes)
}

func TestTrustStore_RemoveAbsentIsNoop(t *testing.T) {
	store := newInitializedStore(t, &memoryStorage{})

	assert.NoError(t, store.Remove(context.Background(), "never-added"))
}

func TestTrustStore_AddEmptyKey(t *testing.T) {
	store := newInitializedStore(t, &memoryStorage{})

	assert.Error(t, store.Add(context.Background(), ""))
}

func TestTrustStore_PersistFailureKeepsState(t *testing.T) {
	storage := &memoryStorage{}
	store := newInitializedStore(t, storage)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "key-1"))

	storage.writeErr = errors.New("disk full")
	err := store.Add(ctx, "key-2")
	require.Error(t, err)

	// The failed mutation must not be visible in memory.
	keys, lerr := store.List()
	require.NoError(t, lerr)
	assert.Equal(t, []string{"key-1"}, keys)

	err = store.Remove(ctx, "key-1")
	require.Error(t, err)
	ok, cerr := store.Contains("key-1")
	require.NoError(t, cerr)
	assert.True(t, ok)
}

func TestTrustStore_DeduplicatesPersistedKeys(t *testing.T) {
	storage := &memoryStorage{keys: []string{"a", "b", "a", "", "c", "b"}}
	store := newInitializedStore(t, storage)

	keys, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestTrustStore_InitializeFailure(t *testing.T) {
	storage := &memoryStorage{readErr: errors.New("corrupt")}
	store := New(storage)

	err := store.Initialize(context.Background())
	require.Error(t, err)

	// The store stays uninitialized after a failed load.
	_, err = store.List()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestTrustStore_ConcurrentMutations(t *testing.T) {
	storage := &memoryStorage{}
	store := newInitializedStore(t, storage)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%8))
			_ = store.Add(ctx, key)
			_, _ = store.List()
		}(i)
	}
	wg.Wait()

	keys, err := store.List()
	require.NoError(t, err)
	assert.Len(t, keys, 8)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trust", "trusted_keys.yaml")
	storage := NewFileStorage(path)
	ctx := context.Background()

	// Missing file reads as empty, not as an error.
	keys, err := storage.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, storage.WriteAll(ctx, []string{"k1", "k2"}))
	keys, err = storage.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keys)
}

func TestFileStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trusted_keys.yaml")
	ctx := context.Background()

	store := New(NewFileStorage(path))
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Add(ctx, "persisted-key"))

	// A fresh store over the same file sees the mutation.
	reopened := New(NewFileStorage(path))
	require.NoError(t, reopened.Initialize(ctx))
	keys, err := reopened.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"persisted-key"}, keys)
}
