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
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a file-backed trust store when its trust file is
// modified outside the process, e.g. by an operator editing the YAML by
// hand or a provisioning tool replacing it.
type Watcher struct {
	store     *TrustStore
	path      string
	fsWatcher *fsnotify.Watcher
	logger    *slog.Logger

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher that reloads store whenever the trust file
// backing storage changes.
func NewWatcher(store *TrustStore, storage *FileStorage, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("truststore: create watcher: %w", err)
	}

	// Watch the directory rather than the file: atomic replace swaps the
	// inode, which would silently detach a file-level watch.
	if err := fsWatcher.Add(filepath.Dir(storage.Path())); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("truststore: watch %s: %w", storage.Path(), err)
	}

	return &Watcher{
		store:     store,
		path:      storage.Path(),
		fsWatcher: fsWatcher,
		logger:    logger,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if err := w.store.Reload(ctx); err != nil {
					w.logger.Warn("trust file changed but reload failed", "path", w.path, "error", err)
					continue
				}
				w.logger.Info("trust store reloaded after external change", "path", w.path)
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("trust file watch error", "error", err)
			}
		}
	}()
}

// Stop halts watching and releases the underlying file watcher.
// Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})
	return err
}
