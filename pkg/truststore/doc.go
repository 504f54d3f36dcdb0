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

// Package truststore maintains the persisted set of trusted signer keys.
//
// Membership in this set is the sole basis for the "verified" trust
// level: a manifest signed by a listed key is fully trusted, anything
// else is at best self-signed. The set is deduplicated, preserves
// insertion order, and is written through to storage before any mutation
// returns.
//
// # Usage
//
//	storage := truststore.NewFileStorage("/var/lib/agents/trusted_keys.yaml")
//	store := truststore.New(storage)
//	if err := store.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	err := store.Add(ctx, keyPair.PublicKey)
//	trusted, err := store.List()
//
// Initialize is idempotent and must complete before any other method is
// used; calls before initialization return ErrNotInitialized rather than
// guessing at an empty set.
//
// # Backends
//
// Two Storage implementations ship with the package: FileStorage (a YAML
// document, replaced atomically on every write) and SQLiteStorage (a
// single-table database written transactionally). Both read back the set
// in insertion order. Custom backends only need ReadAll and WriteAll.
//
// # External Changes
//
// For file-backed stores, Watcher reloads the in-memory set when the
// trust file is replaced or edited outside the process:
//
//	watcher, err := truststore.NewWatcher(store, storage, nil)
//	watcher.Start(ctx)
//	defer watcher.Stop()
package truststore
