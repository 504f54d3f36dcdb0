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

package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Errors
var (
	// ErrNotFound reports that no manifest exists for an agent. This is an
	// expected outcome, not a failure: unsigned agents have no manifest.
	ErrNotFound = errors.New("manifest: not found")

	// ErrInvalidAgentName rejects agent names that cannot safely map to a
	// storage location.
	ErrInvalidAgentName = errors.New("manifest: invalid agent name")
)

// Store reads per-agent manifests from persistent storage.
type Store interface {
	// Load returns the manifest for an agent, or ErrNotFound when the
	// agent has none.
	Load(ctx context.Context, agentName string) (*Manifest, error)
}

// FileStore keeps one JSON manifest file per agent in a directory,
// named <agentName>.manifest.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a manifest store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads and validates the manifest for agentName.
func (s *FileStore) Load(ctx context.Context, agentName string) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("manifest: context error: %w", err)
	}
	if err := validateAgentName(agentName); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(agentName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("manifest: read %q: %w", agentName, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse %q: %w", agentName, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.AgentName != agentName {
		return nil, fmt.Errorf("manifest: file for %q names agent %q", agentName, m.AgentName)
	}
	return &m, nil
}

// Save writes a manifest atomically. Used by the authoring path only;
// verification never writes.
func (s *FileStore) Save(ctx context.Context, m *Manifest) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("manifest: context error: %w", err)
	}
	if m == nil {
		return fmt.Errorf("manifest: cannot save nil manifest")
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if err := validateAgentName(m.AgentName); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("manifest: create store directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: encode %q: %w", m.AgentName, err)
	}

	// Write-then-rename so a crash never leaves a truncated manifest.
	target := s.path(m.AgentName)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("manifest: write %q: %w", m.AgentName, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("manifest: replace %q: %w", m.AgentName, err)
	}
	return nil
}

func (s *FileStore) path(agentName string) string {
	return filepath.Join(s.dir, agentName+".manifest.json")
}

// validateAgentName rejects names that would escape the store directory.
func validateAgentName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAgentName)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAgentName, name)
	}
	return nil
}
