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
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// trustFile is the on-disk YAML document for a file-backed trust store.
type trustFile struct {
	TrustedKeys []string `yaml:"trusted_keys"`
}

// FileStorage persists the trusted key set as a YAML file.
type FileStorage struct {
	path string
}

// NewFileStorage creates file-backed storage at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the location of the trust file.
func (s *FileStorage) Path() string {
	return s.path
}

// ReadAll loads the persisted key set. A missing file reads as an empty
// set: a store that has never been written holds no trusted keys.
func (s *FileStorage) ReadAll(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("truststore: context error: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("truststore: read %s: %w", s.path, err)
	}

	var doc trustFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("truststore: parse %s: %w", s.path, err)
	}
	return doc.TrustedKeys, nil
}

// WriteAll atomically replaces the persisted key set.
func (s *FileStorage) WriteAll(ctx context.Context, keys []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("truststore: context error: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("truststore: create storage directory: %w", err)
	}

	data, err := yaml.Marshal(trustFile{TrustedKeys: keys})
	if err != nil {
		return fmt.Errorf("truststore: encode trusted keys: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot corrupt the set.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("truststore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("truststore: replace %s: %w", s.path, err)
	}
	return nil
}
