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
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trusted_keys (
    position    INTEGER PRIMARY KEY AUTOINCREMENT,
    key         TEXT NOT NULL UNIQUE
);
`

// SQLiteStorage persists the trusted key set in a SQLite database.
// Suited to deployments that already keep other state in SQLite or need
// transactional writes across many keys.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLiteStorage opens or creates the trust database at path and
// applies the schema.
func OpenSQLiteStorage(path string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("truststore: create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("truststore: open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("truststore: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// ReadAll returns the persisted keys in insertion order.
func (s *SQLiteStorage) ReadAll(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM trusted_keys ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("truststore: query trusted keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("truststore: scan trusted key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("truststore: iterate trusted keys: %w", err)
	}
	return keys, nil
}

// WriteAll replaces the persisted key set in a single transaction.
func (s *SQLiteStorage) WriteAll(ctx context.Context, keys []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("truststore: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trusted_keys`); err != nil {
		return fmt.Errorf("truststore: clear trusted keys: %w", err)
	}
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `INSERT INTO trusted_keys (key) VALUES (?)`, key); err != nil {
			return fmt.Errorf("truststore: insert trusted key: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("truststore: commit trusted keys: %w", err)
	}
	return nil
}
