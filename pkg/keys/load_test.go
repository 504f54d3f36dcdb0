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

package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrivateKey_RawSeed(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	_, err := rand.Read(seed)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.seed")
	require.NoError(t, os.WriteFile(path, seed, 0o600))

	encoded, err := LoadPrivateKey(path)
	require.NoError(t, err)

	priv, err := DecodePrivateKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, ed25519.NewKeyFromSeed(seed), priv)
}

func TestLoadPrivateKey_Raw64Bytes(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.raw")
	require.NoError(t, os.WriteFile(path, priv, 0o600))

	encoded, err := LoadPrivateKey(path)
	require.NoError(t, err)

	decoded, err := DecodePrivateKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, priv, decoded)
}

func TestLoadPrivateKey_TextualEncoding(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.txt")
	require.NoError(t, os.WriteFile(path, []byte(kp.PrivateKey+"\n"), 0o600))

	encoded, err := LoadPrivateKey(path)
	require.NoError(t, err)
	assert.Equal(t, kp.PrivateKey, encoded)
}

func TestLoadPrivateKey_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.bad")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a key"), 0o600))

	_, err := LoadPrivateKey(path)
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)
}

func TestLoadPrivateKey_MissingFile(t *testing.T) {
	_, err := LoadPrivateKey(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
