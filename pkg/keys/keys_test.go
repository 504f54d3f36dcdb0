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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	assert.Greater(t, len(kp.PublicKey), 32)
	assert.Greater(t, len(kp.PrivateKey), 64)
	assert.Contains(t, kp.PublicKey, "ed25519.pub.")
	assert.Contains(t, kp.PrivateKey, "ed25519.priv.")
}

func TestGenerateKeyPair_Fresh(t *testing.T) {
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)

	assert.NotEqual(t, a.PublicKey, b.PublicKey)
	assert.NotEqual(t, a.PrivateKey, b.PrivateKey)
}

func TestKeyRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	pub, err := DecodePublicKey(kp.PublicKey)
	require.NoError(t, err)
	assert.Len(t, []byte(pub), ed25519.PublicKeySize)

	priv, err := DecodePrivateKey(kp.PrivateKey)
	require.NoError(t, err)
	assert.Len(t, []byte(priv), ed25519.PrivateKeySize)

	// The decoded private key must correspond to the decoded public key.
	assert.Equal(t, []byte(pub), []byte(priv.Public().(ed25519.PublicKey)))
}

func TestDecode_Errors(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "public key with private prefix",
			run: func() error {
				_, err := DecodePublicKey(kp.PrivateKey)
				return err
			},
			wantErr: ErrWrongKeyRole,
		},
		{
			name: "private key with public prefix",
			run: func() error {
				_, err := DecodePrivateKey(kp.PublicKey)
				return err
			},
			wantErr: ErrWrongKeyRole,
		},
		{
			name: "missing prefix",
			run: func() error {
				_, err := DecodePublicKey("not-a-key")
				return err
			},
			wantErr: ErrInvalidKeyFormat,
		},
		{
			name: "bad base64",
			run: func() error {
				_, err := DecodePublicKey("ed25519.pub.!!!")
				return err
			},
			wantErr: ErrInvalidKeyFormat,
		},
		{
			name: "truncated key material",
			run: func() error {
				_, err := DecodePublicKey("ed25519.pub.AAAA")
				return err
			},
			wantErr: ErrInvalidKeyFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}
}

func TestSignAndVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	message := []byte("canonical hash bytes")
	sig, err := Sign(kp.PrivateKey, message)
	require.NoError(t, err)
	assert.Len(t, sig, ed25519.SignatureSize)

	assert.True(t, VerifySignature(kp.PublicKey, message, sig))
	assert.False(t, VerifySignature(kp.PublicKey, []byte("other message"), sig))

	// Tampered signature fails.
	sig[0] ^= 0xff
	assert.False(t, VerifySignature(kp.PublicKey, message, sig))
}

func TestVerifySignature_MalformedInputs(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	sig, err := Sign(kp.PrivateKey, []byte("msg"))
	require.NoError(t, err)

	assert.False(t, VerifySignature("garbage", []byte("msg"), sig))
	assert.False(t, VerifySignature(kp.PublicKey, []byte("msg"), sig[:10]))

	other, err := GenerateKeyPair()
	require.NoError(t, err)
	assert.False(t, VerifySignature(other.PublicKey, []byte("msg"), sig))
}
