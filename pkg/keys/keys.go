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

// Package keys generates and encodes Ed25519 key pairs for manifest
// signing and verification.
//
// Keys are exchanged as self-describing strings rather than raw bytes:
//
//	ed25519.pub.<base64url of 32-byte public key>
//	ed25519.priv.<base64url of 64-byte private key>
//
// The prefix carries the algorithm and role, so a private key can never be
// mistaken for a public one and future algorithms can coexist with Ed25519
// material already in circulation.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	publicKeyPrefix  = "ed25519.pub."
	privateKeyPrefix = "ed25519.priv."
)

// Errors
var (
	ErrInvalidKeyFormat = errors.New("keys: invalid key format")
	ErrWrongKeyRole     = errors.New("keys: key has the wrong role for this operation")
)

// KeyPair holds a textual Ed25519 key pair. The private key is never
// persisted by this library; keeping it safe is the caller's concern.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"-"`
}

// GenerateKeyPair produces a fresh Ed25519 key pair from cryptographically
// secure randomness. Every call yields a distinct pair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate Ed25519 key pair: %w", err)
	}
	return &KeyPair{
		PublicKey:  EncodePublicKey(pub),
		PrivateKey: EncodePrivateKey(priv),
	}, nil
}

// EncodePublicKey encodes raw Ed25519 public key material into its
// textual form.
func EncodePublicKey(pub ed25519.PublicKey) string {
	return publicKeyPrefix + base64.RawURLEncoding.EncodeToString(pub)
}

// EncodePrivateKey encodes raw Ed25519 private key material into its
// textual form.
func EncodePrivateKey(priv ed25519.PrivateKey) string {
	return privateKeyPrefix + base64.RawURLEncoding.EncodeToString(priv)
}

// DecodePublicKey parses a textual public key back into Ed25519 material.
func DecodePublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := decode(encoded, publicKeyPrefix, privateKeyPrefix)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidKeyFormat, ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// DecodePrivateKey parses a textual private key back into Ed25519 material.
func DecodePrivateKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := decode(encoded, privateKeyPrefix, publicKeyPrefix)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidKeyFormat, ed25519.PrivateKeySize, len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}

func decode(encoded, wantPrefix, otherPrefix string) ([]byte, error) {
	if strings.HasPrefix(encoded, otherPrefix) {
		return nil, ErrWrongKeyRole
	}
	if !strings.HasPrefix(encoded, wantPrefix) {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrInvalidKeyFormat, wantPrefix)
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(encoded, wantPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	return raw, nil
}

// Sign signs a message with a textual private key and returns the 64-byte
// Ed25519 signature.
func Sign(privateKey string, message []byte) ([]byte, error) {
	priv, err := DecodePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(priv, message), nil
}

// VerifySignature checks an Ed25519 signature against a message and a
// textual public key. Any malformed input verifies as false.
func VerifySignature(publicKey string, message, signature []byte) bool {
	pub, err := DecodePublicKey(publicKey)
	if err != nil {
		return false
	}
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, message, signature)
}
