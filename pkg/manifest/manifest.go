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

// Package manifest defines signed agent manifests and their storage.
//
// A manifest attests to the integrity of one agent definition: it carries
// an Ed25519 signature over the definition's canonical hash together with
// the signer's public key. Manifests are created when an author signs a
// definition and are read-only to the verification path.
package manifest

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zero-x-project/agent-trust-go/pkg/agent"
	"github.com/zero-x-project/agent-trust-go/pkg/canonical"
	"github.com/zero-x-project/agent-trust-go/pkg/keys"
)

// Manifest is the signed per-agent trust record.
type Manifest struct {
	// ID uniquely identifies this manifest
	ID string `json:"id"`

	// AgentName names the agent definition this manifest attests to
	AgentName string `json:"agentName"`

	// Signature is the base64url-encoded Ed25519 signature over the
	// definition's canonical hash
	Signature string `json:"signature"`

	// SignerPublicKey is the textual public key of the signer
	SignerPublicKey string `json:"signerPublicKey"`

	// SelfAttested marks a manifest whose signer vouches only for itself
	SelfAttested bool `json:"selfAttested,omitempty"`

	// CreatedAt is when the manifest was signed (Unix timestamp)
	CreatedAt int64 `json:"createdAt"`
}

// Validate performs basic validation on the manifest.
func (m *Manifest) Validate() error {
	if m.AgentName == "" {
		return fmt.Errorf("manifest: agentName is required")
	}
	if m.Signature == "" {
		return fmt.Errorf("manifest: signature is required")
	}
	if m.SignerPublicKey == "" {
		return fmt.Errorf("manifest: signerPublicKey is required")
	}
	return nil
}

// DecodeSignature returns the raw Ed25519 signature bytes.
func (m *Manifest) DecodeSignature() ([]byte, error) {
	sig, err := base64.RawURLEncoding.DecodeString(m.Signature)
	if err != nil {
		return nil, fmt.Errorf("manifest: decode signature: %w", err)
	}
	return sig, nil
}

// SignOptions customizes manifest creation.
type SignOptions struct {
	// SelfAttested marks the manifest as vouched for only by its own
	// embedded signer key
	SelfAttested bool
}

// Sign creates a manifest for an agent definition by signing its canonical
// hash with the given key pair.
func Sign(def *agent.Definition, keyPair *keys.KeyPair) (*Manifest, error) {
	return SignWithOptions(def, keyPair, nil)
}

// SignWithOptions creates a manifest with explicit signing options.
func SignWithOptions(def *agent.Definition, keyPair *keys.KeyPair, opts *SignOptions) (*Manifest, error) {
	if def == nil {
		return nil, fmt.Errorf("manifest: definition cannot be nil")
	}
	if keyPair == nil {
		return nil, fmt.Errorf("manifest: keyPair cannot be nil")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	hash, err := canonical.HashDefinition(def)
	if err != nil {
		return nil, err
	}

	sig, err := keys.Sign(keyPair.PrivateKey, hash[:])
	if err != nil {
		return nil, fmt.Errorf("manifest: sign definition hash: %w", err)
	}

	m := &Manifest{
		ID:              uuid.NewString(),
		AgentName:       def.Name,
		Signature:       base64.RawURLEncoding.EncodeToString(sig),
		SignerPublicKey: keyPair.PublicKey,
		CreatedAt:       time.Now().Unix(),
	}
	if opts != nil {
		m.SelfAttested = opts.SelfAttested
	}
	return m, nil
}
