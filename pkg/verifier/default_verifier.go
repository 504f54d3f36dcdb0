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

package verifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zero-x-project/agent-trust-go/pkg/agent"
	"github.com/zero-x-project/agent-trust-go/pkg/canonical"
	"github.com/zero-x-project/agent-trust-go/pkg/keys"
	"github.com/zero-x-project/agent-trust-go/pkg/manifest"
	"github.com/zero-x-project/agent-trust-go/pkg/truststore"
)

// DefaultStorageTimeout bounds each storage read during verification.
// A read that exceeds it is treated like missing data, never as trust.
const DefaultStorageTimeout = 5 * time.Second

// DefaultVerifier implements Verifier by composing the canonical hasher,
// a manifest store, and a trust store.
type DefaultVerifier struct {
	manifests manifest.Store
	trust     *truststore.TrustStore
	policy    SelfAttestPolicy
	timeout   time.Duration
	logger    *slog.Logger
}

// VerifierOption configures a DefaultVerifier.
type VerifierOption func(*DefaultVerifier)

// WithSelfAttestPolicy sets the self-attestation policy.
func WithSelfAttestPolicy(policy SelfAttestPolicy) VerifierOption {
	return func(v *DefaultVerifier) {
		v.policy = policy
	}
}

// WithStorageTimeout bounds each storage read during verification.
func WithStorageTimeout(timeout time.Duration) VerifierOption {
	return func(v *DefaultVerifier) {
		if timeout > 0 {
			v.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) VerifierOption {
	return func(v *DefaultVerifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewDefaultVerifier creates a verifier over the given stores.
func NewDefaultVerifier(manifests manifest.Store, trust *truststore.TrustStore, opts ...VerifierOption) *DefaultVerifier {
	v := &DefaultVerifier{
		manifests: manifests,
		trust:     trust,
		policy:    SelfAttestManifestFlag,
		timeout:   DefaultStorageTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Initialize loads the trust store. Idempotent.
func (v *DefaultVerifier) Initialize(ctx context.Context) error {
	return v.trust.Initialize(ctx)
}

// Verify classifies one agent definition into a trust level.
func (v *DefaultVerifier) Verify(ctx context.Context, def *agent.Definition) (*VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verifier: context error: %w", err)
	}
	if def == nil {
		return nil, fmt.Errorf("verifier: definition cannot be nil")
	}

	hash, err := canonical.HashDefinition(def)
	if err != nil {
		return nil, err
	}

	m, err := v.loadManifest(ctx, def.Name)
	if err != nil {
		if !errors.Is(err, manifest.ErrNotFound) {
			// Fail closed: an unreadable manifest confers no trust, but
			// the fault is still visible to operators.
			v.logger.Warn("manifest read failed, treating agent as unverified",
				"agent", def.Name, "error", err)
		}
		return newResult(TrustUnverified, false,
			fmt.Sprintf("No manifest found for agent %q; definition is unverified", def.Name)), nil
	}

	sig, err := m.DecodeSignature()
	if err != nil || !keys.VerifySignature(m.SignerPublicKey, hash[:], sig) {
		return newResult(TrustUntrusted, false,
			fmt.Sprintf("Signature verification failed for agent %q: manifest signature does not match the definition", def.Name)), nil
	}

	// Trust reads are served from the snapshot loaded at Initialize or
	// Reload, so the only possible fault here is use before Initialize.
	// Storage faults surface at Initialize/Reload, never mid-verify.
	trusted, err := v.trust.Contains(m.SignerPublicKey)
	if err != nil {
		return nil, err
	}

	switch {
	case trusted:
		return newResult(TrustVerified, true,
			fmt.Sprintf("Agent %q verified: definition signed by a trusted key", def.Name)), nil
	case m.SelfAttested && v.policy == SelfAttestManifestFlag:
		return newResult(TrustSelfSigned, true,
			fmt.Sprintf("Agent %q is self-signed: signer key is not in the trust store", def.Name)), nil
	default:
		return newResult(TrustUntrusted, false,
			fmt.Sprintf("Agent %q is signed by an unknown key that is not trusted", def.Name)), nil
	}
}

func (v *DefaultVerifier) loadManifest(ctx context.Context, agentName string) (*manifest.Manifest, error) {
	loadCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	return v.manifests.Load(loadCtx, agentName)
}

// VerifyAll verifies each definition independently and concurrently.
// Duplicate agent names resolve last-one-wins before verification, so
// the returned mapping has exactly one entry per distinct name.
func (v *DefaultVerifier) VerifyAll(ctx context.Context, defs []*agent.Definition) (map[string]*VerificationResult, error) {
	unique := make([]*agent.Definition, 0, len(defs))
	seen := make(map[string]int, len(defs))
	for _, def := range defs {
		if def == nil {
			continue
		}
		if i, dup := seen[def.Name]; dup {
			unique[i] = def
			continue
		}
		seen[def.Name] = len(unique)
		unique = append(unique, def)
	}

	results := make(map[string]*VerificationResult, len(unique))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, def := range unique {
		def := def
		g.Go(func() error {
			result, err := v.Verify(gctx, def)
			if err != nil {
				return fmt.Errorf("verify %q: %w", def.Name, err)
			}
			mu.Lock()
			results[def.Name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AddTrustedKey adds a signer key to the trust store.
func (v *DefaultVerifier) AddTrustedKey(ctx context.Context, key string) error {
	return v.trust.Add(ctx, key)
}

// RemoveTrustedKey removes a signer key from the trust store.
func (v *DefaultVerifier) RemoveTrustedKey(ctx context.Context, key string) error {
	return v.trust.Remove(ctx, key)
}

// TrustedKeys returns the current trusted key set.
func (v *DefaultVerifier) TrustedKeys() ([]string, error) {
	return v.trust.List()
}
