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

	"github.com/zero-x-project/agent-trust-go/pkg/agent"
)

// SelfAttestPolicy decides when a manifest signed by a key outside the
// trust store counts as self-signed rather than untrusted. The boundary
// is deliberately configurable: deployments differ on whether an
// unvouched-for signer deserves reduced trust or none.
type SelfAttestPolicy int

const (
	// SelfAttestManifestFlag honors the manifest's selfAttested flag:
	// a valid signature from an unknown signer is self-signed only when
	// the manifest explicitly declares itself self-attested.
	SelfAttestManifestFlag SelfAttestPolicy = iota

	// SelfAttestNever classifies every valid signature from an unknown
	// signer as untrusted, regardless of the manifest flag.
	SelfAttestNever
)

// Verifier classifies agent definitions into trust levels and manages
// the trusted key set.
type Verifier interface {
	// Initialize prepares the verifier for use. Idempotent; must
	// complete before any other method is called.
	Initialize(ctx context.Context) error

	// Verify classifies one agent definition. Trust outcomes (missing
	// manifest, bad signature, unknown signer) are results, never
	// errors; only canonicalization failures, missing initialization,
	// and context cancellation surface as errors.
	Verify(ctx context.Context, def *agent.Definition) (*VerificationResult, error)

	// VerifyAll classifies each definition independently and returns a
	// result per agent name. Duplicate names resolve last-one-wins.
	VerifyAll(ctx context.Context, defs []*agent.Definition) (map[string]*VerificationResult, error)

	// AddTrustedKey adds a signer key to the trust store. Idempotent.
	AddTrustedKey(ctx context.Context, key string) error

	// RemoveTrustedKey removes a signer key from the trust store.
	// Removing an absent key is a no-op.
	RemoveTrustedKey(ctx context.Context, key string) error

	// TrustedKeys returns the current trusted key set.
	TrustedKeys() ([]string, error)
}
