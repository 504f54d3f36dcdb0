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

// Package verifier classifies agent definitions into trust levels.
//
// The verifier composes the canonical hasher, a manifest store, and a
// trust store into a single decision per definition:
//
//  1. Compute the definition's canonical SHA-256 hash.
//  2. Load the agent's manifest. No manifest: unverified.
//  3. Check the manifest's Ed25519 signature over the hash with the
//     embedded signer key. Invalid: untrusted.
//  4. Consult the trust store. Signer listed: verified. Signer unknown
//     but self-attested: self_signed. Otherwise: untrusted.
//
// # Usage
//
//	manifests := manifest.NewFileStore("/var/lib/agents/manifests")
//	trust := truststore.New(truststore.NewFileStorage("/var/lib/agents/trusted_keys.yaml"))
//
//	v := verifier.NewDefaultVerifier(manifests, trust)
//	if err := v.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := v.Verify(ctx, def)
//	if err != nil {
//	    log.Fatal(err) // definition could not be hashed
//	}
//	if result.Trust == verifier.TrustVerified {
//	    // run with full privileges
//	}
//
// # Outcomes Are Results, Not Errors
//
// A missing manifest, a bad signature, and an unknown signer are
// expected states of the world, so Verify reports them in the
// VerificationResult and returns a nil error. The error return is
// reserved for canonicalization failures, calling Verify before
// Initialize, and context cancellation.
//
// # Fail Closed
//
// Storage faults always map to the most conservative outcome available:
// an unreadable manifest behaves like a missing one, so a storage fault
// can never upgrade trust. Each manifest read is bounded by a timeout
// (WithStorageTimeout) so verification cannot hang on slow I/O. Trust
// lookups read the in-memory snapshot loaded at Initialize or Reload;
// trust-store storage faults surface there, never mid-verify.
//
// # Concurrency
//
// Once Initialize has completed the verifier is safe for concurrent use.
// VerifyAll verifies a batch concurrently; results are independent
// because verification only reads shared state.
package verifier
