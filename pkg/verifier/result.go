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
	"time"
)

// VerificationResult is the outcome of verifying one agent definition.
// Results are produced fresh on every call and never cached.
type VerificationResult struct {
	// Trust is the classification the definition earned
	Trust TrustLevel `json:"trust"`

	// Valid reports whether the definition may run with the privileges
	// its trust level grants
	Valid bool `json:"valid"`

	// Message is a human-readable explanation naming the agent and the
	// concrete reason for the trust level
	Message string `json:"message"`

	// VerifiedAt is when this result was finalized
	VerifiedAt time.Time `json:"verifiedAt"`
}

// newResult stamps VerifiedAt at finalization time.
func newResult(trust TrustLevel, valid bool, message string) *VerificationResult {
	return &VerificationResult{
		Trust:      trust,
		Valid:      valid,
		Message:    message,
		VerifiedAt: time.Now(),
	}
}
