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
	"fmt"
	"strings"
)

// TrustLevel classifies the outcome of verifying an agent definition.
// Higher ordinal values indicate stronger trust guarantees.
type TrustLevel int

const (
	// TrustUnverified indicates no manifest exists for the agent.
	TrustUnverified TrustLevel = iota

	// TrustUntrusted indicates a manifest exists but its signature failed
	// verification, or the signature is valid but the signer is unknown
	// and not self-attested.
	TrustUntrusted

	// TrustSelfSigned indicates a valid signature from a self-attested
	// key that is not in the trust store. Trusted enough to run with
	// reduced privilege, not full trust.
	TrustSelfSigned

	// TrustVerified indicates a valid signature from a key in the
	// trust store.
	TrustVerified
)

// String returns the wire name of the trust level.
func (t TrustLevel) String() string {
	switch t {
	case TrustUnverified:
		return "unverified"
	case TrustUntrusted:
		return "untrusted"
	case TrustSelfSigned:
		return "self_signed"
	case TrustVerified:
		return "verified"
	default:
		return fmt.Sprintf("TrustLevel(%d)", int(t))
	}
}

// ParseTrustLevel parses a trust level wire name. Returns an error for
// unknown values.
func ParseTrustLevel(s string) (TrustLevel, error) {
	switch strings.ToLower(s) {
	case "unverified":
		return TrustUnverified, nil
	case "untrusted":
		return TrustUntrusted, nil
	case "self_signed":
		return TrustSelfSigned, nil
	case "verified":
		return TrustVerified, nil
	default:
		return 0, fmt.Errorf("unknown trust level: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t TrustLevel) MarshalText() ([]byte, error) {
	switch t {
	case TrustUnverified, TrustUntrusted, TrustSelfSigned, TrustVerified:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal unknown trust level %d", int(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TrustLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseTrustLevel(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
