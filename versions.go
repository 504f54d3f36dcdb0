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

// Package agenttrust provides version information for agent-trust-go.
package agenttrust

const (
	// Version is the current version of agent-trust-go
	Version = "1.0.0"

	// ManifestFormatVersion is the on-disk manifest format this library reads and writes
	ManifestFormatVersion = "1"

	// TrustStoreFormatVersion is the persisted trust-store format this library reads and writes
	TrustStoreFormatVersion = "1"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	AgentTrustVersion       string
	ManifestFormatVersion   string
	TrustStoreFormatVersion string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		AgentTrustVersion:       Version,
		ManifestFormatVersion:   ManifestFormatVersion,
		TrustStoreFormatVersion: TrustStoreFormatVersion,
	}
}
