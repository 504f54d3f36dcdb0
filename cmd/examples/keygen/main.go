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

package main

import (
	"fmt"
	"log"

	"github.com/zero-x-project/agent-trust-go/pkg/keys"
)

// This example demonstrates generating an Ed25519 signing key pair
func main() {
	fmt.Println("=== Key Pair Generation Example ===")
	fmt.Println()

	keyPair, err := keys.GenerateKeyPair()
	if err != nil {
		log.Fatalf("Key generation failed: %v", err)
	}

	fmt.Println("Generated a fresh Ed25519 key pair:")
	fmt.Printf("  Public key:  %s\n", keyPair.PublicKey)
	fmt.Printf("  Private key: %s\n", keyPair.PrivateKey)
	fmt.Println()
	fmt.Println("Share the public key; it is what gets added to a trust store.")
	fmt.Println("Keep the private key secret; it signs agent manifests and is")
	fmt.Println("never persisted by this library.")
}
