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
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/zero-x-project/agent-trust-go/pkg/agent"
	"github.com/zero-x-project/agent-trust-go/pkg/config"
	"github.com/zero-x-project/agent-trust-go/pkg/keys"
	"github.com/zero-x-project/agent-trust-go/pkg/manifest"
)

// This example verifies a batch of agent definitions through an engine
// built from configuration, showing all four trust outcomes at once.
func main() {
	ctx := context.Background()

	workDir, err := os.MkdirTemp("", "agent-trust-batch")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(workDir)

	cfg := config.Default()
	cfg.Manifests.Dir = filepath.Join(workDir, "manifests")
	cfg.TrustStore.Path = filepath.Join(workDir, "trusted_keys.yaml")

	engine, err := config.NewEngine(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	manifests := manifest.NewFileStore(cfg.Manifests.Dir)

	trustedKey, err := keys.GenerateKeyPair()
	if err != nil {
		log.Fatal(err)
	}
	communityKey, err := keys.GenerateKeyPair()
	if err != nil {
		log.Fatal(err)
	}

	newDef := func(name string) *agent.Definition {
		return &agent.Definition{Name: name, Mode: agent.ModeSubagent, Prompt: "Prompt for " + name}
	}

	// A signer the operator trusts.
	verified := newDef("deploy-bot")
	m, err := manifest.Sign(verified, trustedKey)
	if err != nil {
		log.Fatal(err)
	}
	if err := manifests.Save(ctx, m); err != nil {
		log.Fatal(err)
	}
	if err := engine.Verifier.AddTrustedKey(ctx, trustedKey.PublicKey); err != nil {
		log.Fatal(err)
	}

	// A self-attested community signer.
	selfSigned := newDef("community-helper")
	m, err = manifest.SignWithOptions(selfSigned, communityKey, &manifest.SignOptions{SelfAttested: true})
	if err != nil {
		log.Fatal(err)
	}
	if err := manifests.Save(ctx, m); err != nil {
		log.Fatal(err)
	}

	// A signed definition that was modified after signing.
	tampered := newDef("tampered-agent")
	m, err = manifest.Sign(tampered, trustedKey)
	if err != nil {
		log.Fatal(err)
	}
	if err := manifests.Save(ctx, m); err != nil {
		log.Fatal(err)
	}
	tampered.Prompt = "A prompt the signer never saw."

	// An agent nobody signed.
	unsigned := newDef("scratch-agent")

	results, err := engine.Verifier.VerifyAll(ctx, []*agent.Definition{verified, selfSigned, tampered, unsigned})
	if err != nil {
		log.Fatal(err)
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("=== Batch Verification Results ===")
	fmt.Println()
	for _, name := range names {
		r := results[name]
		fmt.Printf("%-18s trust=%-11s valid=%-5t %s\n", name, r.Trust, r.Valid, r.Message)
	}
}
