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

package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-x-project/agent-trust-go/pkg/agent"
	"github.com/zero-x-project/agent-trust-go/pkg/config"
	"github.com/zero-x-project/agent-trust-go/pkg/keys"
	"github.com/zero-x-project/agent-trust-go/pkg/manifest"
	"github.com/zero-x-project/agent-trust-go/pkg/verifier"
)

// TestE2E_FullTrustLifecycle exercises the complete flow against real
// file storage: author definitions, sign manifests, manage the trust
// store, and classify every trust outcome.
func TestE2E_FullTrustLifecycle(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Manifests.Dir = filepath.Join(dir, "manifests")
	cfg.TrustStore.Path = filepath.Join(dir, "trusted_keys.yaml")

	engine, err := config.NewEngine(ctx, cfg)
	require.NoError(t, err)
	defer engine.Close()

	manifests := manifest.NewFileStore(cfg.Manifests.Dir)

	operatorKey, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	communityKey, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	newDef := func(name, prompt string) *agent.Definition {
		return &agent.Definition{
			Name:   name,
			Prompt: prompt,
			Mode:   agent.ModeSubagent,
			Options: map[string]any{
				"maxTurns": 5,
			},
			Permissions: []agent.PermissionRule{
				{Type: "tool", Pattern: "Read(*)"},
			},
		}
	}

	// Operator-signed agent.
	deployBot := newDef("deploy-bot", "Deploy services safely.")
	m, err := manifest.Sign(deployBot, operatorKey)
	require.NoError(t, err)
	require.NoError(t, manifests.Save(ctx, m))

	// Community agent signing itself.
	helper := newDef("community-helper", "Answer questions.")
	m, err = manifest.SignWithOptions(helper, communityKey, &manifest.SignOptions{SelfAttested: true})
	require.NoError(t, err)
	require.NoError(t, manifests.Save(ctx, m))

	// Operator-signed agent modified after signing.
	tampered := newDef("tampered-agent", "Original prompt.")
	m, err = manifest.Sign(tampered, operatorKey)
	require.NoError(t, err)
	require.NoError(t, manifests.Save(ctx, m))
	tampered.Prompt = "Prompt the signer never saw."

	// Agent nobody signed.
	unsigned := newDef("agent-x", "Unsigned.")

	require.NoError(t, engine.Verifier.AddTrustedKey(ctx, operatorKey.PublicKey))

	results, err := engine.Verifier.VerifyAll(ctx, []*agent.Definition{deployBot, helper, tampered, unsigned})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, verifier.TrustVerified, results["deploy-bot"].Trust)
	assert.True(t, results["deploy-bot"].Valid)

	assert.Equal(t, verifier.TrustSelfSigned, results["community-helper"].Trust)
	assert.True(t, results["community-helper"].Valid)

	assert.Equal(t, verifier.TrustUntrusted, results["tampered-agent"].Trust)
	assert.False(t, results["tampered-agent"].Valid)

	assert.Equal(t, verifier.TrustUnverified, results["agent-x"].Trust)
	assert.False(t, results["agent-x"].Valid)
	assert.Contains(t, results["agent-x"].Message, "agent-x")
	assert.Contains(t, results["agent-x"].Message, "No manifest found")

	// Every message names its own agent.
	for name, result := range results {
		assert.Contains(t, result.Message, name)
	}
}

// TestE2E_TrustSurvivesRestart verifies that trust decisions persist
// across engine restarts over the same storage.
func TestE2E_TrustSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Manifests.Dir = filepath.Join(dir, "manifests")
	cfg.TrustStore.Path = filepath.Join(dir, "trusted_keys.yaml")

	authorKey, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	def := &agent.Definition{Name: "persistent-agent", Mode: agent.ModePrimary}

	m, err := manifest.Sign(def, authorKey)
	require.NoError(t, err)
	require.NoError(t, manifest.NewFileStore(cfg.Manifests.Dir).Save(ctx, m))

	// First engine: trust the author.
	engine, err := config.NewEngine(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, engine.Verifier.AddTrustedKey(ctx, authorKey.PublicKey))
	require.NoError(t, engine.Close())

	// Second engine over the same storage still trusts the author.
	restarted, err := config.NewEngine(ctx, cfg)
	require.NoError(t, err)
	defer restarted.Close()

	result, err := restarted.Verifier.Verify(ctx, def)
	require.NoError(t, err)
	assert.Equal(t, verifier.TrustVerified, result.Trust)

	trusted, err := restarted.Verifier.TrustedKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{authorKey.PublicKey}, trusted)
}

// TestE2E_DefinitionFilesRoundTrip loads definitions from authored
// YAML/JSON files and verifies them.
func TestE2E_DefinitionFilesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	defsDir := filepath.Join(dir, "agents")
	require.NoError(t, os.MkdirAll(defsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(defsDir, "reviewer.yaml"), []byte(`
name: reviewer
prompt: Review diffs.
mode: subagent
permission:
  - type: tool
    pattern: "Read(*)"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(defsDir, "helper.json"),
		[]byte(`{"name": "helper", "mode": "primary"}`), 0o644))

	defs, err := agent.LoadDir(defsDir, nil)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	cfg := config.Default()
	cfg.Manifests.Dir = filepath.Join(dir, "manifests")
	cfg.TrustStore.Path = filepath.Join(dir, "trusted_keys.yaml")

	engine, err := config.NewEngine(ctx, cfg)
	require.NoError(t, err)
	defer engine.Close()

	authorKey, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	manifests := manifest.NewFileStore(cfg.Manifests.Dir)
	for _, def := range defs {
		m, err := manifest.Sign(def, authorKey)
		require.NoError(t, err)
		require.NoError(t, manifests.Save(ctx, m))
	}
	require.NoError(t, engine.Verifier.AddTrustedKey(ctx, authorKey.PublicKey))

	results, err := engine.Verifier.VerifyAll(ctx, defs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for name, result := range results {
		assert.Equal(t, verifier.TrustVerified, result.Trust, "agent %s", name)
	}
}
