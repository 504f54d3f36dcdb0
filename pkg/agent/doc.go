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

// Package agent defines the declarative agent definition model.
//
// A Definition describes an agent's identity, prompt, execution mode,
// options, and ordered permission grants. It is the unit of trust
// verification: the verifier hashes a definition's semantic content and
// checks it against a signed manifest.
//
// # Building a Definition
//
//	def := &agent.Definition{
//	    Name:   "code-reviewer",
//	    Prompt: "Review diffs for correctness.",
//	    Mode:   agent.ModeSubagent,
//	    Options: map[string]any{
//	        "maxTurns": 5,
//	    },
//	    Permissions: []agent.PermissionRule{
//	        {Type: "tool", Pattern: "Read(*)"},
//	    },
//	}
//	if err := def.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Loading from Disk
//
// Definitions can be authored as JSON or YAML files. LoadDefinition
// validates the document against an embedded JSON Schema before decoding,
// so malformed files are rejected with a descriptive error rather than
// silently producing a partially filled Definition:
//
//	def, err := agent.LoadDefinition("agents/code-reviewer.yaml")
//
// LoadDir loads a whole directory, skipping invalid files with a warning.
//
// # Hashing Semantics
//
// Only the known field set (name, prompt, description, mode, options,
// permission) participates in canonical hashing; the schema rejects
// unknown top-level fields so additional properties can never cause
// silent hash drift between versions. See the canonical package.
package agent
