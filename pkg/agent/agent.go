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

package agent

import (
	"fmt"
)

// Mode describes how an agent executes.
type Mode string

const (
	// ModePrimary marks an agent that drives a session directly.
	ModePrimary Mode = "primary"

	// ModeSubagent marks an agent that is delegated to by another agent.
	ModeSubagent Mode = "subagent"
)

// IsValid reports whether the mode is one of the known execution modes.
func (m Mode) IsValid() bool {
	return m == ModePrimary || m == ModeSubagent
}

// PermissionRule is a single grant rule in an agent definition.
// Rule order is semantically significant: earlier rules take precedence.
type PermissionRule struct {
	// Type identifies the capability being granted, e.g. "tool" or "path"
	Type string `json:"type" yaml:"type"`

	// Pattern is the glob-style pattern the grant applies to
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Definition is a declarative description of an agent: its identity, prompt,
// execution mode, options, and permission grants. Definitions are the subject
// of trust verification; the verifier only ever reads them.
type Definition struct {
	// Name uniquely identifies the agent
	Name string `json:"name" yaml:"name"`

	// Prompt is the agent's system prompt
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`

	// Description explains what the agent is for
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Mode is the agent's execution mode
	Mode Mode `json:"mode" yaml:"mode"`

	// Options holds arbitrary scalar or nested configuration values
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`

	// Permissions is the ordered sequence of grant rules
	Permissions []PermissionRule `json:"permission,omitempty" yaml:"permission,omitempty"`
}

// Validate performs structural validation on the definition.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return ErrInvalidDefinition{"name is required"}
	}
	if !d.Mode.IsValid() {
		return ErrInvalidDefinition{fmt.Sprintf("unknown mode %q (expected %q or %q)", d.Mode, ModePrimary, ModeSubagent)}
	}
	for i, rule := range d.Permissions {
		if rule.Type == "" {
			return ErrInvalidDefinition{fmt.Sprintf("permission rule %d: type is required", i)}
		}
	}
	return nil
}

// ErrInvalidDefinition is returned when an agent definition is structurally invalid
type ErrInvalidDefinition struct {
	Message string
}

func (e ErrInvalidDefinition) Error() string {
	return "invalid agent definition: " + e.Message
}
