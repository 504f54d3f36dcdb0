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

// Package canonical computes deterministic hashes of agent definitions.
//
// Two definitions with the same semantic content always produce the same
// hash regardless of how their options maps were populated: fields are
// serialized in a fixed order, option keys are sorted lexicographically at
// every nesting level, and permission rule order is preserved as given
// because it is semantically significant. The canonical byte form is then
// digested with SHA-256.
package canonical

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/zero-x-project/agent-trust-go/pkg/agent"
)

// Hash is the SHA-256 digest of an agent definition's canonical form.
type Hash [sha256.Size]byte

// Hex returns the digest as a lowercase hex string.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// CanonicalizationError is returned when an agent definition contains
// content that cannot be deterministically serialized, such as option
// values holding functions, channels, or cyclic references.
type CanonicalizationError struct {
	Field string
	Err   error
}

func (e *CanonicalizationError) Error() string {
	return fmt.Sprintf("cannot canonicalize field %q: %v", e.Field, e.Err)
}

func (e *CanonicalizationError) Unwrap() error {
	return e.Err
}

// Canonicalize serializes a definition to its canonical byte form.
//
// The six semantic fields are emitted in a fixed order (name, prompt,
// description, mode, options, permission) and all six are always present,
// so an absent optional field and a reordered map can never collide with
// or diverge from an equivalent definition.
func Canonicalize(def *agent.Definition) ([]byte, error) {
	if def == nil {
		return nil, &CanonicalizationError{Field: "definition", Err: fmt.Errorf("definition is nil")}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	writeStringField(&buf, "name", def.Name)
	buf.WriteByte(',')
	writeStringField(&buf, "prompt", def.Prompt)
	buf.WriteByte(',')
	writeStringField(&buf, "description", def.Description)
	buf.WriteByte(',')
	writeStringField(&buf, "mode", string(def.Mode))
	buf.WriteByte(',')

	opts, err := marshalOptions(def.Options)
	if err != nil {
		return nil, &CanonicalizationError{Field: "options", Err: err}
	}
	buf.WriteString(`"options":`)
	buf.Write(opts)
	buf.WriteByte(',')

	perms, err := marshalPermissions(def.Permissions)
	if err != nil {
		return nil, &CanonicalizationError{Field: "permission", Err: err}
	}
	buf.WriteString(`"permission":`)
	buf.Write(perms)

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HashDefinition computes the canonical SHA-256 hash of a definition.
func HashDefinition(def *agent.Definition) (Hash, error) {
	data, err := Canonicalize(def)
	if err != nil {
		return Hash{}, err
	}
	return sha256.Sum256(data), nil
}

func writeStringField(buf *bytes.Buffer, name, value string) {
	buf.WriteByte('"')
	buf.WriteString(name)
	buf.WriteString(`":`)
	// Marshaling a string cannot fail.
	encoded, _ := json.Marshal(value)
	buf.Write(encoded)
}

// marshalOptions serializes the options map with keys sorted
// lexicographically at every nesting level.
func marshalOptions(options map[string]any) ([]byte, error) {
	if options == nil {
		return []byte("{}"), nil
	}
	sorted, err := sortKeys(options, make(map[uintptr]struct{}))
	if err != nil {
		return nil, err
	}
	return json.Marshal(sorted)
}

func marshalPermissions(rules []agent.PermissionRule) ([]byte, error) {
	if rules == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(rules)
}

// sortKeys recursively rebuilds maps as key-ordered sequences so the
// serialized form is independent of insertion order. Values that have no
// JSON representation are rejected here rather than at digest time.
// visited holds the map and slice pointers on the current descent path;
// revisiting one means the value references itself and can never be
// serialized, so it is reported instead of recursed into.
func sortKeys(value any, visited map[uintptr]struct{}) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		ptr := reflect.ValueOf(v).Pointer()
		if _, ok := visited[ptr]; ok {
			return nil, fmt.Errorf("cyclic reference")
		}
		visited[ptr] = struct{}{}
		defer delete(visited, ptr)

		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		ordered := make(orderedMap, 0, len(keys))
		for _, k := range keys {
			sortedVal, err := sortKeys(v[k], visited)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			ordered = append(ordered, orderedEntry{key: k, value: sortedVal})
		}
		return ordered, nil
	case []any:
		ptr := reflect.ValueOf(v).Pointer()
		if _, ok := visited[ptr]; ok {
			return nil, fmt.Errorf("cyclic reference")
		}
		visited[ptr] = struct{}{}
		defer delete(visited, ptr)

		out := make([]any, len(v))
		for i, item := range v {
			sortedItem, err := sortKeys(item, visited)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = sortedItem
		}
		return out, nil
	default:
		// Probe scalars and anything else for serializability up front.
		if _, err := json.Marshal(v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

type orderedEntry struct {
	key   string
	value any
}

// orderedMap marshals as a JSON object with entries in slice order.
type orderedMap []orderedEntry

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(entry.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
