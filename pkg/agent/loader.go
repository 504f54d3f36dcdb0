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
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var definitionSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// definitionSchema compiles the embedded agent definition schema once.
func definitionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("agent-definition-v1.schema.json", strings.NewReader(definitionSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("agent-definition-v1.schema.json")
	})
	return schema, schemaErr
}

// LoadDefinition reads an agent definition from a JSON or YAML file,
// validates the document against the definition schema, and decodes it.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	var jsonData []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		jsonData = data
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse YAML definition: %w", err)
		}
		jsonData, err = json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert YAML definition: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported definition format: %s", filepath.Ext(path))
	}

	return ParseDefinition(jsonData)
}

// ParseDefinition validates a raw JSON definition document against the
// definition schema and decodes it into a Definition.
func ParseDefinition(jsonData []byte) (*Definition, error) {
	sch, err := definitionSchema()
	if err != nil {
		return nil, fmt.Errorf("compile definition schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("definition does not match schema: %w", err)
	}

	var def Definition
	if err := json.Unmarshal(jsonData, &def); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDir loads every .json/.yaml/.yml definition in a directory.
// Files that fail to parse or validate are skipped with a warning so a
// single bad definition cannot block loading the rest.
func LoadDir(dir string, logger *slog.Logger) ([]*Definition, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read definitions directory: %w", err)
	}

	defs := make([]*Definition, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}

		def, err := LoadDefinition(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("skipping invalid agent definition", "file", entry.Name(), "error", err)
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}
