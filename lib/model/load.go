// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Loader produces a parsed building model from a path. The batch
// reducer depends on this interface so the engine-facing layer can be
// swapped without touching reduction.
type Loader interface {
	Load(ctx context.Context, path string) (*Building, error)
}

// FileLoader loads models stored in the JSON interchange form.
type FileLoader struct{}

// Load reads, parses, and validates the model at path.
func (FileLoader) Load(ctx context.Context, path string) (*Building, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads, parses, and validates the model at path. A model
// without a Name takes the file name.
func LoadFile(path string) (*Building, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model %s: %w", path, err)
	}

	building, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing model %s: %w", path, err)
	}
	building.Source = path
	if building.Name == "" {
		building.Name = baseName(path)
	}

	if err := building.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", path, err)
	}
	return building, nil
}

// Parse decodes a model from JSON or JSONC bytes without validating
// it.
func Parse(data []byte) (*Building, error) {
	var building Building
	if err := json.Unmarshal(jsonc.ToJSON(data), &building); err != nil {
		return nil, err
	}
	return &building, nil
}

// baseName strips directories and the final extension from path.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
