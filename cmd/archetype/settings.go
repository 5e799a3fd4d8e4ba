// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/archetype/lib/compress"
	"github.com/bureau-foundation/archetype/lib/config"
	"github.com/bureau-foundation/archetype/lib/docstore"
)

// loadConfig resolves the configuration, lets override apply command
// line flags, and validates the result again.
func loadConfig(path string, override func(cfg *config.Config)) (*config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid flags: %w", err)
		}
	}
	return cfg, nil
}

// openCache opens the reduction cache described by cfg.
func openCache(cfg *config.Config, logger *slog.Logger) (*docstore.Store, error) {
	tag, err := compress.ParseTag(cfg.Cache.Compression)
	if err != nil {
		return nil, err
	}
	return docstore.Open(docstore.Config{
		Path:        cfg.Cache.Path,
		Compression: tag,
		Logger:      logger,
	})
}

// documentName is the file name of path without its format and
// compression extensions.
func documentName(path string) string {
	_, inner := compress.TagForPath(filepath.Base(path))
	return strings.TrimSuffix(inner, filepath.Ext(inner))
}

// setIf replaces *field with value when value is non-empty.
func setIf(field *string, value string) {
	if value != "" {
		*field = value
	}
}
