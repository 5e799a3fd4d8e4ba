// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads YAML configuration for archetype runs.
//
// Configuration comes from exactly one place: the file named by a
// --config flag ([LoadFile]), the file named by the ARCHETYPE_CONFIG
// environment variable ([Load]), or, when neither is given, the
// built-in defaults ([Default]). [Resolve] applies that order. There
// is no search path.
//
// The file may carry development and production sections that
// override base values when [Config].Environment matches.
//
// Path fields expand ${HOME}, ${ARCHETYPE_ROOT} (the resolved
// paths.root) and ${VAR:-default} patterns after loading. Command-line
// flags override configuration values in the CLI, not here.
//
// This package depends on no other archetype packages; value sets for
// zone weighting, core detection, formats and compression are checked
// by [Config.Validate] as plain strings.
package config
