// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the archetype
// binary.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a parameter struct whose
// tagged fields become pflag flags ([BindFlags]), and a Run function.
// Commands are assembled into a tree in cmd/archetype and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// logger construction, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// Output helpers: [JSONOutput] adds a --json flag to a parameter
// struct, [Verbosity] adds --verbose, and [ExitError] ends the process
// with a code without printing an extra error line.
package cli
