// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// operations. When stderr is a terminal, uses slog.TextHandler for
// human-readable output. When stderr is piped or redirected, uses
// slog.JSONHandler so batch runs can be ingested by log tooling.
func NewCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// Verbosity is an embeddable struct that adds a --verbose flag to a
// command's parameter struct. [Command.Execute] builds the command
// logger at the level it reports.
type Verbosity struct {
	Verbose bool `json:"-" flag:"verbose,v" desc:"log debug records"`
}

// Level returns Debug when --verbose is set and Info otherwise.
func (v *Verbosity) Level() slog.Level {
	if v.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
