// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// archetype reduces building simulation models to UMI building
// templates and manages the resulting template documents.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/archetype/cmd/archetype/cli"
	"github.com/bureau-foundation/archetype/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own outcome (validate, reduce with
		// every building failed) return an ExitError. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return root().Execute(ctx, os.Args[1:])
}

// root builds the command tree.
func root() *cli.Command {
	return &cli.Command{
		Name: "archetype",
		Description: `archetype: building template reduction.

Reduce simulated building models to two-zone UMI building templates
(one core zone, one perimeter zone) and write them as template library
documents with $id/$ref cross-references.`,
		Subcommands: []*cli.Command{
			reduceCommand(),
			convertCommand(),
			inspectCommand(),
			validateCommand(),
			cacheCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Reduce two models into one library",
				Command:     "archetype reduce -o library.json office.json school.json",
			},
			{
				Description: "Re-encode a library as compressed CBOR",
				Command:     "archetype convert library.json library.cbor.zst",
			},
			{
				Description: "Check every reference in a library",
				Command:     "archetype validate library.json",
			},
		},
	}
}

func versionCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
	}
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(context.Context, []string, *slog.Logger) error {
			if done, err := params.EmitJSON(version.Current()); done {
				return err
			}
			fmt.Printf("archetype %s\n", version.Full())
			return nil
		},
	}
}
