// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/archetype/cmd/archetype/cli"
	"github.com/bureau-foundation/archetype/lib/docfile"
	"github.com/bureau-foundation/archetype/lib/umi"
)

type convertParams struct {
	cli.Verbosity
	Indent string `json:"indent" flag:"indent" desc:"JSON indentation (empty for compact output)" default:"  "`
}

func convertCommand() *cli.Command {
	var params convertParams
	return &cli.Command{
		Name:    "convert",
		Summary: "Re-encode a template document",
		Description: `Read a template document and write it in the encoding implied by the
output path: .json or .cbor, optionally followed by .zst or .lz4.

Every reference is resolved before writing, so a document with dangling
references is never converted.`,
		Usage:  "archetype convert [flags] <input> <output>",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <input> <output>, got %d argument(s)", len(args))
			}
			return runConvert(args[0], args[1], params.Indent, logger)
		},
		Examples: []cli.Example{
			{
				Description: "Compress a JSON library as CBOR with zstd",
				Command:     "archetype convert library.json library.cbor.zst",
			},
			{
				Description: "Expand a compressed library back to compact JSON",
				Command:     "archetype convert --indent '' library.cbor.zst library.json",
			},
		},
	}
}

func runConvert(input, output, indent string, logger *slog.Logger) error {
	doc, err := docfile.Read(input)
	if err != nil {
		return err
	}
	registry := umi.NewRegistry(umi.WithLogger(logger))
	if _, err := umi.FromDocument(registry, documentName(input), doc); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := docfile.Write(output, doc, indent); err != nil {
		return err
	}
	logger.Info("document converted",
		"input", input,
		"output", output,
		"templates", len(doc.BuildingTemplates))
	return nil
}
