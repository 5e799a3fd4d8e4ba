// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/archetype/cmd/archetype/cli"
	"github.com/bureau-foundation/archetype/lib/codec"
	"github.com/bureau-foundation/archetype/lib/compress"
	"github.com/bureau-foundation/archetype/lib/docfile"
	"github.com/bureau-foundation/archetype/lib/umi"
)

type inspectParams struct {
	cli.JSONOutput
	Diagnose bool `json:"diagnose" flag:"diagnose,d" desc:"print CBOR diagnostic notation instead of a summary"`
}

func inspectCommand() *cli.Command {
	var params inspectParams
	return &cli.Command{
		Name:    "inspect",
		Summary: "Summarize a template document",
		Description: `Print the number of entities in each document category and the names
of the building templates.

With --diagnose, a CBOR document is printed in CBOR diagnostic
notation instead.`,
		Usage:  "archetype inspect [flags] <document>",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected one document, got %d argument(s)", len(args))
			}
			if params.Diagnose {
				return diagnose(os.Stdout, args[0])
			}
			report, err := inspect(args[0])
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(report); done {
				return err
			}
			printInspectReport(os.Stdout, report)
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Category counts as JSON",
				Command:     "archetype inspect --json library.json",
			},
			{
				Description: "Show the raw structure of a CBOR library",
				Command:     "archetype inspect --diagnose library.cbor.zst",
			},
		},
	}
}

// categoryCount is one document category and its entry count.
type categoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type inspectReport struct {
	Path        string          `json:"path"`
	Format      string          `json:"format"`
	Compression string          `json:"compression"`
	Templates   []string        `json:"templates"`
	Categories  []categoryCount `json:"categories"`
	Total       int             `json:"total"`
}

func inspect(path string) (inspectReport, error) {
	doc, err := docfile.Read(path)
	if err != nil {
		return inspectReport{}, err
	}
	encoding := docfile.EncodingForPath(path)
	report := inspectReport{
		Path:        path,
		Format:      string(encoding.Format),
		Compression: encoding.Compression.String(),
		Templates:   doc.TemplateNames(),
	}
	counts := doc.Counts()
	for _, kind := range umi.Kinds {
		report.Categories = append(report.Categories, categoryCount{Category: kind.Category(), Count: counts[kind]})
		report.Total += counts[kind]
	}
	return report, nil
}

func printInspectReport(w io.Writer, report inspectReport) {
	fmt.Fprintf(w, "%s (%s, compression %s)\n\n", report.Path, report.Format, report.Compression)
	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, category := range report.Categories {
		fmt.Fprintf(writer, "  %s\t%d\n", category.Category, category.Count)
	}
	fmt.Fprintf(writer, "  total\t%d\n", report.Total)
	writer.Flush()
	if len(report.Templates) > 0 {
		fmt.Fprintf(w, "\nBuilding templates: %s\n", strings.Join(report.Templates, ", "))
	}
}

// diagnose writes the CBOR diagnostic notation of the document at path.
func diagnose(w io.Writer, path string) error {
	encoding := docfile.EncodingForPath(path)
	if encoding.Format != docfile.CBOR {
		return fmt.Errorf("%s: --diagnose needs a CBOR document", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	reader, err := compress.NewReader(file, encoding.Compression)
	if err != nil {
		return err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}
