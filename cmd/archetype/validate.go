// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/archetype/cmd/archetype/cli"
	"github.com/bureau-foundation/archetype/lib/docfile"
	"github.com/bureau-foundation/archetype/lib/umi"
)

type validateParams struct {
	cli.Verbosity
	cli.JSONOutput
}

func validateCommand() *cli.Command {
	var params validateParams
	return &cli.Command{
		Name:    "validate",
		Summary: "Check that template documents are complete",
		Description: `Load each document, resolve every $ref, and check that every zone
construction set has a construction for each of its slots (facade,
ground, partition, roof, slab).

Exits 1 when any document fails.`,
		Usage:  "archetype validate [flags] <document>...",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one document is required")
			}
			var reports []validationReport
			failed := false
			for _, path := range args {
				report := validate(path, logger)
				failed = failed || !report.Valid
				reports = append(reports, report)
			}
			if done, err := params.EmitJSON(reports); done {
				if err != nil {
					return err
				}
			} else {
				printValidationReports(os.Stdout, reports)
			}
			if failed {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// incompleteSet names a construction set and the slots it lacks.
type incompleteSet struct {
	Name    string   `json:"name"`
	Missing []string `json:"missing"`
}

type validationReport struct {
	Path       string          `json:"path"`
	Valid      bool            `json:"valid"`
	Entities   int             `json:"entities"`
	Error      string          `json:"error,omitempty"`
	Incomplete []incompleteSet `json:"incomplete,omitempty"`
}

func validate(path string, logger *slog.Logger) validationReport {
	report := validationReport{Path: path}
	doc, err := docfile.Read(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	registry := umi.NewRegistry(umi.WithLogger(logger))
	library, err := umi.FromDocument(registry, documentName(path), doc)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Entities = library.Len()
	for _, set := range library.IncompleteConstructionSets() {
		incomplete := incompleteSet{Name: set.Name}
		for _, slot := range set.Missing() {
			incomplete.Missing = append(incomplete.Missing, slot.String())
		}
		report.Incomplete = append(report.Incomplete, incomplete)
	}
	report.Valid = len(report.Incomplete) == 0
	return report
}

func printValidationReports(w io.Writer, reports []validationReport) {
	for _, report := range reports {
		switch {
		case report.Error != "":
			fmt.Fprintf(w, "FAIL  %s: %s\n", report.Path, report.Error)
		case !report.Valid:
			fmt.Fprintf(w, "FAIL  %s: %d incomplete construction set(s)\n", report.Path, len(report.Incomplete))
			for _, set := range report.Incomplete {
				fmt.Fprintf(w, "        %s: missing %v\n", set.Name, set.Missing)
			}
		default:
			fmt.Fprintf(w, "ok    %s (%d entities)\n", report.Path, report.Entities)
		}
	}
}
