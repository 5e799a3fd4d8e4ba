// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"os"
	"reflect"
)

// JSONOutput is an embeddable struct that adds a --json flag to a
// command's parameter struct. [BindFlags] picks the flag up from the
// embedded field, and [JSONOutput.EmitJSON] decides between JSON and
// the command's text report:
//
//	type validateParams struct {
//	    cli.JSONOutput
//	    cli.Verbosity
//	}
//
//	// In Run:
//	if done, err := params.EmitJSON(reports); done {
//	    return err
//	}
//	printValidationReports(os.Stdout, reports)
//
// Every command that prints a report embeds it.
// Log records go to stderr, so stdout stays parseable with --json.
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"output as JSON"`
}

// EmitJSON writes result as indented JSON to stdout if --json is set.
// It returns (true, nil) on success, (true, err) on write failure, and
// (false, nil) when --json is not set and the caller should print its
// text report instead.
//
// A nil slice is written as [] rather than null, so a consumer
// iterating a list report never has to special-case null.
func (j *JSONOutput) EmitJSON(result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(os.Stdout, normalizeNilSlice(result))
}

// WriteJSON marshals value as two-space indented JSON and writes it to
// w. Template documents are not written this way; they go through
// docfile, which honors the configured indent and compression.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice. Only the top level is normalized.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
