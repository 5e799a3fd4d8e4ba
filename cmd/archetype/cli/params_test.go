// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Name     string        `flag:"name" desc:"the name"`
		Verbose  bool          `flag:"verbose,v" desc:"enable verbose output"`
		Count    int           `flag:"count" desc:"number of items"`
		Offset   int64         `flag:"offset" desc:"byte offset"`
		Rate     float64       `flag:"rate" desc:"sampling rate"`
		Timeout  time.Duration `flag:"timeout" desc:"request timeout"`
		Tags     []string      `flag:"tags" desc:"tag list"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	err := flagSet.Parse([]string{
		"--name", "office",
		"-v",
		"--count", "42",
		"--offset", "1099511627776",
		"--rate", "0.95",
		"--timeout", "30s",
		"--tags", "a,b,c",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Name != "office" || !p.Verbose || p.Count != 42 || p.Offset != 1099511627776 {
		t.Errorf("params = %+v", p)
	}
	if p.Rate != 0.95 || p.Timeout != 30*time.Second {
		t.Errorf("Rate, Timeout = %v, %v", p.Rate, p.Timeout)
	}
	if strings.Join(p.Tags, ",") != "a,b,c" {
		t.Errorf("Tags = %v, want [a b c]", p.Tags)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Format   string        `flag:"format" default:"json"`
		Parallel int           `flag:"parallel" default:"8"`
		Rate     float64       `flag:"rate" default:"0.5"`
		Timeout  time.Duration `flag:"timeout" default:"10s"`
		Cache    bool          `flag:"cache" default:"true"`
		Tags     []string      `flag:"tags" default:"x,y"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Format != "json" || p.Parallel != 8 || p.Rate != 0.5 || p.Timeout != 10*time.Second || !p.Cache {
		t.Errorf("params = %+v", p)
	}
	if strings.Join(p.Tags, ",") != "x,y" {
		t.Errorf("Tags = %v, want [x y]", p.Tags)
	}
}

func TestBindFlags_InvalidDefault(t *testing.T) {
	type params struct {
		Parallel int `flag:"parallel" default:"many"`
	}
	var p params
	if err := BindFlags(&p, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags accepted a non-integer default")
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	type params struct{}
	if err := BindFlags(params{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags accepted a struct value")
	}
}

func TestBindFlags_UnsupportedType(t *testing.T) {
	type params struct {
		Weights map[string]float64 `flag:"weights"`
	}
	var p params
	if err := BindFlags(&p, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags accepted a map field")
	}
}

func TestBindFlags_EmbeddedStructs(t *testing.T) {
	type params struct {
		Verbosity
		JSONOutput
		ZoneWeight string `flag:"zone-weight" default:"volume"`
	}
	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--zone-weight", "area", "--json", "-v"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.ZoneWeight != "area" || !p.OutputJSON || !p.Verbose {
		t.Errorf("params = %+v", p)
	}
}

func TestWriteJSON(t *testing.T) {
	var buffer bytes.Buffer
	var names []string
	if err := WriteJSON(&buffer, normalizeNilSlice(names)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("nil slice = %s, want []", got)
	}
}
