// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archetype.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("Environment = %s, want development", cfg.Environment)
	}
	if cfg.Reduce.ZoneWeight != "volume" {
		t.Errorf("reduce.zone_weight = %q, want volume", cfg.Reduce.ZoneWeight)
	}
	if cfg.Reduce.CoreDetection != "geometry" {
		t.Errorf("reduce.core_detection = %q, want geometry", cfg.Reduce.CoreDetection)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Compression != "zstd" {
		t.Errorf("cache = %+v, want enabled with zstd", cfg.Cache)
	}
	if cfg.Output.Format != "json" || cfg.Output.Compression != "none" {
		t.Errorf("output = %+v, want uncompressed json", cfg.Output)
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("HOME", "/home/modeler")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if strings.Contains(cfg.Cache.Path, "${") {
		t.Errorf("cache.path %q not expanded", cfg.Cache.Path)
	}
	if want := filepath.Join(cfg.Paths.Root, "reductions.db"); cfg.Cache.Path != want {
		t.Errorf("cache.path = %q, want %q", cfg.Cache.Path, want)
	}
}

func TestLoadRequiresEnvVar(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Load error = %v, want ErrNotConfigured", err)
	}
}

func TestLoadFromEnvVar(t *testing.T) {
	path := writeConfig(t, `
environment: production
reduce:
  zone_weight: area
paths:
  root: /srv/archetype
`)
	t.Setenv(EnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != Production {
		t.Errorf("Environment = %s, want production", cfg.Environment)
	}
	if cfg.Reduce.ZoneWeight != "area" {
		t.Errorf("reduce.zone_weight = %q, want area", cfg.Reduce.ZoneWeight)
	}
	if cfg.Cache.Path != "/srv/archetype/reductions.db" {
		t.Errorf("cache.path = %q, want /srv/archetype/reductions.db", cfg.Cache.Path)
	}

	// An explicit path wins over the environment variable.
	other := writeConfig(t, "reduce:\n  core_detection: table\n")
	resolved, err := Resolve(other)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Reduce.CoreDetection != "table" || resolved.Reduce.ZoneWeight != "volume" {
		t.Errorf("reduce = %+v, want table detection with default weighting", resolved.Reduce)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
reduce:
  parallel: 6
  all_zones: true
  strict_names: true
output:
  format: cbor
  compression: lz4
  indent: ""
cache:
  enabled: false
  path: /tmp/cache.db
paths:
  root: /data/archetype
  output: ${ARCHETYPE_ROOT}/libraries
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Reduce.Parallel != 6 || !cfg.Reduce.AllZones || !cfg.Reduce.StrictNames {
		t.Errorf("reduce = %+v", cfg.Reduce)
	}
	if cfg.Output.Format != "cbor" || cfg.Output.Compression != "lz4" || cfg.Output.Indent != "" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled = true, want false")
	}
	if cfg.Paths.Output != "/data/archetype/libraries" {
		t.Errorf("paths.output = %q, want /data/archetype/libraries", cfg.Paths.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile of a missing file should fail")
	}
	if _, err := LoadFile(writeConfig(t, "reduce: [not, a, map]")); err == nil {
		t.Error("LoadFile of malformed YAML should fail")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	content := `
environment: %s
reduce:
  parallel: 2
cache:
  enabled: true
production:
  reduce:
    parallel: 32
    strict_names: true
  cache:
    enabled: false
  output:
    compression: zstd
development:
  paths:
    output: /tmp/dev-libraries
`
	tests := []struct {
		environment string
		check       func(t *testing.T, cfg *Config)
	}{
		{"production", func(t *testing.T, cfg *Config) {
			if cfg.Reduce.Parallel != 32 || !cfg.Reduce.StrictNames {
				t.Errorf("reduce = %+v, want production overrides", cfg.Reduce)
			}
			if cfg.Cache.Enabled {
				t.Error("cache.enabled = true, want the production override false")
			}
			if cfg.Output.Compression != "zstd" {
				t.Errorf("output.compression = %q, want zstd", cfg.Output.Compression)
			}
		}},
		{"development", func(t *testing.T, cfg *Config) {
			if cfg.Reduce.Parallel != 2 || cfg.Reduce.StrictNames {
				t.Errorf("reduce = %+v, want base values", cfg.Reduce)
			}
			if cfg.Paths.Output != "/tmp/dev-libraries" {
				t.Errorf("paths.output = %q, want /tmp/dev-libraries", cfg.Paths.Output)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, strings.Replace(content, "%s", tt.environment, 1)))
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("ARCHETYPE_TEST_DIR", "/from/env")
	tests := []struct {
		input string
		vars  map[string]string
		want  string
	}{
		{"${HOME}/x", map[string]string{"HOME": "/home/a"}, "/home/a/x"},
		{"${ARCHETYPE_TEST_DIR}/x", nil, "/from/env/x"},
		{"${ARCHETYPE_UNSET_VAR:-/fallback}/x", nil, "/fallback/x"},
		{"${ARCHETYPE_UNSET_VAR}/x", nil, "/x"},
		{"/plain/path", nil, "/plain/path"},
	}
	for _, tt := range tests {
		if got := expandVars(tt.input, tt.vars); got != tt.want {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(Default()) = %v", err)
	}

	cfg.Environment = "staging"
	cfg.Reduce.ZoneWeight = "mass"
	cfg.Reduce.CoreDetection = "name"
	cfg.Reduce.Parallel = -1
	cfg.Output.Format = "xml"
	cfg.Output.Compression = "gzip"
	cfg.Cache.Compression = "brotli"
	cfg.Cache.Path = ""
	cfg.Paths.Root = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted an invalid config")
	}
	for _, field := range []string{
		"environment",
		"reduce.zone_weight",
		"reduce.core_detection",
		"reduce.parallel",
		"output.format",
		"output.compression",
		"cache.compression",
		"cache.path",
		"paths.root",
	} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate error does not mention %s:\n%v", field, err)
		}
	}
}
