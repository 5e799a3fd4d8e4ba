// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "ARCHETYPE_CONFIG"

// ErrNotConfigured is returned by [Load] when EnvVar is unset.
var ErrNotConfigured = errors.New(EnvVar + " environment variable not set")

// Environment selects which override section applies.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Config is the full archetype configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	Reduce ReduceConfig `yaml:"reduce"`
	Output OutputConfig `yaml:"output"`
	Cache  CacheConfig  `yaml:"cache"`
	Paths  PathsConfig  `yaml:"paths"`

	// Per-environment overrides, applied after the base values.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides holds the sections an environment may override.
// Within a present section, non-empty strings and positive numbers
// replace the base value; booleans always do.
type ConfigOverrides struct {
	Reduce *ReduceConfig `yaml:"reduce,omitempty"`
	Output *OutputConfig `yaml:"output,omitempty"`
	Cache  *CacheConfig  `yaml:"cache,omitempty"`
	Paths  *PathsConfig  `yaml:"paths,omitempty"`
}

// ReduceConfig controls zone reduction.
type ReduceConfig struct {
	// ZoneWeight is "volume" or "area".
	ZoneWeight string `yaml:"zone_weight"`

	// Parallel bounds concurrent reductions. Zero means one per CPU.
	Parallel int `yaml:"parallel"`

	// AllZones writes the reduced-from zones alongside Core and
	// Perimeter.
	AllZones bool `yaml:"all_zones"`

	// CoreDetection is "geometry" or "table".
	CoreDetection string `yaml:"core_detection"`

	// StrictNames rejects name collisions between value-different
	// entities instead of reusing the first.
	StrictNames bool `yaml:"strict_names"`
}

// OutputConfig controls how library documents are written.
type OutputConfig struct {
	// Format is "json" or "cbor".
	Format string `yaml:"format"`

	// Compression is "none", "zstd", or "lz4".
	Compression string `yaml:"compression"`

	// Indent is the JSON indentation. Empty writes compact JSON.
	Indent string `yaml:"indent"`
}

// CacheConfig controls the reduction cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`

	// Compression is applied to cached documents: "none", "zstd", or
	// "lz4".
	Compression string `yaml:"compression"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for archetype state.
	Root string `yaml:"root"`

	// Output is the directory library documents are written to when
	// no output path is given.
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	root := "${HOME}/.cache/archetype"
	if cacheDir, err := os.UserCacheDir(); err == nil {
		root = filepath.Join(cacheDir, "archetype")
	}
	return &Config{
		Environment: Development,
		Reduce: ReduceConfig{
			ZoneWeight:    "volume",
			CoreDetection: "geometry",
		},
		Output: OutputConfig{
			Format:      "json",
			Compression: "none",
			Indent:      "  ",
		},
		Cache: CacheConfig{
			Enabled:     true,
			Path:        "${ARCHETYPE_ROOT}/reductions.db",
			Compression: "zstd",
		},
		Paths: PathsConfig{
			Root:   root,
			Output: ".",
		},
	}
}

// Resolve loads configuration from path if it is non-empty, otherwise
// from ARCHETYPE_CONFIG if it is set, otherwise from [Default]. The
// result is expanded and validated.
func Resolve(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	case os.Getenv(EnvVar) != "":
		cfg, err = Load()
	default:
		cfg = Default()
		cfg.expandVariables()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load loads the file named by ARCHETYPE_CONFIG. It returns
// [ErrNotConfigured] when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, ErrNotConfigured
	}
	return LoadFile(path)
}

// LoadFile loads the file at path over [Default], applies the
// environment overrides, and expands variables. It does not validate.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if o := overrides.Reduce; o != nil {
		setString(&c.Reduce.ZoneWeight, o.ZoneWeight)
		setString(&c.Reduce.CoreDetection, o.CoreDetection)
		if o.Parallel > 0 {
			c.Reduce.Parallel = o.Parallel
		}
		c.Reduce.AllZones = o.AllZones
		c.Reduce.StrictNames = o.StrictNames
	}
	if o := overrides.Output; o != nil {
		setString(&c.Output.Format, o.Format)
		setString(&c.Output.Compression, o.Compression)
		setString(&c.Output.Indent, o.Indent)
	}
	if o := overrides.Cache; o != nil {
		c.Cache.Enabled = o.Enabled
		setString(&c.Cache.Path, o.Path)
		setString(&c.Cache.Compression, o.Compression)
	}
	if o := overrides.Paths; o != nil {
		setString(&c.Paths.Root, o.Root)
		setString(&c.Paths.Output, o.Output)
	}
}

func setString(field *string, value string) {
	if value != "" {
		*field = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["ARCHETYPE_ROOT"] = c.Paths.Root

	c.Paths.Output = expandVars(c.Paths.Output, vars)
	c.Cache.Path = expandVars(c.Cache.Path, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, preferring vars over
// the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	oneOf := func(field, value string, allowed ...string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, fmt.Errorf("%s must be one of %v, got %q", field, allowed, value))
		}
	}

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %q", c.Environment))
	}
	oneOf("reduce.zone_weight", c.Reduce.ZoneWeight, "volume", "area")
	oneOf("reduce.core_detection", c.Reduce.CoreDetection, "geometry", "table")
	if c.Reduce.Parallel < 0 {
		errs = append(errs, fmt.Errorf("reduce.parallel must not be negative, got %d", c.Reduce.Parallel))
	}
	oneOf("output.format", c.Output.Format, "json", "cbor")
	oneOf("output.compression", c.Output.Compression, "none", "zstd", "lz4")
	oneOf("cache.compression", c.Cache.Compression, "none", "zstd", "lz4")
	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, errors.New("cache.path is required when the cache is enabled"))
	}
	if c.Paths.Root == "" {
		errs = append(errs, errors.New("paths.root is required"))
	}

	return errors.Join(errs...)
}
