// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"
	"runtime"

	"github.com/bureau-foundation/archetype/lib/binhash"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/archetype/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return GitCommit
}

// Report is the machine-readable form of the build information.
type Report struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	Go        string `json:"go"`
	Platform  string `json:"platform"`

	// Executable and Digest identify the running binary. Both are
	// empty when the executable cannot be located or read.
	Executable string `json:"executable,omitempty"`
	Digest     string `json:"digest,omitempty"`
}

// Current returns the report for the running binary.
func Current() Report {
	report := Report{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if digest, path, err := SelfDigest(); err == nil {
		report.Executable = path
		report.Digest = digest
	}
	return report
}

// SelfDigest returns the hex BLAKE3 digest and the path of the running
// executable.
func SelfDigest() (digest string, path string, err error) {
	path, err = os.Executable()
	if err != nil {
		return "", "", fmt.Errorf("locating executable: %w", err)
	}
	sum, err := binhash.HashFile(path)
	if err != nil {
		return "", "", fmt.Errorf("hashing executable %s: %w", path, err)
	}
	return binhash.FormatDigest(sum), path, nil
}
