// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashFileMatchesSum(t *testing.T) {
	content := []byte(`{"Name": "small office"}`)
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	if want := Sum(content); got != want {
		t.Errorf("HashFile = %x, want %x", got, want)
	}
}

func TestHashFileLarge(t *testing.T) {
	// Ensure streaming works for files larger than typical buffers.
	content := make([]byte, 256*1024)
	for i := range content {
		content[i] = byte(i % 251)
	}
	path := filepath.Join(t.TempDir(), "large-model.json")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := Sum(content); got != want {
		t.Errorf("HashFile(large) = %x, want %x", got, want)
	}
}

func TestHashFileNonexistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := HashFile(path); err == nil {
		t.Fatal("HashFile should fail for nonexistent file")
	}
}

func TestModelKey(t *testing.T) {
	content := Sum([]byte("model"))

	volume := ModelKey(content, "zone_weight=volume")
	area := ModelKey(content, "zone_weight=area")
	if volume == area {
		t.Error("different fingerprints should produce different keys")
	}
	if again := ModelKey(content, "zone_weight=volume"); again != volume {
		t.Errorf("ModelKey not deterministic: %x != %x", again, volume)
	}
	if volume == content {
		t.Error("keyed digest should differ from the content digest")
	}
}

func TestNameDigest(t *testing.T) {
	first := NameDigest([]string{"core", "perimeter"})
	second := NameDigest([]string{"perimeter", "core"})
	if first != second {
		t.Errorf("NameDigest depends on order: %x != %x", first, second)
	}

	if NameDigest([]string{"ab", "c"}) == NameDigest([]string{"a", "bc"}) {
		t.Error("name boundaries should be part of the digest")
	}

	// Domain separation: the name domain and model domain never agree.
	if NameDigest([]string{"x"}) == ModelKey(Digest{}, "x") {
		t.Error("name and model domains should be separated")
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	original := Sum([]byte("round-trip"))
	formatted := FormatDigest(original)
	if len(formatted) != 64 {
		t.Errorf("FormatDigest length = %d, want 64", len(formatted))
	}

	parsed, err := ParseDigest(formatted)
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != original {
		t.Errorf("ParseDigest round-trip failed: %x != %x", parsed, original)
	}
	if original.String() != formatted {
		t.Errorf("String() = %q, want %q", original.String(), formatted)
	}
}

func TestParseDigestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too short", "abcd"},
		{"too long", "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789aa"},
		{"empty", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseDigest(test.input); err == nil {
				t.Errorf("ParseDigest(%q) should fail", test.input)
			}
		})
	}
}
