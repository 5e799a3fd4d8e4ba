// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"crypto/rand"
	"io"
	"strings"
	"testing"
)

func TestTagString(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{None, "none"},
		{LZ4, "lz4"},
		{Zstd, "zstd"},
		{Tag(99), "unknown(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.want {
				t.Errorf("Tag(%d).String() = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		t.Run(name, func(t *testing.T) {
			tag, err := ParseTag(name)
			if err != nil {
				t.Fatalf("ParseTag(%q): %v", name, err)
			}
			if tag.String() != name {
				t.Errorf("ParseTag(%q).String() = %q", name, tag.String())
			}
		})
	}
	if tag, err := ParseTag(""); err != nil || tag != None {
		t.Errorf("ParseTag(\"\") = %v, %v, want none", tag, err)
	}
	if _, err := ParseTag("gzip"); err == nil {
		t.Error("ParseTag(\"gzip\") should fail")
	}
}

// document returns repetitive JSON-like text that both codecs shrink.
func document() []byte {
	return []byte(strings.Repeat(`{"$id": "1", "Name": "Concrete", "Conductivity": 1.8},`, 200))
}

func TestCompressRoundTrip(t *testing.T) {
	data := document()
	for _, tag := range []Tag{None, LZ4, Zstd} {
		t.Run(tag.String(), func(t *testing.T) {
			compressed, used, err := Compress(data, tag)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if used != tag {
				t.Errorf("used tag = %v, want %v", used, tag)
			}
			if tag != None && len(compressed) >= len(data) {
				t.Errorf("compressed size %d not smaller than %d", len(compressed), len(data))
			}
			decompressed, err := Decompress(compressed, used, len(data))
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(decompressed, data) {
				t.Error("round trip changed the data")
			}
		})
	}
}

func TestCompressIncompressibleFallsBack(t *testing.T) {
	data := make([]byte, 1024)
	if _, err := rand.Read(data); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	for _, tag := range []Tag{LZ4, Zstd} {
		compressed, used, err := Compress(data, tag)
		if err != nil {
			t.Fatalf("Compress(%v): %v", tag, err)
		}
		if used != None {
			t.Errorf("Compress(%v) of random data used %v, want none", tag, used)
		}
		if !bytes.Equal(compressed, data) {
			t.Errorf("Compress(%v) fallback changed the data", tag)
		}
	}
}

func TestDecompressSizeMismatch(t *testing.T) {
	data := document()
	for _, tag := range []Tag{None, LZ4, Zstd} {
		compressed, used, err := Compress(data, tag)
		if err != nil {
			t.Fatalf("Compress(%v): %v", tag, err)
		}
		if _, err := Decompress(compressed, used, len(data)+1); err == nil {
			t.Errorf("Decompress(%v) with wrong size should fail", tag)
		}
	}
}

func TestUnsupportedTag(t *testing.T) {
	if _, _, err := Compress([]byte("x"), Tag(42)); err == nil {
		t.Error("Compress with tag 42 should fail")
	}
	if _, err := Decompress([]byte("x"), Tag(42), 1); err == nil {
		t.Error("Decompress with tag 42 should fail")
	}
	if _, err := NewWriter(io.Discard, Tag(42)); err == nil {
		t.Error("NewWriter with tag 42 should fail")
	}
	if _, err := NewReader(bytes.NewReader(nil), Tag(42)); err == nil {
		t.Error("NewReader with tag 42 should fail")
	}
}

func TestStreamRoundTrip(t *testing.T) {
	data := document()
	for _, tag := range []Tag{None, LZ4, Zstd} {
		t.Run(tag.String(), func(t *testing.T) {
			var buffer bytes.Buffer
			writer, err := NewWriter(&buffer, tag)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			if _, err := writer.Write(data); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			reader, err := NewReader(&buffer, tag)
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			defer reader.Close()
			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Error("stream round trip changed the data")
			}
		})
	}
}

func TestTagForPath(t *testing.T) {
	tests := []struct {
		path     string
		wantTag  Tag
		wantPath string
	}{
		{"library.json", None, "library.json"},
		{"library.json.zst", Zstd, "library.json"},
		{"library.cbor.lz4", LZ4, "library.cbor"},
		{"LIBRARY.JSON.ZST", Zstd, "LIBRARY.JSON"},
	}
	for _, tt := range tests {
		tag, stripped := TagForPath(tt.path)
		if tag != tt.wantTag || stripped != tt.wantPath {
			t.Errorf("TagForPath(%q) = %v, %q, want %v, %q", tt.path, tag, stripped, tt.wantTag, tt.wantPath)
		}
	}
	if got := Zstd.Extension(); got != ".zst" {
		t.Errorf("Zstd.Extension() = %q, want .zst", got)
	}
	if got := None.Extension(); got != "" {
		t.Errorf("None.Extension() = %q, want empty", got)
	}
}
