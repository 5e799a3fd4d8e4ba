// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package docfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/archetype/lib/codec"
	"github.com/bureau-foundation/archetype/lib/compress"
	"github.com/bureau-foundation/archetype/lib/umi"
)

// Format is a document encoding.
type Format string

const (
	JSON Format = "json"
	CBOR Format = "cbor"
)

// ParseFormat parses a format name. The empty string is [JSON].
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", JSON:
		return JSON, nil
	case CBOR:
		return CBOR, nil
	default:
		return "", fmt.Errorf("unknown document format %q (want json or cbor)", name)
	}
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	if f == CBOR {
		return ".cbor"
	}
	return ".json"
}

// Encoding is how a document file is laid out: its format and the
// stream compression around it.
type Encoding struct {
	Format      Format
	Compression compress.Tag

	// Indent is the JSON indentation. Empty writes compact JSON.
	// Ignored for CBOR.
	Indent string
}

// EncodingForPath derives the encoding from path's extensions.
func EncodingForPath(path string) Encoding {
	tag, inner := compress.TagForPath(path)
	format := JSON
	if strings.EqualFold(filepath.Ext(inner), ".cbor") {
		format = CBOR
	}
	return Encoding{Format: format, Compression: tag}
}

// Path returns base with the extensions of e appended.
func (e Encoding) Path(base string) string {
	return base + e.Format.Extension() + e.Compression.Extension()
}

// Decode reads one document from r.
func Decode(r io.Reader, e Encoding) (*umi.Document, error) {
	reader, err := compress.NewReader(r, e.Compression)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	doc := new(umi.Document)
	switch e.Format {
	case CBOR:
		if err := codec.NewDecoder(reader).Decode(doc); err != nil {
			return nil, fmt.Errorf("decoding CBOR document: %w", err)
		}
	default:
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		if err := json.Unmarshal(jsonc.ToJSON(data), doc); err != nil {
			return nil, fmt.Errorf("decoding JSON document: %w", err)
		}
	}
	return doc, nil
}

// Encode writes doc to w.
func Encode(w io.Writer, doc *umi.Document, e Encoding) error {
	writer, err := compress.NewWriter(w, e.Compression)
	if err != nil {
		return err
	}
	switch e.Format {
	case CBOR:
		err = codec.NewEncoder(writer).Encode(doc)
	default:
		encoder := json.NewEncoder(writer)
		encoder.SetEscapeHTML(false)
		if e.Indent != "" {
			encoder.SetIndent("", e.Indent)
		}
		err = encoder.Encode(doc)
	}
	if err != nil {
		writer.Close()
		return fmt.Errorf("encoding %s document: %w", e.Format, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("flushing %s stream: %w", e.Compression, err)
	}
	return nil
}

// Read reads the document at path, choosing the encoding from its
// extensions.
func Read(path string) (*umi.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer file.Close()

	doc, err := Decode(file, EncodingForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write writes doc to path atomically, choosing the encoding from
// path's extensions. indent applies to JSON output.
func Write(path string, doc *umi.Document, indent string) error {
	encoding := EncodingForPath(path)
	encoding.Indent = indent

	var buffer bytes.Buffer
	if err := Encode(&buffer, doc, encoding); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeAtomic(path, buffer.Bytes())
}

// writeAtomic replaces path with data via a temporary file in the same
// directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, ".archetype-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp document: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting document mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming document to %s: %w", path, err)
	}
	success = true
	return nil
}
