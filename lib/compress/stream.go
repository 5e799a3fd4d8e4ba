// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// File extensions of the framed stream formats.
const (
	ExtensionZstd = ".zst"
	ExtensionLZ4  = ".lz4"
)

// TagForPath returns the stream codec implied by the final extension
// of path, and the path with that extension removed.
func TagForPath(path string) (Tag, string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtensionZstd:
		return Zstd, strings.TrimSuffix(path, filepath.Ext(path))
	case ExtensionLZ4:
		return LZ4, strings.TrimSuffix(path, filepath.Ext(path))
	default:
		return None, path
	}
}

// Extension returns the file extension of tag's stream format, or ""
// for [None].
func (tag Tag) Extension() string {
	switch tag {
	case Zstd:
		return ExtensionZstd
	case LZ4:
		return ExtensionLZ4
	default:
		return ""
	}
}

// nopWriteCloser adds a no-op Close to a writer.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer that compresses to w in tag's framed
// format. Close flushes the frame but does not close w.
func NewWriter(w io.Writer, tag Tag) (io.WriteCloser, error) {
	switch tag {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd stream: %w", err)
		}
		return encoder, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// zstdReadCloser releases the decoder's goroutines on Close.
type zstdReadCloser struct{ *zstd.Decoder }

func (r zstdReadCloser) Close() error {
	r.Decoder.Close()
	return nil
}

// NewReader returns a reader that decompresses tag's framed format
// from r. Close releases codec resources but does not close r.
func NewReader(r io.Reader, tag Tag) (io.ReadCloser, error) {
	switch tag {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return zstdReadCloser{decoder}, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}
