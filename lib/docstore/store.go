// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/archetype/lib/binhash"
	"github.com/bureau-foundation/archetype/lib/clock"
	"github.com/bureau-foundation/archetype/lib/codec"
	"github.com/bureau-foundation/archetype/lib/compress"
	"github.com/bureau-foundation/archetype/lib/sqlitepool"
	"github.com/bureau-foundation/archetype/lib/umi"
)

const schema = `
CREATE TABLE IF NOT EXISTS reductions (
	key         TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	source      TEXT NOT NULL,
	run_id      TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	compression INTEGER NOT NULL,
	raw_size    INTEGER NOT NULL,
	data        BLOB NOT NULL
);
`

// Config holds the parameters for opening a store.
type Config struct {
	// Path is the database file. Its directory is created if needed.
	Path string

	// PoolSize bounds concurrent connections. Zero uses the
	// sqlitepool default.
	PoolSize int

	// Compression is applied to new entries. Entries keep the tag
	// they were written with, so changing it never invalidates rows.
	Compression compress.Tag

	// Clock stamps new entries. Nil uses the real clock.
	Clock clock.Clock

	Logger *slog.Logger
}

// Entry describes one cached document.
type Entry struct {
	Key    binhash.Digest
	Name   string
	Source string
	RunID  string

	// The remaining fields are filled by the store.
	CreatedAt   time.Time
	Compression compress.Tag
	Size        int64
	RawSize     int64
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries     int64 `json:"entries"`
	StoredBytes int64 `json:"stored_bytes"`
	RawBytes    int64 `json:"raw_bytes"`
}

// Store is the reduction cache. It is safe for concurrent use.
type Store struct {
	pool        *sqlitepool.Pool
	compression compress.Tag
	clock       clock.Clock
	logger      *slog.Logger
}

// Open opens or creates the store at cfg.Path.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("docstore: Path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("docstore: creating cache directory: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: cfg.PoolSize,
		Schema:   schema,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: %w", err)
	}
	return &Store{
		pool:        pool,
		compression: cfg.Compression,
		clock:       clk,
		logger:      logger,
	}, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Get returns the document stored under key. found is false on a
// miss.
func (s *Store) Get(ctx context.Context, key binhash.Digest) (doc *umi.Document, found bool, err error) {
	var (
		compression compress.Tag
		rawSize     int
		data        []byte
	)
	err = s.pool.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			"SELECT compression, raw_size, data FROM reductions WHERE key = ?",
			&sqlitex.ExecOptions{
				Args: []any{key.String()},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					found = true
					compression = compress.Tag(stmt.ColumnInt(0))
					rawSize = stmt.ColumnInt(1)
					data = make([]byte, stmt.ColumnLen(2))
					stmt.ColumnBytes(2, data)
					return nil
				},
			})
	})
	if err != nil {
		return nil, false, fmt.Errorf("docstore: reading %s: %w", key, err)
	}
	if !found {
		return nil, false, nil
	}

	raw, err := compress.Decompress(data, compression, rawSize)
	if err != nil {
		return nil, false, fmt.Errorf("docstore: entry %s: %w", key, err)
	}
	doc = new(umi.Document)
	if err := codec.Unmarshal(raw, doc); err != nil {
		return nil, false, fmt.Errorf("docstore: decoding entry %s: %w", key, err)
	}
	return doc, true, nil
}

// Put stores doc under entry.Key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, entry Entry, doc *umi.Document) error {
	raw, err := codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: encoding %s: %w", entry.Name, err)
	}
	data, tag, err := compress.Compress(raw, s.compression)
	if err != nil {
		return fmt.Errorf("docstore: compressing %s: %w", entry.Name, err)
	}
	entry.CreatedAt = s.clock.Now().UTC()
	entry.Compression = tag
	entry.Size = int64(len(data))
	entry.RawSize = int64(len(raw))

	err = s.pool.Transaction(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT OR REPLACE INTO reductions
				(key, name, source, run_id, created_at, compression, raw_size, data)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{
				Args: []any{
					entry.Key.String(),
					entry.Name,
					entry.Source,
					entry.RunID,
					entry.CreatedAt.UnixNano(),
					int(entry.Compression),
					entry.RawSize,
					data,
				},
			})
	})
	if err != nil {
		return fmt.Errorf("docstore: writing %s: %w", entry.Name, err)
	}
	s.logger.Debug("cached reduced building",
		"key", entry.Key.String(),
		"name", entry.Name,
		"compression", entry.Compression.String(),
		"size", entry.Size,
		"raw_size", entry.RawSize,
	)
	return nil
}

// Entries lists every entry without its document, newest first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	var (
		entries []Entry
		scanErr error
	)
	err := s.pool.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT key, name, source, run_id, created_at, compression, raw_size, length(data)
				FROM reductions ORDER BY created_at DESC, key`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					key, err := binhash.ParseDigest(stmt.ColumnText(0))
					if err != nil {
						scanErr = err
						return err
					}
					entries = append(entries, Entry{
						Key:         key,
						Name:        stmt.ColumnText(1),
						Source:      stmt.ColumnText(2),
						RunID:       stmt.ColumnText(3),
						CreatedAt:   time.Unix(0, stmt.ColumnInt64(4)).UTC(),
						Compression: compress.Tag(stmt.ColumnInt(5)),
						RawSize:     stmt.ColumnInt64(6),
						Size:        stmt.ColumnInt64(7),
					})
					return nil
				},
			})
	})
	if scanErr != nil {
		return nil, fmt.Errorf("docstore: corrupt key: %w", scanErr)
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: listing entries: %w", err)
	}
	return entries, nil
}

// Stats returns the entry count and total sizes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.pool.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			"SELECT COUNT(*), COALESCE(SUM(length(data)), 0), COALESCE(SUM(raw_size), 0) FROM reductions",
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					stats.Entries = stmt.ColumnInt64(0)
					stats.StoredBytes = stmt.ColumnInt64(1)
					stats.RawBytes = stmt.ColumnInt64(2)
					return nil
				},
			})
	})
	if err != nil {
		return Stats{}, fmt.Errorf("docstore: stats: %w", err)
	}
	return stats, nil
}

// Clear deletes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.pool.Transaction(ctx, func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, "DELETE FROM reductions", nil); err != nil {
			return err
		}
		deleted = int64(conn.Changes())
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("docstore: clearing: %w", err)
	}
	s.logger.Info("reduction cache cleared", "path", s.pool.Path(), "entries", deleted)
	return deleted, nil
}
