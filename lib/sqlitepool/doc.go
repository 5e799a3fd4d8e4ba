// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides the SQLite connection pool behind the
// reduction cache.
//
// It wraps zombiezen.com/go/sqlite's sqlitex.Pool and applies one set
// of pragmas to every connection:
//
//   - journal_mode=WAL: batch workers read cached documents while one
//     of them writes a new entry.
//   - synchronous=NORMAL: committed entries survive a crashed run. A
//     lost entry after power failure only costs a re-reduction.
//   - busy_timeout=5000: concurrent writers wait for the lock instead
//     of failing with SQLITE_BUSY.
//   - cache_size=-8192: 8 MB page cache per connection.
//   - temp_store=MEMORY.
//
// Connections are not safe for concurrent use. Callers either Take and
// Put a connection themselves or run a function with [Pool.Do] or
// [Pool.Transaction]:
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   filepath.Join(cacheDir, "reductions.db"),
//	    Schema: schema,
//	    Logger: logger,
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	err = pool.Transaction(ctx, func(conn *sqlite.Conn) error {
//	    return sqlitex.Execute(conn, "DELETE FROM entries", nil)
//	})
package sqlitepool
