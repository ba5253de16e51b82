// Package cachedb provides an optional, disabled-by-default memoization
// layer for set-algebra sub-command results, backed by a DuckDB file.
//
// The store is opt-in (only consulted when --cache-db is passed) and
// advisory: a cache miss, corrupt cache, or absent flag always falls back
// to full recomputation, so correctness never depends on it.
package cachedb

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store wraps a DuckDB connection holding memoized operation results keyed
// on a fingerprint of the inputs plus the parameter bundle.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS operation_results (
		operation       VARCHAR,
		input_hash      VARCHAR,
		param_hash      VARCHAR,
		output_tsv_path VARCHAR,
		row_count       BIGINT,
		PRIMARY KEY (operation, input_hash, param_hash)
	)`)
	return err
}

// Key identifies one memoized invocation: which operation, a fingerprint
// of the input files, and a hash of the parameter bundle that produced the
// output.
type Key struct {
	Operation string
	InputHash string
	ParamHash string
}

// Lookup returns the cached output path and row count for key, and whether
// an entry was found.
func (s *Store) Lookup(key Key) (outputPath string, rowCount int64, found bool, err error) {
	row := s.db.QueryRow(
		`SELECT output_tsv_path, row_count FROM operation_results WHERE operation = ? AND input_hash = ? AND param_hash = ?`,
		key.Operation, key.InputHash, key.ParamHash,
	)
	if err := row.Scan(&outputPath, &rowCount); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, false, nil
		}
		return "", 0, false, err
	}
	return outputPath, rowCount, true, nil
}

// Put records a memoized result. Re-running the same
// operation/inputs/params overwrites the prior row via the PRIMARY KEY
// conflict.
func (s *Store) Put(key Key, outputPath string, rowCount int64) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO operation_results (operation, input_hash, param_hash, output_tsv_path, row_count) VALUES (?, ?, ?, ?, ?)`,
		key.Operation, key.InputHash, key.ParamHash, outputPath, rowCount,
	)
	return err
}

// HashFiles returns a stable fingerprint across one or more input file
// paths, used as Key.InputHash. It hashes each path with its size and
// modification time rather than file contents: cheap for multi-gigabyte
// inputs, and a stale hit only costs a recomputation since the cache is
// advisory. Order-sensitive: the same files in a different --tsv-file
// order are treated as a different cache entry, since
// merge/intersect/compare component IDs are themselves order-sensitive.
func HashFiles(paths []string) (string, error) {
	h := sha256.New()
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("stat input %s: %w", p, err)
		}
		fmt.Fprintf(h, "%s:%d:%d\n", p, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashParams hashes an arbitrary, already-canonicalized parameter
// description string (the CLI formats its own flag values into this string
// so the hash reflects exactly what was passed).
func HashParams(description string) string {
	sum := sha256.Sum256([]byte(description))
	return hex.EncodeToString(sum[:])
}
