// Package store persists Lumi's history in a local SQLite file: finished
// sessions, mistake status changes, coin and XP movements, LLM calls and
// wallet snapshots. Tables are append-only and ordered by one global
// sequence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "modernc.org/sqlite"
)

// Store owns the database handle.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// pragmas tune SQLite for one local learner: WAL so the TUI and `lumi
// serve` can share the file, and a busy timeout instead of SQLITE_BUSY.
var pragmas = []string{
	"journal_mode = WAL",
	"busy_timeout = 5000",
	"foreign_keys = ON",
	"synchronous = NORMAL",
}

// Open opens (or creates) the database at dsn and brings the tables up to
// date with the ent schema definitions.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return s, nil
}

func (s *Store) init() error {
	for _, p := range pragmas {
		if _, err := s.db.Exec("PRAGMA " + p); err != nil {
			return fmt.Errorf("pragma %s: %w", p, err)
		}
	}
	if err := migrate(context.Background(), entsql.OpenDB(dialect.SQLite, s.db)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	seq, err := newSequenceCounter(s.db)
	if err != nil {
		return err
	}
	s.seq = seq
	return nil
}

// DB exposes the handle for ad-hoc queries in tests and `lumi reset`.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

func (s *Store) SnapshotRepo() SnapshotRepo {
	return &snapshotRepo{db: s.db, seq: s.seq}
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// DefaultDBPath returns $LUMI_DB, else $XDG_DATA_HOME/lumi/lumi.db, else
// ~/.local/share/lumi/lumi.db. The parent directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("LUMI_DB")
	if p == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		p = filepath.Join(base, "lumi", "lumi.db")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return p, nil
}
