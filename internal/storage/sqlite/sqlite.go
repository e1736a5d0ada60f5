// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The store keeps the same contract as the JSON file store: Save fully
// replaces the contents, Load returns everything in saved order, and no
// connection is held between calls. Each call opens the database file,
// does its work, and closes it again.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/record-store/internal/codec"
	"github.com/aanand-mishra/record-store/internal/storage"
	"github.com/aanand-mishra/record-store/internal/types"
)

// Schema:
//
//	position: index of the record in the saved slice, defines load order
//	name:     record name, never empty
//	age:      record age, never negative
const createTable = `
	CREATE TABLE IF NOT EXISTS records (
		position INTEGER PRIMARY KEY,
		name     TEXT    NOT NULL,
		age      INTEGER NOT NULL
	)
`

// Store is the SQLite implementation of storage.Storage.
type Store struct {
	path string
}

var _ storage.Storage = (*Store)(nil)

// New returns a Store for the database file at path. The file is
// created by the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces every row with records inside a single transaction.
// If anything fails the transaction is rolled back and the previous
// rows stay in place.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Save(records []types.Record) (err error) {
	if err := codec.Validate(records); err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("sqlite.Save: open db: %w", err)
	}
	defer db.Close()

	// Begin is the first call that touches the file
	tx, err := db.Begin()
	if err != nil {
		return s.writeError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(createTable); err != nil {
		return s.writeError(err)
	}
	if _, err = tx.Exec("DELETE FROM records"); err != nil {
		return s.writeError(err)
	}

	stmt, err := tx.Prepare("INSERT INTO records (position, name, age) VALUES (?, ?, ?)")
	if err != nil {
		return s.writeError(err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err = stmt.Exec(i, rec.Name, rec.Age); err != nil {
			return s.writeError(err)
		}
	}

	if err = tx.Commit(); err != nil {
		return s.writeError(err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Load returns all rows ordered by position.
//
// A missing file is PathNotFound; it is checked before opening because
// SQLite would otherwise create an empty database. A file without a
// records table, or rows that break a record rule, fail with
// *codec.DecodeError like a bad JSON file would.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Load() ([]types.Record, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, storage.ReadError("load", s.path, err)
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load: open db: %w", err)
	}
	defer db.Close()

	var tables int
	err = db.QueryRow(
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'records'",
	).Scan(&tables)
	if err != nil {
		return nil, s.readError(err)
	}
	if tables == 0 {
		return nil, &codec.DecodeError{
			Kind:  codec.MalformedSyntax,
			Index: -1,
			Err:   errors.New("no records table"),
		}
	}

	rows, err := db.Query("SELECT name, age FROM records ORDER BY position")
	if err != nil {
		return nil, s.readError(err)
	}
	defer rows.Close()

	records := make([]types.Record, 0)
	for i := 0; rows.Next(); i++ {
		var rec types.Record
		if err := rows.Scan(&rec.Name, &rec.Age); err != nil {
			return nil, &codec.DecodeError{Kind: codec.TypeMismatch, Index: i, Err: err}
		}
		if err := codec.CheckRecord(i, rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, s.readError(err)
	}
	return records, nil
}

func (s *Store) writeError(err error) error {
	if kind, ok := kindOf(err, storage.PathUnwritable); ok {
		return &storage.StorageError{Kind: kind, Op: "save", Path: s.path, Err: err}
	}
	return storage.WriteError("save", s.path, err)
}

func (s *Store) readError(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrNotADB {
		return &codec.DecodeError{Kind: codec.MalformedSyntax, Index: -1, Err: err}
	}
	if kind, ok := kindOf(err, storage.IOFailure); ok {
		return &storage.StorageError{Kind: kind, Op: "load", Path: s.path, Err: err}
	}
	return storage.ReadError("load", s.path, err)
}

// kindOf classifies driver errors. cantOpen is the kind used when SQLite
// could not open the file for a reason other than permissions.
func kindOf(err error, cantOpen storage.Kind) (storage.Kind, bool) {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return 0, false
	}
	switch se.Code {
	case sqlite3.ErrPerm, sqlite3.ErrReadonly, sqlite3.ErrAuth:
		return storage.PermissionDenied, true
	case sqlite3.ErrCantOpen:
		if se.SystemErrno == syscall.EACCES || se.SystemErrno == syscall.EPERM {
			return storage.PermissionDenied, true
		}
		return cantOpen, true
	}
	return storage.IOFailure, true
}
