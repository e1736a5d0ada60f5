// Package storage defines the Storage interface that every record store
// backend satisfies, and the StorageError taxonomy backends use to
// report filesystem failures.
//
// Handlers and the CLI depend only on this interface, so the JSON file
// backend (storage/jsonfile) and the SQLite backend (storage/sqlite)
// are interchangeable.
package storage

import "github.com/aanand-mishra/record-store/internal/types"

// Storage is the record store contract.
//
// Implementations are stateless apart from their path: each call opens
// and releases its own file handle before returning. They are not safe
// for concurrent use on the same path; wrap them in Locked for that.
type Storage interface {
	// Save replaces the stored contents with records, in order.
	// Fails with *StorageError (PathUnwritable, PermissionDenied,
	// IOFailure) or *codec.ValidationError for invalid records.
	Save(records []types.Record) error

	// Load returns every stored record, in the order they were saved.
	// Fails with *StorageError (PathNotFound, PermissionDenied,
	// IOFailure) or *codec.DecodeError, never with a partial result.
	Load() ([]types.Record, error)

	// Path is the location the backend owns.
	Path() string
}
