// Package jsonfile stores records as a pretty-printed JSON array in a
// single file.
//
// Saves are atomic: the data goes to a temporary file in the same
// directory which is renamed over the destination only after a
// successful write and fsync. A failed save leaves the previous file (or
// no file) in place, never a truncated one.
package jsonfile

import (
	"io"
	"os"

	"github.com/google/renameio/v2"

	"github.com/aanand-mishra/record-store/internal/codec"
	"github.com/aanand-mishra/record-store/internal/storage"
	"github.com/aanand-mishra/record-store/internal/types"
)

const filePerm = 0o644

// Store is a storage.Storage backed by one JSON file. It holds no open
// handles between calls.
type Store struct {
	path string
}

var _ storage.Storage = (*Store)(nil)

// New returns a Store for path. Nothing is opened or created until the
// first Save.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Save replaces the file contents with records.
func (s *Store) Save(records []types.Record) error {
	data, err := codec.Encode(records)
	if err != nil {
		return err
	}

	pf, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(filePerm))
	if err != nil {
		return storage.WriteError("save", s.path, err)
	}
	// removes the temporary file unless CloseAtomicallyReplace succeeded
	defer pf.Cleanup()

	if _, err := pf.Write(data); err != nil {
		return storage.WriteError("save", s.path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return storage.WriteError("save", s.path, err)
	}
	return nil
}

// Load reads and decodes the whole file. Decode failures are returned
// as the codec's *DecodeError, unchanged.
func (s *Store) Load() ([]types.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, storage.ReadError("load", s.path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, storage.ReadError("load", s.path, err)
	}
	return codec.Decode(data)
}
