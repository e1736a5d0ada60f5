package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a StorageError.
type Kind int

const (
	PathNotFound Kind = iota + 1
	PermissionDenied
	PathUnwritable
	IOFailure
)

func (k Kind) String() string {
	switch k {
	case PathNotFound:
		return "path not found"
	case PermissionDenied:
		return "permission denied"
	case PathUnwritable:
		return "path unwritable"
	case IOFailure:
		return "i/o failure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is; a *StorageError matches the sentinel with
// the same Kind.
var (
	ErrPathNotFound     = &StorageError{Kind: PathNotFound}
	ErrPermissionDenied = &StorageError{Kind: PermissionDenied}
	ErrPathUnwritable   = &StorageError{Kind: PathUnwritable}
	ErrIOFailure        = &StorageError{Kind: IOFailure}
)

// StorageError reports a failed filesystem operation. Op is the store
// operation ("save", "load", ...), Path the file involved and Err the
// underlying OS error.
type StorageError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	var t *StorageError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// ReadError translates an error from opening or reading path.
// Already-translated errors are returned unchanged.
func ReadError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var serr *StorageError
	if errors.As(err, &serr) {
		return err
	}
	kind := IOFailure
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		kind = PathNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = PermissionDenied
	}
	return &StorageError{Kind: kind, Op: op, Path: path, Err: err}
}

// WriteError translates an error from creating, writing or renaming
// onto path. A missing parent directory or a path that names a
// directory is PathUnwritable rather than PathNotFound.
func WriteError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var serr *StorageError
	if errors.As(err, &serr) {
		return err
	}
	kind := IOFailure
	switch {
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		kind = PermissionDenied
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ENOTDIR),
		errors.Is(err, syscall.EISDIR),
		errors.Is(err, fs.ErrExist),
		errors.Is(err, syscall.ENOTEMPTY):
		kind = PathUnwritable
	}
	return &StorageError{Kind: kind, Op: op, Path: path, Err: err}
}
