// Package fileops holds small file routines (read lines, append a line,
// copy a file) that follow the same rules as the record store: every
// handle is released before the function returns, and failures are
// reported as *storage.StorageError.
package fileops

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/aanand-mishra/record-store/internal/storage"
)

// ErrAlreadyExists is returned by CopyFile when the destination exists
// and overwrite was not requested.
var ErrAlreadyExists = errors.New("destination already exists")

// ReadLines returns the lines of the file at path without their line
// endings.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, storage.ReadError("read", path, err)
	}
	defer f.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, storage.ReadError("read", path, err)
	}
	return lines, nil
}

// AppendLine appends line and a newline to path, creating the file if
// needed.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return storage.WriteError("append", path, err)
	}
	// second Close after the explicit one below is a no-op
	defer f.Close()

	if _, err := io.WriteString(f, line+"\n"); err != nil {
		return storage.WriteError("append", path, err)
	}
	// a failed Close can mean the data never reached the disk
	if err := f.Close(); err != nil {
		return storage.WriteError("append", path, err)
	}
	return nil
}

// CopyFile copies src into dstDir under the same base name and returns
// the destination path.
//
// With overwrite, an existing destination is replaced atomically.
// Without it, an existing destination fails with ErrAlreadyExists and
// is left untouched.
func CopyFile(src, dstDir string, overwrite bool) (string, error) {
	dst := filepath.Join(dstDir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", storage.ReadError("copy", src, err)
	}
	defer in.Close()

	if overwrite {
		return dst, copyReplace(in, dst)
	}
	return dst, copyExclusive(in, dst)
}

func copyReplace(in io.Reader, dst string) error {
	pf, err := renameio.NewPendingFile(dst, renameio.WithPermissions(0o644))
	if err != nil {
		return storage.WriteError("copy", dst, err)
	}
	defer pf.Cleanup()

	if _, err := io.Copy(pf, in); err != nil {
		return copyError(dst, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return storage.WriteError("copy", dst, err)
	}
	return nil
}

func copyExclusive(in io.Reader, dst string) (err error) {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("copy %s: %w", dst, ErrAlreadyExists)
	}
	if err != nil {
		return storage.WriteError("copy", dst, err)
	}
	defer func() {
		// don't leave a partial copy behind
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	_, err = io.Copy(out, in)
	errClose := out.Close()
	if err != nil {
		return copyError(dst, err)
	}
	if errClose != nil {
		return storage.WriteError("copy", dst, errClose)
	}
	return nil
}

// copyError classifies an io.Copy failure, which can come from either
// side of the copy.
func copyError(dst string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Op == "read" {
		return storage.ReadError("copy", pathErr.Path, err)
	}
	return storage.WriteError("copy", dst, err)
}
