package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/record-store/internal/storage"
)

func TestAppendAndReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new-file.txt")

	require.NoError(t, AppendLine(path, "Hello Test."))
	require.NoError(t, AppendLine(path, "NEW LINE"))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello Test.", "NEW LINE"}, lines)

	d, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello Test.\nNEW LINE\n", string(d))
}

func TestReadLinesEmptyAndMissing(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	lines, err := ReadLines(empty)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = ReadLines(filepath.Join(dir, "lastnames.txt"))
	assert.ErrorIs(t, err, storage.ErrPathNotFound)
}

func TestAppendLineMissingDir(t *testing.T) {
	err := AppendLine(filepath.Join(t.TempDir(), "dir", "new-file.txt"), "x")
	assert.ErrorIs(t, err, storage.ErrPathUnwritable)
}

func TestCopyFile(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "logo.png")
	require.NoError(t, os.WriteFile(src, []byte("\x89PNG fake"), 0o644))

	dst, err := CopyFile(src, dstDir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dstDir, "logo.png"), dst)
	d, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(d))

	// second copy without overwrite must not touch the destination
	require.NoError(t, os.WriteFile(src, []byte("changed"), 0o644))
	_, err = CopyFile(src, dstDir, false)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	d, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(d))

	_, err = CopyFile(src, dstDir, true)
	require.NoError(t, err)
	d, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(d))
}

func TestCopyFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := CopyFile(filepath.Join(dir, "missing.png"), dir, true)
	assert.ErrorIs(t, err, storage.ErrPathNotFound)

	src := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	for _, overwrite := range []bool{false, true} {
		_, err = CopyFile(src, filepath.Join(dir, "destination"), overwrite)
		assert.ErrorIs(t, err, storage.ErrPathUnwritable)
	}
}
