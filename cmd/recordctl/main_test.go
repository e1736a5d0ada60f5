package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/record-store/internal/account"
	"github.com/aanand-mishra/record-store/internal/codec"
	"github.com/aanand-mishra/record-store/internal/fileops"
	"github.com/aanand-mishra/record-store/internal/input"
	"github.com/aanand-mishra/record-store/internal/storage"
)

func runOut(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestDemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	out, err := runOut(t, "demo", "-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice (age 30)\nBob (age 25)\nCharles (age 35)\n")

	out, err = runOut(t, "load", "-path", path)
	require.NoError(t, err)
	got, err := codec.Decode([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, demoPeople, got)
}

func TestSaveLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.db")
	out, err := runOut(t, "save", "-path", path, "-driver", "sqlite", "Dora:4", "Mr: Smith:60")
	require.NoError(t, err)
	assert.Contains(t, out, "saved 2 records")

	out, err = runOut(t, "load", "-path", path, "-driver", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Mr: Smith"`)
}

func TestStoreFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "local.yaml")
	storePath := filepath.Join(dir, "people.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage_path: \""+storePath+"\"\n"), 0o644))

	_, err := runOut(t, "demo", "-config", cfgPath)
	require.NoError(t, err)
	assert.FileExists(t, storePath)
}

func TestStoreErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := runOut(t, "load", "-path", filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, storage.ErrPathNotFound)

	_, err = runOut(t, "save", "-path", filepath.Join(dir, "p.json"), "Neg:-1")
	var verr *codec.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = runOut(t, "save", "-path", filepath.Join(dir, "p.json"), "NoAge")
	assert.ErrorIs(t, err, errUsage)

	_, err = runOut(t, "load")
	assert.ErrorIs(t, err, errUsage)
}

func TestFileCommands(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "new-file.txt")

	_, err := runOut(t, "append", "-path", notes, "Hello Test.", "NEW LINE")
	require.NoError(t, err)
	out, err := runOut(t, "lines", "-path", notes)
	require.NoError(t, err)
	assert.Equal(t, "Hello Test.\nNEW LINE\n", out)

	dst := filepath.Join(dir, "destination")
	require.NoError(t, os.Mkdir(dst, 0o755))
	_, err = runOut(t, "copy", notes, dst)
	require.NoError(t, err)
	_, err = runOut(t, "copy", notes, dst)
	assert.ErrorIs(t, err, fileops.ErrAlreadyExists)
	_, err = runOut(t, "copy", "-overwrite", notes, dst)
	assert.NoError(t, err)
}

func TestInputCommands(t *testing.T) {
	out, err := runOut(t, "number", "12")
	require.NoError(t, err)
	assert.Equal(t, "Entered number is: 12\n", out)

	_, err = runOut(t, "number", "12A")
	assert.ErrorIs(t, err, input.ErrNotANumber)

	out, err = runOut(t, "birthday", "1990-05-17")
	require.NoError(t, err)
	assert.Equal(t, "Your next birthday is: 1991-05-17\n", out)

	out, err = runOut(t, "divide", "10", "3")
	require.NoError(t, err)
	assert.Equal(t, "Result: 3\n", out)

	_, err = runOut(t, "divide", "10", "0")
	assert.ErrorIs(t, err, input.ErrDivideByZero)
}

func TestWithdrawCommand(t *testing.T) {
	out, err := runOut(t, "withdraw", "-balance", "100", "30")
	require.NoError(t, err)
	assert.Equal(t, "withdrew 30, balance is now 70\n", out)

	_, err = runOut(t, "withdraw", "-balance", "100", "200")
	var funds *account.InsufficientFundsError
	require.True(t, errors.As(err, &funds))
	assert.Equal(t, int64(100), funds.Balance)
	assert.Equal(t, int64(200), funds.Amount)
}

func TestUsage(t *testing.T) {
	_, err := runOut(t)
	assert.ErrorIs(t, err, errUsage)

	_, err = runOut(t, "frobnicate")
	assert.ErrorIs(t, err, errUsage)

	out, err := runOut(t, "help")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "usage: recordctl"))
}
