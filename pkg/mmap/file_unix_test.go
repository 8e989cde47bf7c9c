//go:build unix

package mmap

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

func testOpener(t *testing.T) *Opener {
	t.Helper()
	config := DefaultConfig()
	config.SharedMemoryDir = t.TempDir()
	config.CheckFreeSpace = false
	o, err := NewOpener(config)
	require.NoError(t, err)
	return o
}

func TestOpenFileCreateAndReopen(t *testing.T) {
	o := testOpener(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.bin")

	res := o.OpenFile(ctx, path, flags.NewFile(flags.ReadWrite, flags.CreateNewOrTruncateExisting, flags.NoHints, 0))
	require.True(t, res.OK(), "%v", res.Err())
	h := res.Value()
	require.True(t, h.Valid())
	_, err := unix.Write(h.Get(), []byte("hello"))
	require.NoError(t, err)
	h.Close()
	assert.False(t, h.Valid())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	res = o.OpenFile(ctx, path, flags.ForOpeningExistingFiles(flags.Read, false, flags.NoHints))
	h, err = res.Get()
	require.NoError(t, err)
	defer h.Close()
	buf := make([]byte, 8)
	n, err := unix.Read(h.Get(), buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestOpenFileTruncateExisting(t *testing.T) {
	o := testOpener(t)
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0600))

	h, err := o.OpenFile(context.Background(), path, flags.ForOpeningExistingFiles(flags.ReadWrite, true, flags.NoHints)).Get()
	require.NoError(t, err)
	h.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestOpenFileMissing(t *testing.T) {
	o := testOpener(t)
	path := filepath.Join(t.TempDir(), "missing.bin")

	res := o.OpenFile(context.Background(), path, flags.ForOpeningExistingFiles(flags.Read, false, flags.NoHints))
	require.False(t, res.OK())
	assert.ErrorIs(t, res.Err(), fs.ErrNotExist)

	var perr *Error
	require.ErrorAs(t, res.Err(), &perr)
	assert.Equal(t, "open", perr.Op)
	assert.Equal(t, path, perr.Name)
	assert.Equal(t, unix.ENOENT, perr.Code)
}

func TestOpenFileCreateNewFailsIfExists(t *testing.T) {
	o := testOpener(t)
	path := filepath.Join(t.TempDir(), "data.bin")
	req := flags.NewFile(flags.ReadWrite, flags.CreateNew, flags.NoHints, flags.OwnerReadWrite)

	h, err := o.OpenFile(context.Background(), path, req).Get()
	require.NoError(t, err)
	defer h.Close()

	res := o.OpenFile(context.Background(), path, req)
	assert.ErrorIs(t, res.Err(), fs.ErrExist)
}

func TestOpenFileCanceledContext(t *testing.T) {
	o := testOpener(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := o.OpenFile(ctx, filepath.Join(t.TempDir(), "x"), flags.NewFile(flags.ReadWrite, flags.OpenOrCreate, flags.NoHints, 0))
	assert.ErrorIs(t, res.Err(), context.Canceled)
}

func TestOpenFileHandleClosesDescriptor(t *testing.T) {
	o := testOpener(t)
	path := filepath.Join(t.TempDir(), "data.bin")
	h, err := o.OpenFile(context.Background(), path, flags.NewFile(flags.ReadWrite, flags.OpenOrCreate, flags.NoHints, 0)).Get()
	require.NoError(t, err)

	fd := h.Get()
	_, err = unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	require.NoError(t, err)
	h.Close()
	_, err = unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	assert.ErrorIs(t, err, unix.EBADF)
}

func TestOpenFilePackageLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	h, err := OpenFile(context.Background(), path, flags.NewFile(flags.ReadWrite, flags.CreateNew, flags.NoHints, flags.OwnerReadWrite)).Get()
	require.NoError(t, err)
	h.Close()
	assert.FileExists(t, path)
}
