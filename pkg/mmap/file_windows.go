//go:build windows

package mmap

import (
	"errors"

	"golang.org/x/sys/windows"

	"github.com/srediag/plugin-mmap/internal/win32"
	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

// Native is the platform's native handle type, a kernel object handle.
type Native = windows.Handle

type fileTraits struct{}

func (fileTraits) Invalid() windows.Handle { return windows.InvalidHandle }

func (fileTraits) Close(h windows.Handle) error {
	if h == windows.InvalidHandle {
		return nil
	}
	return windows.CloseHandle(h)
}

func (fileTraits) Kind() string { return fileKind }

// FileHandle owns a file handle from CreateFile.
type FileHandle = Handle[fileTraits, windows.Handle]

func openFile(name string, req flags.File) (windows.Handle, error) {
	ff := win32.CreateFile(req.Access, req.Policy, req.Hints)
	path, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return windows.InvalidHandle, err
	}
	internalLogger.tracef("CreateFile %s access=%#x disposition=%d attributes=%#x",
		name, ff.DesiredAccess, ff.CreationDisposition, ff.FlagsAndAttributes)
	return windows.CreateFile(path, ff.DesiredAccess, ff.ShareMode, nil,
		ff.CreationDisposition, ff.FlagsAndAttributes, 0)
}

func isTransient(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) || errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}
