//go:build unix

package mmap

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/internal/posix"
	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

// Native is the platform's native handle type, a file descriptor.
type Native = int

type fileTraits struct{}

func (fileTraits) Invalid() int { return -1 }

func (fileTraits) Close(fd int) error {
	if fd < 0 {
		return nil
	}
	return unix.Close(fd)
}

func (fileTraits) Kind() string { return fileKind }

// FileHandle owns a file descriptor.
type FileHandle = Handle[fileTraits, int]

func openFile(name string, req flags.File) (int, error) {
	of := posix.Create(req.Access, req.Policy, req.Hints, req.Permissions)
	internalLogger.tracef("open %s %s", name, of)
	return unix.Open(name, of.OFlag|unix.O_CLOEXEC, of.PMode)
}

func isTransient(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}
