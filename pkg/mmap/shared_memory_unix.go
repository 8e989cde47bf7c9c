//go:build unix

package mmap

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/internal/posix"
	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

type sharedMemoryTraits struct{}

func (sharedMemoryTraits) Invalid() int { return -1 }

func (sharedMemoryTraits) Close(fd int) error {
	if fd < 0 {
		return nil
	}
	return unix.Close(fd)
}

func (sharedMemoryTraits) Kind() string { return sharedMemoryKind }

// SharedMemoryHandle owns a descriptor of a shared-memory segment.
type SharedMemoryHandle = Handle[sharedMemoryTraits, int]

func validSharedMemoryName(name string) bool {
	return name != "." && name != ".." && !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, 0)
}

func openSharedMemory(config *Config, name string, size int64, req flags.SharedMemory) (int, bool, error) {
	if name == "" {
		return openAnonymousSharedMemory(config, size, req)
	}
	path := filepath.Join(config.SharedMemoryDir, name)
	of := posix.CreateForSharedMemory(req.Access, req.Policy, req.Permissions)
	internalLogger.tracef("open %s %s", path, of)

	var (
		fd      int
		err     error
		created bool
	)
	switch req.Policy {
	case flags.OpenOrCreateNamed:
		// Try exclusive creation first so the caller learns whether it owns the sizing.
		fd, err = unix.Open(path, of.OFlag|unix.O_EXCL|unix.O_CLOEXEC, of.PMode)
		created = err == nil
		if errors.Is(err, unix.EEXIST) {
			fd, err = unix.Open(path, of.OFlag&^unix.O_CREAT|unix.O_CLOEXEC, 0)
		}
	default:
		fd, err = unix.Open(path, of.OFlag|unix.O_CLOEXEC, of.PMode)
		created = err == nil && req.Policy == flags.FailIfExists
	}
	if err != nil {
		return -1, false, err
	}
	if created && size > 0 {
		if err := sizeSegment(config, fd, size); err != nil {
			_ = unix.Close(fd)
			_ = unix.Unlink(path)
			return -1, false, newError("ftruncate", name, err)
		}
	}
	return fd, created, nil
}

// sizeSegment grows a freshly created segment. Only the creating call sizes a segment,
// so the free-space guard runs here and never for an open of an existing one.
func sizeSegment(config *Config, fd int, size int64) error {
	if config.CheckFreeSpace {
		if err := checkFreeSpace(config.SharedMemoryDir, size); err != nil {
			return err
		}
	}
	return unix.Ftruncate(fd, size)
}

// reopenWithAccess narrows a read/write descriptor of path to access. The original
// descriptor is closed either way.
func reopenWithAccess(fd int, path string, access flags.AccessRights) (int, error) {
	if access.Readable() && access.Writable() {
		return fd, nil
	}
	nfd, err := unix.Open(path, posix.AccessBits(access)|unix.O_CLOEXEC, 0)
	_ = unix.Close(fd)
	if err != nil {
		return -1, newError("reopen", path, err)
	}
	return nfd, nil
}

func removeSharedMemory(config *Config, name string) error {
	return unix.Unlink(filepath.Join(config.SharedMemoryDir, name))
}

func checkFreeSpace(dir string, size int64) error {
	stat, err := disk.Usage(dir)
	if err != nil {
		internalLogger.warnf("free space check of %s skipped: %v", dir, err)
		return nil
	}
	if stat.Free < uint64(size) {
		return fmt.Errorf("%w: dir %s free %d, need %d", ErrNoSpaceLeft, dir, stat.Free, size)
	}
	return nil
}
