//go:build unix && !linux

package mmap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/internal/posix"
	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

const maxAnonymousNameAttempts = 16

var anonymousSeq atomic.Uint64

// openAnonymousSharedMemory creates a file in the shared-memory directory and unlinks it
// once sized, leaving the descriptor as the only reference.
func openAnonymousSharedMemory(config *Config, size int64, req flags.SharedMemory) (int, bool, error) {
	for i := 0; i < maxAnonymousNameAttempts; i++ {
		path := filepath.Join(config.SharedMemoryDir,
			fmt.Sprintf("plugin-mmap-anon-%d-%d", os.Getpid(), anonymousSeq.Add(1)))
		fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, posix.RightsBits(req.Permissions))
		if errors.Is(err, unix.EEXIST) {
			continue
		}
		if err != nil {
			return -1, false, err
		}
		if size > 0 {
			if err := sizeSegment(config, fd, size); err != nil {
				_ = unix.Close(fd)
				_ = unix.Unlink(path)
				return -1, false, newError("ftruncate", path, err)
			}
		}
		fd, err = reopenWithAccess(fd, path, req.Access)
		if uerr := unix.Unlink(path); uerr != nil {
			internalLogger.warnf("unlink anonymous segment %s: %v", path, uerr)
		}
		if err != nil {
			return -1, false, err
		}
		return fd, true, nil
	}
	return -1, false, unix.EEXIST
}
