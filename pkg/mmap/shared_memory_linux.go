//go:build linux

package mmap

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

const anonymousSegmentName = "plugin-mmap"

func openAnonymousSharedMemory(config *Config, size int64, req flags.SharedMemory) (int, bool, error) {
	fd, err := unix.MemfdCreate(anonymousSegmentName, unix.MFD_CLOEXEC)
	if err != nil {
		return -1, false, err
	}
	if size > 0 {
		if err := sizeSegment(config, fd, size); err != nil {
			_ = unix.Close(fd)
			return -1, false, newError("ftruncate", anonymousSegmentName, err)
		}
	}
	// A memfd is always read/write; reopening it through procfs yields a descriptor
	// with the requested access.
	fd, err = reopenWithAccess(fd, fmt.Sprintf("/proc/self/fd/%d", fd), req.Access)
	if err != nil {
		return -1, false, err
	}
	return fd, true, nil
}
