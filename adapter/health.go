// Package adapter connects plugin-mmap to external monitoring systems.
package adapter

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/srediag/plugin-mmap/pkg/mmap"
)

// SharedMemoryDirCheck fails when dir cannot be inspected or has less than minFree bytes
// available for new segments.
func SharedMemoryDirCheck(dir string, minFree uint64) healthcheck.Check {
	return func() error {
		stat, err := disk.Usage(dir)
		if err != nil {
			return fmt.Errorf("shared memory dir %s: %w", dir, err)
		}
		if stat.Free < minFree {
			return fmt.Errorf("shared memory dir %s: %d bytes free, need %d: %w", dir, stat.Free, minFree, mmap.ErrNoSpaceLeft)
		}
		return nil
	}
}

// NewHealthHandler returns a health handler whose readiness depends on the shared-memory
// directory of config.
func NewHealthHandler(config *mmap.Config, minFree uint64) healthcheck.Handler {
	h := healthcheck.NewHandler()
	h.AddReadinessCheck("shared-memory-dir", SharedMemoryDirCheck(config.SharedMemoryDir, minFree))
	return h
}
