package mmap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

const (
	defaultCreateRetries = 3
	defaultRetryInterval = 5 * time.Millisecond

	tracerName = "github.com/srediag/plugin-mmap/pkg/mmap"
)

// Config controls how an Opener creates handles.
type Config struct {
	// SharedMemoryDir holds named shared-memory segments on POSIX hosts. Unused on Windows.
	SharedMemoryDir string
	// DefaultPermissions are used for created files and segments whose request
	// carries no permissions.
	DefaultPermissions flags.ConstructionRights
	// CreateRetries bounds retries of a native create-call that failed with a transient
	// error. Zero disables retrying.
	CreateRetries uint64
	// RetryInterval is the initial backoff between retries.
	RetryInterval time.Duration
	// CheckFreeSpace makes the linux facade verify the shared-memory directory has room
	// for a segment before creating it.
	CheckFreeSpace bool
	// Tracer records a span per native create-call. Nil means no tracing.
	Tracer trace.Tracer
}

// DefaultConfig returns the default config. The env `MMAP_SHM_DIR` overrides the
// shared-memory directory.
func DefaultConfig() *Config {
	dir := defaultSharedMemoryDir()
	if v := os.Getenv("MMAP_SHM_DIR"); v != "" {
		dir = v
	}
	return &Config{
		SharedMemoryDir:    dir,
		DefaultPermissions: flags.OwnerReadWrite,
		CreateRetries:      defaultCreateRetries,
		RetryInterval:      defaultRetryInterval,
		CheckFreeSpace:     runtime.GOOS == "linux",
	}
}

// VerifyConfig reports the first invalid field of config.
func VerifyConfig(config *Config) error {
	if config == nil {
		return errors.New("config is nil")
	}
	if runtime.GOOS != "windows" {
		if config.SharedMemoryDir == "" {
			return errors.New("SharedMemoryDir must not be empty")
		}
		if !filepath.IsAbs(config.SharedMemoryDir) {
			return fmt.Errorf("SharedMemoryDir %q must be an absolute path", config.SharedMemoryDir)
		}
	}
	if config.DefaultPermissions == 0 {
		return errors.New("DefaultPermissions must grant at least one right")
	}
	if config.DefaultPermissions&^(flags.OwnerRead|flags.OwnerWrite|flags.OwnerExecute) != 0 {
		return fmt.Errorf("DefaultPermissions %#x has unknown bits", uint8(config.DefaultPermissions))
	}
	if config.RetryInterval < 0 {
		return fmt.Errorf("RetryInterval %s must not be negative", config.RetryInterval)
	}
	if config.CreateRetries > 0 && config.RetryInterval == 0 {
		return errors.New("RetryInterval must be positive when CreateRetries is set")
	}
	return nil
}

func (c *Config) tracer() trace.Tracer {
	if c.Tracer != nil {
		return c.Tracer
	}
	return noop.NewTracerProvider().Tracer(tracerName)
}

func defaultSharedMemoryDir() string {
	if runtime.GOOS == "linux" {
		return "/dev/shm"
	}
	return os.TempDir()
}
