package mmap

import (
	"context"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

// OpenSharedMemory opens or creates a shared-memory segment with the default Opener.
func OpenSharedMemory(ctx context.Context, name string, size int64, req flags.SharedMemory) Result[*SharedMemoryHandle] {
	return Default().OpenSharedMemory(ctx, name, size, req)
}

// RemoveSharedMemory removes a named segment with the default Opener.
func RemoveSharedMemory(name string) error {
	return Default().RemoveSharedMemory(name)
}

// OpenSharedMemory opens or creates the segment name. An empty name creates an anonymous
// segment, which is always created regardless of the policy. When the call creates the
// segment and size is positive, the segment is sized to size bytes; opening an existing
// segment leaves its size alone. Anonymous segments get the requested access on POSIX
// hosts as well as on windows.
func (o *Opener) OpenSharedMemory(ctx context.Context, name string, size int64, req flags.SharedMemory) Result[*SharedMemoryHandle] {
	if size < 0 {
		return Fail[*SharedMemoryHandle](ErrInvalidSize)
	}
	if name == "" && req.Policy == flags.OpenIfExists {
		return Fail[*SharedMemoryHandle](ErrInvalidName)
	}
	if name != "" && !validSharedMemoryName(name) {
		return Fail[*SharedMemoryHandle](ErrInvalidName)
	}
	if req.Permissions == 0 {
		req.Permissions = o.config.DefaultPermissions
	}

	var (
		native  Native
		created bool
	)
	err := o.create(ctx, sharedMemoryKind, "open", name, func() (err error) {
		native, created, err = openSharedMemory(o.config, name, size, req)
		return err
	})
	if err != nil {
		return Fail[*SharedMemoryHandle](err)
	}
	if created && name != "" {
		o.created.Set(name, struct{}{})
		internalLogger.infof("created shared memory %s size %d %s", name, size, req)
	}
	return Ok(NewHandle[sharedMemoryTraits, Native](native))
}

// RemoveSharedMemory removes the named segment. Handles already open stay usable.
func (o *Opener) RemoveSharedMemory(name string) error {
	if name == "" || !validSharedMemoryName(name) {
		return ErrInvalidName
	}
	if err := removeSharedMemory(o.config, name); err != nil {
		return newError("remove", name, err)
	}
	o.created.Remove(name)
	return nil
}
