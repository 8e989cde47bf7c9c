//go:build windows

package mmap

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/srediag/plugin-mmap/internal/win32"
	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")
)

// CreateFileMapping reports failure with NULL, not INVALID_HANDLE_VALUE.
type sharedMemoryTraits struct{}

func (sharedMemoryTraits) Invalid() windows.Handle { return 0 }

func (sharedMemoryTraits) Close(h windows.Handle) error {
	if h == 0 {
		return nil
	}
	return windows.CloseHandle(h)
}

func (sharedMemoryTraits) Kind() string { return sharedMemoryKind }

// SharedMemoryHandle owns a file-mapping object backed by the paging file.
type SharedMemoryHandle = Handle[sharedMemoryTraits, windows.Handle]

func validSharedMemoryName(name string) bool {
	for _, r := range name {
		if r == 0 {
			return false
		}
	}
	return true
}

func openSharedMemory(_ *Config, name string, size int64, req flags.SharedMemory) (windows.Handle, bool, error) {
	tr := win32.CreateSharedMemory(req.Access, req.Policy, req.Hints, req.Inheritable)
	var namep *uint16
	if name != "" {
		p, err := windows.UTF16PtrFromString(name)
		if err != nil {
			return 0, false, err
		}
		namep = p
	}

	if tr.Policy == flags.OpenIfExists {
		h, err := openFileMapping(tr.ViewAccess, tr.Inheritable, namep)
		return h, false, err
	}

	var sa *windows.SecurityAttributes
	if tr.Inheritable {
		sa = &windows.SecurityAttributes{InheritHandle: 1}
		sa.Length = uint32(unsafe.Sizeof(*sa))
	}
	internalLogger.tracef("CreateFileMapping %s protect=%#x size=%d", name, tr.Protection(), size)
	h, err := windows.CreateFileMapping(windows.InvalidHandle, sa, tr.Protection(),
		uint32(uint64(size)>>32), uint32(uint64(size)), namep)
	if h == 0 {
		return 0, false, err
	}
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if tr.Policy == flags.FailIfExists {
			_ = windows.CloseHandle(h)
			return 0, false, windows.ERROR_ALREADY_EXISTS
		}
		return h, false, nil
	}
	return h, true, nil
}

// Named mappings live as long as a handle to them is open.
func removeSharedMemory(_ *Config, _ string) error {
	return nil
}

func openFileMapping(desiredAccess uint32, inheritHandle bool, name *uint16) (windows.Handle, error) {
	inherit := 0
	if inheritHandle {
		inherit = 1
	}
	r1, _, e1 := procOpenFileMappingW.Call(
		uintptr(desiredAccess),
		uintptr(inherit),
		uintptr(unsafe.Pointer(name)),
	)
	if r1 == 0 {
		return 0, e1
	}
	return windows.Handle(r1), nil
}
