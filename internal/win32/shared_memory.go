package win32

import "github.com/srediag/plugin-mmap/pkg/mmap/flags"

// Mapping holds the access-derived parameters shared by every file mapping.
type Mapping struct {
	// ViewAccess is the FILE_MAP_* mask used when opening or viewing the object.
	ViewAccess uint32
	// PageProtection is the PAGE_* value passed to CreateFileMapping.
	PageProtection uint32
	Inheritable    bool
}

// NewMapping derives view access and page protection from access rights. Windows has no
// write-only pages, so write implies read.
func NewMapping(access flags.AccessRights, inheritable bool) Mapping {
	m := Mapping{Inheritable: inheritable}
	if access.Readable() {
		m.ViewAccess |= FileMapRead
	}
	if access.Writable() {
		m.ViewAccess |= FileMapWrite
	}
	if access.Executable() {
		m.ViewAccess |= FileMapExecute
	}
	switch {
	case access.Executable() && access.Writable():
		m.PageProtection = PageExecuteReadWrite
	case access.Executable():
		m.PageProtection = PageExecuteRead
	case access.Writable():
		m.PageProtection = PageReadWrite
	default:
		m.PageProtection = PageReadonly
	}
	return m
}

// SharedMemory holds CreateFileMapping parameters for a paging-file backed object.
type SharedMemory struct {
	Mapping
	Policy flags.NamedObjectPolicy
	// SectionFlags is SEC_COMMIT or SEC_RESERVE.
	SectionFlags uint32
}

// CreateSharedMemory translates a shared-memory request.
func CreateSharedMemory(access flags.AccessRights, policy flags.NamedObjectPolicy, hint flags.SharedMemoryHints, inheritable bool) SharedMemory {
	section := uint32(SecCommit)
	if hint == flags.OnlyReserveAddressSpace {
		section = SecReserve
	}
	return SharedMemory{
		Mapping:      NewMapping(access, inheritable),
		Policy:       policy,
		SectionFlags: section,
	}
}

// Protection is the flProtect argument for CreateFileMapping.
func (s SharedMemory) Protection() uint32 {
	return s.PageProtection | s.SectionFlags
}
