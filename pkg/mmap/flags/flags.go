// Package flags defines the portable vocabulary used to request access, creation and
// caching behaviour for mappable objects.
//
// Values here describe intent only. The platform translators in internal/posix and
// internal/win32 resolve them to native bits at build time.
package flags

import "strings"

// AccessRights is a set of handle access rights.
type AccessRights uint8

const (
	Read AccessRights = 1 << iota
	Write
	Execute

	ReadWrite = Read | Write
	All       = Read | Write | Execute
)

// Readable reports whether a includes read access.
func (a AccessRights) Readable() bool { return a&Read != 0 }

// Writable reports whether a includes write access.
func (a AccessRights) Writable() bool { return a&Write != 0 }

// Executable reports whether a includes execute access.
func (a AccessRights) Executable() bool { return a&Execute != 0 }

func (a AccessRights) String() string {
	return joinBits(uint8(a), []string{"read", "write", "execute"})
}

// OpenPolicy selects what happens when the target file does or does not exist.
type OpenPolicy uint8

const (
	// CreateNew fails if the file exists.
	CreateNew OpenPolicy = iota
	// CreateNewOrTruncateExisting always yields an empty file.
	CreateNewOrTruncateExisting
	// OpenExisting fails if the file does not exist.
	OpenExisting
	// OpenOrCreate opens the file, creating it when missing.
	OpenOrCreate
	// OpenAndTruncateExisting fails if the file does not exist and empties it otherwise.
	OpenAndTruncateExisting
)

var openPolicyNames = [...]string{
	CreateNew:                   "create_new",
	CreateNewOrTruncateExisting: "create_new_or_truncate_existing",
	OpenExisting:                "open_existing",
	OpenOrCreate:                "open_or_create",
	OpenAndTruncateExisting:     "open_and_truncate_existing",
}

func (p OpenPolicy) String() string {
	if int(p) < len(openPolicyNames) {
		return openPolicyNames[p]
	}
	return "unknown"
}

// Creates reports whether p may create a new file.
func (p OpenPolicy) Creates() bool {
	return p == CreateNew || p == CreateNewOrTruncateExisting || p == OpenOrCreate
}

// SystemHints are caching and access-pattern hints. Hints a platform cannot express
// resolve to no-ops there.
type SystemHints uint8

const (
	RandomAccess SystemHints = 1 << iota
	SequentialAccess
	AvoidCaching
	Temporary

	NoHints SystemHints = 0
)

func (h SystemHints) String() string {
	if h == NoHints {
		return "none"
	}
	return joinBits(uint8(h), []string{"random_access", "sequential_access", "avoid_caching", "temporary"})
}

// ConstructionRights are the owner permissions given to a newly created object.
type ConstructionRights uint8

const (
	OwnerRead ConstructionRights = 1 << iota
	OwnerWrite
	OwnerExecute

	OwnerReadWrite = OwnerRead | OwnerWrite
)

func (r ConstructionRights) String() string {
	if r == 0 {
		return "none"
	}
	return joinBits(uint8(r), []string{"read", "write", "execute"})
}

// NamedObjectPolicy decides how an already existing named shared-memory object is treated.
type NamedObjectPolicy uint8

const (
	// FailIfExists creates a new object and fails if the name is taken.
	FailIfExists NamedObjectPolicy = iota
	// OpenIfExists opens an existing object and fails if there is none.
	OpenIfExists
	// OpenOrCreateNamed opens the object, creating it when missing.
	OpenOrCreateNamed
)

func (p NamedObjectPolicy) String() string {
	switch p {
	case FailIfExists:
		return "fail_if_exists"
	case OpenIfExists:
		return "open_if_exists"
	case OpenOrCreateNamed:
		return "open_or_create"
	}
	return "unknown"
}

// Creates reports whether p may create a new object.
func (p NamedObjectPolicy) Creates() bool { return p != OpenIfExists }

// SharedMemoryHints are reservation hints for shared memory.
type SharedMemoryHints uint8

const (
	// DefaultHints commits backing pages when the object is created.
	DefaultHints SharedMemoryHints = iota
	// OnlyReserveAddressSpace defers committing pages until first access.
	OnlyReserveAddressSpace
)

func (h SharedMemoryHints) String() string {
	if h == OnlyReserveAddressSpace {
		return "only_reserve_address_space"
	}
	return "default"
}

// File is a portable request for opening a file.
type File struct {
	Access      AccessRights
	Policy      OpenPolicy
	Hints       SystemHints
	Permissions ConstructionRights
}

// NewFile builds a file request.
func NewFile(access AccessRights, policy OpenPolicy, hints SystemHints, perms ConstructionRights) File {
	return File{Access: access, Policy: policy, Hints: hints, Permissions: perms}
}

// ForOpeningExistingFiles builds a request that never creates the file.
func ForOpeningExistingFiles(access AccessRights, truncate bool, hints SystemHints) File {
	policy := OpenExisting
	if truncate {
		policy = OpenAndTruncateExisting
	}
	return File{Access: access, Policy: policy, Hints: hints}
}

func (f File) String() string {
	return "access=" + f.Access.String() + " policy=" + f.Policy.String() +
		" hints=" + f.Hints.String() + " perms=" + f.Permissions.String()
}

// SharedMemory is a portable request for creating or opening a shared-memory object.
type SharedMemory struct {
	Access AccessRights
	Policy NamedObjectPolicy
	Hints  SharedMemoryHints
	// Inheritable makes the handle inheritable by child processes.
	Inheritable bool
	// Permissions apply when the object is created on POSIX hosts.
	Permissions ConstructionRights
}

// NewSharedMemory builds a shared-memory request with owner read/write permissions.
func NewSharedMemory(access AccessRights, policy NamedObjectPolicy, hints SharedMemoryHints) SharedMemory {
	return SharedMemory{Access: access, Policy: policy, Hints: hints, Permissions: OwnerReadWrite}
}

func (s SharedMemory) String() string {
	return "access=" + s.Access.String() + " policy=" + s.Policy.String() + " hints=" + s.Hints.String()
}

func joinBits(v uint8, names []string) string {
	var parts []string
	for i, name := range names {
		if v&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
