//go:build unix

// Package posix translates portable flag requests into open(2) flags and permission modes.
package posix

import (
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

// OpenFlags is the native (oflag, mode) pair passed to open(2).
type OpenFlags struct {
	OFlag int
	PMode uint32
}

// Create combines the independently resolved access, policy and hint bits. Contradictory
// combinations are passed through unchanged.
func Create(access flags.AccessRights, policy flags.OpenPolicy, hints flags.SystemHints, rights flags.ConstructionRights) OpenFlags {
	return OpenFlags{
		OFlag: AccessBits(access) | PolicyBits(policy) | HintBits(hints),
		PMode: RightsBits(rights),
	}
}

// CreateForOpeningExistingFiles is Create with an open-existing policy, optionally truncating.
func CreateForOpeningExistingFiles(access flags.AccessRights, truncate bool, hints flags.SystemHints) OpenFlags {
	oflag := AccessBits(access) | PolicyBits(flags.OpenExisting) | HintBits(hints)
	if truncate {
		oflag |= unix.O_TRUNC
	}
	return OpenFlags{OFlag: oflag}
}

// CreateForSharedMemory translates a named-object policy into shm_open style flags.
// The reservation hint has no open-time representation on POSIX.
func CreateForSharedMemory(access flags.AccessRights, policy flags.NamedObjectPolicy, rights flags.ConstructionRights) OpenFlags {
	return OpenFlags{
		OFlag: AccessBits(access) | NamedPolicyBits(policy),
		PMode: RightsBits(rights),
	}
}

// AccessBits resolves access rights. Execute has no open(2) bit.
func AccessBits(access flags.AccessRights) int {
	switch {
	case access.Readable() && access.Writable():
		return unix.O_RDWR
	case access.Writable():
		return unix.O_WRONLY
	default:
		return unix.O_RDONLY
	}
}

// PolicyBits resolves an open policy.
func PolicyBits(policy flags.OpenPolicy) int {
	switch policy {
	case flags.CreateNew:
		return unix.O_CREAT | unix.O_EXCL
	case flags.CreateNewOrTruncateExisting:
		return unix.O_CREAT | unix.O_TRUNC
	case flags.OpenOrCreate:
		return unix.O_CREAT
	case flags.OpenAndTruncateExisting:
		return unix.O_TRUNC
	}
	return 0
}

// NamedPolicyBits resolves a named-object construction policy.
func NamedPolicyBits(policy flags.NamedObjectPolicy) int {
	switch policy {
	case flags.FailIfExists:
		return unix.O_CREAT | unix.O_EXCL
	case flags.OpenOrCreateNamed:
		return unix.O_CREAT
	}
	return 0
}

// HintBits resolves system hints through the table of the target dialect.
func HintBits(hints flags.SystemHints) int {
	var oflag int
	for _, e := range hintTable {
		if hints&e.hint != 0 {
			oflag |= e.bits
		}
	}
	return oflag
}

// RightsBits resolves construction rights to owner permission bits.
func RightsBits(rights flags.ConstructionRights) uint32 {
	var mode uint32
	if rights&flags.OwnerRead != 0 {
		mode |= unix.S_IRUSR
	}
	if rights&flags.OwnerWrite != 0 {
		mode |= unix.S_IWUSR
	}
	if rights&flags.OwnerExecute != 0 {
		mode |= unix.S_IXUSR
	}
	return mode
}

type hintEntry struct {
	hint flags.SystemHints
	bits int
}

var oflagNames = []struct {
	bit  int
	name string
}{
	{unix.O_CREAT, "O_CREAT"},
	{unix.O_EXCL, "O_EXCL"},
	{unix.O_TRUNC, "O_TRUNC"},
	{unix.O_APPEND, "O_APPEND"},
	{unix.O_CLOEXEC, "O_CLOEXEC"},
}

func (f OpenFlags) String() string {
	var b strings.Builder
	switch f.OFlag & unix.O_ACCMODE {
	case unix.O_RDWR:
		b.WriteString("O_RDWR")
	case unix.O_WRONLY:
		b.WriteString("O_WRONLY")
	default:
		b.WriteString("O_RDONLY")
	}
	rest := f.OFlag &^ unix.O_ACCMODE
	for _, n := range oflagNames {
		if rest&n.bit != 0 {
			b.WriteString("|" + n.name)
			rest &^= n.bit
		}
	}
	for _, e := range hintTable {
		if e.bits != 0 && rest&e.bits == e.bits {
			b.WriteString("|" + e.hint.String())
			rest &^= e.bits
		}
	}
	if rest != 0 {
		b.WriteString("|0x" + strconv.FormatInt(int64(rest), 16))
	}
	b.WriteString(" mode=0" + strconv.FormatUint(uint64(f.PMode), 8))
	return b.String()
}
