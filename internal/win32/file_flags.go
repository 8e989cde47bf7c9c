package win32

import "github.com/srediag/plugin-mmap/pkg/mmap/flags"

// FileFlags are the CreateFile parameters for a portable file request.
type FileFlags struct {
	DesiredAccess       uint32
	ShareMode           uint32
	CreationDisposition uint32
	FlagsAndAttributes  uint32
}

// CreateFile translates a file request. Construction rights have no CreateFile
// counterpart and are ignored.
func CreateFile(access flags.AccessRights, policy flags.OpenPolicy, hints flags.SystemHints) FileFlags {
	return FileFlags{
		DesiredAccess:       desiredAccess(access),
		ShareMode:           FileShareRead | FileShareWrite | FileShareDelete,
		CreationDisposition: disposition(policy),
		FlagsAndAttributes:  FileAttributeNormal | hintBits(hints),
	}
}

func desiredAccess(access flags.AccessRights) uint32 {
	var v uint32
	if access.Readable() {
		v |= GenericRead
	}
	if access.Writable() {
		v |= GenericWrite
	}
	if access.Executable() {
		v |= GenericExecute
	}
	return v
}

func disposition(policy flags.OpenPolicy) uint32 {
	switch policy {
	case flags.CreateNew:
		return CreateNew
	case flags.CreateNewOrTruncateExisting:
		return CreateAlways
	case flags.OpenOrCreate:
		return OpenAlways
	case flags.OpenAndTruncateExisting:
		return TruncateExisting
	}
	return OpenExisting
}

func hintBits(hints flags.SystemHints) uint32 {
	var v uint32
	if hints&flags.RandomAccess != 0 {
		v |= FileFlagRandomAccess
	}
	if hints&flags.SequentialAccess != 0 {
		v |= FileFlagSequentialScan
	}
	if hints&flags.AvoidCaching != 0 {
		v |= FileFlagNoBuffering
	}
	if hints&flags.Temporary != 0 {
		v |= FileAttributeTemporary | FileFlagDeleteOnClose
	}
	return v
}
