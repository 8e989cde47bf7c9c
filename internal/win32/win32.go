// Package win32 translates portable flag requests into Win32 file and file-mapping
// creation parameters.
//
// The values are fixed by the Win32 ABI and are declared here so the translation can be
// built and tested on every host. The windows facade checks them against
// golang.org/x/sys/windows.
package win32

const (
	GenericRead    = 0x80000000
	GenericWrite   = 0x40000000
	GenericExecute = 0x20000000

	FileShareRead   = 0x00000001
	FileShareWrite  = 0x00000002
	FileShareDelete = 0x00000004

	CreateNew        = 1
	CreateAlways     = 2
	OpenExisting     = 3
	OpenAlways       = 4
	TruncateExisting = 5

	FileAttributeNormal    = 0x00000080
	FileAttributeTemporary = 0x00000100
	FileFlagDeleteOnClose  = 0x04000000
	FileFlagSequentialScan = 0x08000000
	FileFlagRandomAccess   = 0x10000000
	FileFlagNoBuffering    = 0x20000000

	PageReadonly         = 0x02
	PageReadWrite        = 0x04
	PageExecuteRead      = 0x20
	PageExecuteReadWrite = 0x40

	SecReserve = 0x4000000
	SecCommit  = 0x8000000

	FileMapWrite   = 0x0002
	FileMapRead    = 0x0004
	FileMapExecute = 0x0020
)
