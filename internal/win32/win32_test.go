package win32

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

func TestCreateSharedMemoryHints(t *testing.T) {
	reserve := CreateSharedMemory(flags.ReadWrite, flags.OpenOrCreateNamed, flags.OnlyReserveAddressSpace, false)
	assert.Equal(t, uint32(SecReserve), reserve.SectionFlags)
	assert.Zero(t, reserve.Protection()&SecCommit)
	assert.Equal(t, uint32(PageReadWrite|SecReserve), reserve.Protection())

	commit := CreateSharedMemory(flags.ReadWrite, flags.OpenOrCreateNamed, flags.DefaultHints, false)
	assert.Equal(t, uint32(SecCommit), commit.SectionFlags)
	assert.Zero(t, commit.Protection()&SecReserve)
}

func TestCreateSharedMemoryKeepsPolicy(t *testing.T) {
	for _, p := range []flags.NamedObjectPolicy{flags.FailIfExists, flags.OpenIfExists, flags.OpenOrCreateNamed} {
		assert.Equal(t, p, CreateSharedMemory(flags.Read, p, flags.DefaultHints, true).Policy)
	}
	assert.True(t, CreateSharedMemory(flags.Read, flags.OpenIfExists, flags.DefaultHints, true).Inheritable)
}

func TestNewMapping(t *testing.T) {
	tests := []struct {
		access     flags.AccessRights
		view       uint32
		protection uint32
	}{
		{flags.Read, FileMapRead, PageReadonly},
		{flags.Write, FileMapWrite, PageReadWrite},
		{flags.ReadWrite, FileMapRead | FileMapWrite, PageReadWrite},
		{flags.Read | flags.Execute, FileMapRead | FileMapExecute, PageExecuteRead},
		{flags.All, FileMapRead | FileMapWrite | FileMapExecute, PageExecuteReadWrite},
	}
	for _, tt := range tests {
		t.Run(tt.access.String(), func(t *testing.T) {
			m := NewMapping(tt.access, false)
			assert.Equal(t, tt.view, m.ViewAccess)
			assert.Equal(t, tt.protection, m.PageProtection)
		})
	}
}

func TestCreateFile(t *testing.T) {
	tests := []struct {
		name   string
		policy flags.OpenPolicy
		want   uint32
	}{
		{"create-new", flags.CreateNew, CreateNew},
		{"create-or-truncate", flags.CreateNewOrTruncateExisting, CreateAlways},
		{"open-existing", flags.OpenExisting, OpenExisting},
		{"open-or-create", flags.OpenOrCreate, OpenAlways},
		{"truncate-existing", flags.OpenAndTruncateExisting, TruncateExisting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := CreateFile(flags.ReadWrite, tt.policy, flags.NoHints)
			assert.Equal(t, tt.want, f.CreationDisposition)
			assert.Equal(t, uint32(GenericRead|GenericWrite), f.DesiredAccess)
			assert.Equal(t, uint32(FileAttributeNormal), f.FlagsAndAttributes)
		})
	}
}

func TestCreateFileHints(t *testing.T) {
	f := CreateFile(flags.Read, flags.OpenExisting, flags.RandomAccess|flags.AvoidCaching|flags.Temporary)
	assert.Equal(t, uint32(GenericRead), f.DesiredAccess)
	assert.Equal(t, uint32(FileAttributeNormal|FileFlagRandomAccess|FileFlagNoBuffering|FileAttributeTemporary|FileFlagDeleteOnClose),
		f.FlagsAndAttributes)
	assert.Equal(t, uint32(FileFlagSequentialScan), CreateFile(flags.Read, flags.OpenExisting, flags.SequentialAccess).FlagsAndAttributes&FileFlagSequentialScan)
}
