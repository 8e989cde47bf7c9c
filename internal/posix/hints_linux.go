//go:build linux

package posix

import (
	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

// Linux exposes direct I/O as an open flag; access-pattern hints go through
// posix_fadvise after open and have no oflag.
var hintTable = []hintEntry{
	{flags.RandomAccess, 0},
	{flags.SequentialAccess, 0},
	{flags.AvoidCaching, unix.O_DIRECT},
	{flags.Temporary, 0},
}
