//go:build freebsd || netbsd || dragonfly

package posix

import (
	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

var hintTable = []hintEntry{
	{flags.RandomAccess, 0},
	{flags.SequentialAccess, 0},
	{flags.AvoidCaching, unix.O_DIRECT},
	{flags.Temporary, 0},
}
