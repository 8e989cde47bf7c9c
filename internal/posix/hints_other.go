//go:build unix && !linux && !darwin && !freebsd && !netbsd && !dragonfly

package posix

import "github.com/srediag/plugin-mmap/pkg/mmap/flags"

// Plain POSIX has no open-time caching hints.
var hintTable = []hintEntry{
	{flags.RandomAccess, 0},
	{flags.SequentialAccess, 0},
	{flags.AvoidCaching, 0},
	{flags.Temporary, 0},
}
