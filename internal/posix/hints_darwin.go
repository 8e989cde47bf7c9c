//go:build darwin

package posix

import "github.com/srediag/plugin-mmap/pkg/mmap/flags"

// Darwin disables caching with fcntl(F_NOCACHE), not with an open flag.
var hintTable = []hintEntry{
	{flags.RandomAccess, 0},
	{flags.SequentialAccess, 0},
	{flags.AvoidCaching, 0},
	{flags.Temporary, 0},
}
