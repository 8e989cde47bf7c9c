package mmap

import (
	"context"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

const (
	fileKind         = "file"
	sharedMemoryKind = "shared_memory"
)

// OpenFile opens or creates the file name with the default Opener.
func OpenFile(ctx context.Context, name string, req flags.File) Result[*FileHandle] {
	return Default().OpenFile(ctx, name, req)
}

// OpenFile opens or creates the file name. A creating request without permissions gets
// the config's DefaultPermissions.
func (o *Opener) OpenFile(ctx context.Context, name string, req flags.File) Result[*FileHandle] {
	if req.Policy.Creates() && req.Permissions == 0 {
		req.Permissions = o.config.DefaultPermissions
	}
	var native Native
	err := o.create(ctx, fileKind, "open", name, func() (err error) {
		native, err = openFile(name, req)
		return err
	})
	if err != nil {
		return Fail[*FileHandle](err)
	}
	internalLogger.debugf("opened file %s %s", name, req)
	return Ok(NewHandle[fileTraits, Native](native))
}
