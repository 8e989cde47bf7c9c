// Package mmap acquires handles to mappable objects, files and shared-memory segments,
// and owns them until they are closed.
//
// Callers describe what they want with the portable requests in package flags. The
// request is translated to native flags for the platform the binary was built for, the
// native create-call runs, and the outcome comes back as a Result holding either an owning
// Handle or an *Error carrying the OS error number.
//
// Example usage:
//
//	res := mmap.OpenFile(ctx, "data.bin", flags.NewFile(flags.ReadWrite, flags.OpenOrCreate, flags.NoHints, flags.OwnerReadWrite))
//	h, err := res.Get()
//	if err != nil {
//	  return err
//	}
//	defer h.Close()
//
// Mapping the handle into memory is left to the caller.
package mmap
