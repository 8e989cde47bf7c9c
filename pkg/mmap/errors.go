package mmap

import (
	"errors"
	"syscall"
)

// Error is a failed native create-call. Code is the OS error number and is inspected by
// callers for its native meaning; the layer adds no classification of its own.
type Error struct {
	Op   string
	Name string
	Code syscall.Errno
}

func (e *Error) Error() string {
	msg := "mmap: " + e.Op
	if e.Name != "" {
		msg += " " + e.Name
	}
	return msg + ": " + e.Code.Error()
}

func (e *Error) Unwrap() error {
	return e.Code
}

// Common errors
var (
	ErrInvalidSize  = errors.New("mmap: invalid size")
	ErrInvalidName  = errors.New("mmap: invalid shared memory name")
	ErrNoSpaceLeft  = errors.New("mmap: shared memory directory has not enough free space")
	ErrInvalidValue = errors.New("mmap: value accessed on a failed result")
)

// newError wraps err as a platform *Error when it carries an errno. Errors that already
// are an *Error keep their op.
func newError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &Error{Op: op, Name: name, Code: errno}
	}
	return err
}
