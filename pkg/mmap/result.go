package mmap

import "fmt"

// Result carries either a value or the error that prevented producing it. Callers check
// OK (or use Get) before touching the value. Results are built with Ok or Fail only; the
// zero Result reports OK with a zero value.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns an error result. err must not be nil.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic("mmap: Fail called with a nil error")
	}
	return Result[T]{err: err}
}

// OK reports whether r holds a value.
func (r Result[T]) OK() bool { return r.err == nil }

// Err returns the error, or nil for a successful result.
func (r Result[T]) Err() error { return r.err }

// Value returns the value. Calling it on an error result is a programming error and panics.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic(fmt.Errorf("%w: %w", ErrInvalidValue, r.err))
	}
	return r.value
}

// ValueOr returns the value, or def for an error result.
func (r Result[T]) ValueOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Get unpacks r into the usual (value, error) pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}
