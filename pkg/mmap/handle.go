/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mmap

import (
	"fmt"
	"runtime"
)

// Traits describes a native handle type. Implementations are zero-size types; the
// methods are called on the zero value, so a Traits type fixes the behaviour of every
// Handle instantiated with it at compile time.
type Traits[N comparable] interface {
	// Invalid is the value meaning "owns nothing". Close must accept it as a no-op.
	Invalid() N
	// Close releases a native value.
	Close(N) error
	// Kind names the handle type in logs and metrics.
	Kind() string
}

// Handle exclusively owns one native value. A Handle is not safe for concurrent use.
//
// Handles are obtained from NewHandle or EmptyHandle; the zero Handle is not usable.
// Owners release the value with Close, usually deferred right after a successful open.
// A Handle that becomes unreachable while still owning a value is closed by a finalizer
// and reported as leaked.
type Handle[T Traits[N], N comparable] struct {
	native N
}

// Ref is a non-owning view of a Handle's native value. It must not be used after the
// source Handle is closed, released, moved or reassigned.
type Ref[N comparable] struct {
	native N
}

// Get returns the referenced native value.
func (r Ref[N]) Get() N { return r.native }

// EmptyHandle returns a handle that owns nothing.
func EmptyHandle[T Traits[N], N comparable]() *Handle[T, N] {
	var traits T
	return &Handle[T, N]{native: traits.Invalid()}
}

// NewHandle takes ownership of native. The value must not be closed through any other
// owner afterwards.
func NewHandle[T Traits[N], N comparable](native N) *Handle[T, N] {
	h := &Handle[T, N]{native: native}
	if h.Valid() {
		h.track()
		handlesOpened.WithLabelValues(h.kind()).Inc()
	}
	return h
}

// Move transfers ownership to a new Handle, leaving h empty.
func (h *Handle[T, N]) Move() *Handle[T, N] {
	moved := &Handle[T, N]{native: h.Release()}
	if moved.Valid() {
		moved.track()
	}
	return moved
}

// Assign closes whatever h owns and takes ownership of other's value, leaving other
// empty. Assigning a handle to itself keeps its value. A nil other only closes h.
func (h *Handle[T, N]) Assign(other *Handle[T, N]) {
	if other == h {
		return
	}
	h.Close()
	if other == nil {
		return
	}
	h.native = other.Release()
	if h.Valid() {
		h.track()
	}
}

// Release gives up ownership without closing and returns the value. The caller becomes
// responsible for closing it. A second call returns the invalid value.
func (h *Handle[T, N]) Release() N {
	var traits T
	native := h.native
	h.native = traits.Invalid()
	runtime.SetFinalizer(h, nil)
	return native
}

// Close closes the owned value now. It is a no-op on an empty handle, so it is safe to
// call repeatedly. Close errors are logged and counted, never returned.
func (h *Handle[T, N]) Close() {
	if !h.Valid() {
		return
	}
	closeNative[T, N](h.Release(), false)
}

// Get returns the owned value without transferring ownership.
func (h *Handle[T, N]) Get() N { return h.native }

// Valid reports whether h owns a value.
func (h *Handle[T, N]) Valid() bool {
	var traits T
	return h != nil && h.native != traits.Invalid()
}

// Ref returns a non-owning reference to the current value.
func (h *Handle[T, N]) Ref() Ref[N] { return Ref[N]{native: h.native} }

func (h *Handle[T, N]) String() string {
	if !h.Valid() {
		return h.kind() + "(invalid)"
	}
	return fmt.Sprintf("%s(%v)", h.kind(), h.native)
}

func (h *Handle[T, N]) kind() string {
	var traits T
	return traits.Kind()
}

func (h *Handle[T, N]) track() {
	runtime.SetFinalizer(h, finalizeHandle[T, N])
}

func finalizeHandle[T Traits[N], N comparable](h *Handle[T, N]) {
	var traits T
	native := h.native
	h.native = traits.Invalid()
	if native == traits.Invalid() {
		return
	}
	closeNative[T, N](native, true)
}

func closeNative[T Traits[N], N comparable](native N, leaked bool) {
	var traits T
	kind := traits.Kind()
	if leaked {
		internalLogger.warnf("%s(%v) was not closed by its owner, closing it in finalizer", kind, native)
		handlesFinalized.WithLabelValues(kind).Inc()
	}
	handlesClosed.WithLabelValues(kind).Inc()
	if err := traits.Close(native); err != nil {
		internalLogger.warnf("%s(%v) close error: %v", kind, native, err)
		handleCloseErrors.WithLabelValues(kind).Inc()
		return
	}
	internalLogger.tracef("%s(%v) closed", kind, native)
}
